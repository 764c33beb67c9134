package interfaces

// Repository defines the interface for data persistence.
//
// Every Update method applies an optimistic concurrency check: the entity's
// Rev must match the stored revision, otherwise types.ErrConflict is
// returned and nothing is written. This serializes concurrent transitions
// on the same entity (two simultaneous approve/reject calls cannot
// interleave field updates).
type Repository interface {
	Actor() ActorRepository
	Property() PropertyRepository
	Construction() ConstructionRepository
	Quote() QuoteRepository
	Investment() InvestmentRepository
	Proposal() ProposalRepository
	SearchRequest() SearchRequestRepository
	ClientRequest() ClientRequestRepository
	Partnership() PartnershipRepository
	Message() MessageRepository
	Notification() NotificationRepository

	Close() error
}
