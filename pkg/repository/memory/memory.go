package memory

import (
	"time"

	"github.com/teranga-immo/teranga/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is the in-memory repository used by tests and local development.
// Every sub-repository hands out deep copies so callers can never mutate
// stored state without going through Update.
type Memory struct {
	actor         *actorRepository
	property      *propertyRepository
	construction  *constructionRepository
	quote         *quoteRepository
	investment    *investmentRepository
	proposal      *proposalRepository
	searchRequest *searchRequestRepository
	clientRequest *clientRequestRepository
	partnership   *partnershipRepository
	message       *messageRepository
	notification  *notificationRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		actor:         newActorRepository(),
		property:      newPropertyRepository(),
		construction:  newConstructionRepository(),
		quote:         newQuoteRepository(),
		investment:    newInvestmentRepository(),
		proposal:      newProposalRepository(),
		searchRequest: newSearchRequestRepository(),
		clientRequest: newClientRequestRepository(),
		partnership:   newPartnershipRepository(),
		message:       newMessageRepository(),
		notification:  newNotificationRepository(),
	}
}

func (m *Memory) Actor() interfaces.ActorRepository                 { return m.actor }
func (m *Memory) Property() interfaces.PropertyRepository           { return m.property }
func (m *Memory) Construction() interfaces.ConstructionRepository   { return m.construction }
func (m *Memory) Quote() interfaces.QuoteRepository                 { return m.quote }
func (m *Memory) Investment() interfaces.InvestmentRepository       { return m.investment }
func (m *Memory) Proposal() interfaces.ProposalRepository           { return m.proposal }
func (m *Memory) SearchRequest() interfaces.SearchRequestRepository { return m.searchRequest }
func (m *Memory) ClientRequest() interfaces.ClientRequestRepository { return m.clientRequest }
func (m *Memory) Partnership() interfaces.PartnershipRepository     { return m.partnership }
func (m *Memory) Message() interfaces.MessageRepository             { return m.message }
func (m *Memory) Notification() interfaces.NotificationRepository   { return m.notification }

func (m *Memory) Close() error { return nil }

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
