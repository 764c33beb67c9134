package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/teranga-immo/teranga/pkg/domain/interfaces"
)

type Firestore struct {
	client        *firestore.Client
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

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.actor.prefix = prefix
		f.property.prefix = prefix
		f.construction.prefix = prefix
		f.quote.prefix = prefix
		f.investment.prefix = prefix
		f.proposal.prefix = prefix
		f.searchRequest.prefix = prefix
		f.clientRequest.prefix = prefix
		f.partnership.prefix = prefix
		f.message.prefix = prefix
		f.notification.prefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:        client,
		actor:         &actorRepository{client: client},
		property:      &propertyRepository{client: client},
		construction:  &constructionRepository{client: client},
		quote:         &quoteRepository{client: client},
		investment:    &investmentRepository{client: client},
		proposal:      &proposalRepository{client: client},
		searchRequest: &searchRequestRepository{client: client},
		clientRequest: &clientRequestRepository{client: client},
		partnership:   &partnershipRepository{client: client},
		message:       &messageRepository{client: client},
		notification:  &notificationRepository{client: client},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Actor() interfaces.ActorRepository                 { return f.actor }
func (f *Firestore) Property() interfaces.PropertyRepository           { return f.property }
func (f *Firestore) Construction() interfaces.ConstructionRepository   { return f.construction }
func (f *Firestore) Quote() interfaces.QuoteRepository                 { return f.quote }
func (f *Firestore) Investment() interfaces.InvestmentRepository       { return f.investment }
func (f *Firestore) Proposal() interfaces.ProposalRepository           { return f.proposal }
func (f *Firestore) SearchRequest() interfaces.SearchRequestRepository { return f.searchRequest }
func (f *Firestore) ClientRequest() interfaces.ClientRequestRepository { return f.clientRequest }
func (f *Firestore) Partnership() interfaces.PartnershipRepository     { return f.partnership }
func (f *Firestore) Message() interfaces.MessageRepository             { return f.message }
func (f *Firestore) Notification() interfaces.NotificationRepository   { return f.notification }

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

func collectionName(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}

// nextID allocates a monotonically increasing int64 ID from a counter
// document, transactionally.
func nextID(ctx context.Context, client *firestore.Client, prefix, counterName string) (int64, error) {
	counterRef := client.Collection(collectionName(prefix, "counters")).Doc(counterName)

	var id int64
	err := client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				id = 1
				return tx.Set(counterRef, map[string]interface{}{
					"value": id,
				})
			}
			return goerr.Wrap(err, "failed to get counter")
		}

		currentValue, err := doc.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get counter value")
		}

		val, ok := currentValue.(int64)
		if !ok {
			return goerr.New("counter value is not of type int64", goerr.V("value", currentValue))
		}
		id = val + 1
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: id},
		})
	})

	if err != nil {
		return 0, goerr.Wrap(err, "failed to get next ID", goerr.V("counter", counterName))
	}

	return id, nil
}
