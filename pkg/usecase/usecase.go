package usecase

import (
	"context"

	"github.com/teranga-immo/teranga/pkg/authz"
	"github.com/teranga-immo/teranga/pkg/domain/interfaces"
	"github.com/teranga-immo/teranga/pkg/service/notify"
	"github.com/teranga-immo/teranga/pkg/utils/errutil"
)

type UseCases struct {
	repo     interfaces.Repository
	policy   *authz.Policy
	notifier *notify.Dispatcher
	storage  interfaces.FileStorage

	Property      *PropertyUseCase
	Construction  *ConstructionUseCase
	Investment    *InvestmentUseCase
	SearchRequest *SearchRequestUseCase
	ClientRequest *ClientRequestUseCase
	Partnership   *PartnershipUseCase
	Message       *MessageUseCase
	Notification  *NotificationUseCase
	Actor         *ActorUseCase
}

type Option func(*UseCases)

func WithPolicy(policy *authz.Policy) Option {
	return func(uc *UseCases) {
		uc.policy = policy
	}
}

func WithNotifier(notifier *notify.Dispatcher) Option {
	return func(uc *UseCases) {
		uc.notifier = notifier
	}
}

func WithFileStorage(storage interfaces.FileStorage) Option {
	return func(uc *UseCases) {
		uc.storage = storage
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.policy == nil {
		uc.policy = authz.Default()
	}
	if uc.notifier == nil {
		uc.notifier = notify.New(repo)
	}

	uc.Property = &PropertyUseCase{uc}
	uc.Construction = &ConstructionUseCase{uc}
	uc.Investment = &InvestmentUseCase{uc}
	uc.SearchRequest = &SearchRequestUseCase{uc}
	uc.ClientRequest = &ClientRequestUseCase{uc}
	uc.Partnership = &PartnershipUseCase{uc}
	uc.Message = &MessageUseCase{uc}
	uc.Notification = &NotificationUseCase{uc}
	uc.Actor = &ActorUseCase{uc}

	return uc
}

// Policy exposes the active authorization table
func (uc *UseCases) Policy() *authz.Policy {
	return uc.policy
}

// notify delivers an event after the triggering write committed. Delivery
// failures are reported but never propagate to the caller.
func (uc *UseCases) notify(ctx context.Context, ev notify.Event) {
	if err := uc.notifier.Deliver(ctx, ev); err != nil {
		errutil.Handle(ctx, err, "failed to deliver notifications")
	}
}

// notifyAsync fans the event out in the background, for wide audiences
// where the caller should not wait.
func (uc *UseCases) notifyAsync(ctx context.Context, ev notify.Event) {
	uc.notifier.Dispatch(ctx, ev)
}
