package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/model/auth"
	"github.com/teranga-immo/teranga/pkg/domain/types"
)

type NotificationUseCase struct {
	*UseCases
}

// List returns the caller's notifications, newest first
func (uc *NotificationUseCase) List(ctx context.Context) ([]*model.Notification, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(types.ErrForbidden, "authentication required")
	}
	return uc.repo.Notification().ListForRecipient(ctx, actor.ID)
}

// CountUnread returns the caller's unread notification count
func (uc *NotificationUseCase) CountUnread(ctx context.Context) (int64, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return 0, goerr.Wrap(types.ErrForbidden, "authentication required")
	}
	return uc.repo.Notification().CountUnread(ctx, actor.ID)
}

// MarkRead records that the recipient saw the notification
func (uc *NotificationUseCase) MarkRead(ctx context.Context, id int64) (*model.Notification, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(types.ErrForbidden, "authentication required")
	}

	n, err := uc.repo.Notification().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.RecipientID != actor.ID {
		return nil, goerr.Wrap(types.ErrForbidden, "not the recipient", goerr.V("notification_id", n.ID))
	}
	if n.ReadAt != nil {
		return n, nil
	}

	now := time.Now().UTC()
	n.ReadAt = &now

	return uc.repo.Notification().Update(ctx, n)
}

// MarkAllRead clears the caller's unread counter
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context) error {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return goerr.Wrap(types.ErrForbidden, "authentication required")
	}
	return uc.repo.Notification().MarkAllRead(ctx, actor.ID)
}

// Delete removes a notification from the recipient's inbox
func (uc *NotificationUseCase) Delete(ctx context.Context, id int64) error {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return goerr.Wrap(types.ErrForbidden, "authentication required")
	}

	n, err := uc.repo.Notification().Get(ctx, id)
	if err != nil {
		return err
	}
	if n.RecipientID != actor.ID {
		return goerr.Wrap(types.ErrForbidden, "not the recipient", goerr.V("notification_id", n.ID))
	}

	return uc.repo.Notification().Delete(ctx, n.ID)
}
