package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/teranga-immo/teranga/pkg/authz"
	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/model/auth"
	"github.com/teranga-immo/teranga/pkg/domain/types"
	"github.com/teranga-immo/teranga/pkg/service/notify"
)

type MessageUseCase struct {
	*UseCases
}

// MessageInput carries a new direct message
type MessageInput struct {
	RecipientPublicID types.PublicID
	PropertyPublicID  types.PublicID // optional listing the message is about
	Subject           string
	Body              string
}

// Send delivers a direct message to another actor
func (uc *MessageUseCase) Send(ctx context.Context, input MessageInput) (*model.Message, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpMessageSend); err != nil {
		return nil, err
	}
	if input.Body == "" {
		return nil, goerr.Wrap(types.ErrValidation, "message body is required")
	}

	recipient, err := uc.repo.Actor().GetByPublicID(ctx, input.RecipientPublicID)
	if err != nil {
		return nil, err
	}
	if recipient.ID == actor.ID {
		return nil, goerr.Wrap(types.ErrValidation, "cannot message yourself")
	}

	m := &model.Message{
		SenderID:    actor.ID,
		RecipientID: recipient.ID,
		Subject:     input.Subject,
		Body:        input.Body,
	}
	if input.PropertyPublicID != "" {
		p, err := uc.repo.Property().GetByPublicID(ctx, input.PropertyPublicID)
		if err != nil {
			return nil, err
		}
		m.PropertyID = p.ID
	}

	created, err := uc.repo.Message().Create(ctx, m)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create message")
	}

	uc.notify(ctx, notify.Event{
		Kind:       model.NotificationMessageReceived,
		Title:      "Nouveau message",
		Body:       fmt.Sprintf("Message de %s", actor.FullName()),
		Recipients: []int64{recipient.ID},
		Data:       map[string]string{"message_id": string(created.PublicID)},
	})
	return created, nil
}

// Reply answers an existing message. Only the two participants of the
// original thread may reply; the recipient is the other party.
func (uc *MessageUseCase) Reply(ctx context.Context, parentPublicID types.PublicID, body string) (*model.Message, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpMessageReply); err != nil {
		return nil, err
	}
	if body == "" {
		return nil, goerr.Wrap(types.ErrValidation, "message body is required")
	}

	parent, err := uc.repo.Message().GetByPublicID(ctx, parentPublicID)
	if err != nil {
		return nil, err
	}
	if parent.SenderID != actor.ID && parent.RecipientID != actor.ID {
		return nil, goerr.Wrap(types.ErrForbidden, "not a participant of the thread",
			goerr.V("message_id", parent.ID))
	}

	recipientID := parent.SenderID
	if parent.SenderID == actor.ID {
		recipientID = parent.RecipientID
	}

	root := parent.ID
	if parent.ParentID != 0 {
		root = parent.ParentID
	}

	m := &model.Message{
		SenderID:    actor.ID,
		RecipientID: recipientID,
		PropertyID:  parent.PropertyID,
		ParentID:    root,
		Subject:     parent.Subject,
		Body:        body,
	}

	created, err := uc.repo.Message().Create(ctx, m)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create reply")
	}

	uc.notify(ctx, notify.Event{
		Kind:       model.NotificationMessageReply,
		Title:      "Réponse à votre message",
		Body:       fmt.Sprintf("Réponse de %s", actor.FullName()),
		Recipients: []int64{recipientID},
		Data:       map[string]string{"message_id": string(created.PublicID)},
	})
	return created, nil
}

// MarkRead records that the recipient opened the message
func (uc *MessageUseCase) MarkRead(ctx context.Context, publicID types.PublicID) (*model.Message, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(types.ErrForbidden, "authentication required")
	}

	m, err := uc.repo.Message().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if m.RecipientID != actor.ID {
		return nil, goerr.Wrap(types.ErrForbidden, "not the recipient", goerr.V("message_id", m.ID))
	}
	if m.ReadAt != nil {
		return m, nil
	}

	now := time.Now().UTC()
	m.ReadAt = &now

	return uc.repo.Message().Update(ctx, m)
}

// Inbox returns the messages the caller sent or received, newest first
func (uc *MessageUseCase) Inbox(ctx context.Context) ([]*model.Message, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(types.ErrForbidden, "authentication required")
	}
	return uc.repo.Message().ListForActor(ctx, actor.ID)
}

// Thread returns a message and its replies, oldest first
func (uc *MessageUseCase) Thread(ctx context.Context, publicID types.PublicID) ([]*model.Message, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(types.ErrForbidden, "authentication required")
	}

	root, err := uc.repo.Message().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if root.SenderID != actor.ID && root.RecipientID != actor.ID {
		return nil, goerr.Wrap(types.ErrNotFound, "message not found", goerr.V("public_id", publicID))
	}

	replies, err := uc.repo.Message().ListReplies(ctx, root.ID)
	if err != nil {
		return nil, err
	}
	return append([]*model.Message{root}, replies...), nil
}
