package usecase_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/types"
	"github.com/teranga-immo/teranga/pkg/usecase"
)

func TestMessageSendAndReply(t *testing.T) {
	uc, repo := setupUseCases(t)
	visitor := createActor(t, repo, types.RoleVisiteur, types.AgentTypeAny)
	owner := createActor(t, repo, types.RoleProprietaire, types.AgentTypeAny)

	m, err := uc.Message.Send(asActor(visitor), usecase.MessageInput{
		RecipientPublicID: owner.PublicID,
		Subject:           "Visite",
		Body:              "Le bien est-il toujours disponible ?",
	})
	gt.NoError(t, err).Required()
	gt.Value(t, m.SenderID).Equal(visitor.ID)
	gt.Value(t, m.RecipientID).Equal(owner.ID)

	n := lastNotification(t, repo, owner.ID)
	gt.Value(t, n.Kind).Equal(model.NotificationMessageReceived)

	reply, err := uc.Message.Reply(asActor(owner), m.PublicID, "Oui, disponible dès samedi")
	gt.NoError(t, err).Required()
	gt.Value(t, reply.RecipientID).Equal(visitor.ID)
	gt.Value(t, reply.ParentID).Equal(m.ID)
	gt.Value(t, reply.Subject).Equal(m.Subject)

	// replying to the reply attaches to the same thread root
	again, err := uc.Message.Reply(asActor(visitor), reply.PublicID, "Parfait, à samedi")
	gt.NoError(t, err).Required()
	gt.Value(t, again.ParentID).Equal(m.ID)

	thread, err := uc.Message.Thread(asActor(visitor), m.PublicID)
	gt.NoError(t, err).Required()
	gt.Array(t, thread).Length(3)
}

func TestMessageReplyOnlyParticipants(t *testing.T) {
	uc, repo := setupUseCases(t)
	visitor := createActor(t, repo, types.RoleVisiteur, types.AgentTypeAny)
	owner := createActor(t, repo, types.RoleProprietaire, types.AgentTypeAny)
	stranger := createActor(t, repo, types.RoleVisiteur, types.AgentTypeAny)

	m, err := uc.Message.Send(asActor(visitor), usecase.MessageInput{
		RecipientPublicID: owner.PublicID,
		Body:              "Bonjour",
	})
	gt.NoError(t, err).Required()

	_, err = uc.Message.Reply(asActor(stranger), m.PublicID, "intrusion")
	gt.Bool(t, errors.Is(err, types.ErrForbidden)).True()

	_, err = uc.Message.Thread(asActor(stranger), m.PublicID)
	gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
}

func TestMessageMarkRead(t *testing.T) {
	uc, repo := setupUseCases(t)
	visitor := createActor(t, repo, types.RoleVisiteur, types.AgentTypeAny)
	owner := createActor(t, repo, types.RoleProprietaire, types.AgentTypeAny)

	m, err := uc.Message.Send(asActor(visitor), usecase.MessageInput{
		RecipientPublicID: owner.PublicID,
		Body:              "Bonjour",
	})
	gt.NoError(t, err).Required()

	// only the recipient may mark the message as read
	_, err = uc.Message.MarkRead(asActor(visitor), m.PublicID)
	gt.Bool(t, errors.Is(err, types.ErrForbidden)).True()

	m, err = uc.Message.MarkRead(asActor(owner), m.PublicID)
	gt.NoError(t, err).Required()
	gt.Bool(t, m.IsRead()).True()
}

func TestNotificationReadTracking(t *testing.T) {
	uc, repo := setupUseCases(t)
	visitor := createActor(t, repo, types.RoleVisiteur, types.AgentTypeAny)
	owner := createActor(t, repo, types.RoleProprietaire, types.AgentTypeAny)

	for i := 0; i < 3; i++ {
		_, err := uc.Message.Send(asActor(visitor), usecase.MessageInput{
			RecipientPublicID: owner.PublicID,
			Body:              "ping",
		})
		gt.NoError(t, err).Required()
	}

	count, err := uc.Notification.CountUnread(asActor(owner))
	gt.NoError(t, err).Required()
	gt.Value(t, count).Equal(int64(3))

	notifs, err := uc.Notification.List(asActor(owner))
	gt.NoError(t, err).Required()
	gt.Array(t, notifs).Length(3)

	// a recipient cannot mark someone else's notification
	_, err = uc.Notification.MarkRead(asActor(visitor), notifs[0].ID)
	gt.Bool(t, errors.Is(err, types.ErrForbidden)).True()

	_, err = uc.Notification.MarkRead(asActor(owner), notifs[0].ID)
	gt.NoError(t, err).Required()

	count, err = uc.Notification.CountUnread(asActor(owner))
	gt.NoError(t, err).Required()
	gt.Value(t, count).Equal(int64(2))

	gt.NoError(t, uc.Notification.MarkAllRead(asActor(owner)))

	count, err = uc.Notification.CountUnread(asActor(owner))
	gt.NoError(t, err).Required()
	gt.Value(t, count).Equal(int64(0))

	// only the recipient may delete
	err = uc.Notification.Delete(asActor(visitor), notifs[0].ID)
	gt.Bool(t, errors.Is(err, types.ErrForbidden)).True()

	gt.NoError(t, uc.Notification.Delete(asActor(owner), notifs[0].ID))

	notifs, err = uc.Notification.List(asActor(owner))
	gt.NoError(t, err).Required()
	gt.Array(t, notifs).Length(2)
}
