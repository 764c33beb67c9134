package notify_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/repository/memory"
	"github.com/teranga-immo/teranga/pkg/service/notify"
)

func TestDeliverFansOut(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	dispatcher := notify.New(repo)

	err := dispatcher.Deliver(ctx, notify.Event{
		Kind:       model.NotificationSearchRequestAssigned,
		Title:      "Nouvelle demande de recherche",
		Body:       "Une demande vous a été assignée",
		Recipients: []int64{10, 11, 12},
		Data:       map[string]string{"search_request_id": "5"},
	})
	gt.NoError(t, err).Required()

	for _, recipientID := range []int64{10, 11, 12} {
		notifications, err := repo.Notification().ListForRecipient(ctx, recipientID)
		gt.NoError(t, err).Required()
		gt.Array(t, notifications).Length(1)
		gt.Value(t, notifications[0].Kind).Equal(model.NotificationSearchRequestAssigned)
		gt.Value(t, notifications[0].Data["search_request_id"]).Equal("5")
	}
}

func TestDeliverSkipsZeroRecipient(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	dispatcher := notify.New(repo)

	err := dispatcher.Deliver(ctx, notify.Event{
		Kind:       model.NotificationClientRequestCreated,
		Title:      "Nouvelle demande",
		Recipients: []int64{0, 7},
	})
	gt.NoError(t, err).Required()

	count, err := repo.Notification().CountUnread(ctx, 7)
	gt.NoError(t, err)
	gt.Value(t, count).Equal(1)

	count, err = repo.Notification().CountUnread(ctx, 0)
	gt.NoError(t, err)
	gt.Value(t, count).Equal(0)
}
