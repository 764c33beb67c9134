package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/types"
)

type messageRepository struct {
	client *firestore.Client
	prefix string
}

func (r *messageRepository) collection() string {
	return collectionName(r.prefix, "messages")
}

func (r *messageRepository) Create(ctx context.Context, m *model.Message) (*model.Message, error) {
	id, err := nextID(ctx, r.client, r.prefix, "message_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := *m
	created.ID = id
	if created.PublicID == "" {
		created.PublicID = types.NewPublicID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	docID := fmt.Sprintf("%d", created.ID)
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create message", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *messageRepository) Get(ctx context.Context, id int64) (*model.Message, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.client.Collection(r.collection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrNotFound, "message not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get message", goerr.V("id", id))
	}

	var m model.Message
	if err := docSnap.DataTo(&m); err != nil {
		return nil, goerr.Wrap(err, "failed to decode message", goerr.V("id", id))
	}
	return &m, nil
}

func (r *messageRepository) GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.Message, error) {
	iter := r.client.Collection(r.collection()).
		Where("PublicID", "==", string(publicID)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(types.ErrNotFound, "message not found", goerr.V("public_id", publicID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query message", goerr.V("public_id", publicID))
	}

	var m model.Message
	if err := docSnap.DataTo(&m); err != nil {
		return nil, goerr.Wrap(err, "failed to decode message", goerr.V("public_id", publicID))
	}
	return &m, nil
}

func (r *messageRepository) collectDocs(iter *firestore.DocumentIterator) ([]*model.Message, error) {
	defer iter.Stop()

	messages := []*model.Message{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate messages")
		}

		var m model.Message
		if err := docSnap.DataTo(&m); err != nil {
			return nil, goerr.Wrap(err, "failed to decode message", goerr.V("doc_id", docSnap.Ref.ID))
		}
		messages = append(messages, &m)
	}
	return messages, nil
}

func (r *messageRepository) ListForActor(ctx context.Context, actorID int64) ([]*model.Message, error) {
	sent, err := r.collectDocs(r.client.Collection(r.collection()).
		Where("SenderID", "==", actorID).
		Documents(ctx))
	if err != nil {
		return nil, err
	}

	received, err := r.collectDocs(r.client.Collection(r.collection()).
		Where("RecipientID", "==", actorID).
		Documents(ctx))
	if err != nil {
		return nil, err
	}

	return append(sent, received...), nil
}

func (r *messageRepository) ListReplies(ctx context.Context, parentID int64) ([]*model.Message, error) {
	return r.collectDocs(r.client.Collection(r.collection()).
		Where("ParentID", "==", parentID).
		OrderBy("CreatedAt", firestore.Asc).
		Documents(ctx))
}

func (r *messageRepository) Update(ctx context.Context, m *model.Message) (*model.Message, error) {
	docID := fmt.Sprintf("%d", m.ID)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrNotFound, "message not found", goerr.V("id", m.ID))
		}
		return nil, goerr.Wrap(err, "failed to check message existence", goerr.V("id", m.ID))
	}

	var stored model.Message
	if err := docSnap.DataTo(&stored); err != nil {
		return nil, goerr.Wrap(err, "failed to decode message", goerr.V("id", m.ID))
	}

	updated := *m
	updated.PublicID = stored.PublicID
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update message", goerr.V("id", m.ID))
	}
	return &updated, nil
}

func (r *messageRepository) Delete(ctx context.Context, id int64) error {
	docID := fmt.Sprintf("%d", id)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(types.ErrNotFound, "message not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check message existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete message", goerr.V("id", id))
	}
	return nil
}

type notificationRepository struct {
	client *firestore.Client
	prefix string
}

func (r *notificationRepository) collection() string {
	return collectionName(r.prefix, "notifications")
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	id, err := nextID(ctx, r.client, r.prefix, "notification_counter")
	if err != nil {
		return nil, err
	}

	created := *n
	created.ID = id
	if created.PublicID == "" {
		created.PublicID = types.NewPublicID()
	}
	created.CreatedAt = time.Now().UTC()

	docID := fmt.Sprintf("%d", created.ID)
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create notification", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *notificationRepository) Get(ctx context.Context, id int64) (*model.Notification, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.client.Collection(r.collection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrNotFound, "notification not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get notification", goerr.V("id", id))
	}

	var n model.Notification
	if err := docSnap.DataTo(&n); err != nil {
		return nil, goerr.Wrap(err, "failed to decode notification", goerr.V("id", id))
	}
	return &n, nil
}

func (r *notificationRepository) ListForRecipient(ctx context.Context, recipientID int64) ([]*model.Notification, error) {
	iter := r.client.Collection(r.collection()).
		Where("RecipientID", "==", recipientID).
		OrderBy("CreatedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	notifications := []*model.Notification{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate notifications")
		}

		var n model.Notification
		if err := docSnap.DataTo(&n); err != nil {
			return nil, goerr.Wrap(err, "failed to decode notification", goerr.V("doc_id", docSnap.Ref.ID))
		}
		notifications = append(notifications, &n)
	}
	return notifications, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	iter := r.client.Collection(r.collection()).
		Where("RecipientID", "==", recipientID).
		Where("ReadAt", "==", nil).
		Documents(ctx)
	defer iter.Stop()

	var count int64
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to count notifications")
		}
		count++
	}
	return count, nil
}

func (r *notificationRepository) Update(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	docID := fmt.Sprintf("%d", n.ID)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrNotFound, "notification not found", goerr.V("id", n.ID))
		}
		return nil, goerr.Wrap(err, "failed to check notification existence", goerr.V("id", n.ID))
	}

	var stored model.Notification
	if err := docSnap.DataTo(&stored); err != nil {
		return nil, goerr.Wrap(err, "failed to decode notification", goerr.V("id", n.ID))
	}

	updated := *n
	updated.PublicID = stored.PublicID
	updated.CreatedAt = stored.CreatedAt

	if _, err := docRef.Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update notification", goerr.V("id", n.ID))
	}
	return &updated, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID int64) error {
	iter := r.client.Collection(r.collection()).
		Where("RecipientID", "==", recipientID).
		Where("ReadAt", "==", nil).
		Documents(ctx)
	defer iter.Stop()

	now := time.Now().UTC()
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate notifications")
		}

		if _, err := docSnap.Ref.Update(ctx, []firestore.Update{
			{Path: "ReadAt", Value: &now},
		}); err != nil {
			return goerr.Wrap(err, "failed to mark notification read", goerr.V("doc_id", docSnap.Ref.ID))
		}
	}
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, id int64) error {
	docID := fmt.Sprintf("%d", id)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(types.ErrNotFound, "notification not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check notification existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete notification", goerr.V("id", id))
	}
	return nil
}
