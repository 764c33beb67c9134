package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/types"
)

type messageRepository struct {
	mu       sync.RWMutex
	messages map[int64]*model.Message
	byPublic map[types.PublicID]int64
	nextID   int64
}

func newMessageRepository() *messageRepository {
	return &messageRepository{
		messages: make(map[int64]*model.Message),
		byPublic: make(map[types.PublicID]int64),
		nextID:   1,
	}
}

func copyMessage(m *model.Message) *model.Message {
	copied := *m
	copied.ReadAt = copyTime(m.ReadAt)
	return &copied
}

func (r *messageRepository) Create(ctx context.Context, m *model.Message) (*model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyMessage(m)
	created.ID = r.nextID
	if created.PublicID == "" {
		created.PublicID = types.NewPublicID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.messages[created.ID] = created
	r.byPublic[created.PublicID] = created.ID
	return copyMessage(created), nil
}

func (r *messageRepository) Get(ctx context.Context, id int64) (*model.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, exists := r.messages[id]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "message not found", goerr.V("id", id))
	}
	return copyMessage(m), nil
}

func (r *messageRepository) GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byPublic[publicID]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "message not found", goerr.V("public_id", publicID))
	}
	return copyMessage(r.messages[id]), nil
}

func (r *messageRepository) ListForActor(ctx context.Context, actorID int64) ([]*model.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	messages := []*model.Message{}
	for _, m := range r.messages {
		if m.SenderID == actorID || m.RecipientID == actorID {
			messages = append(messages, copyMessage(m))
		}
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})
	return messages, nil
}

func (r *messageRepository) ListReplies(ctx context.Context, parentID int64) ([]*model.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	messages := []*model.Message{}
	for _, m := range r.messages {
		if m.ParentID == parentID {
			messages = append(messages, copyMessage(m))
		}
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

func (r *messageRepository) Update(ctx context.Context, m *model.Message) (*model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.messages[m.ID]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "message not found", goerr.V("id", m.ID))
	}

	updated := copyMessage(m)
	updated.PublicID = existing.PublicID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.messages[updated.ID] = updated
	return copyMessage(updated), nil
}

func (r *messageRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, exists := r.messages[id]
	if !exists {
		return goerr.Wrap(types.ErrNotFound, "message not found", goerr.V("id", id))
	}

	delete(r.byPublic, m.PublicID)
	delete(r.messages, id)
	return nil
}

type notificationRepository struct {
	mu            sync.RWMutex
	notifications map[int64]*model.Notification
	nextID        int64
}

func newNotificationRepository() *notificationRepository {
	return &notificationRepository{
		notifications: make(map[int64]*model.Notification),
		nextID:        1,
	}
}

func copyNotification(n *model.Notification) *model.Notification {
	copied := *n
	if n.Data != nil {
		copied.Data = make(map[string]string, len(n.Data))
		for k, v := range n.Data {
			copied.Data[k] = v
		}
	}
	copied.ReadAt = copyTime(n.ReadAt)
	return &copied
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyNotification(n)
	created.ID = r.nextID
	if created.PublicID == "" {
		created.PublicID = types.NewPublicID()
	}
	created.CreatedAt = time.Now().UTC()
	r.nextID++

	r.notifications[created.ID] = created
	return copyNotification(created), nil
}

func (r *notificationRepository) Get(ctx context.Context, id int64) (*model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, exists := r.notifications[id]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "notification not found", goerr.V("id", id))
	}
	return copyNotification(n), nil
}

func (r *notificationRepository) ListForRecipient(ctx context.Context, recipientID int64) ([]*model.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notifications := []*model.Notification{}
	for _, n := range r.notifications {
		if n.RecipientID == recipientID {
			notifications = append(notifications, copyNotification(n))
		}
	}
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && n.ReadAt == nil {
			count++
		}
	}
	return count, nil
}

func (r *notificationRepository) Update(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.notifications[n.ID]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "notification not found", goerr.V("id", n.ID))
	}

	updated := copyNotification(n)
	updated.PublicID = existing.PublicID
	updated.CreatedAt = existing.CreatedAt

	r.notifications[updated.ID] = updated
	return copyNotification(updated), nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && n.ReadAt == nil {
			n.ReadAt = &now
		}
	}
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notifications[id]; !exists {
		return goerr.Wrap(types.ErrNotFound, "notification not found", goerr.V("id", id))
	}

	delete(r.notifications, id)
	return nil
}
