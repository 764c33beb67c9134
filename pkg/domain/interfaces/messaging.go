package interfaces

import (
	"context"

	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/types"
)

// MessageRepository defines the interface for Message data access
type MessageRepository interface {
	Create(ctx context.Context, m *model.Message) (*model.Message, error)
	Get(ctx context.Context, id int64) (*model.Message, error)
	GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.Message, error)
	ListForActor(ctx context.Context, actorID int64) ([]*model.Message, error)
	ListReplies(ctx context.Context, parentID int64) ([]*model.Message, error)
	Update(ctx context.Context, m *model.Message) (*model.Message, error)
	Delete(ctx context.Context, id int64) error
}

// NotificationRepository defines the interface for Notification data access
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)
	Get(ctx context.Context, id int64) (*model.Notification, error)
	ListForRecipient(ctx context.Context, recipientID int64) ([]*model.Notification, error)
	CountUnread(ctx context.Context, recipientID int64) (int64, error)
	Update(ctx context.Context, n *model.Notification) (*model.Notification, error)
	MarkAllRead(ctx context.Context, recipientID int64) error
	Delete(ctx context.Context, id int64) error
}
