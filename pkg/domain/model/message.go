package model

import (
	"time"

	"github.com/teranga-immo/teranga/pkg/domain/types"
)

// Message is a direct message between two actors, optionally attached to a
// property listing. Replies link back via ParentID.
type Message struct {
	ID          int64
	PublicID    types.PublicID
	SenderID    int64
	RecipientID int64
	PropertyID  int64 // 0 = not about a listing
	ParentID    int64 // 0 = not a reply

	Subject string
	Body    string
	ReadAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRead reports whether the recipient has opened the message
func (m *Message) IsRead() bool {
	return m.ReadAt != nil
}
