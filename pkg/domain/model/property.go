package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/teranga-immo/teranga/pkg/domain/types"
)

// MediaRef is a stored media attachment. The file bytes live in the
// configured FileStorage; only the path is tracked here.
type MediaRef struct {
	Path     string
	Name     string
	MimeType string
	Primary  bool
}

// Property represents a property listing going through the
// draft -> pending -> approved review pipeline.
type Property struct {
	ID       int64
	PublicID types.PublicID
	OwnerID  int64
	AgentID  int64 // 0 = not assigned

	Title           string
	Description     string
	TransactionType string // "vente" or "location"
	PropertyType    string
	Price           decimal.Decimal
	Currency        string
	SurfaceArea     decimal.Decimal
	Bedrooms        int
	Bathrooms       int
	Address         string
	City            string
	Media           []MediaRef
	Featured        bool
	ViewsCount      int64

	Status          types.PropertyStatus
	RejectionReason string
	PublishedAt     *time.Time
	ValidatedAt     *time.Time
	ValidatedBy     int64
	AssignedAt      *time.Time

	Rev       int64 // optimistic concurrency revision
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRejected reports whether the listing was sent back to draft by a
// reviewer. Rejection is stored as draft status plus a reason.
func (p *Property) IsRejected() bool {
	return p.Status == types.PropertyStatusDraft && p.RejectionReason != ""
}

// CanBeEdited reports whether the owner may still modify or delete the
// listing. Approved listings are frozen.
func (p *Property) CanBeEdited() bool {
	return p.Status == types.PropertyStatusDraft || p.Status == types.PropertyStatusPending
}
