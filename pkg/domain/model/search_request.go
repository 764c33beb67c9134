package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/teranga-immo/teranga/pkg/domain/types"
)

// SearchRequest is a visitor's request for an agent-led property search
type SearchRequest struct {
	ID       int64
	PublicID types.PublicID
	OwnerID  int64
	AgentID  int64 // 0 = not assigned

	TransactionType        string // "vente" or "location"
	BudgetMin              decimal.Decimal
	BudgetMax              decimal.Decimal
	LocationPreferences    []string
	BedroomsMin            int
	SurfaceMin             decimal.Decimal
	AdditionalRequirements string
	Priority               int

	Status          types.SearchRequestStatus
	RejectionReason string
	ApprovedAt      *time.Time
	AssignedAt      *time.Time
	FulfilledAt     *time.Time
	RejectedAt      *time.Time
	CancelledAt     *time.Time

	Rev       int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
