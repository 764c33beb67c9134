package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/teranga-immo/teranga/pkg/domain/types"
)

// ConstructionProject represents a construction request moving through the
// submitted -> in_study -> quoted -> approved/rejected -> in_progress ->
// completed pipeline.
type ConstructionProject struct {
	ID       int64
	PublicID types.PublicID
	OwnerID  int64
	AgentID  int64 // 0 = not assigned

	Title       string
	Description string
	ProjectType string
	BudgetMin   decimal.Decimal
	BudgetMax   decimal.Decimal
	SurfaceArea decimal.Decimal
	Location    string
	City        string

	// IsPublication gates public visibility independently of the workflow
	// status: a project may be completed yet never published.
	IsPublication bool

	Status          types.ConstructionStatus
	RejectionReason string
	AssignedAt      *time.Time
	QuotedAt        *time.Time
	ApprovedAt      *time.Time
	RejectedAt      *time.Time
	CompletedAt     *time.Time

	DocumentPaths []string
	ImagePaths    []string

	Rev       int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
