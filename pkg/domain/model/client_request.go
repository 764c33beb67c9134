package model

import (
	"time"

	"github.com/teranga-immo/teranga/pkg/domain/types"
)

// ClientRequest is a contact/interest request, possibly anonymous
// (OwnerID = 0), optionally linked to a listing or project.
type ClientRequest struct {
	ID       int64
	PublicID types.PublicID
	OwnerID  int64 // 0 = anonymous
	AgentID  int64 // 0 = not assigned

	Name               string
	Email              string
	Phone              string
	Message            string
	Sector             string
	ProjectDescription string
	Consent            bool

	// Links to the entity the request concerns; at most one is set.
	PropertyID            int64
	ConstructionProjectID int64
	InvestmentProjectID   int64

	// Category drives agent assignment compatibility. Inferred from the
	// linked entity when not supplied.
	Category types.RequestCategory

	Status          types.ClientRequestStatus
	RejectionReason string
	ApprovedAt      *time.Time
	RejectedAt      *time.Time
	AssignedAt      *time.Time

	Rev       int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InferCategory returns the request category implied by the linked entity
func (r *ClientRequest) InferCategory() types.RequestCategory {
	switch {
	case r.InvestmentProjectID != 0:
		return types.CategoryInvestissement
	case r.ConstructionProjectID != 0:
		return types.CategoryConstructeur
	default:
		return types.CategoryImmobilier
	}
}
