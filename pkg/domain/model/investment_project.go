package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/teranga-immo/teranga/pkg/domain/types"
)

// InvestmentProject carries two orthogonal state machines: the staff
// approval gate (ApprovalStatus) and the operational lifecycle (Status).
// A project is publicly visible only when approved.
type InvestmentProject struct {
	ID        int64
	PublicID  types.PublicID
	CreatedBy int64

	Title          string
	Description    string
	ProjectType    string
	Location       string
	City           string
	ReferenceCode  string
	SurfaceArea    decimal.Decimal
	ExpectedReturn decimal.Decimal
	DurationMonths int
	Featured       bool

	// Funding counter, not a ledger. CurrentFunding never decreases and
	// never exceeds TotalInvestment; it advances only when staff accepts
	// an investment proposal, through the repository revision check.
	TotalInvestment decimal.Decimal
	MinInvestment   decimal.Decimal
	CurrentFunding  decimal.Decimal

	ApprovalStatus  types.ApprovalStatus
	Status          types.InvestmentStatus
	RejectionReason string
	ApprovedAt      *time.Time
	RejectedAt      *time.Time

	DocumentPaths []string
	ImagePaths    []string

	Rev       int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RemainingFunding returns the amount still open for investment
func (p *InvestmentProject) RemainingFunding() decimal.Decimal {
	return p.TotalInvestment.Sub(p.CurrentFunding)
}
