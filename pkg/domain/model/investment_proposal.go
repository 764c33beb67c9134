package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/teranga-immo/teranga/pkg/domain/types"
)

// InvestmentProposal is an investor's offer on an approved investment project
type InvestmentProposal struct {
	ID         int64
	PublicID   types.PublicID
	InvestorID int64
	ProjectID  int64

	Amount  decimal.Decimal
	Message string

	Status          types.ProposalStatus
	RejectionReason string
	ReviewedBy      int64
	ReviewedAt      *time.Time

	Rev       int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
