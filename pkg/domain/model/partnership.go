package model

import (
	"time"

	"github.com/teranga-immo/teranga/pkg/domain/types"
)

// Partnership is a company's application to become a platform partner.
// Approval reactivates the applicant's account as a side effect.
type Partnership struct {
	ID       int64
	PublicID types.PublicID
	OwnerID  int64

	CompanyName   string
	ContactEmail  string
	ContactPhone  string
	Message       string
	DocumentPaths []string

	Status          types.PartnershipStatus
	RejectionReason string
	ApprovedBy      int64
	ApprovedAt      *time.Time
	RejectedAt      *time.Time

	Rev       int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
