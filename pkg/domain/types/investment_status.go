package types

import "github.com/m-mizutani/goerr/v2"

// ApprovalStatus is the staff approval gate on an investment project,
// independent of its operational status.
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// AllApprovalStatuses returns all valid approval statuses
func AllApprovalStatuses() []ApprovalStatus {
	return []ApprovalStatus{
		ApprovalStatusPending,
		ApprovalStatusApproved,
		ApprovalStatusRejected,
	}
}

// IsValid checks if the approval status is valid
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
		return true
	default:
		return false
	}
}

// String returns the string representation of the approval status
func (s ApprovalStatus) String() string {
	return string(s)
}

// InvestmentStatus is the operational lifecycle of an investment project
type InvestmentStatus string

const (
	InvestmentStatusOpen       InvestmentStatus = "open"
	InvestmentStatusInProgress InvestmentStatus = "in_progress"
	InvestmentStatusClosed     InvestmentStatus = "closed"
	InvestmentStatusCompleted  InvestmentStatus = "completed"
)

// AllInvestmentStatuses returns all valid investment statuses
func AllInvestmentStatuses() []InvestmentStatus {
	return []InvestmentStatus{
		InvestmentStatusOpen,
		InvestmentStatusInProgress,
		InvestmentStatusClosed,
		InvestmentStatusCompleted,
	}
}

// IsValid checks if the investment status is valid
func (s InvestmentStatus) IsValid() bool {
	switch s {
	case InvestmentStatusOpen,
		InvestmentStatusInProgress,
		InvestmentStatusClosed,
		InvestmentStatusCompleted:
		return true
	default:
		return false
	}
}

// String returns the string representation of the investment status
func (s InvestmentStatus) String() string {
	return string(s)
}

// ParseInvestmentStatus parses a string into an InvestmentStatus
func ParseInvestmentStatus(s string) (InvestmentStatus, error) {
	status := InvestmentStatus(s)
	if !status.IsValid() {
		return "", goerr.Wrap(ErrValidation, "invalid investment status", goerr.V("value", s))
	}
	return status, nil
}
