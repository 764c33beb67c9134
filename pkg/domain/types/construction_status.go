package types

import "github.com/m-mizutani/goerr/v2"

// ConstructionStatus represents the lifecycle status of a construction project
type ConstructionStatus string

const (
	ConstructionStatusSubmitted  ConstructionStatus = "submitted"
	ConstructionStatusInStudy    ConstructionStatus = "in_study"
	ConstructionStatusQuoted     ConstructionStatus = "quoted"
	ConstructionStatusApproved   ConstructionStatus = "approved"
	ConstructionStatusRejected   ConstructionStatus = "rejected"
	ConstructionStatusInProgress ConstructionStatus = "in_progress"
	ConstructionStatusCompleted  ConstructionStatus = "completed"
)

// AllConstructionStatuses returns all valid construction project statuses
func AllConstructionStatuses() []ConstructionStatus {
	return []ConstructionStatus{
		ConstructionStatusSubmitted,
		ConstructionStatusInStudy,
		ConstructionStatusQuoted,
		ConstructionStatusApproved,
		ConstructionStatusRejected,
		ConstructionStatusInProgress,
		ConstructionStatusCompleted,
	}
}

// IsValid checks if the construction status is valid
func (s ConstructionStatus) IsValid() bool {
	switch s {
	case ConstructionStatusSubmitted,
		ConstructionStatusInStudy,
		ConstructionStatusQuoted,
		ConstructionStatusApproved,
		ConstructionStatusRejected,
		ConstructionStatusInProgress,
		ConstructionStatusCompleted:
		return true
	default:
		return false
	}
}

// String returns the string representation of the construction status
func (s ConstructionStatus) String() string {
	return string(s)
}

// ParseConstructionStatus parses a string into a ConstructionStatus
func ParseConstructionStatus(s string) (ConstructionStatus, error) {
	status := ConstructionStatus(s)
	if !status.IsValid() {
		return "", goerr.Wrap(ErrValidation, "invalid construction status", goerr.V("value", s))
	}
	return status, nil
}
