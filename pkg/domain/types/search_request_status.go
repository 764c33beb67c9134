package types

import "github.com/m-mizutani/goerr/v2"

// SearchRequestStatus represents the lifecycle status of a search request
type SearchRequestStatus string

const (
	SearchRequestStatusPending    SearchRequestStatus = "pending"
	SearchRequestStatusApproved   SearchRequestStatus = "approved"
	SearchRequestStatusAssigned   SearchRequestStatus = "assigned"
	SearchRequestStatusInProgress SearchRequestStatus = "in_progress"
	SearchRequestStatusFulfilled  SearchRequestStatus = "fulfilled"
	SearchRequestStatusRejected   SearchRequestStatus = "rejected"
	SearchRequestStatusCancelled  SearchRequestStatus = "cancelled"
)

// AllSearchRequestStatuses returns all valid search request statuses
func AllSearchRequestStatuses() []SearchRequestStatus {
	return []SearchRequestStatus{
		SearchRequestStatusPending,
		SearchRequestStatusApproved,
		SearchRequestStatusAssigned,
		SearchRequestStatusInProgress,
		SearchRequestStatusFulfilled,
		SearchRequestStatusRejected,
		SearchRequestStatusCancelled,
	}
}

// IsValid checks if the search request status is valid
func (s SearchRequestStatus) IsValid() bool {
	switch s {
	case SearchRequestStatusPending,
		SearchRequestStatusApproved,
		SearchRequestStatusAssigned,
		SearchRequestStatusInProgress,
		SearchRequestStatusFulfilled,
		SearchRequestStatusRejected,
		SearchRequestStatusCancelled:
		return true
	default:
		return false
	}
}

// String returns the string representation of the search request status
func (s SearchRequestStatus) String() string {
	return string(s)
}

// ParseSearchRequestStatus parses a string into a SearchRequestStatus
func ParseSearchRequestStatus(s string) (SearchRequestStatus, error) {
	status := SearchRequestStatus(s)
	if !status.IsValid() {
		return "", goerr.Wrap(ErrValidation, "invalid search request status", goerr.V("value", s))
	}
	return status, nil
}
