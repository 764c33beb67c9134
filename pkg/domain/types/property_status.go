package types

import "github.com/m-mizutani/goerr/v2"

// PropertyStatus represents the review status of a property listing.
// Rejection returns the listing to draft with a rejection reason attached;
// there is no distinct "rejected" value in storage.
type PropertyStatus string

const (
	PropertyStatusDraft    PropertyStatus = "draft"
	PropertyStatusPending  PropertyStatus = "pending"
	PropertyStatusApproved PropertyStatus = "approved"
)

// AllPropertyStatuses returns all valid property statuses
func AllPropertyStatuses() []PropertyStatus {
	return []PropertyStatus{
		PropertyStatusDraft,
		PropertyStatusPending,
		PropertyStatusApproved,
	}
}

// IsValid checks if the property status is valid
func (s PropertyStatus) IsValid() bool {
	switch s {
	case PropertyStatusDraft, PropertyStatusPending, PropertyStatusApproved:
		return true
	default:
		return false
	}
}

// String returns the string representation of the property status
func (s PropertyStatus) String() string {
	return string(s)
}

// ParsePropertyStatus parses a string into a PropertyStatus
func ParsePropertyStatus(s string) (PropertyStatus, error) {
	status := PropertyStatus(s)
	if !status.IsValid() {
		return "", goerr.Wrap(ErrValidation, "invalid property status", goerr.V("value", s))
	}
	return status, nil
}
