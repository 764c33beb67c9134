package types

import "github.com/m-mizutani/goerr/v2"

// ClientRequestStatus represents the lifecycle status of a client contact request
type ClientRequestStatus string

const (
	ClientRequestStatusPending  ClientRequestStatus = "pending"
	ClientRequestStatusApproved ClientRequestStatus = "approved"
	ClientRequestStatusRejected ClientRequestStatus = "rejected"
	ClientRequestStatusAssigned ClientRequestStatus = "assigned"
)

// AllClientRequestStatuses returns all valid client request statuses
func AllClientRequestStatuses() []ClientRequestStatus {
	return []ClientRequestStatus{
		ClientRequestStatusPending,
		ClientRequestStatusApproved,
		ClientRequestStatusRejected,
		ClientRequestStatusAssigned,
	}
}

// IsValid checks if the client request status is valid
func (s ClientRequestStatus) IsValid() bool {
	switch s {
	case ClientRequestStatusPending,
		ClientRequestStatusApproved,
		ClientRequestStatusRejected,
		ClientRequestStatusAssigned:
		return true
	default:
		return false
	}
}

// String returns the string representation of the client request status
func (s ClientRequestStatus) String() string {
	return string(s)
}

// ParseClientRequestStatus parses a string into a ClientRequestStatus
func ParseClientRequestStatus(s string) (ClientRequestStatus, error) {
	status := ClientRequestStatus(s)
	if !status.IsValid() {
		return "", goerr.Wrap(ErrValidation, "invalid client request status", goerr.V("value", s))
	}
	return status, nil
}

// PartnershipStatus represents the review status of a partnership application
type PartnershipStatus string

const (
	PartnershipStatusPending  PartnershipStatus = "pending"
	PartnershipStatusApproved PartnershipStatus = "approved"
	PartnershipStatusRejected PartnershipStatus = "rejected"
)

// AllPartnershipStatuses returns all valid partnership statuses
func AllPartnershipStatuses() []PartnershipStatus {
	return []PartnershipStatus{
		PartnershipStatusPending,
		PartnershipStatusApproved,
		PartnershipStatusRejected,
	}
}

// IsValid checks if the partnership status is valid
func (s PartnershipStatus) IsValid() bool {
	switch s {
	case PartnershipStatusPending, PartnershipStatusApproved, PartnershipStatusRejected:
		return true
	default:
		return false
	}
}

// String returns the string representation of the partnership status
func (s PartnershipStatus) String() string {
	return string(s)
}

// ProposalStatus represents the review status of an investment proposal
type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "pending"
	ProposalStatusAccepted ProposalStatus = "accepted"
	ProposalStatusRejected ProposalStatus = "rejected"
)

// IsValid checks if the proposal status is valid
func (s ProposalStatus) IsValid() bool {
	switch s {
	case ProposalStatusPending, ProposalStatusAccepted, ProposalStatusRejected:
		return true
	default:
		return false
	}
}

// String returns the string representation of the proposal status
func (s ProposalStatus) String() string {
	return string(s)
}

// QuoteStatus represents the status of a construction quote
type QuoteStatus string

const (
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusDeclined QuoteStatus = "declined"
)

// IsValid checks if the quote status is valid
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusSent, QuoteStatusAccepted, QuoteStatusDeclined:
		return true
	default:
		return false
	}
}

// String returns the string representation of the quote status
func (s QuoteStatus) String() string {
	return string(s)
}
