package model

import (
	"time"

	"github.com/teranga-immo/teranga/pkg/domain/types"
)

// NotificationKind identifies the transition that produced a notification
type NotificationKind string

const (
	NotificationClientRequestCreated    NotificationKind = "client_request"
	NotificationConstructionQuoteSent   NotificationKind = "construction_quote_sent"
	NotificationSearchRequestAssigned   NotificationKind = "search_request_assigned"
	NotificationSearchRequestFulfilled  NotificationKind = "search_request_fulfilled"
	NotificationClientRequestAssigned   NotificationKind = "client_request_assigned"
	NotificationPropertyValidated       NotificationKind = "property_validated"
	NotificationPropertyAssigned        NotificationKind = "property_assigned"
	NotificationPartnershipReviewed     NotificationKind = "partnership_reviewed"
	NotificationInvestmentProposalMade  NotificationKind = "investment_proposal_made"
	NotificationMessageReceived         NotificationKind = "message_received"
	NotificationMessageReply            NotificationKind = "message_reply"
	NotificationInvestmentProjectReview NotificationKind = "investment_project_review"
)

// Notification is an in-app notification record for a single recipient
type Notification struct {
	ID          int64
	PublicID    types.PublicID
	RecipientID int64

	Kind  NotificationKind
	Title string
	Body  string
	Data  map[string]string

	ReadAt    *time.Time
	CreatedAt time.Time
}

// IsRead reports whether the recipient has seen the notification
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
