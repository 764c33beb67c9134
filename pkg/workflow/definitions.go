package workflow

import "github.com/teranga-immo/teranga/pkg/domain/types"

// Transition tables for each entity family. These are the single source of
// truth for legal status moves; use cases call Step before mutating.

// Property: draft -> pending -> approved, or back to draft with a
// rejection reason. A rejected (draft) listing may be resubmitted.
var Property = NewMachine("property", map[types.PropertyStatus][]types.PropertyStatus{
	types.PropertyStatusDraft:   {types.PropertyStatusPending},
	types.PropertyStatusPending: {types.PropertyStatusApproved, types.PropertyStatusDraft},
})

// Construction: submitted -> in_study -> quoted -> approved/rejected;
// an approved project is executed (in_progress -> completed).
var Construction = NewMachine("construction_project", map[types.ConstructionStatus][]types.ConstructionStatus{
	types.ConstructionStatusSubmitted:  {types.ConstructionStatusInStudy},
	types.ConstructionStatusInStudy:    {types.ConstructionStatusQuoted},
	types.ConstructionStatusQuoted:     {types.ConstructionStatusApproved, types.ConstructionStatusRejected},
	types.ConstructionStatusApproved:   {types.ConstructionStatusInProgress},
	types.ConstructionStatusInProgress: {types.ConstructionStatusCompleted},
})

// InvestmentApproval: the staff gate, orthogonal to the operational
// lifecycle. A rejected project may be revised and resubmitted.
var InvestmentApproval = NewMachine("investment_approval", map[types.ApprovalStatus][]types.ApprovalStatus{
	types.ApprovalStatusPending:  {types.ApprovalStatusApproved, types.ApprovalStatusRejected},
	types.ApprovalStatusRejected: {types.ApprovalStatusPending},
})

// InvestmentLifecycle: the operational machine of an investment project
var InvestmentLifecycle = NewMachine("investment_lifecycle", map[types.InvestmentStatus][]types.InvestmentStatus{
	types.InvestmentStatusOpen:       {types.InvestmentStatusInProgress, types.InvestmentStatusClosed},
	types.InvestmentStatusInProgress: {types.InvestmentStatusClosed, types.InvestmentStatusCompleted},
	types.InvestmentStatusClosed:     {types.InvestmentStatusCompleted},
})

// SearchRequest: pending -> approved -> assigned -> in_progress ->
// fulfilled. Rejection from pending/approved; the owner may cancel at any
// non-terminal point.
var SearchRequest = NewMachine("search_request", map[types.SearchRequestStatus][]types.SearchRequestStatus{
	types.SearchRequestStatusPending: {
		types.SearchRequestStatusApproved,
		types.SearchRequestStatusRejected,
		types.SearchRequestStatusCancelled,
	},
	types.SearchRequestStatusApproved: {
		types.SearchRequestStatusAssigned,
		types.SearchRequestStatusRejected,
		types.SearchRequestStatusCancelled,
	},
	types.SearchRequestStatusAssigned: {
		types.SearchRequestStatusInProgress,
		types.SearchRequestStatusFulfilled,
		types.SearchRequestStatusCancelled,
	},
	types.SearchRequestStatusInProgress: {
		types.SearchRequestStatusFulfilled,
		types.SearchRequestStatusCancelled,
	},
})

// ClientRequest: pending -> approved/rejected; approved requests are then
// assigned to an agent for follow-up.
var ClientRequest = NewMachine("client_request", map[types.ClientRequestStatus][]types.ClientRequestStatus{
	types.ClientRequestStatusPending:  {types.ClientRequestStatusApproved, types.ClientRequestStatusRejected},
	types.ClientRequestStatusApproved: {types.ClientRequestStatusAssigned},
})

// Partnership: pending -> approved/rejected
var Partnership = NewMachine("partnership", map[types.PartnershipStatus][]types.PartnershipStatus{
	types.PartnershipStatusPending: {types.PartnershipStatusApproved, types.PartnershipStatusRejected},
})

// Quote: sent -> accepted/declined by the project owner
var Quote = NewMachine("construction_quote", map[types.QuoteStatus][]types.QuoteStatus{
	types.QuoteStatusSent: {types.QuoteStatusAccepted, types.QuoteStatusDeclined},
})

// Proposal: pending -> accepted/rejected
var Proposal = NewMachine("investment_proposal", map[types.ProposalStatus][]types.ProposalStatus{
	types.ProposalStatusPending: {types.ProposalStatusAccepted, types.ProposalStatusRejected},
})
