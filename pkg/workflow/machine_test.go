package workflow_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/teranga-immo/teranga/pkg/domain/types"
	"github.com/teranga-immo/teranga/pkg/workflow"
)

func TestPropertyMachine(t *testing.T) {
	tests := []struct {
		name string
		from types.PropertyStatus
		to   types.PropertyStatus
		want bool
	}{
		{"draft to pending", types.PropertyStatusDraft, types.PropertyStatusPending, true},
		{"pending to approved", types.PropertyStatusPending, types.PropertyStatusApproved, true},
		{"pending back to draft", types.PropertyStatusPending, types.PropertyStatusDraft, true},
		{"draft straight to approved", types.PropertyStatusDraft, types.PropertyStatusApproved, false},
		{"approved back to pending", types.PropertyStatusApproved, types.PropertyStatusPending, false},
		{"re-approve is idempotent", types.PropertyStatusApproved, types.PropertyStatusApproved, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, workflow.Property.Can(tt.from, tt.to)).Equal(tt.want)
		})
	}
}

func TestConstructionMachine(t *testing.T) {
	tests := []struct {
		name string
		from types.ConstructionStatus
		to   types.ConstructionStatus
		want bool
	}{
		{"submitted to in_study", types.ConstructionStatusSubmitted, types.ConstructionStatusInStudy, true},
		{"in_study to quoted", types.ConstructionStatusInStudy, types.ConstructionStatusQuoted, true},
		{"quoted to approved", types.ConstructionStatusQuoted, types.ConstructionStatusApproved, true},
		{"quoted to rejected", types.ConstructionStatusQuoted, types.ConstructionStatusRejected, true},
		{"approved to in_progress", types.ConstructionStatusApproved, types.ConstructionStatusInProgress, true},
		{"in_progress to completed", types.ConstructionStatusInProgress, types.ConstructionStatusCompleted, true},
		{"submitted straight to quoted", types.ConstructionStatusSubmitted, types.ConstructionStatusQuoted, false},
		{"rejected to in_progress", types.ConstructionStatusRejected, types.ConstructionStatusInProgress, false},
		{"completed to anything", types.ConstructionStatusCompleted, types.ConstructionStatusInStudy, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, workflow.Construction.Can(tt.from, tt.to)).Equal(tt.want)
		})
	}
}

func TestSearchRequestCancellable(t *testing.T) {
	// cancellation is reachable from every non-terminal status
	nonTerminal := []types.SearchRequestStatus{
		types.SearchRequestStatusPending,
		types.SearchRequestStatusApproved,
		types.SearchRequestStatusAssigned,
		types.SearchRequestStatusInProgress,
	}
	for _, from := range nonTerminal {
		gt.Bool(t, workflow.SearchRequest.Can(from, types.SearchRequestStatusCancelled)).True()
	}

	gt.Bool(t, workflow.SearchRequest.Can(types.SearchRequestStatusFulfilled, types.SearchRequestStatusCancelled)).False()
	gt.Bool(t, workflow.SearchRequest.IsTerminal(types.SearchRequestStatusCancelled)).True()
	gt.Bool(t, workflow.SearchRequest.IsTerminal(types.SearchRequestStatusFulfilled)).True()
	gt.Bool(t, workflow.SearchRequest.IsTerminal(types.SearchRequestStatusRejected)).True()
}

func TestStepReturnsInvalidTransition(t *testing.T) {
	err := workflow.Partnership.Step(types.PartnershipStatusApproved, types.PartnershipStatusRejected)
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, types.ErrInvalidTransition)).True()

	gt.NoError(t, workflow.Partnership.Step(types.PartnershipStatusPending, types.PartnershipStatusApproved))
	// idempotent re-apply
	gt.NoError(t, workflow.Partnership.Step(types.PartnershipStatusApproved, types.PartnershipStatusApproved))
}

func TestInvestmentMachinesAreOrthogonal(t *testing.T) {
	// approval gate and operational lifecycle evolve independently
	gt.Bool(t, workflow.InvestmentApproval.Can(types.ApprovalStatusPending, types.ApprovalStatusApproved)).True()
	gt.Bool(t, workflow.InvestmentApproval.Can(types.ApprovalStatusRejected, types.ApprovalStatusPending)).True()
	gt.Bool(t, workflow.InvestmentLifecycle.Can(types.InvestmentStatusOpen, types.InvestmentStatusClosed)).True()
	gt.Bool(t, workflow.InvestmentLifecycle.Can(types.InvestmentStatusCompleted, types.InvestmentStatusOpen)).False()
}
