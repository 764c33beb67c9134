package usecase_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/shopspring/decimal"

	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/types"
	"github.com/teranga-immo/teranga/pkg/usecase"
)

func validSearchRequestInput() usecase.SearchRequestInput {
	return usecase.SearchRequestInput{
		TransactionType:     "location",
		BudgetMin:           decimal.NewFromInt(300_000),
		BudgetMax:           decimal.NewFromInt(600_000),
		LocationPreferences: []string{"Mermoz", "Sacré-Cœur"},
		BedroomsMin:         3,
	}
}

func TestSearchRequestLifecycle(t *testing.T) {
	uc, repo := setupUseCases(t)
	visitor := createActor(t, repo, types.RoleVisiteur, types.AgentTypeAny)
	manager := createActor(t, repo, types.RoleGestionnaire, types.AgentTypeAny)
	agent := createActor(t, repo, types.RoleAgent, types.AgentType(types.CategoryImmobilier))

	r, err := uc.SearchRequest.Create(asActor(visitor), validSearchRequestInput())
	gt.NoError(t, err).Required()
	gt.Value(t, r.Status).Equal(types.SearchRequestStatusPending)

	r, err = uc.SearchRequest.Approve(asActor(manager), r.PublicID)
	gt.NoError(t, err).Required()
	gt.Bool(t, r.ApprovedAt != nil).True()

	r, err = uc.SearchRequest.Assign(asActor(manager), r.PublicID, agent.PublicID)
	gt.NoError(t, err).Required()
	gt.Value(t, r.AgentID).Equal(agent.ID)

	n := lastNotification(t, repo, agent.ID)
	gt.Value(t, n.Kind).Equal(model.NotificationSearchRequestAssigned)

	r, err = uc.SearchRequest.Start(asActor(agent), r.PublicID)
	gt.NoError(t, err).Required()
	gt.Value(t, r.Status).Equal(types.SearchRequestStatusInProgress)

	r, err = uc.SearchRequest.Fulfill(asActor(agent), r.PublicID)
	gt.NoError(t, err).Required()
	gt.Value(t, r.Status).Equal(types.SearchRequestStatusFulfilled)
	gt.Bool(t, r.FulfilledAt != nil).True()

	n = lastNotification(t, repo, visitor.ID)
	gt.Value(t, n.Kind).Equal(model.NotificationSearchRequestFulfilled)
}

func TestSearchRequestBudgetValidation(t *testing.T) {
	uc, repo := setupUseCases(t)
	visitor := createActor(t, repo, types.RoleVisiteur, types.AgentTypeAny)

	input := validSearchRequestInput()
	input.BudgetMin = decimal.NewFromInt(800_000)
	_, err := uc.SearchRequest.Create(asActor(visitor), input)
	gt.Bool(t, errors.Is(err, types.ErrValidation)).True()

	input = validSearchRequestInput()
	input.TransactionType = "achat"
	_, err = uc.SearchRequest.Create(asActor(visitor), input)
	gt.Bool(t, errors.Is(err, types.ErrValidation)).True()
}

func TestSearchRequestFulfillOnlyAssignedAgent(t *testing.T) {
	uc, repo := setupUseCases(t)
	visitor := createActor(t, repo, types.RoleVisiteur, types.AgentTypeAny)
	manager := createActor(t, repo, types.RoleGestionnaire, types.AgentTypeAny)
	assigned := createActor(t, repo, types.RoleAgent, types.AgentTypeAny)
	other := createActor(t, repo, types.RoleAgent, types.AgentTypeAny)

	r, err := uc.SearchRequest.Create(asActor(visitor), validSearchRequestInput())
	gt.NoError(t, err).Required()
	r, err = uc.SearchRequest.Approve(asActor(manager), r.PublicID)
	gt.NoError(t, err).Required()
	r, err = uc.SearchRequest.Assign(asActor(manager), r.PublicID, assigned.PublicID)
	gt.NoError(t, err).Required()

	_, err = uc.SearchRequest.Fulfill(asActor(other), r.PublicID)
	gt.Bool(t, errors.Is(err, types.ErrForbidden)).True()
}

func TestSearchRequestCancelByOwner(t *testing.T) {
	uc, repo := setupUseCases(t)
	visitor := createActor(t, repo, types.RoleVisiteur, types.AgentTypeAny)
	other := createActor(t, repo, types.RoleVisiteur, types.AgentTypeAny)

	r, err := uc.SearchRequest.Create(asActor(visitor), validSearchRequestInput())
	gt.NoError(t, err).Required()

	_, err = uc.SearchRequest.Cancel(asActor(other), r.PublicID)
	gt.Bool(t, errors.Is(err, types.ErrForbidden)).True()

	r, err = uc.SearchRequest.Cancel(asActor(visitor), r.PublicID)
	gt.NoError(t, err).Required()
	gt.Value(t, r.Status).Equal(types.SearchRequestStatusCancelled)
	gt.Bool(t, r.CancelledAt != nil).True()

	// terminal: approving a cancelled request is refused
	manager := createActor(t, repo, types.RoleGestionnaire, types.AgentTypeAny)
	_, err = uc.SearchRequest.Approve(asActor(manager), r.PublicID)
	gt.Bool(t, errors.Is(err, types.ErrInvalidTransition)).True()
}

func TestSearchRequestRejectRequiresReason(t *testing.T) {
	uc, repo := setupUseCases(t)
	visitor := createActor(t, repo, types.RoleVisiteur, types.AgentTypeAny)
	manager := createActor(t, repo, types.RoleGestionnaire, types.AgentTypeAny)

	r, err := uc.SearchRequest.Create(asActor(visitor), validSearchRequestInput())
	gt.NoError(t, err).Required()

	_, err = uc.SearchRequest.Reject(asActor(manager), r.PublicID, "")
	gt.Bool(t, errors.Is(err, types.ErrValidation)).True()

	r, err = uc.SearchRequest.Reject(asActor(manager), r.PublicID, "critères trop vagues")
	gt.NoError(t, err).Required()
	gt.Value(t, r.Status).Equal(types.SearchRequestStatusRejected)
	gt.Bool(t, r.RejectedAt != nil).True()
}

func TestSearchRequestRejectClearsApproval(t *testing.T) {
	uc, repo := setupUseCases(t)
	visitor := createActor(t, repo, types.RoleVisiteur, types.AgentTypeAny)
	manager := createActor(t, repo, types.RoleGestionnaire, types.AgentTypeAny)

	r, err := uc.SearchRequest.Create(asActor(visitor), validSearchRequestInput())
	gt.NoError(t, err).Required()

	r, err = uc.SearchRequest.Approve(asActor(manager), r.PublicID)
	gt.NoError(t, err).Required()
	gt.Bool(t, r.ApprovedAt != nil).True()

	// rejection withdraws the earlier approval mark
	r, err = uc.SearchRequest.Reject(asActor(manager), r.PublicID, "budget irréaliste")
	gt.NoError(t, err).Required()
	gt.Value(t, r.Status).Equal(types.SearchRequestStatusRejected)
	gt.Bool(t, r.RejectedAt != nil).True()
	gt.Bool(t, r.ApprovedAt == nil).True()
	gt.Value(t, r.RejectionReason).Equal("budget irréaliste")
}

func TestSearchRequestConcurrentReject(t *testing.T) {
	uc, repo := setupUseCases(t)
	visitor := createActor(t, repo, types.RoleVisiteur, types.AgentTypeAny)
	manager := createActor(t, repo, types.RoleGestionnaire, types.AgentTypeAny)

	r, err := uc.SearchRequest.Create(asActor(visitor), validSearchRequestInput())
	gt.NoError(t, err).Required()

	reasons := []string{"budget irréaliste", "critères trop vagues"}
	errs := make([]error, len(reasons))
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := range reasons {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = uc.SearchRequest.Reject(asActor(manager), r.PublicID, reasons[i])
		}(i)
	}
	close(start)
	wg.Wait()

	// a losing reviewer only ever sees a conflict, never a partial write
	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		gt.Bool(t, errors.Is(err, types.ErrConflict)).True()
	}
	gt.Bool(t, winners >= 1).True()

	got, err := uc.SearchRequest.Get(asActor(manager), r.PublicID)
	gt.NoError(t, err).Required()
	gt.Value(t, got.Status).Equal(types.SearchRequestStatusRejected)
	gt.Bool(t, got.RejectedAt != nil).True()

	// the persisted reason belongs to exactly one successful call
	gt.Bool(t, got.RejectionReason == reasons[0] || got.RejectionReason == reasons[1]).True()
	for i, reason := range reasons {
		if reason == got.RejectionReason {
			gt.NoError(t, errs[i])
		}
	}
}
