package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shopspring/decimal"

	"github.com/teranga-immo/teranga/pkg/authz"
	"github.com/teranga-immo/teranga/pkg/domain/interfaces"
	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/model/auth"
	"github.com/teranga-immo/teranga/pkg/domain/types"
	"github.com/teranga-immo/teranga/pkg/service/notify"
	"github.com/teranga-immo/teranga/pkg/workflow"
)

type SearchRequestUseCase struct {
	*UseCases
}

// SearchRequestInput carries the search criteria of a request
type SearchRequestInput struct {
	TransactionType        string
	BudgetMin              decimal.Decimal
	BudgetMax              decimal.Decimal
	LocationPreferences    []string
	BedroomsMin            int
	SurfaceMin             decimal.Decimal
	AdditionalRequirements string
	Priority               int
}

func (in *SearchRequestInput) validate() error {
	if in.TransactionType != "vente" && in.TransactionType != "location" {
		return goerr.Wrap(types.ErrValidation, "transaction type must be vente or location",
			goerr.V("transaction_type", in.TransactionType))
	}
	if in.BudgetMin.IsNegative() || in.BudgetMax.IsNegative() {
		return goerr.Wrap(types.ErrValidation, "budget must not be negative")
	}
	if !in.BudgetMax.IsZero() && in.BudgetMin.GreaterThan(in.BudgetMax) {
		return goerr.Wrap(types.ErrValidation, "minimum budget exceeds maximum",
			goerr.V("budget_min", in.BudgetMin),
			goerr.V("budget_max", in.BudgetMax))
	}
	return nil
}

// Create files a search request on behalf of the calling visitor
func (uc *SearchRequestUseCase) Create(ctx context.Context, input SearchRequestInput) (*model.SearchRequest, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpSearchRequestCreate); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	r := &model.SearchRequest{
		OwnerID:                actor.ID,
		TransactionType:        input.TransactionType,
		BudgetMin:              input.BudgetMin,
		BudgetMax:              input.BudgetMax,
		LocationPreferences:    input.LocationPreferences,
		BedroomsMin:            input.BedroomsMin,
		SurfaceMin:             input.SurfaceMin,
		AdditionalRequirements: input.AdditionalRequirements,
		Priority:               input.Priority,
		Status:                 types.SearchRequestStatusPending,
	}

	created, err := uc.repo.SearchRequest().Create(ctx, r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create search request")
	}
	return created, nil
}

// Approve moves a pending request into the assignable pool
func (uc *SearchRequestUseCase) Approve(ctx context.Context, publicID types.PublicID) (*model.SearchRequest, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpSearchRequestApprove); err != nil {
		return nil, err
	}

	r, err := uc.repo.SearchRequest().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if err := workflow.SearchRequest.Step(r.Status, types.SearchRequestStatusApproved); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	r.Status = types.SearchRequestStatusApproved
	r.ApprovedAt = &now

	return uc.repo.SearchRequest().Update(ctx, r)
}

// Reject declines the request with a mandatory reason
func (uc *SearchRequestUseCase) Reject(ctx context.Context, publicID types.PublicID, reason string) (*model.SearchRequest, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpSearchRequestReject); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, goerr.Wrap(types.ErrValidation, "rejection reason is required")
	}

	r, err := uc.repo.SearchRequest().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if err := workflow.SearchRequest.Step(r.Status, types.SearchRequestStatusRejected); err != nil {
		return nil, err
	}
	if r.Status == types.SearchRequestStatusRejected {
		return r, nil
	}

	now := time.Now().UTC()
	r.Status = types.SearchRequestStatusRejected
	r.RejectionReason = reason
	r.RejectedAt = &now
	r.ApprovedAt = nil

	return uc.repo.SearchRequest().Update(ctx, r)
}

// Assign hands an approved request to a real-estate agent
func (uc *SearchRequestUseCase) Assign(ctx context.Context, publicID types.PublicID, agentPublicID types.PublicID) (*model.SearchRequest, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpSearchRequestAssign); err != nil {
		return nil, err
	}

	r, err := uc.repo.SearchRequest().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if err := workflow.SearchRequest.Step(r.Status, types.SearchRequestStatusAssigned); err != nil {
		return nil, err
	}

	agent, err := uc.resolveAgent(ctx, agentPublicID, types.CategoryImmobilier)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	r.Status = types.SearchRequestStatusAssigned
	r.AgentID = agent.ID
	r.AssignedAt = &now

	updated, err := uc.repo.SearchRequest().Update(ctx, r)
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, notify.Event{
		Kind:       model.NotificationSearchRequestAssigned,
		Title:      "Recherche assignée",
		Body:       fmt.Sprintf("Une recherche %s vous a été assignée", updated.TransactionType),
		Recipients: []int64{agent.ID},
		Data:       map[string]string{"search_request_id": string(updated.PublicID)},
	})
	return updated, nil
}

// Start marks the assigned request as actively worked on
func (uc *SearchRequestUseCase) Start(ctx context.Context, publicID types.PublicID) (*model.SearchRequest, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpSearchRequestFulfill); err != nil {
		return nil, err
	}

	r, err := uc.repo.SearchRequest().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if r.AgentID != actor.ID {
		return nil, goerr.Wrap(types.ErrForbidden, "request is assigned to another agent",
			goerr.V("request_id", r.ID))
	}
	if err := workflow.SearchRequest.Step(r.Status, types.SearchRequestStatusInProgress); err != nil {
		return nil, err
	}

	r.Status = types.SearchRequestStatusInProgress

	return uc.repo.SearchRequest().Update(ctx, r)
}

// Fulfill closes the request as satisfied; only the assigned agent may
func (uc *SearchRequestUseCase) Fulfill(ctx context.Context, publicID types.PublicID) (*model.SearchRequest, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpSearchRequestFulfill); err != nil {
		return nil, err
	}

	r, err := uc.repo.SearchRequest().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if r.AgentID != actor.ID {
		return nil, goerr.Wrap(types.ErrForbidden, "request is assigned to another agent",
			goerr.V("request_id", r.ID))
	}
	if err := workflow.SearchRequest.Step(r.Status, types.SearchRequestStatusFulfilled); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	r.Status = types.SearchRequestStatusFulfilled
	r.FulfilledAt = &now

	updated, err := uc.repo.SearchRequest().Update(ctx, r)
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, notify.Event{
		Kind:       model.NotificationSearchRequestFulfilled,
		Title:      "Recherche aboutie",
		Body:       "Votre recherche de bien a abouti",
		Recipients: []int64{updated.OwnerID},
		Data:       map[string]string{"search_request_id": string(updated.PublicID)},
	})
	return updated, nil
}

// Cancel lets the owner withdraw the request at any non-terminal point
func (uc *SearchRequestUseCase) Cancel(ctx context.Context, publicID types.PublicID) (*model.SearchRequest, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpSearchRequestCancel); err != nil {
		return nil, err
	}

	r, err := uc.repo.SearchRequest().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if r.OwnerID != actor.ID {
		return nil, goerr.Wrap(types.ErrForbidden, "not the owner of the request",
			goerr.V("request_id", r.ID))
	}
	if err := workflow.SearchRequest.Step(r.Status, types.SearchRequestStatusCancelled); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	r.Status = types.SearchRequestStatusCancelled
	r.CancelledAt = &now

	return uc.repo.SearchRequest().Update(ctx, r)
}

// Get returns a request, visible to its owner, assigned agent, and staff
func (uc *SearchRequestUseCase) Get(ctx context.Context, publicID types.PublicID) (*model.SearchRequest, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(types.ErrForbidden, "authentication required")
	}

	r, err := uc.repo.SearchRequest().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if r.OwnerID == actor.ID || r.AgentID == actor.ID || actor.IsStaff() {
		return r, nil
	}
	return nil, goerr.Wrap(types.ErrNotFound, "search request not found", goerr.V("public_id", publicID))
}

// ListMine returns the calling owner's requests
func (uc *SearchRequestUseCase) ListMine(ctx context.Context) ([]*model.SearchRequest, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpSearchRequestCreate); err != nil {
		return nil, err
	}
	return uc.repo.SearchRequest().List(ctx, interfaces.SearchRequestFilter{OwnerID: actor.ID})
}

// ListAssigned returns the calling agent's active requests
func (uc *SearchRequestUseCase) ListAssigned(ctx context.Context) ([]*model.SearchRequest, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpSearchRequestFulfill); err != nil {
		return nil, err
	}
	return uc.repo.SearchRequest().List(ctx, interfaces.SearchRequestFilter{
		AgentID: actor.ID,
		Statuses: []types.SearchRequestStatus{
			types.SearchRequestStatusAssigned,
			types.SearchRequestStatusInProgress,
		},
	})
}

// ListPending returns requests awaiting staff review
func (uc *SearchRequestUseCase) ListPending(ctx context.Context) ([]*model.SearchRequest, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpSearchRequestReview); err != nil {
		return nil, err
	}
	return uc.repo.SearchRequest().List(ctx, interfaces.SearchRequestFilter{
		Statuses: []types.SearchRequestStatus{types.SearchRequestStatusPending},
	})
}
