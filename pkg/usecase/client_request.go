package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/teranga-immo/teranga/pkg/authz"
	"github.com/teranga-immo/teranga/pkg/domain/interfaces"
	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/model/auth"
	"github.com/teranga-immo/teranga/pkg/domain/types"
	"github.com/teranga-immo/teranga/pkg/service/notify"
	"github.com/teranga-immo/teranga/pkg/workflow"
)

type ClientRequestUseCase struct {
	*UseCases
}

// ClientRequestInput carries a contact/interest request. Anonymous
// submissions are accepted, so no authorization gate applies to Create.
type ClientRequestInput struct {
	Name               string
	Email              string
	Phone              string
	Message            string
	Sector             string
	ProjectDescription string
	Consent            bool

	PropertyPublicID     types.PublicID
	ConstructionPublicID types.PublicID
	InvestmentPublicID   types.PublicID
}

func (in *ClientRequestInput) validate() error {
	if in.Name == "" {
		return goerr.Wrap(types.ErrValidation, "name is required")
	}
	if in.Email == "" && in.Phone == "" {
		return goerr.Wrap(types.ErrValidation, "email or phone is required")
	}
	if !in.Consent {
		return goerr.Wrap(types.ErrValidation, "consent is required")
	}
	linked := 0
	for _, id := range []types.PublicID{in.PropertyPublicID, in.ConstructionPublicID, in.InvestmentPublicID} {
		if id != "" {
			linked++
		}
	}
	if linked > 1 {
		return goerr.Wrap(types.ErrValidation, "at most one linked entity is allowed")
	}
	return nil
}

// Create registers the request. Callers may be anonymous; when a session
// exists the request is attributed to the actor.
func (uc *ClientRequestUseCase) Create(ctx context.Context, input ClientRequestInput) (*model.ClientRequest, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	r := &model.ClientRequest{
		Name:               input.Name,
		Email:              input.Email,
		Phone:              input.Phone,
		Message:            input.Message,
		Sector:             input.Sector,
		ProjectDescription: input.ProjectDescription,
		Consent:            input.Consent,
		Status:             types.ClientRequestStatusPending,
	}
	if actor, err := auth.ActorFromContext(ctx); err == nil {
		r.OwnerID = actor.ID
	}

	if input.PropertyPublicID != "" {
		p, err := uc.repo.Property().GetByPublicID(ctx, input.PropertyPublicID)
		if err != nil {
			return nil, err
		}
		r.PropertyID = p.ID
	}
	if input.ConstructionPublicID != "" {
		p, err := uc.repo.Construction().GetByPublicID(ctx, input.ConstructionPublicID)
		if err != nil {
			return nil, err
		}
		r.ConstructionProjectID = p.ID
	}
	if input.InvestmentPublicID != "" {
		p, err := uc.repo.Investment().GetByPublicID(ctx, input.InvestmentPublicID)
		if err != nil {
			return nil, err
		}
		r.InvestmentProjectID = p.ID
	}
	r.Category = r.InferCategory()

	created, err := uc.repo.ClientRequest().Create(ctx, r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create client request")
	}

	uc.notifyAsync(ctx, notify.Event{
		Kind:       model.NotificationClientRequestCreated,
		Title:      "Nouvelle demande client",
		Body:       fmt.Sprintf("Demande de %s à traiter", created.Name),
		Recipients: uc.staffRecipients(ctx),
		Data:       map[string]string{"client_request_id": string(created.PublicID)},
	})
	return created, nil
}

// Approve accepts the request for follow-up
func (uc *ClientRequestUseCase) Approve(ctx context.Context, publicID types.PublicID) (*model.ClientRequest, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpClientRequestApprove); err != nil {
		return nil, err
	}

	r, err := uc.repo.ClientRequest().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if err := workflow.ClientRequest.Step(r.Status, types.ClientRequestStatusApproved); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	r.Status = types.ClientRequestStatusApproved
	r.ApprovedAt = &now

	return uc.repo.ClientRequest().Update(ctx, r)
}

// Reject declines the request with a mandatory reason
func (uc *ClientRequestUseCase) Reject(ctx context.Context, publicID types.PublicID, reason string) (*model.ClientRequest, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpClientRequestReject); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, goerr.Wrap(types.ErrValidation, "rejection reason is required")
	}

	r, err := uc.repo.ClientRequest().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if err := workflow.ClientRequest.Step(r.Status, types.ClientRequestStatusRejected); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	r.Status = types.ClientRequestStatusRejected
	r.RejectionReason = reason
	r.RejectedAt = &now

	return uc.repo.ClientRequest().Update(ctx, r)
}

// Assign hands an approved request to an agent whose specialization
// covers the request's category.
func (uc *ClientRequestUseCase) Assign(ctx context.Context, publicID types.PublicID, agentPublicID types.PublicID) (*model.ClientRequest, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpClientRequestAssign); err != nil {
		return nil, err
	}

	r, err := uc.repo.ClientRequest().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if err := workflow.ClientRequest.Step(r.Status, types.ClientRequestStatusAssigned); err != nil {
		return nil, err
	}

	agent, err := uc.resolveAgent(ctx, agentPublicID, r.Category)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	r.Status = types.ClientRequestStatusAssigned
	r.AgentID = agent.ID
	r.AssignedAt = &now

	updated, err := uc.repo.ClientRequest().Update(ctx, r)
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, notify.Event{
		Kind:       model.NotificationClientRequestAssigned,
		Title:      "Demande client assignée",
		Body:       fmt.Sprintf("La demande de %s vous a été assignée", updated.Name),
		Recipients: []int64{agent.ID},
		Data:       map[string]string{"client_request_id": string(updated.PublicID)},
	})
	return updated, nil
}

// Get returns a request; only staff and the assigned agent may read it
func (uc *ClientRequestUseCase) Get(ctx context.Context, publicID types.PublicID) (*model.ClientRequest, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(types.ErrForbidden, "authentication required")
	}

	r, err := uc.repo.ClientRequest().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if actor.IsStaff() || r.AgentID == actor.ID || (r.OwnerID != 0 && r.OwnerID == actor.ID) {
		return r, nil
	}
	return nil, goerr.Wrap(types.ErrNotFound, "client request not found", goerr.V("public_id", publicID))
}

// ListPending returns requests awaiting staff review
func (uc *ClientRequestUseCase) ListPending(ctx context.Context) ([]*model.ClientRequest, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpClientRequestReview); err != nil {
		return nil, err
	}
	return uc.repo.ClientRequest().List(ctx, interfaces.ClientRequestFilter{
		Statuses: []types.ClientRequestStatus{types.ClientRequestStatusPending},
	})
}

// ListAssigned returns the calling agent's requests
func (uc *ClientRequestUseCase) ListAssigned(ctx context.Context) ([]*model.ClientRequest, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(types.ErrForbidden, "authentication required")
	}
	if actor.Role != types.RoleAgent {
		return nil, goerr.Wrap(types.ErrForbidden, "agent role required", goerr.V("role", actor.Role))
	}
	return uc.repo.ClientRequest().List(ctx, interfaces.ClientRequestFilter{AgentID: actor.ID})
}
