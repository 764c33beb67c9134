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
	"github.com/teranga-immo/teranga/pkg/utils/errutil"
	"github.com/teranga-immo/teranga/pkg/workflow"
)

type InvestmentUseCase struct {
	*UseCases
}

// InvestmentInput carries the fields of an investment project
type InvestmentInput struct {
	Title           string
	Description     string
	ProjectType     string
	Location        string
	City            string
	ReferenceCode   string
	SurfaceArea     decimal.Decimal
	ExpectedReturn  decimal.Decimal
	DurationMonths  int
	TotalInvestment decimal.Decimal
	MinInvestment   decimal.Decimal
}

func (in *InvestmentInput) validate() error {
	if in.Title == "" {
		return goerr.Wrap(types.ErrValidation, "project title is required")
	}
	if in.TotalInvestment.IsNegative() || in.TotalInvestment.IsZero() {
		return goerr.Wrap(types.ErrValidation, "total investment must be positive",
			goerr.V("total_investment", in.TotalInvestment))
	}
	if in.MinInvestment.IsNegative() {
		return goerr.Wrap(types.ErrValidation, "minimum investment must not be negative")
	}
	if in.MinInvestment.GreaterThan(in.TotalInvestment) {
		return goerr.Wrap(types.ErrValidation, "minimum investment exceeds total",
			goerr.V("min_investment", in.MinInvestment),
			goerr.V("total_investment", in.TotalInvestment))
	}
	return nil
}

func (uc *InvestmentUseCase) create(ctx context.Context, actor *model.Actor, input InvestmentInput, approved bool) (*model.InvestmentProject, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	p := &model.InvestmentProject{
		CreatedBy:       actor.ID,
		Title:           input.Title,
		Description:     input.Description,
		ProjectType:     input.ProjectType,
		Location:        input.Location,
		City:            input.City,
		ReferenceCode:   input.ReferenceCode,
		SurfaceArea:     input.SurfaceArea,
		ExpectedReturn:  input.ExpectedReturn,
		DurationMonths:  input.DurationMonths,
		TotalInvestment: input.TotalInvestment,
		MinInvestment:   input.MinInvestment,
		CurrentFunding:  decimal.Zero,
		ApprovalStatus:  types.ApprovalStatusPending,
		Status:          types.InvestmentStatusOpen,
	}
	if approved {
		now := time.Now().UTC()
		p.ApprovalStatus = types.ApprovalStatusApproved
		p.ApprovedAt = &now
	}

	created, err := uc.repo.Investment().Create(ctx, p)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create investment project")
	}

	if !approved {
		uc.notifyAsync(ctx, notify.Event{
			Kind:       model.NotificationInvestmentProjectReview,
			Title:      "Projet d'investissement à valider",
			Body:       fmt.Sprintf("Le projet \"%s\" attend une revue", created.Title),
			Recipients: uc.staffRecipients(ctx),
			Data:       map[string]string{"investment_project_id": string(created.PublicID)},
		})
	}
	return created, nil
}

// Create registers an investment project. A staff author reviews their own
// submission, so the project opens to investors immediately.
func (uc *InvestmentUseCase) Create(ctx context.Context, input InvestmentInput) (*model.InvestmentProject, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpInvestmentCreate); err != nil {
		return nil, err
	}
	return uc.create(ctx, actor, input, true)
}

// AgentCreate lets an investment agent file a project on behalf of the
// platform, pending staff approval. The agent's specialization must cover
// investments.
func (uc *InvestmentUseCase) AgentCreate(ctx context.Context, input InvestmentInput) (*model.InvestmentProject, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpInvestmentAgentCreate); err != nil {
		return nil, err
	}
	if !actor.AgentType.Covers(types.CategoryInvestissement) {
		return nil, goerr.Wrap(types.ErrCapabilityMismatch, "agent specialization does not cover investments",
			goerr.V("agent_type", actor.AgentType))
	}
	return uc.create(ctx, actor, input, false)
}

// Approve opens the project to investors
func (uc *InvestmentUseCase) Approve(ctx context.Context, publicID types.PublicID) (*model.InvestmentProject, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpInvestmentApprove); err != nil {
		return nil, err
	}

	p, err := uc.repo.Investment().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if err := workflow.InvestmentApproval.Step(p.ApprovalStatus, types.ApprovalStatusApproved); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p.ApprovalStatus = types.ApprovalStatusApproved
	p.RejectionReason = ""
	p.ApprovedAt = &now
	p.RejectedAt = nil

	updated, err := uc.repo.Investment().Update(ctx, p)
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, notify.Event{
		Kind:       model.NotificationInvestmentProjectReview,
		Title:      "Projet d'investissement approuvé",
		Body:       fmt.Sprintf("Le projet \"%s\" est ouvert aux investisseurs", updated.Title),
		Recipients: []int64{updated.CreatedBy},
		Data:       map[string]string{"investment_project_id": string(updated.PublicID)},
	})
	return updated, nil
}

// Reject declines the project with a mandatory reason. A rejected project
// may be revised and resubmitted.
func (uc *InvestmentUseCase) Reject(ctx context.Context, publicID types.PublicID, reason string) (*model.InvestmentProject, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpInvestmentReject); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, goerr.Wrap(types.ErrValidation, "rejection reason is required")
	}

	p, err := uc.repo.Investment().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if err := workflow.InvestmentApproval.Step(p.ApprovalStatus, types.ApprovalStatusRejected); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p.ApprovalStatus = types.ApprovalStatusRejected
	p.RejectionReason = reason
	p.RejectedAt = &now
	p.ApprovedAt = nil

	updated, err := uc.repo.Investment().Update(ctx, p)
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, notify.Event{
		Kind:       model.NotificationInvestmentProjectReview,
		Title:      "Projet d'investissement refusé",
		Body:       fmt.Sprintf("Le projet \"%s\" a été refusé: %s", updated.Title, reason),
		Recipients: []int64{updated.CreatedBy},
		Data:       map[string]string{"investment_project_id": string(updated.PublicID)},
	})
	return updated, nil
}

// Resubmit sends a rejected project back to review after revision
func (uc *InvestmentUseCase) Resubmit(ctx context.Context, publicID types.PublicID, input InvestmentInput) (*model.InvestmentProject, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpInvestmentCreate); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	p, err := uc.repo.Investment().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if err := workflow.InvestmentApproval.Step(p.ApprovalStatus, types.ApprovalStatusPending); err != nil {
		return nil, err
	}

	p.Title = input.Title
	p.Description = input.Description
	p.ProjectType = input.ProjectType
	p.Location = input.Location
	p.City = input.City
	p.SurfaceArea = input.SurfaceArea
	p.ExpectedReturn = input.ExpectedReturn
	p.DurationMonths = input.DurationMonths
	p.TotalInvestment = input.TotalInvestment
	p.MinInvestment = input.MinInvestment
	p.ApprovalStatus = types.ApprovalStatusPending
	p.RejectionReason = ""
	p.RejectedAt = nil

	return uc.repo.Investment().Update(ctx, p)
}

// SetStatus drives the operational lifecycle of an approved project
func (uc *InvestmentUseCase) SetStatus(ctx context.Context, publicID types.PublicID, target types.InvestmentStatus) (*model.InvestmentProject, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpInvestmentSetStatus); err != nil {
		return nil, err
	}

	p, err := uc.repo.Investment().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if p.ApprovalStatus != types.ApprovalStatusApproved {
		return nil, goerr.Wrap(types.ErrValidation, "project is not approved",
			goerr.V("project_id", p.ID),
			goerr.V("approval_status", p.ApprovalStatus))
	}
	if err := workflow.InvestmentLifecycle.Step(p.Status, target); err != nil {
		return nil, err
	}

	p.Status = target

	return uc.repo.Investment().Update(ctx, p)
}

// Propose files an investor's offer on an approved, open project
func (uc *InvestmentUseCase) Propose(ctx context.Context, projectPublicID types.PublicID, amount decimal.Decimal, message string) (*model.InvestmentProposal, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpInvestmentPropose); err != nil {
		return nil, err
	}

	p, err := uc.repo.Investment().GetByPublicID(ctx, projectPublicID)
	if err != nil {
		return nil, err
	}
	if p.ApprovalStatus != types.ApprovalStatusApproved {
		return nil, goerr.Wrap(types.ErrValidation, "project is not open to investors",
			goerr.V("project_id", p.ID),
			goerr.V("approval_status", p.ApprovalStatus))
	}
	if p.Status != types.InvestmentStatusOpen {
		return nil, goerr.Wrap(types.ErrValidation, "project is no longer accepting proposals",
			goerr.V("project_id", p.ID),
			goerr.V("status", p.Status))
	}
	if amount.LessThan(p.MinInvestment) {
		return nil, goerr.Wrap(types.ErrValidation, "amount is below the minimum investment",
			goerr.V("amount", amount),
			goerr.V("min_investment", p.MinInvestment))
	}
	if amount.GreaterThan(p.RemainingFunding()) {
		return nil, goerr.Wrap(types.ErrValidation, "amount exceeds the remaining funding",
			goerr.V("amount", amount),
			goerr.V("remaining", p.RemainingFunding()))
	}

	proposal := &model.InvestmentProposal{
		InvestorID: actor.ID,
		ProjectID:  p.ID,
		Amount:     amount,
		Message:    message,
		Status:     types.ProposalStatusPending,
	}

	created, err := uc.repo.Proposal().Create(ctx, proposal)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create proposal")
	}

	uc.notifyAsync(ctx, notify.Event{
		Kind:       model.NotificationInvestmentProposalMade,
		Title:      "Nouvelle proposition d'investissement",
		Body:       fmt.Sprintf("Proposition de %s sur le projet \"%s\"", amount.String(), p.Title),
		Recipients: uc.staffRecipients(ctx),
		Data: map[string]string{
			"investment_project_id": string(p.PublicID),
			"proposal_id":           string(created.PublicID),
		},
	})
	return created, nil
}

// ReviewProposal accepts or rejects a pending proposal. Acceptance advances
// the project's funding counter; the revision check on the project write
// serializes concurrent reviews, so the counter can never overshoot.
func (uc *InvestmentUseCase) ReviewProposal(ctx context.Context, proposalPublicID types.PublicID, accept bool, reason string) (*model.InvestmentProposal, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpProposalReview); err != nil {
		return nil, err
	}
	if !accept && reason == "" {
		return nil, goerr.Wrap(types.ErrValidation, "rejection reason is required")
	}

	proposal, err := uc.repo.Proposal().GetByPublicID(ctx, proposalPublicID)
	if err != nil {
		return nil, err
	}

	target := types.ProposalStatusRejected
	if accept {
		target = types.ProposalStatusAccepted
	}
	if err := workflow.Proposal.Step(proposal.Status, target); err != nil {
		return nil, err
	}
	if proposal.Status == target {
		return proposal, nil
	}

	if accept {
		p, err := uc.repo.Investment().Get(ctx, proposal.ProjectID)
		if err != nil {
			return nil, err
		}

		funded := p.CurrentFunding.Add(proposal.Amount)
		if funded.GreaterThan(p.TotalInvestment) {
			return nil, goerr.Wrap(types.ErrValidation, "acceptance would exceed the funding target",
				goerr.V("amount", proposal.Amount),
				goerr.V("remaining", p.RemainingFunding()))
		}

		p.CurrentFunding = funded
		if funded.Equal(p.TotalInvestment) && p.Status == types.InvestmentStatusOpen {
			p.Status = types.InvestmentStatusInProgress
		}
		if _, err := uc.repo.Investment().Update(ctx, p); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	proposal.Status = target
	proposal.ReviewedBy = actor.ID
	proposal.ReviewedAt = &now
	if !accept {
		proposal.RejectionReason = reason
	}

	updated, err := uc.repo.Proposal().Update(ctx, proposal)
	if err != nil {
		if accept {
			uc.revertFunding(ctx, proposal.ProjectID, proposal.Amount)
		}
		return nil, goerr.Wrap(err, "failed to record proposal decision",
			goerr.V("proposal_id", proposal.ID))
	}

	uc.notify(ctx, notify.Event{
		Kind:       model.NotificationInvestmentProposalMade,
		Title:      "Proposition examinée",
		Body:       fmt.Sprintf("Votre proposition a été %s", proposalDecisionLabel(accept)),
		Recipients: []int64{updated.InvestorID},
		Data:       map[string]string{"proposal_id": string(updated.PublicID)},
	})
	return updated, nil
}

// revertFunding backs an acceptance out of the funding counter when the
// proposal record could not be written, so a retried review does not count
// the same amount twice.
func (uc *InvestmentUseCase) revertFunding(ctx context.Context, projectID int64, amount decimal.Decimal) {
	p, err := uc.repo.Investment().Get(ctx, projectID)
	if err != nil {
		errutil.Handle(ctx, err, "failed to load project for funding rollback")
		return
	}

	p.CurrentFunding = p.CurrentFunding.Sub(amount)
	if p.Status == types.InvestmentStatusInProgress && p.CurrentFunding.LessThan(p.TotalInvestment) {
		p.Status = types.InvestmentStatusOpen
	}
	if _, err := uc.repo.Investment().Update(ctx, p); err != nil {
		errutil.Handle(ctx, err, "failed to roll back funding counter")
	}
}

func proposalDecisionLabel(accept bool) string {
	if accept {
		return "acceptée"
	}
	return "rejetée"
}

// Get returns a project, hiding unapproved projects from outsiders
func (uc *InvestmentUseCase) Get(ctx context.Context, publicID types.PublicID) (*model.InvestmentProject, error) {
	p, err := uc.repo.Investment().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if p.ApprovalStatus == types.ApprovalStatusApproved {
		return p, nil
	}

	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(types.ErrNotFound, "investment project not found", goerr.V("public_id", publicID))
	}
	if p.CreatedBy == actor.ID || actor.IsStaff() {
		return p, nil
	}
	return nil, goerr.Wrap(types.ErrNotFound, "investment project not found", goerr.V("public_id", publicID))
}

// ListOpen returns approved projects still accepting proposals
func (uc *InvestmentUseCase) ListOpen(ctx context.Context) ([]*model.InvestmentProject, error) {
	return uc.repo.Investment().List(ctx, interfaces.InvestmentFilter{
		ApprovalStatus: types.ApprovalStatusApproved,
		Status:         types.InvestmentStatusOpen,
	})
}

// ListPendingReview returns projects awaiting staff approval
func (uc *InvestmentUseCase) ListPendingReview(ctx context.Context) ([]*model.InvestmentProject, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpInvestmentApprove); err != nil {
		return nil, err
	}
	return uc.repo.Investment().List(ctx, interfaces.InvestmentFilter{
		ApprovalStatus: types.ApprovalStatusPending,
	})
}

// ListMyProposals returns the calling investor's proposals
func (uc *InvestmentUseCase) ListMyProposals(ctx context.Context) ([]*model.InvestmentProposal, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpInvestmentPropose); err != nil {
		return nil, err
	}
	return uc.repo.Proposal().ListByInvestor(ctx, actor.ID)
}

// ListProposals returns the proposals on a project, for review
func (uc *InvestmentUseCase) ListProposals(ctx context.Context, projectPublicID types.PublicID) ([]*model.InvestmentProposal, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpProposalReview); err != nil {
		return nil, err
	}

	p, err := uc.repo.Investment().GetByPublicID(ctx, projectPublicID)
	if err != nil {
		return nil, err
	}
	return uc.repo.Proposal().ListByProject(ctx, p.ID)
}
