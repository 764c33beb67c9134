package usecase

import (
	"context"
	"fmt"
	"io"
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

type ConstructionUseCase struct {
	*UseCases
}

// ConstructionInput carries the fields of a construction request
type ConstructionInput struct {
	Title       string
	Description string
	ProjectType string
	BudgetMin   decimal.Decimal
	BudgetMax   decimal.Decimal
	SurfaceArea decimal.Decimal
	Location    string
	City        string
}

func (in *ConstructionInput) validate() error {
	if in.Title == "" {
		return goerr.Wrap(types.ErrValidation, "project title is required")
	}
	if in.BudgetMin.IsNegative() || in.BudgetMax.IsNegative() {
		return goerr.Wrap(types.ErrValidation, "budget must not be negative")
	}
	if in.BudgetMax.IsPositive() && in.BudgetMin.GreaterThan(in.BudgetMax) {
		return goerr.Wrap(types.ErrValidation, "minimum budget exceeds maximum",
			goerr.V("budget_min", in.BudgetMin),
			goerr.V("budget_max", in.BudgetMax))
	}
	return nil
}

// Submit files a new construction request and notifies the back office
func (uc *ConstructionUseCase) Submit(ctx context.Context, input ConstructionInput) (*model.ConstructionProject, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpConstructionSubmit); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	p := &model.ConstructionProject{
		OwnerID:     actor.ID,
		Title:       input.Title,
		Description: input.Description,
		ProjectType: input.ProjectType,
		BudgetMin:   input.BudgetMin,
		BudgetMax:   input.BudgetMax,
		SurfaceArea: input.SurfaceArea,
		Location:    input.Location,
		City:        input.City,
		Status:      types.ConstructionStatusSubmitted,
	}

	created, err := uc.repo.Construction().Create(ctx, p)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create construction project")
	}

	uc.notifyAsync(ctx, notify.Event{
		Kind:       model.NotificationClientRequestCreated,
		Title:      "Nouveau projet de construction",
		Body:       fmt.Sprintf("Projet \"%s\" soumis pour étude", created.Title),
		Recipients: uc.staffRecipients(ctx),
		Data:       map[string]string{"construction_project_id": string(created.PublicID)},
	})
	return created, nil
}

// AddDocument uploads a supporting document. The stored file is removed
// again if the project record cannot be updated.
func (uc *ConstructionUseCase) AddDocument(ctx context.Context, publicID types.PublicID, name string, content io.Reader) (*model.ConstructionProject, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpConstructionSubmit); err != nil {
		return nil, err
	}
	if uc.storage == nil {
		return nil, goerr.New("file storage is not configured")
	}

	p, err := uc.repo.Construction().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != actor.ID {
		return nil, goerr.Wrap(types.ErrForbidden, "only the owner may add documents",
			goerr.V("project_id", p.ID))
	}

	path, err := uc.storage.Store(ctx, fmt.Sprintf("constructions/%d", p.ID), name, content)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store document")
	}

	p.DocumentPaths = append(p.DocumentPaths, path)

	updated, err := uc.repo.Construction().Update(ctx, p)
	if err != nil {
		if delErr := uc.storage.Delete(ctx, path); delErr != nil {
			errutil.Handle(ctx, delErr, "failed to remove orphaned document")
		}
		return nil, err
	}
	return updated, nil
}

// Assign hands a submitted project to a construction agent for study
func (uc *ConstructionUseCase) Assign(ctx context.Context, publicID types.PublicID, agentPublicID types.PublicID) (*model.ConstructionProject, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpConstructionAssign); err != nil {
		return nil, err
	}

	p, err := uc.repo.Construction().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if err := workflow.Construction.Step(p.Status, types.ConstructionStatusInStudy); err != nil {
		return nil, err
	}

	agent, err := uc.resolveAgent(ctx, agentPublicID, types.CategoryConstructeur)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p.AgentID = agent.ID
	p.AssignedAt = &now
	p.Status = types.ConstructionStatusInStudy

	updated, err := uc.repo.Construction().Update(ctx, p)
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, notify.Event{
		Kind:       model.NotificationClientRequestAssigned,
		Title:      "Projet de construction à étudier",
		Body:       fmt.Sprintf("Le projet \"%s\" vous a été assigné", updated.Title),
		Recipients: []int64{agent.ID},
		Data:       map[string]string{"construction_project_id": string(updated.PublicID)},
	})
	return updated, nil
}

// CreateQuote issues a priced offer on a project under study and moves it
// to quoted. The quote is withdrawn again if the project transition fails.
func (uc *ConstructionUseCase) CreateQuote(ctx context.Context, publicID types.PublicID, amount decimal.Decimal, currency string, validityDays int, notes string) (*model.ConstructionQuote, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpConstructionQuote); err != nil {
		return nil, err
	}
	if amount.IsNegative() || amount.IsZero() {
		return nil, goerr.Wrap(types.ErrValidation, "quote amount must be positive",
			goerr.V("amount", amount))
	}

	p, err := uc.repo.Construction().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if p.AgentID != actor.ID {
		return nil, goerr.Wrap(types.ErrForbidden, "project is assigned to another agent",
			goerr.V("project_id", p.ID))
	}
	if err := workflow.Construction.Step(p.Status, types.ConstructionStatusQuoted); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	quote := &model.ConstructionQuote{
		ProjectID:    p.ID,
		AgentID:      actor.ID,
		QuoteNumber:  model.NewQuoteNumber(now),
		TotalAmount:  amount,
		Currency:     currency,
		ValidityDays: validityDays,
		Notes:        notes,
		Status:       types.QuoteStatusSent,
		SentAt:       &now,
	}

	created, err := uc.repo.Quote().Create(ctx, quote)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create quote")
	}

	p.Status = types.ConstructionStatusQuoted
	p.QuotedAt = &now
	if _, err := uc.repo.Construction().Update(ctx, p); err != nil {
		created.Status = types.QuoteStatusDeclined
		if _, compErr := uc.repo.Quote().Update(ctx, created); compErr != nil {
			errutil.Handle(ctx, compErr, "failed to withdraw quote after project update failure")
		}
		return nil, goerr.Wrap(err, "failed to move project to quoted", goerr.V("quote_id", created.ID))
	}

	recipients := []int64{p.OwnerID}
	for _, id := range uc.staffRecipients(ctx) {
		if id != p.OwnerID {
			recipients = append(recipients, id)
		}
	}

	body := fmt.Sprintf("Un devis de %s %s (%s) a été établi pour le projet \"%s\"",
		amount.String(), currency, created.QuoteNumber, p.Title)
	for _, id := range recipients {
		if id == actor.ID {
			continue
		}
		if _, err := uc.repo.Message().Create(ctx, &model.Message{
			SenderID:    actor.ID,
			RecipientID: id,
			Subject:     "Devis " + created.QuoteNumber,
			Body:        body,
		}); err != nil {
			errutil.Handle(ctx, err, "failed to record quote message")
		}
	}

	uc.notify(ctx, notify.Event{
		Kind:       model.NotificationConstructionQuoteSent,
		Title:      "Devis reçu",
		Body:       body,
		Recipients: recipients,
		Data: map[string]string{
			"construction_project_id": string(p.PublicID),
			"quote_number":            created.QuoteNumber,
		},
	})
	return created, nil
}

// RespondToQuote records the owner's decision on a quote. Acceptance moves
// the project to approved, refusal to rejected with the given reason.
func (uc *ConstructionUseCase) RespondToQuote(ctx context.Context, quotePublicID types.PublicID, accept bool, reason string) (*model.ConstructionProject, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpConstructionRespond); err != nil {
		return nil, err
	}
	if !accept && reason == "" {
		return nil, goerr.Wrap(types.ErrValidation, "rejection reason is required")
	}

	quote, err := uc.repo.Quote().GetByPublicID(ctx, quotePublicID)
	if err != nil {
		return nil, err
	}

	p, err := uc.repo.Construction().Get(ctx, quote.ProjectID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != actor.ID {
		return nil, goerr.Wrap(types.ErrForbidden, "only the project owner may respond to the quote",
			goerr.V("quote_id", quote.ID))
	}
	if err := workflow.Quote.Step(quote.Status, quoteDecision(accept)); err != nil {
		return nil, err
	}

	target := types.ConstructionStatusApproved
	if !accept {
		target = types.ConstructionStatusRejected
	}
	if err := workflow.Construction.Step(p.Status, target); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	quote.Status = quoteDecision(accept)
	quote.RespondedAt = &now
	if _, err := uc.repo.Quote().Update(ctx, quote); err != nil {
		return nil, err
	}

	p.Status = target
	if accept {
		p.ApprovedAt = &now
		p.RejectionReason = ""
	} else {
		p.RejectedAt = &now
		p.RejectionReason = reason
	}

	updated, err := uc.repo.Construction().Update(ctx, p)
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, notify.Event{
		Kind:       model.NotificationConstructionQuoteSent,
		Title:      "Réponse au devis",
		Body:       fmt.Sprintf("Le devis %s a été %s", quote.QuoteNumber, quoteDecisionLabel(accept)),
		Recipients: []int64{quote.AgentID},
		Data:       map[string]string{"construction_project_id": string(updated.PublicID)},
	})
	return updated, nil
}

func quoteDecision(accept bool) types.QuoteStatus {
	if accept {
		return types.QuoteStatusAccepted
	}
	return types.QuoteStatusDeclined
}

func quoteDecisionLabel(accept bool) string {
	if accept {
		return "accepté"
	}
	return "refusé"
}

// Approve moves a quoted project to approved on the owner's behalf
func (uc *ConstructionUseCase) Approve(ctx context.Context, publicID types.PublicID) (*model.ConstructionProject, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpConstructionApprove); err != nil {
		return nil, err
	}

	p, err := uc.repo.Construction().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if err := workflow.Construction.Step(p.Status, types.ConstructionStatusApproved); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p.Status = types.ConstructionStatusApproved
	p.ApprovedAt = &now
	p.RejectionReason = ""

	return uc.repo.Construction().Update(ctx, p)
}

// Reject declines a quoted project with a mandatory reason
func (uc *ConstructionUseCase) Reject(ctx context.Context, publicID types.PublicID, reason string) (*model.ConstructionProject, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpConstructionReject); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, goerr.Wrap(types.ErrValidation, "rejection reason is required")
	}

	p, err := uc.repo.Construction().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if err := workflow.Construction.Step(p.Status, types.ConstructionStatusRejected); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p.Status = types.ConstructionStatusRejected
	p.RejectedAt = &now
	p.RejectionReason = reason

	return uc.repo.Construction().Update(ctx, p)
}

// Start marks an approved project as under construction
func (uc *ConstructionUseCase) Start(ctx context.Context, publicID types.PublicID) (*model.ConstructionProject, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpConstructionStart); err != nil {
		return nil, err
	}

	p, err := uc.repo.Construction().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if err := workflow.Construction.Step(p.Status, types.ConstructionStatusInProgress); err != nil {
		return nil, err
	}

	p.Status = types.ConstructionStatusInProgress

	return uc.repo.Construction().Update(ctx, p)
}

// Complete closes out a project under construction
func (uc *ConstructionUseCase) Complete(ctx context.Context, publicID types.PublicID) (*model.ConstructionProject, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpConstructionComplete); err != nil {
		return nil, err
	}

	p, err := uc.repo.Construction().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if err := workflow.Construction.Step(p.Status, types.ConstructionStatusCompleted); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p.Status = types.ConstructionStatusCompleted
	p.CompletedAt = &now

	return uc.repo.Construction().Update(ctx, p)
}

// Publish toggles the public showcase flag, independent of workflow status
func (uc *ConstructionUseCase) Publish(ctx context.Context, publicID types.PublicID, publish bool) (*model.ConstructionProject, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpConstructionPublish); err != nil {
		return nil, err
	}

	p, err := uc.repo.Construction().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	p.IsPublication = publish

	return uc.repo.Construction().Update(ctx, p)
}

// Get returns a project, hiding unpublished projects from outsiders
func (uc *ConstructionUseCase) Get(ctx context.Context, publicID types.PublicID) (*model.ConstructionProject, error) {
	p, err := uc.repo.Construction().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if p.IsPublication {
		return p, nil
	}

	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(types.ErrNotFound, "construction project not found", goerr.V("public_id", publicID))
	}
	if p.OwnerID == actor.ID || p.AgentID == actor.ID || actor.IsStaff() {
		return p, nil
	}
	return nil, goerr.Wrap(types.ErrNotFound, "construction project not found", goerr.V("public_id", publicID))
}

// ListPublished returns the public showcase
func (uc *ConstructionUseCase) ListPublished(ctx context.Context) ([]*model.ConstructionProject, error) {
	return uc.repo.Construction().List(ctx, interfaces.ConstructionFilter{IsPublication: true})
}

// ListMine returns the caller's own projects
func (uc *ConstructionUseCase) ListMine(ctx context.Context) ([]*model.ConstructionProject, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(types.ErrForbidden, "authentication required")
	}
	return uc.repo.Construction().List(ctx, interfaces.ConstructionFilter{OwnerID: actor.ID})
}

// ListAssigned returns projects assigned to the calling agent
func (uc *ConstructionUseCase) ListAssigned(ctx context.Context) ([]*model.ConstructionProject, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpConstructionQuote); err != nil {
		return nil, err
	}
	return uc.repo.Construction().List(ctx, interfaces.ConstructionFilter{AgentID: actor.ID})
}

// ListAll returns every project for the back office
func (uc *ConstructionUseCase) ListAll(ctx context.Context, filter interfaces.ConstructionFilter) ([]*model.ConstructionProject, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpConstructionAssign); err != nil {
		return nil, err
	}
	return uc.repo.Construction().List(ctx, filter)
}

// ListQuotes returns the quotes on a project, restricted to its
// participants and staff.
func (uc *ConstructionUseCase) ListQuotes(ctx context.Context, publicID types.PublicID) ([]*model.ConstructionQuote, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(types.ErrForbidden, "authentication required")
	}

	p, err := uc.repo.Construction().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != actor.ID && p.AgentID != actor.ID && !actor.IsStaff() {
		return nil, goerr.Wrap(types.ErrForbidden, "not a participant of this project",
			goerr.V("project_id", p.ID))
	}

	return uc.repo.Quote().ListByProject(ctx, p.ID)
}

// ListMyQuotes returns the quotes issued by the calling agent
func (uc *ConstructionUseCase) ListMyQuotes(ctx context.Context) ([]*model.ConstructionQuote, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpConstructionQuote); err != nil {
		return nil, err
	}
	return uc.repo.Quote().ListByAgent(ctx, actor.ID)
}
