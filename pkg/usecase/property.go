package usecase

import (
	"context"
	"errors"
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

type PropertyUseCase struct {
	*UseCases
}

// PropertyInput carries the owner-editable fields of a listing
type PropertyInput struct {
	Title           string
	Description     string
	TransactionType string
	PropertyType    string
	Price           decimal.Decimal
	Currency        string
	SurfaceArea     decimal.Decimal
	Bedrooms        int
	Bathrooms       int
	Address         string
	City            string
}

func (in *PropertyInput) validate() error {
	if in.Title == "" {
		return goerr.Wrap(types.ErrValidation, "property title is required")
	}
	if in.City == "" {
		return goerr.Wrap(types.ErrValidation, "property city is required")
	}
	if in.TransactionType != "vente" && in.TransactionType != "location" {
		return goerr.Wrap(types.ErrValidation, "transaction type must be vente or location",
			goerr.V("transaction_type", in.TransactionType))
	}
	if in.Price.IsNegative() || in.Price.IsZero() {
		return goerr.Wrap(types.ErrValidation, "property price must be positive",
			goerr.V("price", in.Price))
	}
	return nil
}

func (in *PropertyInput) apply(p *model.Property) {
	p.Title = in.Title
	p.Description = in.Description
	p.TransactionType = in.TransactionType
	p.PropertyType = in.PropertyType
	p.Price = in.Price
	p.Currency = in.Currency
	p.SurfaceArea = in.SurfaceArea
	p.Bedrooms = in.Bedrooms
	p.Bathrooms = in.Bathrooms
	p.Address = in.Address
	p.City = in.City
}

// Create registers a new listing in draft status, owned by the caller
func (uc *PropertyUseCase) Create(ctx context.Context, input PropertyInput) (*model.Property, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpPropertyCreate); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	p := &model.Property{
		OwnerID: actor.ID,
		Status:  types.PropertyStatusDraft,
	}
	input.apply(p)

	created, err := uc.repo.Property().Create(ctx, p)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create property")
	}
	return created, nil
}

// Update modifies an editable listing. Approved listings are frozen.
func (uc *PropertyUseCase) Update(ctx context.Context, publicID types.PublicID, input PropertyInput) (*model.Property, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpPropertyUpdate); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	p, err := uc.repo.Property().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != actor.ID && actor.Role != types.RoleAdmin {
		return nil, goerr.Wrap(types.ErrForbidden, "only the owner may edit the listing",
			goerr.V("property_id", p.ID))
	}
	if !p.CanBeEdited() {
		return nil, goerr.Wrap(types.ErrValidation, "approved listing can no longer be edited",
			goerr.V("property_id", p.ID),
			goerr.V("status", p.Status))
	}

	input.apply(p)

	updated, err := uc.repo.Property().Update(ctx, p)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Submit moves a draft listing into the review queue. Resubmitting a
// rejected draft clears the previous rejection reason.
func (uc *PropertyUseCase) Submit(ctx context.Context, publicID types.PublicID) (*model.Property, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpPropertyUpdate); err != nil {
		return nil, err
	}

	p, err := uc.repo.Property().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != actor.ID && actor.Role != types.RoleAdmin {
		return nil, goerr.Wrap(types.ErrForbidden, "only the owner may submit the listing",
			goerr.V("property_id", p.ID))
	}
	if err := workflow.Property.Step(p.Status, types.PropertyStatusPending); err != nil {
		return nil, err
	}

	p.Status = types.PropertyStatusPending
	p.RejectionReason = ""

	updated, err := uc.repo.Property().Update(ctx, p)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// AddMedia uploads an attachment and links it to an editable listing. If
// linking fails the stored file is removed again.
func (uc *PropertyUseCase) AddMedia(ctx context.Context, publicID types.PublicID, name, mimeType string, primary bool, content io.Reader) (*model.Property, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpPropertyAddMedia); err != nil {
		return nil, err
	}
	if uc.storage == nil {
		return nil, goerr.New("file storage is not configured")
	}

	p, err := uc.repo.Property().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != actor.ID && actor.Role != types.RoleAdmin {
		return nil, goerr.Wrap(types.ErrForbidden, "only the owner may add media",
			goerr.V("property_id", p.ID))
	}
	if !p.CanBeEdited() {
		return nil, goerr.Wrap(types.ErrValidation, "approved listing can no longer be edited",
			goerr.V("property_id", p.ID))
	}

	path, err := uc.storage.Store(ctx, fmt.Sprintf("properties/%d", p.ID), name, content)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store media file")
	}

	p.Media = append(p.Media, model.MediaRef{
		Path:     path,
		Name:     name,
		MimeType: mimeType,
		Primary:  primary,
	})

	updated, err := uc.repo.Property().Update(ctx, p)
	if err != nil {
		if delErr := uc.storage.Delete(ctx, path); delErr != nil {
			errutil.Handle(ctx, delErr, "failed to remove orphaned media file")
		}
		return nil, err
	}
	return updated, nil
}

// Assign hands a pending listing to a reviewing agent
func (uc *PropertyUseCase) Assign(ctx context.Context, publicID types.PublicID, agentPublicID types.PublicID) (*model.Property, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpPropertyAssign); err != nil {
		return nil, err
	}

	p, err := uc.repo.Property().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if p.Status != types.PropertyStatusPending {
		return nil, goerr.Wrap(types.ErrValidation, "only pending listings can be assigned",
			goerr.V("property_id", p.ID),
			goerr.V("status", p.Status))
	}

	agent, err := uc.resolveAgent(ctx, agentPublicID, types.CategoryImmobilier)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p.AgentID = agent.ID
	p.AssignedAt = &now

	updated, err := uc.repo.Property().Update(ctx, p)
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, notify.Event{
		Kind:       model.NotificationPropertyAssigned,
		Title:      "Annonce à valider",
		Body:       fmt.Sprintf("L'annonce \"%s\" vous a été assignée pour validation", updated.Title),
		Recipients: []int64{agent.ID},
		Data:       map[string]string{"property_id": string(updated.PublicID)},
	})
	return updated, nil
}

// Validate approves a pending listing and publishes it
func (uc *PropertyUseCase) Validate(ctx context.Context, publicID types.PublicID) (*model.Property, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpPropertyValidate); err != nil {
		return nil, err
	}

	p, err := uc.repo.Property().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if p.AgentID != actor.ID {
		return nil, goerr.Wrap(types.ErrForbidden, "listing is assigned to another agent",
			goerr.V("property_id", p.ID))
	}
	if err := workflow.Property.Step(p.Status, types.PropertyStatusApproved); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p.Status = types.PropertyStatusApproved
	p.RejectionReason = ""
	p.ValidatedAt = &now
	p.ValidatedBy = actor.ID
	p.PublishedAt = &now

	updated, err := uc.repo.Property().Update(ctx, p)
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, notify.Event{
		Kind:       model.NotificationPropertyValidated,
		Title:      "Annonce validée",
		Body:       fmt.Sprintf("Votre annonce \"%s\" a été validée et publiée", updated.Title),
		Recipients: []int64{updated.OwnerID},
		Data:       map[string]string{"property_id": string(updated.PublicID), "status": string(updated.Status)},
	})
	return updated, nil
}

// Reject sends a pending listing back to draft with a mandatory reason
func (uc *PropertyUseCase) Reject(ctx context.Context, publicID types.PublicID, reason string) (*model.Property, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpPropertyValidate); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, goerr.Wrap(types.ErrValidation, "rejection reason is required")
	}

	p, err := uc.repo.Property().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if p.AgentID != actor.ID {
		return nil, goerr.Wrap(types.ErrForbidden, "listing is assigned to another agent",
			goerr.V("property_id", p.ID))
	}
	if err := workflow.Property.Step(p.Status, types.PropertyStatusDraft); err != nil {
		return nil, err
	}

	p.Status = types.PropertyStatusDraft
	p.RejectionReason = reason
	p.ValidatedAt = nil
	p.ValidatedBy = 0
	p.PublishedAt = nil

	updated, err := uc.repo.Property().Update(ctx, p)
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, notify.Event{
		Kind:       model.NotificationPropertyValidated,
		Title:      "Annonce refusée",
		Body:       fmt.Sprintf("Votre annonce \"%s\" a été refusée: %s", updated.Title, reason),
		Recipients: []int64{updated.OwnerID},
		Data:       map[string]string{"property_id": string(updated.PublicID), "status": "rejected"},
	})
	return updated, nil
}

// Feature flags a listing for the landing page
func (uc *PropertyUseCase) Feature(ctx context.Context, publicID types.PublicID, featured bool) (*model.Property, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpPropertyFeature); err != nil {
		return nil, err
	}

	p, err := uc.repo.Property().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	p.Featured = featured

	updated, err := uc.repo.Property().Update(ctx, p)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an editable listing and its stored media
func (uc *PropertyUseCase) Delete(ctx context.Context, publicID types.PublicID) error {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpPropertyDelete); err != nil {
		return err
	}

	p, err := uc.repo.Property().GetByPublicID(ctx, publicID)
	if err != nil {
		return err
	}
	if p.OwnerID != actor.ID && actor.Role != types.RoleAdmin {
		return goerr.Wrap(types.ErrForbidden, "only the owner may delete the listing",
			goerr.V("property_id", p.ID))
	}
	if !p.CanBeEdited() {
		return goerr.Wrap(types.ErrValidation, "approved listing can no longer be deleted",
			goerr.V("property_id", p.ID))
	}

	if err := uc.repo.Property().Delete(ctx, p.ID); err != nil {
		return err
	}

	if uc.storage != nil {
		for _, m := range p.Media {
			if err := uc.storage.Delete(ctx, m.Path); err != nil {
				errutil.Handle(ctx, err, "failed to delete media file")
			}
		}
	}
	return nil
}

// Get returns a listing. Unpublished listings are only visible to the
// owner, the assigned agent and staff; everyone else gets not-found so
// drafts never leak.
func (uc *PropertyUseCase) Get(ctx context.Context, publicID types.PublicID) (*model.Property, error) {
	p, err := uc.repo.Property().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if p.Status == types.PropertyStatusApproved {
		uc.countView(ctx, p)
		return p, nil
	}

	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(types.ErrNotFound, "property not found", goerr.V("public_id", publicID))
	}
	if p.OwnerID == actor.ID || p.AgentID == actor.ID || actor.IsStaff() {
		return p, nil
	}
	return nil, goerr.Wrap(types.ErrNotFound, "property not found", goerr.V("public_id", publicID))
}

// countView bumps the view counter on a published listing. Best effort: a
// lost increment under concurrent views is acceptable.
func (uc *PropertyUseCase) countView(ctx context.Context, p *model.Property) {
	fresh := *p
	fresh.ViewsCount++
	if _, err := uc.repo.Property().Update(ctx, &fresh); err != nil {
		if errors.Is(err, types.ErrConflict) {
			return
		}
		errutil.Handle(ctx, err, "failed to count listing view")
	} else {
		p.ViewsCount = fresh.ViewsCount
	}
}

// ListPublic returns published listings only
func (uc *PropertyUseCase) ListPublic(ctx context.Context, filter interfaces.PropertyFilter) ([]*model.Property, error) {
	filter.Status = types.PropertyStatusApproved
	filter.OwnerID = 0
	filter.AgentID = 0
	return uc.repo.Property().List(ctx, filter)
}

// ListMine returns the caller's own listings in any status
func (uc *PropertyUseCase) ListMine(ctx context.Context) ([]*model.Property, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(types.ErrForbidden, "authentication required")
	}
	return uc.repo.Property().List(ctx, interfaces.PropertyFilter{OwnerID: actor.ID})
}

// ListAssigned returns listings awaiting review by the calling agent
func (uc *PropertyUseCase) ListAssigned(ctx context.Context) ([]*model.Property, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpPropertyValidate); err != nil {
		return nil, err
	}
	return uc.repo.Property().List(ctx, interfaces.PropertyFilter{
		AgentID: actor.ID,
		Status:  types.PropertyStatusPending,
	})
}

// ListAll returns every listing, for the back office
func (uc *PropertyUseCase) ListAll(ctx context.Context, filter interfaces.PropertyFilter) ([]*model.Property, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpPropertyListAll); err != nil {
		return nil, err
	}
	return uc.repo.Property().List(ctx, filter)
}
