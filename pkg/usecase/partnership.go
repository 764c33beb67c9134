package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/teranga-immo/teranga/pkg/authz"
	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/model/auth"
	"github.com/teranga-immo/teranga/pkg/domain/types"
	"github.com/teranga-immo/teranga/pkg/service/notify"
	"github.com/teranga-immo/teranga/pkg/utils/errutil"
	"github.com/teranga-immo/teranga/pkg/workflow"
)

type PartnershipUseCase struct {
	*UseCases
}

// PartnershipInput carries a company's partnership application
type PartnershipInput struct {
	CompanyName  string
	ContactEmail string
	ContactPhone string
	Message      string
}

func (in *PartnershipInput) validate() error {
	if in.CompanyName == "" {
		return goerr.Wrap(types.ErrValidation, "company name is required")
	}
	if in.ContactEmail == "" {
		return goerr.Wrap(types.ErrValidation, "contact email is required")
	}
	return nil
}

// Apply files a partnership application. Inactive company accounts may
// apply; a pending application blocks a second one.
func (uc *PartnershipUseCase) Apply(ctx context.Context, input PartnershipInput) (*model.Partnership, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpPartnershipApply); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	latest, err := uc.repo.Partnership().GetLatestByOwner(ctx, actor.ID)
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		return nil, err
	}
	if latest != nil && latest.Status == types.PartnershipStatusPending {
		return nil, goerr.Wrap(types.ErrValidation, "a pending application already exists",
			goerr.V("application_id", latest.PublicID))
	}

	p := &model.Partnership{
		OwnerID:      actor.ID,
		CompanyName:  input.CompanyName,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Message:      input.Message,
		Status:       types.PartnershipStatusPending,
	}

	created, err := uc.repo.Partnership().Create(ctx, p)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create partnership application")
	}
	return created, nil
}

// Update revises a still-pending application
func (uc *PartnershipUseCase) Update(ctx context.Context, publicID types.PublicID, input PartnershipInput) (*model.Partnership, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpPartnershipUpdate); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	p, err := uc.repo.Partnership().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != actor.ID {
		return nil, goerr.Wrap(types.ErrForbidden, "not the applicant", goerr.V("application_id", p.ID))
	}
	if p.Status != types.PartnershipStatusPending {
		return nil, goerr.Wrap(types.ErrValidation, "application is already reviewed",
			goerr.V("status", p.Status))
	}

	p.CompanyName = input.CompanyName
	p.ContactEmail = input.ContactEmail
	p.ContactPhone = input.ContactPhone
	p.Message = input.Message

	return uc.repo.Partnership().Update(ctx, p)
}

// AddDocument uploads a supporting document to a still-pending application.
// If linking fails the stored file is removed again.
func (uc *PartnershipUseCase) AddDocument(ctx context.Context, publicID types.PublicID, name string, content io.Reader) (*model.Partnership, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpPartnershipUpdate); err != nil {
		return nil, err
	}
	if uc.storage == nil {
		return nil, goerr.New("file storage is not configured")
	}

	p, err := uc.repo.Partnership().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != actor.ID {
		return nil, goerr.Wrap(types.ErrForbidden, "not the applicant", goerr.V("application_id", p.ID))
	}
	if p.Status != types.PartnershipStatusPending {
		return nil, goerr.Wrap(types.ErrValidation, "application is already reviewed",
			goerr.V("status", p.Status))
	}

	path, err := uc.storage.Store(ctx, fmt.Sprintf("partnerships/%d", p.ID), name, content)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store document")
	}

	p.DocumentPaths = append(p.DocumentPaths, path)

	updated, err := uc.repo.Partnership().Update(ctx, p)
	if err != nil {
		if delErr := uc.storage.Delete(ctx, path); delErr != nil {
			errutil.Handle(ctx, delErr, "failed to remove orphaned document")
		}
		return nil, err
	}
	return updated, nil
}

// Approve accepts the application and reactivates the applicant's account
func (uc *PartnershipUseCase) Approve(ctx context.Context, publicID types.PublicID) (*model.Partnership, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpPartnershipApprove); err != nil {
		return nil, err
	}

	p, err := uc.repo.Partnership().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if err := workflow.Partnership.Step(p.Status, types.PartnershipStatusApproved); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p.Status = types.PartnershipStatusApproved
	p.ApprovedBy = actor.ID
	p.ApprovedAt = &now

	updated, err := uc.repo.Partnership().Update(ctx, p)
	if err != nil {
		return nil, err
	}

	applicant, err := uc.repo.Actor().Get(ctx, updated.OwnerID)
	if err != nil {
		return nil, err
	}
	if !applicant.IsActive {
		applicant.IsActive = true
		if _, err := uc.repo.Actor().Update(ctx, applicant); err != nil {
			return nil, goerr.Wrap(err, "failed to activate partner account",
				goerr.V("actor_id", applicant.ID))
		}
	}

	uc.notify(ctx, notify.Event{
		Kind:       model.NotificationPartnershipReviewed,
		Title:      "Partenariat approuvé",
		Body:       fmt.Sprintf("La candidature de %s a été approuvée", updated.CompanyName),
		Recipients: []int64{updated.OwnerID},
		Data:       map[string]string{"partnership_id": string(updated.PublicID)},
	})
	return updated, nil
}

// Reject declines the application with a mandatory reason
func (uc *PartnershipUseCase) Reject(ctx context.Context, publicID types.PublicID, reason string) (*model.Partnership, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpPartnershipReject); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, goerr.Wrap(types.ErrValidation, "rejection reason is required")
	}

	p, err := uc.repo.Partnership().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if err := workflow.Partnership.Step(p.Status, types.PartnershipStatusRejected); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p.Status = types.PartnershipStatusRejected
	p.RejectionReason = reason
	p.RejectedAt = &now

	updated, err := uc.repo.Partnership().Update(ctx, p)
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, notify.Event{
		Kind:       model.NotificationPartnershipReviewed,
		Title:      "Partenariat refusé",
		Body:       fmt.Sprintf("La candidature de %s a été refusée: %s", updated.CompanyName, reason),
		Recipients: []int64{updated.OwnerID},
		Data:       map[string]string{"partnership_id": string(updated.PublicID)},
	})
	return updated, nil
}

// GetMine returns the calling company's latest application
func (uc *PartnershipUseCase) GetMine(ctx context.Context) (*model.Partnership, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpPartnershipApply); err != nil {
		return nil, err
	}
	return uc.repo.Partnership().GetLatestByOwner(ctx, actor.ID)
}

// ListByStatus returns applications in a given state, for review
func (uc *PartnershipUseCase) ListByStatus(ctx context.Context, status types.PartnershipStatus) ([]*model.Partnership, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpPartnershipReview); err != nil {
		return nil, err
	}
	return uc.repo.Partnership().ListByStatus(ctx, status)
}
