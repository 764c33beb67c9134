package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/shopspring/decimal"

	"github.com/teranga-immo/teranga/pkg/domain/interfaces"
	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/types"
	"github.com/teranga-immo/teranga/pkg/service/storage"
	"github.com/teranga-immo/teranga/pkg/usecase"
)

func validPropertyInput() usecase.PropertyInput {
	return usecase.PropertyInput{
		Title:           "Villa à Ngor",
		TransactionType: "vente",
		PropertyType:    "villa",
		Price:           decimal.NewFromInt(85_000_000),
		Currency:        "XOF",
		City:            "Dakar",
	}
}

func TestPropertyLifecycle(t *testing.T) {
	uc, repo := setupUseCases(t)
	owner := createActor(t, repo, types.RoleProprietaire, types.AgentTypeAny)
	manager := createActor(t, repo, types.RoleGestionnaire, types.AgentTypeAny)
	agent := createActor(t, repo, types.RoleAgent, types.AgentType(types.CategoryImmobilier))

	p, err := uc.Property.Create(asActor(owner), validPropertyInput())
	gt.NoError(t, err).Required()
	gt.Value(t, p.Status).Equal(types.PropertyStatusDraft)
	gt.Value(t, p.OwnerID).Equal(owner.ID)

	p, err = uc.Property.Submit(asActor(owner), p.PublicID)
	gt.NoError(t, err).Required()
	gt.Value(t, p.Status).Equal(types.PropertyStatusPending)

	p, err = uc.Property.Assign(asActor(manager), p.PublicID, agent.PublicID)
	gt.NoError(t, err).Required()
	gt.Value(t, p.AgentID).Equal(agent.ID)

	n := lastNotification(t, repo, agent.ID)
	gt.Value(t, n.Kind).Equal(model.NotificationPropertyAssigned)

	p, err = uc.Property.Validate(asActor(agent), p.PublicID)
	gt.NoError(t, err).Required()
	gt.Value(t, p.Status).Equal(types.PropertyStatusApproved)
	gt.Value(t, p.ValidatedBy).Equal(agent.ID)
	gt.Bool(t, p.PublishedAt != nil).True()

	n = lastNotification(t, repo, owner.ID)
	gt.Value(t, n.Kind).Equal(model.NotificationPropertyValidated)
}

func TestPropertyViewCounting(t *testing.T) {
	uc, repo := setupUseCases(t)
	owner := createActor(t, repo, types.RoleProprietaire, types.AgentTypeAny)
	manager := createActor(t, repo, types.RoleGestionnaire, types.AgentTypeAny)
	agent := createActor(t, repo, types.RoleAgent, types.AgentType(types.CategoryImmobilier))

	p, err := uc.Property.Create(asActor(owner), validPropertyInput())
	gt.NoError(t, err).Required()
	p, err = uc.Property.Submit(asActor(owner), p.PublicID)
	gt.NoError(t, err).Required()
	p, err = uc.Property.Assign(asActor(manager), p.PublicID, agent.PublicID)
	gt.NoError(t, err).Required()
	p, err = uc.Property.Validate(asActor(agent), p.PublicID)
	gt.NoError(t, err).Required()

	// anonymous views of a published listing bump the counter
	p, err = uc.Property.Get(context.Background(), p.PublicID)
	gt.NoError(t, err).Required()
	gt.Value(t, p.ViewsCount).Equal(int64(1))

	p, err = uc.Property.Get(context.Background(), p.PublicID)
	gt.NoError(t, err).Required()
	gt.Value(t, p.ViewsCount).Equal(int64(2))
}

func TestPropertyRejectRequiresReason(t *testing.T) {
	uc, repo := setupUseCases(t)
	owner := createActor(t, repo, types.RoleProprietaire, types.AgentTypeAny)
	manager := createActor(t, repo, types.RoleGestionnaire, types.AgentTypeAny)
	agent := createActor(t, repo, types.RoleAgent, types.AgentTypeAny)

	p, err := uc.Property.Create(asActor(owner), validPropertyInput())
	gt.NoError(t, err).Required()
	p, err = uc.Property.Submit(asActor(owner), p.PublicID)
	gt.NoError(t, err).Required()
	p, err = uc.Property.Assign(asActor(manager), p.PublicID, agent.PublicID)
	gt.NoError(t, err).Required()

	_, err = uc.Property.Reject(asActor(agent), p.PublicID, "")
	gt.Bool(t, errors.Is(err, types.ErrValidation)).True()

	p, err = uc.Property.Reject(asActor(agent), p.PublicID, "photos manquantes")
	gt.NoError(t, err).Required()
	gt.Value(t, p.Status).Equal(types.PropertyStatusDraft)
	gt.Value(t, p.RejectionReason).Equal("photos manquantes")

	// resubmission clears the previous verdict
	p, err = uc.Property.Submit(asActor(owner), p.PublicID)
	gt.NoError(t, err).Required()
	gt.Value(t, p.RejectionReason).Equal("")
}

func TestPropertyValidateOnlyAssignedAgent(t *testing.T) {
	uc, repo := setupUseCases(t)
	owner := createActor(t, repo, types.RoleProprietaire, types.AgentTypeAny)
	manager := createActor(t, repo, types.RoleGestionnaire, types.AgentTypeAny)
	assigned := createActor(t, repo, types.RoleAgent, types.AgentTypeAny)
	other := createActor(t, repo, types.RoleAgent, types.AgentTypeAny)

	p, err := uc.Property.Create(asActor(owner), validPropertyInput())
	gt.NoError(t, err).Required()
	p, err = uc.Property.Submit(asActor(owner), p.PublicID)
	gt.NoError(t, err).Required()
	p, err = uc.Property.Assign(asActor(manager), p.PublicID, assigned.PublicID)
	gt.NoError(t, err).Required()

	_, err = uc.Property.Validate(asActor(other), p.PublicID)
	gt.Bool(t, errors.Is(err, types.ErrForbidden)).True()
}

func TestPropertyForbiddenBeforeNotFound(t *testing.T) {
	uc, repo := setupUseCases(t)
	visitor := createActor(t, repo, types.RoleVisiteur, types.AgentTypeAny)

	// the role check fires before any lookup, so a caller without the
	// right role cannot probe for existence
	_, err := uc.Property.Validate(asActor(visitor), types.PublicID("no-such-listing"))
	gt.Bool(t, errors.Is(err, types.ErrForbidden)).True()
	gt.Bool(t, errors.Is(err, types.ErrNotFound)).False()
}

func TestPropertyDraftHiddenFromOutsiders(t *testing.T) {
	uc, repo := setupUseCases(t)
	owner := createActor(t, repo, types.RoleProprietaire, types.AgentTypeAny)
	stranger := createActor(t, repo, types.RoleVisiteur, types.AgentTypeAny)

	p, err := uc.Property.Create(asActor(owner), validPropertyInput())
	gt.NoError(t, err).Required()

	_, err = uc.Property.Get(asActor(stranger), p.PublicID)
	gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()

	got, err := uc.Property.Get(asActor(owner), p.PublicID)
	gt.NoError(t, err).Required()
	gt.Value(t, got.ID).Equal(p.ID)
}

func TestPropertyAssignSpecializationMismatch(t *testing.T) {
	uc, repo := setupUseCases(t)
	owner := createActor(t, repo, types.RoleProprietaire, types.AgentTypeAny)
	manager := createActor(t, repo, types.RoleGestionnaire, types.AgentTypeAny)
	builder := createActor(t, repo, types.RoleAgent, types.AgentType(types.CategoryConstructeur))

	p, err := uc.Property.Create(asActor(owner), validPropertyInput())
	gt.NoError(t, err).Required()
	p, err = uc.Property.Submit(asActor(owner), p.PublicID)
	gt.NoError(t, err).Required()

	_, err = uc.Property.Assign(asActor(manager), p.PublicID, builder.PublicID)
	gt.Bool(t, errors.Is(err, types.ErrCapabilityMismatch)).True()
}

func TestPropertyAddMediaAndDelete(t *testing.T) {
	repo := setupRepo(t)
	store, err := storage.NewLocal(t.TempDir())
	gt.NoError(t, err).Required()
	uc := usecase.New(repo, usecase.WithFileStorage(store))
	owner := createActor(t, repo, types.RoleProprietaire, types.AgentTypeAny)

	p, err := uc.Property.Create(asActor(owner), validPropertyInput())
	gt.NoError(t, err).Required()

	p, err = uc.Property.AddMedia(asActor(owner), p.PublicID, "facade.jpg", "image/jpeg", true,
		bytes.NewReader([]byte("jpeg-bytes")))
	gt.NoError(t, err).Required()
	gt.Array(t, p.Media).Length(1)
	gt.Bool(t, p.Media[0].Primary).True()

	gt.NoError(t, uc.Property.Delete(asActor(owner), p.PublicID))

	_, err = uc.Property.Get(asActor(owner), p.PublicID)
	gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
}

func TestPropertyListPublicOnlyApproved(t *testing.T) {
	uc, repo := setupUseCases(t)
	owner := createActor(t, repo, types.RoleProprietaire, types.AgentTypeAny)

	_, err := uc.Property.Create(asActor(owner), validPropertyInput())
	gt.NoError(t, err).Required()

	listed, err := uc.Property.ListPublic(asActor(owner), interfaces.PropertyFilter{})
	gt.NoError(t, err).Required()
	gt.Array(t, listed).Length(0)
}
