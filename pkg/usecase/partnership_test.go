package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/types"
	"github.com/teranga-immo/teranga/pkg/service/storage"
	"github.com/teranga-immo/teranga/pkg/usecase"
)

func validPartnershipInput() usecase.PartnershipInput {
	return usecase.PartnershipInput{
		CompanyName:  "BTP Sénégal SARL",
		ContactEmail: "contact@btp-senegal.sn",
		ContactPhone: "+221 77 000 00 00",
	}
}

func TestPartnershipApprovalActivatesAccount(t *testing.T) {
	uc, repo := setupUseCases(t)
	admin := createActor(t, repo, types.RoleAdmin, types.AgentTypeAny)

	company, err := repo.Actor().Create(context.Background(), &model.Actor{
		Role:     types.RoleEntreprise,
		Email:    "entreprise@example.sn",
		IsActive: false,
	})
	gt.NoError(t, err).Required()

	// an inactive company may still apply
	app, err := uc.Partnership.Apply(asActor(company), validPartnershipInput())
	gt.NoError(t, err).Required()
	gt.Value(t, app.Status).Equal(types.PartnershipStatusPending)

	app, err = uc.Partnership.Approve(asActor(admin), app.PublicID)
	gt.NoError(t, err).Required()
	gt.Value(t, app.Status).Equal(types.PartnershipStatusApproved)
	gt.Value(t, app.ApprovedBy).Equal(admin.ID)

	reloaded, err := repo.Actor().Get(context.Background(), company.ID)
	gt.NoError(t, err).Required()
	gt.Bool(t, reloaded.IsActive).True()

	n := lastNotification(t, repo, company.ID)
	gt.Value(t, n.Kind).Equal(model.NotificationPartnershipReviewed)
}

func TestPartnershipPendingBlocksSecondApplication(t *testing.T) {
	uc, repo := setupUseCases(t)
	company := createActor(t, repo, types.RoleEntreprise, types.AgentTypeAny)

	_, err := uc.Partnership.Apply(asActor(company), validPartnershipInput())
	gt.NoError(t, err).Required()

	_, err = uc.Partnership.Apply(asActor(company), validPartnershipInput())
	gt.Bool(t, errors.Is(err, types.ErrValidation)).True()
}

func TestPartnershipReapplyAfterRejection(t *testing.T) {
	uc, repo := setupUseCases(t)
	admin := createActor(t, repo, types.RoleAdmin, types.AgentTypeAny)
	company := createActor(t, repo, types.RoleEntreprise, types.AgentTypeAny)

	app, err := uc.Partnership.Apply(asActor(company), validPartnershipInput())
	gt.NoError(t, err).Required()

	_, err = uc.Partnership.Reject(asActor(admin), app.PublicID, "")
	gt.Bool(t, errors.Is(err, types.ErrValidation)).True()

	app, err = uc.Partnership.Reject(asActor(admin), app.PublicID, "références insuffisantes")
	gt.NoError(t, err).Required()
	gt.Value(t, app.Status).Equal(types.PartnershipStatusRejected)

	// a rejected company may file a fresh application
	second, err := uc.Partnership.Apply(asActor(company), validPartnershipInput())
	gt.NoError(t, err).Required()
	gt.Value(t, second.Status).Equal(types.PartnershipStatusPending)
	gt.Bool(t, second.ID != app.ID).True()
}

func TestPartnershipDocumentOnlyWhilePending(t *testing.T) {
	repo := setupRepo(t)
	store, err := storage.NewLocal(t.TempDir())
	gt.NoError(t, err).Required()
	uc := usecase.New(repo, usecase.WithFileStorage(store))
	admin := createActor(t, repo, types.RoleAdmin, types.AgentTypeAny)
	company := createActor(t, repo, types.RoleEntreprise, types.AgentTypeAny)

	app, err := uc.Partnership.Apply(asActor(company), validPartnershipInput())
	gt.NoError(t, err).Required()

	app, err = uc.Partnership.AddDocument(asActor(company), app.PublicID, "registre.pdf",
		bytes.NewReader([]byte("pdf-bytes")))
	gt.NoError(t, err).Required()
	gt.Array(t, app.DocumentPaths).Length(1)

	app, err = uc.Partnership.Approve(asActor(admin), app.PublicID)
	gt.NoError(t, err).Required()

	_, err = uc.Partnership.AddDocument(asActor(company), app.PublicID, "late.pdf",
		bytes.NewReader([]byte("pdf-bytes")))
	gt.Bool(t, errors.Is(err, types.ErrValidation)).True()
}

func TestPartnershipUpdateOnlyWhilePending(t *testing.T) {
	uc, repo := setupUseCases(t)
	admin := createActor(t, repo, types.RoleAdmin, types.AgentTypeAny)
	company := createActor(t, repo, types.RoleEntreprise, types.AgentTypeAny)

	app, err := uc.Partnership.Apply(asActor(company), validPartnershipInput())
	gt.NoError(t, err).Required()

	input := validPartnershipInput()
	input.CompanyName = "BTP Sénégal SA"
	app, err = uc.Partnership.Update(asActor(company), app.PublicID, input)
	gt.NoError(t, err).Required()
	gt.Value(t, app.CompanyName).Equal("BTP Sénégal SA")

	app, err = uc.Partnership.Approve(asActor(admin), app.PublicID)
	gt.NoError(t, err).Required()

	_, err = uc.Partnership.Update(asActor(company), app.PublicID, input)
	gt.Bool(t, errors.Is(err, types.ErrValidation)).True()
}
