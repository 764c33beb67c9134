package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/types"
	"github.com/teranga-immo/teranga/pkg/usecase"
)

func validClientRequestInput() usecase.ClientRequestInput {
	return usecase.ClientRequestInput{
		Name:    "Awa Ndiaye",
		Email:   "awa@example.sn",
		Message: "Je souhaite visiter ce bien",
		Consent: true,
	}
}

func TestClientRequestAnonymousCreate(t *testing.T) {
	uc, repo := setupUseCases(t)
	staff := createActor(t, repo, types.RoleGestionnaire, types.AgentTypeAny)
	_ = staff

	// no actor in context: the request is accepted as anonymous
	r, err := uc.ClientRequest.Create(context.Background(), validClientRequestInput())
	gt.NoError(t, err).Required()
	gt.Value(t, r.OwnerID).Equal(int64(0))
	gt.Value(t, r.Status).Equal(types.ClientRequestStatusPending)
	gt.Value(t, r.Category).Equal(types.CategoryImmobilier)
}

func TestClientRequestConsentRequired(t *testing.T) {
	uc, _ := setupUseCases(t)

	input := validClientRequestInput()
	input.Consent = false
	_, err := uc.ClientRequest.Create(context.Background(), input)
	gt.Bool(t, errors.Is(err, types.ErrValidation)).True()

	input = validClientRequestInput()
	input.Email = ""
	input.Phone = ""
	_, err = uc.ClientRequest.Create(context.Background(), input)
	gt.Bool(t, errors.Is(err, types.ErrValidation)).True()
}

func TestClientRequestCategoryFromLinkedEntity(t *testing.T) {
	uc, repo := setupUseCases(t)
	admin := createActor(t, repo, types.RoleAdmin, types.AgentTypeAny)

	project, err := uc.Investment.Create(asActor(admin), validInvestmentInput())
	gt.NoError(t, err).Required()

	input := validClientRequestInput()
	input.InvestmentPublicID = project.PublicID
	r, err := uc.ClientRequest.Create(context.Background(), input)
	gt.NoError(t, err).Required()
	gt.Value(t, r.Category).Equal(types.CategoryInvestissement)
	gt.Value(t, r.InvestmentProjectID).Equal(project.ID)
}

func TestClientRequestAssignMatchesCategory(t *testing.T) {
	uc, repo := setupUseCases(t)
	admin := createActor(t, repo, types.RoleAdmin, types.AgentTypeAny)
	manager := createActor(t, repo, types.RoleGestionnaire, types.AgentTypeAny)
	builder := createActor(t, repo, types.RoleAgent, types.AgentType(types.CategoryConstructeur))
	generalist := createActor(t, repo, types.RoleAgent, types.AgentTypeAny)

	project, err := uc.Investment.Create(asActor(admin), validInvestmentInput())
	gt.NoError(t, err).Required()

	input := validClientRequestInput()
	input.InvestmentPublicID = project.PublicID
	r, err := uc.ClientRequest.Create(context.Background(), input)
	gt.NoError(t, err).Required()

	r, err = uc.ClientRequest.Approve(asActor(manager), r.PublicID)
	gt.NoError(t, err).Required()

	// a construction specialist cannot take an investment request
	_, err = uc.ClientRequest.Assign(asActor(manager), r.PublicID, builder.PublicID)
	gt.Bool(t, errors.Is(err, types.ErrCapabilityMismatch)).True()

	// an untagged agent covers every category
	r, err = uc.ClientRequest.Assign(asActor(manager), r.PublicID, generalist.PublicID)
	gt.NoError(t, err).Required()
	gt.Value(t, r.AgentID).Equal(generalist.ID)
	gt.Value(t, r.Status).Equal(types.ClientRequestStatusAssigned)

	n := lastNotification(t, repo, generalist.ID)
	gt.Value(t, n.Kind).Equal(model.NotificationClientRequestAssigned)
}

func TestClientRequestRejectRequiresReason(t *testing.T) {
	uc, repo := setupUseCases(t)
	manager := createActor(t, repo, types.RoleGestionnaire, types.AgentTypeAny)

	r, err := uc.ClientRequest.Create(context.Background(), validClientRequestInput())
	gt.NoError(t, err).Required()

	_, err = uc.ClientRequest.Reject(asActor(manager), r.PublicID, "")
	gt.Bool(t, errors.Is(err, types.ErrValidation)).True()

	r, err = uc.ClientRequest.Reject(asActor(manager), r.PublicID, "coordonnées invalides")
	gt.NoError(t, err).Required()
	gt.Value(t, r.Status).Equal(types.ClientRequestStatusRejected)
}

func TestClientRequestVisibility(t *testing.T) {
	uc, repo := setupUseCases(t)
	visitor := createActor(t, repo, types.RoleVisiteur, types.AgentTypeAny)
	manager := createActor(t, repo, types.RoleGestionnaire, types.AgentTypeAny)

	r, err := uc.ClientRequest.Create(context.Background(), validClientRequestInput())
	gt.NoError(t, err).Required()

	_, err = uc.ClientRequest.Get(asActor(visitor), r.PublicID)
	gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()

	got, err := uc.ClientRequest.Get(asActor(manager), r.PublicID)
	gt.NoError(t, err).Required()
	gt.Value(t, got.ID).Equal(r.ID)
}
