package usecase_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/teranga-immo/teranga/pkg/domain/types"
)

func TestListAgentsBySpecialization(t *testing.T) {
	uc, repo := setupUseCases(t)
	manager := createActor(t, repo, types.RoleGestionnaire, "")
	builder := createActor(t, repo, types.RoleAgent, types.AgentType(types.CategoryConstructeur))
	createActor(t, repo, types.RoleAgent, types.AgentType(types.CategoryImmobilier))
	createActor(t, repo, types.RoleProprietaire, "")

	all, err := uc.Actor.ListAgents(asActor(manager), types.AgentTypeAny)
	gt.NoError(t, err).Required()
	gt.Array(t, all).Length(2)

	builders, err := uc.Actor.ListAgents(asActor(manager), types.AgentType(types.CategoryConstructeur))
	gt.NoError(t, err).Required()
	gt.Array(t, builders).Length(1)
	gt.Value(t, builders[0].ID).Equal(builder.ID)
}

func TestListAgentsRequiresStaff(t *testing.T) {
	uc, repo := setupUseCases(t)
	owner := createActor(t, repo, types.RoleProprietaire, "")

	_, err := uc.Actor.ListAgents(asActor(owner), types.AgentTypeAny)
	gt.Bool(t, errors.Is(err, types.ErrForbidden)).True()
}

func TestSetActorActive(t *testing.T) {
	uc, repo := setupUseCases(t)
	admin := createActor(t, repo, types.RoleAdmin, "")
	agent := createActor(t, repo, types.RoleAgent, "")

	deactivated, err := uc.Actor.SetActive(asActor(admin), agent.PublicID, false)
	gt.NoError(t, err).Required()
	gt.Bool(t, deactivated.IsActive).False()

	// a deactivated agent is rejected everywhere
	_, err = uc.Construction.ListAssigned(asActor(deactivated))
	gt.Bool(t, errors.Is(err, types.ErrForbidden)).True()

	reactivated, err := uc.Actor.SetActive(asActor(admin), agent.PublicID, true)
	gt.NoError(t, err).Required()
	gt.Bool(t, reactivated.IsActive).True()
}

func TestSetActorActiveGuards(t *testing.T) {
	uc, repo := setupUseCases(t)
	admin := createActor(t, repo, types.RoleAdmin, "")
	manager := createActor(t, repo, types.RoleGestionnaire, "")

	_, err := uc.Actor.SetActive(asActor(admin), admin.PublicID, false)
	gt.Bool(t, errors.Is(err, types.ErrValidation)).True()

	_, err = uc.Actor.SetActive(asActor(manager), admin.PublicID, false)
	gt.Bool(t, errors.Is(err, types.ErrForbidden)).True()

	_, err = uc.Actor.SetActive(asActor(admin), types.PublicID("missing"), false)
	gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
}
