package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/model/auth"
	"github.com/teranga-immo/teranga/pkg/domain/types"
	"github.com/teranga-immo/teranga/pkg/repository/memory"
	"github.com/teranga-immo/teranga/pkg/usecase"
)

func setupUseCases(t *testing.T) (*usecase.UseCases, *memory.Repository) {
	t.Helper()
	repo := memory.New()
	return usecase.New(repo), repo
}

func setupRepo(t *testing.T) *memory.Repository {
	t.Helper()
	return memory.New()
}

func createActor(t *testing.T, repo *memory.Repository, role types.Role, agentType types.AgentType) *model.Actor {
	t.Helper()
	actor, err := repo.Actor().Create(context.Background(), &model.Actor{
		Role:      role,
		AgentType: agentType,
		FirstName: "Test",
		LastName:  string(role),
		Email:     string(role) + "@example.sn",
		IsActive:  true,
	})
	gt.NoError(t, err).Required()
	return actor
}

func asActor(actor *model.Actor) context.Context {
	return auth.ContextWithActor(context.Background(), actor)
}

func lastNotification(t *testing.T, repo *memory.Repository, recipientID int64) *model.Notification {
	t.Helper()
	notifs, err := repo.Notification().ListForRecipient(context.Background(), recipientID)
	gt.NoError(t, err).Required()
	gt.Array(t, notifs).Longer(0).Required()
	return notifs[0]
}
