package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/shopspring/decimal"

	"github.com/teranga-immo/teranga/pkg/domain/interfaces"
	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/types"
	"github.com/teranga-immo/teranga/pkg/repository/memory"
)

func TestPropertyCRUD(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	created := gt.R1(repo.Property().Create(ctx, &model.Property{
		OwnerID: 1,
		Title:   "Villa Almadies",
		City:    "Dakar",
		Price:   decimal.NewFromInt(250_000_000),
		Status:  types.PropertyStatusDraft,
	})).NoError(t)

	gt.Bool(t, created.ID > 0).True()
	gt.Bool(t, created.PublicID != "").True()
	gt.Value(t, created.Rev).Equal(1)

	got := gt.R1(repo.Property().GetByPublicID(ctx, created.PublicID)).NoError(t)
	gt.Value(t, got.Title).Equal("Villa Almadies")

	// mutating the returned copy must not touch the stored record
	got.Title = "changed"
	again := gt.R1(repo.Property().Get(ctx, created.ID)).NoError(t)
	gt.Value(t, again.Title).Equal("Villa Almadies")

	_, err := repo.Property().Get(ctx, 9999)
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
}

func TestPropertyUpdateConflict(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	created := gt.R1(repo.Property().Create(ctx, &model.Property{
		OwnerID: 1,
		Title:   "Appartement Plateau",
		Status:  types.PropertyStatusPending,
	})).NoError(t)

	first := gt.R1(repo.Property().Get(ctx, created.ID)).NoError(t)
	second := gt.R1(repo.Property().Get(ctx, created.ID)).NoError(t)

	first.Status = types.PropertyStatusApproved
	updated := gt.R1(repo.Property().Update(ctx, first)).NoError(t)
	gt.Value(t, updated.Rev).Equal(2)

	// the second reader still holds rev 1 and must lose
	second.Status = types.PropertyStatusDraft
	second.RejectionReason = "missing photos"
	_, err := repo.Property().Update(ctx, second)
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, types.ErrConflict)).True()

	stored := gt.R1(repo.Property().Get(ctx, created.ID)).NoError(t)
	gt.Value(t, stored.Status).Equal(types.PropertyStatusApproved)
}

func TestPropertyListFilters(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	gt.R1(repo.Property().Create(ctx, &model.Property{OwnerID: 1, City: "Dakar", Status: types.PropertyStatusApproved})).NoError(t)
	gt.R1(repo.Property().Create(ctx, &model.Property{OwnerID: 1, City: "Thies", Status: types.PropertyStatusDraft})).NoError(t)
	gt.R1(repo.Property().Create(ctx, &model.Property{OwnerID: 2, City: "Dakar", Status: types.PropertyStatusApproved, Featured: true})).NoError(t)

	approved := gt.R1(repo.Property().List(ctx, interfaces.PropertyFilter{Status: types.PropertyStatusApproved})).NoError(t)
	gt.Value(t, len(approved)).Equal(2)

	owned := gt.R1(repo.Property().List(ctx, interfaces.PropertyFilter{OwnerID: 1})).NoError(t)
	gt.Value(t, len(owned)).Equal(2)

	featured := gt.R1(repo.Property().List(ctx, interfaces.PropertyFilter{Featured: true})).NoError(t)
	gt.Value(t, len(featured)).Equal(1)
}

func TestListAgentsBySpecialization(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	gt.R1(repo.Actor().Create(ctx, &model.Actor{Role: types.RoleAgent, AgentType: types.AgentType(types.CategoryImmobilier), IsActive: true})).NoError(t)
	gt.R1(repo.Actor().Create(ctx, &model.Actor{Role: types.RoleAgent, AgentType: types.AgentType(types.CategoryConstructeur), IsActive: true})).NoError(t)
	gt.R1(repo.Actor().Create(ctx, &model.Actor{Role: types.RoleAgent, AgentType: types.AgentTypeAny, IsActive: true})).NoError(t)
	gt.R1(repo.Actor().Create(ctx, &model.Actor{Role: types.RoleAgent, AgentType: types.AgentType(types.CategoryImmobilier), IsActive: false})).NoError(t)
	gt.R1(repo.Actor().Create(ctx, &model.Actor{Role: types.RoleGestionnaire, IsActive: true})).NoError(t)

	all := gt.R1(repo.Actor().ListAgents(ctx, types.AgentTypeAny)).NoError(t)
	gt.Value(t, len(all)).Equal(3)

	immo := gt.R1(repo.Actor().ListAgents(ctx, types.AgentType(types.CategoryImmobilier))).NoError(t)
	gt.Value(t, len(immo)).Equal(1)
}

func TestPartnershipLatestByOwner(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	gt.R1(repo.Partnership().Create(ctx, &model.Partnership{OwnerID: 7, CompanyName: "first", Status: types.PartnershipStatusRejected})).NoError(t)
	second := gt.R1(repo.Partnership().Create(ctx, &model.Partnership{OwnerID: 7, CompanyName: "second", Status: types.PartnershipStatusPending})).NoError(t)

	latest := gt.R1(repo.Partnership().GetLatestByOwner(ctx, 7)).NoError(t)
	gt.Value(t, latest.ID).Equal(second.ID)

	_, err := repo.Partnership().GetLatestByOwner(ctx, 99)
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
}

func TestNotificationUnread(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	gt.R1(repo.Notification().Create(ctx, &model.Notification{RecipientID: 3, Kind: model.NotificationMessageReceived})).NoError(t)
	gt.R1(repo.Notification().Create(ctx, &model.Notification{RecipientID: 3, Kind: model.NotificationPropertyValidated})).NoError(t)
	gt.R1(repo.Notification().Create(ctx, &model.Notification{RecipientID: 4, Kind: model.NotificationMessageReceived})).NoError(t)

	count := gt.R1(repo.Notification().CountUnread(ctx, 3)).NoError(t)
	gt.Value(t, count).Equal(2)

	gt.NoError(t, repo.Notification().MarkAllRead(ctx, 3))

	count = gt.R1(repo.Notification().CountUnread(ctx, 3)).NoError(t)
	gt.Value(t, count).Equal(0)

	count = gt.R1(repo.Notification().CountUnread(ctx, 4)).NoError(t)
	gt.Value(t, count).Equal(1)
}

func TestMessageThreads(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	parent := gt.R1(repo.Message().Create(ctx, &model.Message{SenderID: 1, RecipientID: 2, Subject: "visite"})).NoError(t)
	gt.R1(repo.Message().Create(ctx, &model.Message{SenderID: 2, RecipientID: 1, ParentID: parent.ID, Body: "oui"})).NoError(t)
	gt.R1(repo.Message().Create(ctx, &model.Message{SenderID: 1, RecipientID: 3, Subject: "autre"})).NoError(t)

	inbox := gt.R1(repo.Message().ListForActor(ctx, 2)).NoError(t)
	gt.Value(t, len(inbox)).Equal(2)

	replies := gt.R1(repo.Message().ListReplies(ctx, parent.ID)).NoError(t)
	gt.Value(t, len(replies)).Equal(1)
	gt.Value(t, replies[0].Body).Equal("oui")
}
