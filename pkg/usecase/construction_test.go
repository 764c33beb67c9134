package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/shopspring/decimal"

	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/types"
	"github.com/teranga-immo/teranga/pkg/usecase"
)

func validConstructionInput() usecase.ConstructionInput {
	return usecase.ConstructionInput{
		Title:       "Maison R+1 à Thiès",
		ProjectType: "residentiel",
		BudgetMin:   decimal.NewFromInt(20_000_000),
		BudgetMax:   decimal.NewFromInt(35_000_000),
		City:        "Thiès",
	}
}

func TestConstructionQuoteFlow(t *testing.T) {
	uc, repo := setupUseCases(t)
	owner := createActor(t, repo, types.RoleVisiteur, types.AgentTypeAny)
	manager := createActor(t, repo, types.RoleGestionnaire, types.AgentTypeAny)
	agent := createActor(t, repo, types.RoleAgent, types.AgentType(types.CategoryConstructeur))

	p, err := uc.Construction.Submit(asActor(owner), validConstructionInput())
	gt.NoError(t, err).Required()
	gt.Value(t, p.Status).Equal(types.ConstructionStatusSubmitted)

	p, err = uc.Construction.Assign(asActor(manager), p.PublicID, agent.PublicID)
	gt.NoError(t, err).Required()
	gt.Value(t, p.Status).Equal(types.ConstructionStatusInStudy)
	gt.Value(t, p.AgentID).Equal(agent.ID)

	quote, err := uc.Construction.CreateQuote(asActor(agent), p.PublicID,
		decimal.NewFromInt(28_000_000), "XOF", 30, "gros œuvre inclus")
	gt.NoError(t, err).Required()
	gt.Value(t, quote.Status).Equal(types.QuoteStatusSent)
	gt.String(t, quote.QuoteNumber).NotEqual("")

	n := lastNotification(t, repo, owner.ID)
	gt.Value(t, n.Kind).Equal(model.NotificationConstructionQuoteSent)

	p, err = uc.Construction.RespondToQuote(asActor(owner), quote.PublicID, true, "")
	gt.NoError(t, err).Required()
	gt.Value(t, p.Status).Equal(types.ConstructionStatusApproved)

	quotes, err := uc.Construction.ListQuotes(asActor(owner), p.PublicID)
	gt.NoError(t, err).Required()
	gt.Array(t, quotes).Length(1)
	gt.Value(t, quotes[0].Status).Equal(types.QuoteStatusAccepted)

	p, err = uc.Construction.Start(asActor(manager), p.PublicID)
	gt.NoError(t, err).Required()
	p, err = uc.Construction.Complete(asActor(manager), p.PublicID)
	gt.NoError(t, err).Required()
	gt.Value(t, p.Status).Equal(types.ConstructionStatusCompleted)
	gt.Bool(t, p.CompletedAt != nil).True()
}

func TestConstructionQuoteReachesStaffAndInbox(t *testing.T) {
	uc, repo := setupUseCases(t)
	owner := createActor(t, repo, types.RoleVisiteur, types.AgentTypeAny)
	manager := createActor(t, repo, types.RoleGestionnaire, types.AgentTypeAny)
	agent := createActor(t, repo, types.RoleAgent, types.AgentType(types.CategoryConstructeur))

	p, err := uc.Construction.Submit(asActor(owner), validConstructionInput())
	gt.NoError(t, err).Required()
	p, err = uc.Construction.Assign(asActor(manager), p.PublicID, agent.PublicID)
	gt.NoError(t, err).Required()

	quote, err := uc.Construction.CreateQuote(asActor(agent), p.PublicID,
		decimal.NewFromInt(28_000_000), "XOF", 30, "")
	gt.NoError(t, err).Required()

	// staff follow the quote alongside the owner
	n := lastNotification(t, repo, manager.ID)
	gt.Value(t, n.Kind).Equal(model.NotificationConstructionQuoteSent)
	n = lastNotification(t, repo, owner.ID)
	gt.Value(t, n.Kind).Equal(model.NotificationConstructionQuoteSent)

	// the quote also lands in the owner's inbox as a message
	msgs, err := repo.Message().ListForActor(context.Background(), owner.ID)
	gt.NoError(t, err).Required()
	gt.Array(t, msgs).Longer(0).Required()
	gt.Value(t, msgs[0].SenderID).Equal(agent.ID)
	gt.Value(t, msgs[0].Subject).Equal("Devis " + quote.QuoteNumber)
}

func TestConstructionDeclineQuoteRequiresReason(t *testing.T) {
	uc, repo := setupUseCases(t)
	owner := createActor(t, repo, types.RoleVisiteur, types.AgentTypeAny)
	manager := createActor(t, repo, types.RoleGestionnaire, types.AgentTypeAny)
	agent := createActor(t, repo, types.RoleAgent, types.AgentTypeAny)

	p, err := uc.Construction.Submit(asActor(owner), validConstructionInput())
	gt.NoError(t, err).Required()
	p, err = uc.Construction.Assign(asActor(manager), p.PublicID, agent.PublicID)
	gt.NoError(t, err).Required()
	quote, err := uc.Construction.CreateQuote(asActor(agent), p.PublicID,
		decimal.NewFromInt(40_000_000), "XOF", 15, "")
	gt.NoError(t, err).Required()

	_, err = uc.Construction.RespondToQuote(asActor(owner), quote.PublicID, false, "")
	gt.Bool(t, errors.Is(err, types.ErrValidation)).True()

	p, err = uc.Construction.RespondToQuote(asActor(owner), quote.PublicID, false, "budget dépassé")
	gt.NoError(t, err).Required()
	gt.Value(t, p.Status).Equal(types.ConstructionStatusRejected)
	gt.Value(t, p.RejectionReason).Equal("budget dépassé")
}

func TestConstructionQuoteOnlyAssignedAgent(t *testing.T) {
	uc, repo := setupUseCases(t)
	owner := createActor(t, repo, types.RoleVisiteur, types.AgentTypeAny)
	manager := createActor(t, repo, types.RoleGestionnaire, types.AgentTypeAny)
	assigned := createActor(t, repo, types.RoleAgent, types.AgentTypeAny)
	other := createActor(t, repo, types.RoleAgent, types.AgentTypeAny)

	p, err := uc.Construction.Submit(asActor(owner), validConstructionInput())
	gt.NoError(t, err).Required()
	p, err = uc.Construction.Assign(asActor(manager), p.PublicID, assigned.PublicID)
	gt.NoError(t, err).Required()

	_, err = uc.Construction.CreateQuote(asActor(other), p.PublicID,
		decimal.NewFromInt(10_000_000), "XOF", 30, "")
	gt.Bool(t, errors.Is(err, types.ErrForbidden)).True()
}

func TestConstructionRespondOnlyOwner(t *testing.T) {
	uc, repo := setupUseCases(t)
	owner := createActor(t, repo, types.RoleVisiteur, types.AgentTypeAny)
	stranger := createActor(t, repo, types.RoleVisiteur, types.AgentTypeAny)
	manager := createActor(t, repo, types.RoleGestionnaire, types.AgentTypeAny)
	agent := createActor(t, repo, types.RoleAgent, types.AgentTypeAny)

	p, err := uc.Construction.Submit(asActor(owner), validConstructionInput())
	gt.NoError(t, err).Required()
	p, err = uc.Construction.Assign(asActor(manager), p.PublicID, agent.PublicID)
	gt.NoError(t, err).Required()
	quote, err := uc.Construction.CreateQuote(asActor(agent), p.PublicID,
		decimal.NewFromInt(25_000_000), "XOF", 30, "")
	gt.NoError(t, err).Required()

	_, err = uc.Construction.RespondToQuote(asActor(stranger), quote.PublicID, true, "")
	gt.Bool(t, errors.Is(err, types.ErrForbidden)).True()
}

func TestConstructionInvalidTransition(t *testing.T) {
	uc, repo := setupUseCases(t)
	owner := createActor(t, repo, types.RoleVisiteur, types.AgentTypeAny)
	manager := createActor(t, repo, types.RoleGestionnaire, types.AgentTypeAny)

	p, err := uc.Construction.Submit(asActor(owner), validConstructionInput())
	gt.NoError(t, err).Required()

	// a submitted project cannot jump straight to in_progress
	_, err = uc.Construction.Start(asActor(manager), p.PublicID)
	gt.Bool(t, errors.Is(err, types.ErrInvalidTransition)).True()
}

func TestConstructionPublication(t *testing.T) {
	uc, repo := setupUseCases(t)
	owner := createActor(t, repo, types.RoleVisiteur, types.AgentTypeAny)
	manager := createActor(t, repo, types.RoleGestionnaire, types.AgentTypeAny)
	stranger := createActor(t, repo, types.RoleVisiteur, types.AgentTypeAny)

	p, err := uc.Construction.Submit(asActor(owner), validConstructionInput())
	gt.NoError(t, err).Required()

	_, err = uc.Construction.Get(asActor(stranger), p.PublicID)
	gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()

	p, err = uc.Construction.Publish(asActor(manager), p.PublicID, true)
	gt.NoError(t, err).Required()

	got, err := uc.Construction.Get(asActor(stranger), p.PublicID)
	gt.NoError(t, err).Required()
	gt.Value(t, got.ID).Equal(p.ID)

	published, err := uc.Construction.ListPublished(asActor(stranger))
	gt.NoError(t, err).Required()
	gt.Array(t, published).Length(1)
}
