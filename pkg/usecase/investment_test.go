package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/shopspring/decimal"

	"github.com/teranga-immo/teranga/pkg/domain/interfaces"
	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/types"
	"github.com/teranga-immo/teranga/pkg/repository/memory"
	"github.com/teranga-immo/teranga/pkg/usecase"
)

func validInvestmentInput() usecase.InvestmentInput {
	return usecase.InvestmentInput{
		Title:           "Résidence Les Almadies",
		ProjectType:     "residentiel",
		City:            "Dakar",
		TotalInvestment: decimal.NewFromInt(500_000_000),
		MinInvestment:   decimal.NewFromInt(10_000_000),
		ExpectedReturn:  decimal.NewFromFloat(12.5),
		DurationMonths:  24,
	}
}

func TestInvestmentFundingFlow(t *testing.T) {
	uc, repo := setupUseCases(t)
	admin := createActor(t, repo, types.RoleAdmin, types.AgentTypeAny)
	agent := createActor(t, repo, types.RoleAgent, types.AgentType(types.CategoryInvestissement))
	investor := createActor(t, repo, types.RoleInvestisseur, types.AgentTypeAny)

	p, err := uc.Investment.AgentCreate(asActor(agent), validInvestmentInput())
	gt.NoError(t, err).Required()
	gt.Value(t, p.ApprovalStatus).Equal(types.ApprovalStatusPending)

	// proposals are refused until the project is approved
	_, err = uc.Investment.Propose(asActor(investor), p.PublicID, decimal.NewFromInt(50_000_000), "")
	gt.Bool(t, errors.Is(err, types.ErrValidation)).True()

	p, err = uc.Investment.Approve(asActor(admin), p.PublicID)
	gt.NoError(t, err).Required()
	gt.Value(t, p.ApprovalStatus).Equal(types.ApprovalStatusApproved)

	proposal, err := uc.Investment.Propose(asActor(investor), p.PublicID, decimal.NewFromInt(50_000_000), "premier apport")
	gt.NoError(t, err).Required()
	gt.Value(t, proposal.Status).Equal(types.ProposalStatusPending)

	proposal, err = uc.Investment.ReviewProposal(asActor(admin), proposal.PublicID, true, "")
	gt.NoError(t, err).Required()
	gt.Value(t, proposal.Status).Equal(types.ProposalStatusAccepted)
	gt.Value(t, proposal.ReviewedBy).Equal(admin.ID)

	p, err = uc.Investment.Get(asActor(investor), p.PublicID)
	gt.NoError(t, err).Required()
	gt.Bool(t, p.CurrentFunding.Equal(decimal.NewFromInt(50_000_000))).True()
}

func TestInvestmentProposalBounds(t *testing.T) {
	uc, repo := setupUseCases(t)
	admin := createActor(t, repo, types.RoleAdmin, types.AgentTypeAny)
	investor := createActor(t, repo, types.RoleInvestisseur, types.AgentTypeAny)

	p, err := uc.Investment.Create(asActor(admin), validInvestmentInput())
	gt.NoError(t, err).Required()
	p, err = uc.Investment.Approve(asActor(admin), p.PublicID)
	gt.NoError(t, err).Required()

	// below the minimum ticket
	_, err = uc.Investment.Propose(asActor(investor), p.PublicID, decimal.NewFromInt(1_000_000), "")
	gt.Bool(t, errors.Is(err, types.ErrValidation)).True()

	// above the remaining funding
	_, err = uc.Investment.Propose(asActor(investor), p.PublicID, decimal.NewFromInt(600_000_000), "")
	gt.Bool(t, errors.Is(err, types.ErrValidation)).True()
}

func TestInvestmentAcceptanceCannotOvershoot(t *testing.T) {
	uc, repo := setupUseCases(t)
	admin := createActor(t, repo, types.RoleAdmin, types.AgentTypeAny)
	investor := createActor(t, repo, types.RoleInvestisseur, types.AgentTypeAny)

	input := validInvestmentInput()
	input.TotalInvestment = decimal.NewFromInt(100_000_000)
	p, err := uc.Investment.Create(asActor(admin), input)
	gt.NoError(t, err).Required()
	p, err = uc.Investment.Approve(asActor(admin), p.PublicID)
	gt.NoError(t, err).Required()

	// two proposals that together exceed the target
	first, err := uc.Investment.Propose(asActor(investor), p.PublicID, decimal.NewFromInt(80_000_000), "")
	gt.NoError(t, err).Required()
	second, err := uc.Investment.Propose(asActor(investor), p.PublicID, decimal.NewFromInt(60_000_000), "")
	gt.NoError(t, err).Required()

	_, err = uc.Investment.ReviewProposal(asActor(admin), first.PublicID, true, "")
	gt.NoError(t, err).Required()

	_, err = uc.Investment.ReviewProposal(asActor(admin), second.PublicID, true, "")
	gt.Bool(t, errors.Is(err, types.ErrValidation)).True()

	got, err := uc.Investment.Get(asActor(admin), p.PublicID)
	gt.NoError(t, err).Required()
	gt.Bool(t, got.CurrentFunding.Equal(decimal.NewFromInt(80_000_000))).True()
}

func TestInvestmentFullFundingClosesProject(t *testing.T) {
	uc, repo := setupUseCases(t)
	admin := createActor(t, repo, types.RoleAdmin, types.AgentTypeAny)
	investor := createActor(t, repo, types.RoleInvestisseur, types.AgentTypeAny)

	input := validInvestmentInput()
	input.TotalInvestment = decimal.NewFromInt(50_000_000)
	p, err := uc.Investment.Create(asActor(admin), input)
	gt.NoError(t, err).Required()
	p, err = uc.Investment.Approve(asActor(admin), p.PublicID)
	gt.NoError(t, err).Required()

	proposal, err := uc.Investment.Propose(asActor(investor), p.PublicID, decimal.NewFromInt(50_000_000), "")
	gt.NoError(t, err).Required()
	_, err = uc.Investment.ReviewProposal(asActor(admin), proposal.PublicID, true, "")
	gt.NoError(t, err).Required()

	got, err := uc.Investment.Get(asActor(admin), p.PublicID)
	gt.NoError(t, err).Required()
	gt.Value(t, got.Status).Equal(types.InvestmentStatusInProgress)
	gt.Bool(t, got.RemainingFunding().IsZero()).True()
}

func TestInvestmentAgentCreateSpecialization(t *testing.T) {
	uc, repo := setupUseCases(t)
	specialist := createActor(t, repo, types.RoleAgent, types.AgentType(types.CategoryInvestissement))
	builder := createActor(t, repo, types.RoleAgent, types.AgentType(types.CategoryConstructeur))

	_, err := uc.Investment.AgentCreate(asActor(specialist), validInvestmentInput())
	gt.NoError(t, err).Required()

	_, err = uc.Investment.AgentCreate(asActor(builder), validInvestmentInput())
	gt.Bool(t, errors.Is(err, types.ErrCapabilityMismatch)).True()
}

func TestInvestmentRejectAndResubmit(t *testing.T) {
	uc, repo := setupUseCases(t)
	admin := createActor(t, repo, types.RoleAdmin, types.AgentTypeAny)
	agent := createActor(t, repo, types.RoleAgent, types.AgentType(types.CategoryInvestissement))

	p, err := uc.Investment.AgentCreate(asActor(agent), validInvestmentInput())
	gt.NoError(t, err).Required()

	_, err = uc.Investment.Reject(asActor(admin), p.PublicID, "")
	gt.Bool(t, errors.Is(err, types.ErrValidation)).True()

	p, err = uc.Investment.Reject(asActor(admin), p.PublicID, "dossier incomplet")
	gt.NoError(t, err).Required()
	gt.Value(t, p.ApprovalStatus).Equal(types.ApprovalStatusRejected)

	p, err = uc.Investment.Resubmit(asActor(admin), p.PublicID, validInvestmentInput())
	gt.NoError(t, err).Required()
	gt.Value(t, p.ApprovalStatus).Equal(types.ApprovalStatusPending)
	gt.Value(t, p.RejectionReason).Equal("")
}

func TestInvestmentAdminCreateOpensDirectly(t *testing.T) {
	uc, repo := setupUseCases(t)
	admin := createActor(t, repo, types.RoleAdmin, types.AgentTypeAny)
	manager := createActor(t, repo, types.RoleGestionnaire, types.AgentTypeAny)
	investor := createActor(t, repo, types.RoleInvestisseur, types.AgentTypeAny)

	p, err := uc.Investment.Create(asActor(admin), validInvestmentInput())
	gt.NoError(t, err).Required()
	gt.Value(t, p.ApprovalStatus).Equal(types.ApprovalStatusApproved)
	gt.Bool(t, p.ApprovedAt != nil).True()

	// a staff submission skips its own review queue
	notifs, err := repo.Notification().ListForRecipient(context.Background(), manager.ID)
	gt.NoError(t, err).Required()
	gt.Array(t, notifs).Length(0)

	// investors may propose without a review round trip
	proposal, err := uc.Investment.Propose(asActor(investor), p.PublicID, decimal.NewFromInt(50_000_000), "")
	gt.NoError(t, err).Required()
	gt.Value(t, proposal.Status).Equal(types.ProposalStatusPending)
}

// proposalFaultRepo fails the next proposal write, standing in for a
// concurrent modification between the project and proposal updates.
type proposalFaultRepo struct {
	*memory.Repository
	fail *bool
}

func (r *proposalFaultRepo) Proposal() interfaces.ProposalRepository {
	return &faultingProposals{ProposalRepository: r.Repository.Proposal(), fail: r.fail}
}

type faultingProposals struct {
	interfaces.ProposalRepository
	fail *bool
}

func (p *faultingProposals) Update(ctx context.Context, prop *model.InvestmentProposal) (*model.InvestmentProposal, error) {
	if *p.fail {
		*p.fail = false
		return nil, goerr.Wrap(types.ErrConflict, "proposal was modified concurrently")
	}
	return p.ProposalRepository.Update(ctx, prop)
}

func TestInvestmentAcceptanceRollsBackOnWriteFailure(t *testing.T) {
	repo := setupRepo(t)
	fail := false
	uc := usecase.New(&proposalFaultRepo{Repository: repo, fail: &fail})
	admin := createActor(t, repo, types.RoleAdmin, types.AgentTypeAny)
	investor := createActor(t, repo, types.RoleInvestisseur, types.AgentTypeAny)

	input := validInvestmentInput()
	input.TotalInvestment = decimal.NewFromInt(50_000_000)
	p, err := uc.Investment.Create(asActor(admin), input)
	gt.NoError(t, err).Required()

	proposal, err := uc.Investment.Propose(asActor(investor), p.PublicID, decimal.NewFromInt(50_000_000), "")
	gt.NoError(t, err).Required()

	fail = true
	_, err = uc.Investment.ReviewProposal(asActor(admin), proposal.PublicID, true, "")
	gt.Error(t, err)

	// the failed review left no trace on the funding counter
	got, err := uc.Investment.Get(asActor(admin), p.PublicID)
	gt.NoError(t, err).Required()
	gt.Bool(t, got.CurrentFunding.IsZero()).True()
	gt.Value(t, got.Status).Equal(types.InvestmentStatusOpen)

	// a retry counts the amount exactly once
	reviewed, err := uc.Investment.ReviewProposal(asActor(admin), proposal.PublicID, true, "")
	gt.NoError(t, err).Required()
	gt.Value(t, reviewed.Status).Equal(types.ProposalStatusAccepted)

	got, err = uc.Investment.Get(asActor(admin), p.PublicID)
	gt.NoError(t, err).Required()
	gt.Bool(t, got.CurrentFunding.Equal(decimal.NewFromInt(50_000_000))).True()
	gt.Value(t, got.Status).Equal(types.InvestmentStatusInProgress)
}

func TestInvestmentReviewIdempotent(t *testing.T) {
	uc, repo := setupUseCases(t)
	admin := createActor(t, repo, types.RoleAdmin, types.AgentTypeAny)
	investor := createActor(t, repo, types.RoleInvestisseur, types.AgentTypeAny)

	p, err := uc.Investment.Create(asActor(admin), validInvestmentInput())
	gt.NoError(t, err).Required()
	p, err = uc.Investment.Approve(asActor(admin), p.PublicID)
	gt.NoError(t, err).Required()

	proposal, err := uc.Investment.Propose(asActor(investor), p.PublicID, decimal.NewFromInt(20_000_000), "")
	gt.NoError(t, err).Required()

	_, err = uc.Investment.ReviewProposal(asActor(admin), proposal.PublicID, true, "")
	gt.NoError(t, err).Required()

	// repeating the same decision is a no-op, not a double count
	_, err = uc.Investment.ReviewProposal(asActor(admin), proposal.PublicID, true, "")
	gt.NoError(t, err).Required()

	got, err := uc.Investment.Get(asActor(admin), p.PublicID)
	gt.NoError(t, err).Required()
	gt.Bool(t, got.CurrentFunding.Equal(decimal.NewFromInt(20_000_000))).True()
}
