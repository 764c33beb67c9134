package authz_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/teranga-immo/teranga/pkg/authz"
	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/types"
)

func TestPolicyTable(t *testing.T) {
	p := authz.Default()

	tests := []struct {
		name string
		role types.Role
		op   authz.Operation
		want bool
	}{
		{"owner creates property", types.RoleProprietaire, authz.OpPropertyCreate, true},
		{"visitor cannot create property", types.RoleVisiteur, authz.OpPropertyCreate, false},
		{"agent validates property", types.RoleAgent, authz.OpPropertyValidate, true},
		{"manager cannot validate property", types.RoleGestionnaire, authz.OpPropertyValidate, false},
		{"manager assigns property", types.RoleGestionnaire, authz.OpPropertyAssign, true},
		{"admin features property", types.RoleAdmin, authz.OpPropertyFeature, true},
		{"manager cannot feature property", types.RoleGestionnaire, authz.OpPropertyFeature, false},
		{"visitor creates search request", types.RoleVisiteur, authz.OpSearchRequestCreate, true},
		{"visitor cancels search request", types.RoleVisiteur, authz.OpSearchRequestCancel, true},
		{"agent fulfills search request", types.RoleAgent, authz.OpSearchRequestFulfill, true},
		{"agent cannot approve search request", types.RoleAgent, authz.OpSearchRequestApprove, false},
		{"visitor submits construction", types.RoleVisiteur, authz.OpConstructionSubmit, true},
		{"agent quotes construction", types.RoleAgent, authz.OpConstructionQuote, true},
		{"investor proposes", types.RoleInvestisseur, authz.OpInvestmentPropose, true},
		{"agent cannot propose", types.RoleAgent, authz.OpInvestmentPropose, false},
		{"admin reviews proposal", types.RoleAdmin, authz.OpProposalReview, true},
		{"company applies for partnership", types.RoleEntreprise, authz.OpPartnershipApply, true},
		{"manager cannot approve partnership", types.RoleGestionnaire, authz.OpPartnershipApprove, false},
		{"admin approves partnership", types.RoleAdmin, authz.OpPartnershipApprove, true},
		{"everyone sends messages", types.RoleVisiteur, authz.OpMessageSend, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, p.Allows(tt.role, tt.op)).Equal(tt.want)
		})
	}
}

func TestAuthorize(t *testing.T) {
	p := authz.Default()

	t.Run("nil actor is forbidden", func(t *testing.T) {
		err := p.Authorize(nil, authz.OpPropertyCreate)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrForbidden)).True()
	})

	t.Run("inactive account is forbidden", func(t *testing.T) {
		actor := &model.Actor{Role: types.RoleAgent, IsActive: false}
		err := p.Authorize(actor, authz.OpPropertyValidate)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrForbidden)).True()
	})

	t.Run("inactive company can still apply", func(t *testing.T) {
		actor := &model.Actor{Role: types.RoleEntreprise, IsActive: false}
		gt.NoError(t, p.Authorize(actor, authz.OpPartnershipApply))
	})

	t.Run("active matching role passes", func(t *testing.T) {
		actor := &model.Actor{Role: types.RoleGestionnaire, IsActive: true}
		gt.NoError(t, p.Authorize(actor, authz.OpSearchRequestApprove))
	})
}

func TestOperationsAreSorted(t *testing.T) {
	ops := authz.Default().Operations()
	gt.Bool(t, len(ops) > 30).True()
	for i := 1; i < len(ops); i++ {
		gt.Bool(t, ops[i-1] < ops[i]).True()
	}
}
