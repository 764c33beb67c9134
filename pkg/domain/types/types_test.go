package types_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/teranga-immo/teranga/pkg/domain/types"
)

func TestParseRole(t *testing.T) {
	role, err := types.ParseRole("agent")
	gt.NoError(t, err).Required()
	gt.Value(t, role).Equal(types.RoleAgent)

	_, err = types.ParseRole("superuser")
	gt.Bool(t, errors.Is(err, types.ErrValidation)).True()
}

func TestParseAgentType(t *testing.T) {
	at, err := types.ParseAgentType("immobilier")
	gt.NoError(t, err).Required()
	gt.Value(t, at).Equal(types.AgentType(types.CategoryImmobilier))

	// empty means the wildcard specialization
	at, err = types.ParseAgentType("")
	gt.NoError(t, err).Required()
	gt.Value(t, at).Equal(types.AgentTypeAny)

	_, err = types.ParseAgentType("plombier")
	gt.Bool(t, errors.Is(err, types.ErrValidation)).True()
}

func TestParseStatusesCarryValidation(t *testing.T) {
	_, err := types.ParsePropertyStatus("archived")
	gt.Bool(t, errors.Is(err, types.ErrValidation)).True()

	_, err = types.ParseSearchRequestStatus("paused")
	gt.Bool(t, errors.Is(err, types.ErrValidation)).True()

	_, err = types.ParseInvestmentStatus("frozen")
	gt.Bool(t, errors.Is(err, types.ErrValidation)).True()
}
