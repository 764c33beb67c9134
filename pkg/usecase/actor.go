package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/teranga-immo/teranga/pkg/authz"
	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/model/auth"
	"github.com/teranga-immo/teranga/pkg/domain/types"
)

type ActorUseCase struct {
	*UseCases
}

// ListAgents returns active agents for the assignment picker, optionally
// narrowed to one specialization.
func (uc *ActorUseCase) ListAgents(ctx context.Context, agentType types.AgentType) ([]*model.Actor, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpActorListAgents); err != nil {
		return nil, err
	}
	if !agentType.IsValid() {
		return nil, goerr.Wrap(types.ErrValidation, "invalid agent type",
			goerr.V("agent_type", agentType))
	}
	return uc.repo.Actor().ListAgents(ctx, agentType)
}

// SetActive toggles an account. Deactivation takes effect on the target's
// next request; an admin cannot deactivate their own account.
func (uc *ActorUseCase) SetActive(ctx context.Context, publicID types.PublicID, active bool) (*model.Actor, error) {
	actor, _ := auth.ActorFromContext(ctx)
	if err := uc.policy.Authorize(actor, authz.OpActorSetActive); err != nil {
		return nil, err
	}

	target, err := uc.repo.Actor().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if target.ID == actor.ID && !active {
		return nil, goerr.Wrap(types.ErrValidation, "cannot deactivate own account")
	}
	if target.IsActive == active {
		return target, nil
	}

	target.IsActive = active
	return uc.repo.Actor().Update(ctx, target)
}
