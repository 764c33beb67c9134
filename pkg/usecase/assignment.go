package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/types"
)

// resolveAgent loads the agent identified by publicID and checks that it may
// take work of the given category. The agent must hold the agent role, be
// active, and carry a specialization covering the category (an untagged
// agent covers everything).
func (uc *UseCases) resolveAgent(ctx context.Context, publicID types.PublicID, category types.RequestCategory) (*model.Actor, error) {
	agent, err := uc.repo.Actor().GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if agent.Role != types.RoleAgent {
		return nil, goerr.Wrap(types.ErrValidation, "assignee is not an agent",
			goerr.V("actor_id", agent.ID),
			goerr.V("role", agent.Role))
	}
	if !agent.IsActive {
		return nil, goerr.Wrap(types.ErrValidation, "agent account is deactivated",
			goerr.V("actor_id", agent.ID))
	}
	if !agent.AgentType.Covers(category) {
		return nil, goerr.Wrap(types.ErrCapabilityMismatch, "agent specialization does not cover category",
			goerr.V("actor_id", agent.ID),
			goerr.V("agent_type", agent.AgentType),
			goerr.V("category", category))
	}

	return agent, nil
}

// staffRecipients returns the IDs of all active staff accounts, used as the
// notification audience for review queues.
func (uc *UseCases) staffRecipients(ctx context.Context) []int64 {
	staff, err := uc.repo.Actor().ListByRoles(ctx, types.RoleGestionnaire, types.RoleAdmin)
	if err != nil {
		return nil
	}
	ids := make([]int64, 0, len(staff))
	for _, a := range staff {
		ids = append(ids, a.ID)
	}
	return ids
}
