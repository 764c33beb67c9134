package interfaces

import (
	"context"

	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/types"
)

// ActorRepository defines the interface for Actor data access
type ActorRepository interface {
	// Create creates a new actor with auto-generated internal ID
	Create(ctx context.Context, actor *model.Actor) (*model.Actor, error)

	// Get retrieves an actor by internal ID
	Get(ctx context.Context, id int64) (*model.Actor, error)

	// GetByPublicID retrieves an actor by public ID
	GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.Actor, error)

	// ListByRoles retrieves all active actors holding one of the given roles
	ListByRoles(ctx context.Context, roles ...types.Role) ([]*model.Actor, error)

	// ListAgents retrieves active agents, optionally filtered by specialization
	ListAgents(ctx context.Context, agentType types.AgentType) ([]*model.Actor, error)

	// Update updates an existing actor
	Update(ctx context.Context, actor *model.Actor) (*model.Actor, error)
}
