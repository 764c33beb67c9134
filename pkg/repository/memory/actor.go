package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/types"
)

type actorRepository struct {
	mu       sync.RWMutex
	actors   map[int64]*model.Actor
	byPublic map[types.PublicID]int64
	nextID   int64
}

func newActorRepository() *actorRepository {
	return &actorRepository{
		actors:   make(map[int64]*model.Actor),
		byPublic: make(map[types.PublicID]int64),
		nextID:   1,
	}
}

func copyActor(a *model.Actor) *model.Actor {
	copied := *a
	return &copied
}

func (r *actorRepository) Create(ctx context.Context, actor *model.Actor) (*model.Actor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyActor(actor)
	created.ID = r.nextID
	if created.PublicID == "" {
		created.PublicID = types.NewPublicID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.actors[created.ID] = created
	r.byPublic[created.PublicID] = created.ID
	return copyActor(created), nil
}

func (r *actorRepository) Get(ctx context.Context, id int64) (*model.Actor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, exists := r.actors[id]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "actor not found", goerr.V("id", id))
	}
	return copyActor(a), nil
}

func (r *actorRepository) GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.Actor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byPublic[publicID]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "actor not found", goerr.V("public_id", publicID))
	}
	return copyActor(r.actors[id]), nil
}

func (r *actorRepository) ListByRoles(ctx context.Context, roles ...types.Role) ([]*model.Actor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[types.Role]bool, len(roles))
	for _, role := range roles {
		wanted[role] = true
	}

	actors := []*model.Actor{}
	for _, a := range r.actors {
		if a.IsActive && wanted[a.Role] {
			actors = append(actors, copyActor(a))
		}
	}
	return actors, nil
}

func (r *actorRepository) ListAgents(ctx context.Context, agentType types.AgentType) ([]*model.Actor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	agents := []*model.Actor{}
	for _, a := range r.actors {
		if !a.IsActive || a.Role != types.RoleAgent {
			continue
		}
		if agentType != types.AgentTypeAny && a.AgentType != agentType {
			continue
		}
		agents = append(agents, copyActor(a))
	}
	return agents, nil
}

func (r *actorRepository) Update(ctx context.Context, actor *model.Actor) (*model.Actor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.actors[actor.ID]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "actor not found", goerr.V("id", actor.ID))
	}

	updated := copyActor(actor)
	updated.PublicID = existing.PublicID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.actors[updated.ID] = updated
	return copyActor(updated), nil
}
