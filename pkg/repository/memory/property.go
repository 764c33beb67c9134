package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/teranga-immo/teranga/pkg/domain/interfaces"
	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/types"
)

type propertyRepository struct {
	mu         sync.RWMutex
	properties map[int64]*model.Property
	byPublic   map[types.PublicID]int64
	nextID     int64
}

func newPropertyRepository() *propertyRepository {
	return &propertyRepository{
		properties: make(map[int64]*model.Property),
		byPublic:   make(map[types.PublicID]int64),
		nextID:     1,
	}
}

func copyProperty(p *model.Property) *model.Property {
	copied := *p
	if p.Media != nil {
		copied.Media = make([]model.MediaRef, len(p.Media))
		copy(copied.Media, p.Media)
	}
	copied.PublishedAt = copyTime(p.PublishedAt)
	copied.ValidatedAt = copyTime(p.ValidatedAt)
	copied.AssignedAt = copyTime(p.AssignedAt)
	return &copied
}

func (r *propertyRepository) Create(ctx context.Context, p *model.Property) (*model.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyProperty(p)
	created.ID = r.nextID
	if created.PublicID == "" {
		created.PublicID = types.NewPublicID()
	}
	created.Rev = 1
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.properties[created.ID] = created
	r.byPublic[created.PublicID] = created.ID
	return copyProperty(created), nil
}

func (r *propertyRepository) Get(ctx context.Context, id int64) (*model.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.properties[id]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "property not found", goerr.V("id", id))
	}
	return copyProperty(p), nil
}

func (r *propertyRepository) GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byPublic[publicID]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "property not found", goerr.V("public_id", publicID))
	}
	return copyProperty(r.properties[id]), nil
}

func (r *propertyRepository) List(ctx context.Context, filter interfaces.PropertyFilter) ([]*model.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	properties := []*model.Property{}
	for _, p := range r.properties {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.OwnerID != 0 && p.OwnerID != filter.OwnerID {
			continue
		}
		if filter.AgentID != 0 && p.AgentID != filter.AgentID {
			continue
		}
		if filter.City != "" && p.City != filter.City {
			continue
		}
		if filter.Featured && !p.Featured {
			continue
		}
		properties = append(properties, copyProperty(p))
	}
	return properties, nil
}

func (r *propertyRepository) Update(ctx context.Context, p *model.Property) (*model.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.properties[p.ID]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "property not found", goerr.V("id", p.ID))
	}
	if existing.Rev != p.Rev {
		return nil, goerr.Wrap(types.ErrConflict, "property was modified concurrently",
			goerr.V("id", p.ID),
			goerr.V("expected_rev", p.Rev),
			goerr.V("stored_rev", existing.Rev))
	}

	updated := copyProperty(p)
	updated.PublicID = existing.PublicID
	updated.Rev = existing.Rev + 1
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.properties[updated.ID] = updated
	return copyProperty(updated), nil
}

func (r *propertyRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, exists := r.properties[id]
	if !exists {
		return goerr.Wrap(types.ErrNotFound, "property not found", goerr.V("id", id))
	}

	delete(r.byPublic, p.PublicID)
	delete(r.properties, id)
	return nil
}
