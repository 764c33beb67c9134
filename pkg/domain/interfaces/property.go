package interfaces

import (
	"context"

	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/types"
)

// PropertyFilter narrows property listings
type PropertyFilter struct {
	Status   types.PropertyStatus
	OwnerID  int64
	AgentID  int64
	City     string
	Featured bool
}

// PropertyRepository defines the interface for Property data access
type PropertyRepository interface {
	// Create creates a new property with auto-generated internal ID
	Create(ctx context.Context, p *model.Property) (*model.Property, error)

	// Get retrieves a property by internal ID
	Get(ctx context.Context, id int64) (*model.Property, error)

	// GetByPublicID retrieves a property by public ID
	GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.Property, error)

	// List retrieves properties matching the filter
	List(ctx context.Context, filter PropertyFilter) ([]*model.Property, error)

	// Update updates an existing property; fails with types.ErrConflict on
	// a stale revision
	Update(ctx context.Context, p *model.Property) (*model.Property, error)

	// Delete deletes a property by internal ID
	Delete(ctx context.Context, id int64) error
}
