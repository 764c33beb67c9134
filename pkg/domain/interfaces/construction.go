package interfaces

import (
	"context"

	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/types"
)

// ConstructionFilter narrows construction project listings
type ConstructionFilter struct {
	Status        types.ConstructionStatus
	OwnerID       int64
	AgentID       int64
	IsPublication bool
}

// ConstructionRepository defines the interface for ConstructionProject data access
type ConstructionRepository interface {
	Create(ctx context.Context, p *model.ConstructionProject) (*model.ConstructionProject, error)
	Get(ctx context.Context, id int64) (*model.ConstructionProject, error)
	GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.ConstructionProject, error)
	List(ctx context.Context, filter ConstructionFilter) ([]*model.ConstructionProject, error)
	Update(ctx context.Context, p *model.ConstructionProject) (*model.ConstructionProject, error)
	Delete(ctx context.Context, id int64) error
}

// QuoteRepository defines the interface for ConstructionQuote data access
type QuoteRepository interface {
	Create(ctx context.Context, q *model.ConstructionQuote) (*model.ConstructionQuote, error)
	Get(ctx context.Context, id int64) (*model.ConstructionQuote, error)
	GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.ConstructionQuote, error)
	ListByProject(ctx context.Context, projectID int64) ([]*model.ConstructionQuote, error)
	ListByAgent(ctx context.Context, agentID int64) ([]*model.ConstructionQuote, error)
	Update(ctx context.Context, q *model.ConstructionQuote) (*model.ConstructionQuote, error)
}
