package interfaces

import (
	"context"

	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/types"
)

// SearchRequestFilter narrows search request listings
type SearchRequestFilter struct {
	Statuses []types.SearchRequestStatus
	OwnerID  int64
	AgentID  int64
}

// SearchRequestRepository defines the interface for SearchRequest data access
type SearchRequestRepository interface {
	Create(ctx context.Context, r *model.SearchRequest) (*model.SearchRequest, error)
	Get(ctx context.Context, id int64) (*model.SearchRequest, error)
	GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.SearchRequest, error)
	List(ctx context.Context, filter SearchRequestFilter) ([]*model.SearchRequest, error)
	Update(ctx context.Context, r *model.SearchRequest) (*model.SearchRequest, error)
}

// ClientRequestFilter narrows client request listings
type ClientRequestFilter struct {
	Statuses []types.ClientRequestStatus
	AgentID  int64
}

// ClientRequestRepository defines the interface for ClientRequest data access
type ClientRequestRepository interface {
	Create(ctx context.Context, r *model.ClientRequest) (*model.ClientRequest, error)
	Get(ctx context.Context, id int64) (*model.ClientRequest, error)
	GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.ClientRequest, error)
	List(ctx context.Context, filter ClientRequestFilter) ([]*model.ClientRequest, error)
	Update(ctx context.Context, r *model.ClientRequest) (*model.ClientRequest, error)
}

// PartnershipRepository defines the interface for Partnership data access
type PartnershipRepository interface {
	Create(ctx context.Context, p *model.Partnership) (*model.Partnership, error)
	Get(ctx context.Context, id int64) (*model.Partnership, error)
	GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.Partnership, error)
	GetLatestByOwner(ctx context.Context, ownerID int64) (*model.Partnership, error)
	ListByStatus(ctx context.Context, status types.PartnershipStatus) ([]*model.Partnership, error)
	Update(ctx context.Context, p *model.Partnership) (*model.Partnership, error)
	Delete(ctx context.Context, id int64) error
}
