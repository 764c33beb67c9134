package interfaces

import (
	"context"

	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/types"
)

// InvestmentFilter narrows investment project listings
type InvestmentFilter struct {
	ApprovalStatus types.ApprovalStatus
	Status         types.InvestmentStatus
	CreatedBy      int64
}

// InvestmentRepository defines the interface for InvestmentProject data access
type InvestmentRepository interface {
	Create(ctx context.Context, p *model.InvestmentProject) (*model.InvestmentProject, error)
	Get(ctx context.Context, id int64) (*model.InvestmentProject, error)
	GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.InvestmentProject, error)
	List(ctx context.Context, filter InvestmentFilter) ([]*model.InvestmentProject, error)
	Update(ctx context.Context, p *model.InvestmentProject) (*model.InvestmentProject, error)
	Delete(ctx context.Context, id int64) error
}

// ProposalRepository defines the interface for InvestmentProposal data access
type ProposalRepository interface {
	Create(ctx context.Context, p *model.InvestmentProposal) (*model.InvestmentProposal, error)
	Get(ctx context.Context, id int64) (*model.InvestmentProposal, error)
	GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.InvestmentProposal, error)
	ListByInvestor(ctx context.Context, investorID int64) ([]*model.InvestmentProposal, error)
	ListByProject(ctx context.Context, projectID int64) ([]*model.InvestmentProposal, error)
	Update(ctx context.Context, p *model.InvestmentProposal) (*model.InvestmentProposal, error)
}
