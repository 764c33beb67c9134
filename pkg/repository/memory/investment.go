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

type investmentRepository struct {
	mu       sync.RWMutex
	projects map[int64]*model.InvestmentProject
	byPublic map[types.PublicID]int64
	nextID   int64
}

func newInvestmentRepository() *investmentRepository {
	return &investmentRepository{
		projects: make(map[int64]*model.InvestmentProject),
		byPublic: make(map[types.PublicID]int64),
		nextID:   1,
	}
}

func copyInvestment(p *model.InvestmentProject) *model.InvestmentProject {
	copied := *p
	copied.DocumentPaths = copyStrings(p.DocumentPaths)
	copied.ImagePaths = copyStrings(p.ImagePaths)
	copied.ApprovedAt = copyTime(p.ApprovedAt)
	copied.RejectedAt = copyTime(p.RejectedAt)
	return &copied
}

func (r *investmentRepository) Create(ctx context.Context, p *model.InvestmentProject) (*model.InvestmentProject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyInvestment(p)
	created.ID = r.nextID
	if created.PublicID == "" {
		created.PublicID = types.NewPublicID()
	}
	created.Rev = 1
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.projects[created.ID] = created
	r.byPublic[created.PublicID] = created.ID
	return copyInvestment(created), nil
}

func (r *investmentRepository) Get(ctx context.Context, id int64) (*model.InvestmentProject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.projects[id]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "investment project not found", goerr.V("id", id))
	}
	return copyInvestment(p), nil
}

func (r *investmentRepository) GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.InvestmentProject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byPublic[publicID]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "investment project not found", goerr.V("public_id", publicID))
	}
	return copyInvestment(r.projects[id]), nil
}

func (r *investmentRepository) List(ctx context.Context, filter interfaces.InvestmentFilter) ([]*model.InvestmentProject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	projects := []*model.InvestmentProject{}
	for _, p := range r.projects {
		if filter.ApprovalStatus != "" && p.ApprovalStatus != filter.ApprovalStatus {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.CreatedBy != 0 && p.CreatedBy != filter.CreatedBy {
			continue
		}
		projects = append(projects, copyInvestment(p))
	}
	return projects, nil
}

func (r *investmentRepository) Update(ctx context.Context, p *model.InvestmentProject) (*model.InvestmentProject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.projects[p.ID]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "investment project not found", goerr.V("id", p.ID))
	}
	if existing.Rev != p.Rev {
		return nil, goerr.Wrap(types.ErrConflict, "investment project was modified concurrently",
			goerr.V("id", p.ID),
			goerr.V("expected_rev", p.Rev),
			goerr.V("stored_rev", existing.Rev))
	}

	updated := copyInvestment(p)
	updated.PublicID = existing.PublicID
	updated.Rev = existing.Rev + 1
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.projects[updated.ID] = updated
	return copyInvestment(updated), nil
}

func (r *investmentRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, exists := r.projects[id]
	if !exists {
		return goerr.Wrap(types.ErrNotFound, "investment project not found", goerr.V("id", id))
	}

	delete(r.byPublic, p.PublicID)
	delete(r.projects, id)
	return nil
}

type proposalRepository struct {
	mu        sync.RWMutex
	proposals map[int64]*model.InvestmentProposal
	byPublic  map[types.PublicID]int64
	nextID    int64
}

func newProposalRepository() *proposalRepository {
	return &proposalRepository{
		proposals: make(map[int64]*model.InvestmentProposal),
		byPublic:  make(map[types.PublicID]int64),
		nextID:    1,
	}
}

func copyProposal(p *model.InvestmentProposal) *model.InvestmentProposal {
	copied := *p
	copied.ReviewedAt = copyTime(p.ReviewedAt)
	return &copied
}

func (r *proposalRepository) Create(ctx context.Context, p *model.InvestmentProposal) (*model.InvestmentProposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyProposal(p)
	created.ID = r.nextID
	if created.PublicID == "" {
		created.PublicID = types.NewPublicID()
	}
	created.Rev = 1
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.proposals[created.ID] = created
	r.byPublic[created.PublicID] = created.ID
	return copyProposal(created), nil
}

func (r *proposalRepository) Get(ctx context.Context, id int64) (*model.InvestmentProposal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.proposals[id]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "proposal not found", goerr.V("id", id))
	}
	return copyProposal(p), nil
}

func (r *proposalRepository) GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.InvestmentProposal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byPublic[publicID]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "proposal not found", goerr.V("public_id", publicID))
	}
	return copyProposal(r.proposals[id]), nil
}

func (r *proposalRepository) ListByInvestor(ctx context.Context, investorID int64) ([]*model.InvestmentProposal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	proposals := []*model.InvestmentProposal{}
	for _, p := range r.proposals {
		if p.InvestorID == investorID {
			proposals = append(proposals, copyProposal(p))
		}
	}
	return proposals, nil
}

func (r *proposalRepository) ListByProject(ctx context.Context, projectID int64) ([]*model.InvestmentProposal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	proposals := []*model.InvestmentProposal{}
	for _, p := range r.proposals {
		if p.ProjectID == projectID {
			proposals = append(proposals, copyProposal(p))
		}
	}
	return proposals, nil
}

func (r *proposalRepository) Update(ctx context.Context, p *model.InvestmentProposal) (*model.InvestmentProposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.proposals[p.ID]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "proposal not found", goerr.V("id", p.ID))
	}
	if existing.Rev != p.Rev {
		return nil, goerr.Wrap(types.ErrConflict, "proposal was modified concurrently",
			goerr.V("id", p.ID),
			goerr.V("expected_rev", p.Rev),
			goerr.V("stored_rev", existing.Rev))
	}

	updated := copyProposal(p)
	updated.PublicID = existing.PublicID
	updated.Rev = existing.Rev + 1
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.proposals[updated.ID] = updated
	return copyProposal(updated), nil
}
