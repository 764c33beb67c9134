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

type constructionRepository struct {
	mu       sync.RWMutex
	projects map[int64]*model.ConstructionProject
	byPublic map[types.PublicID]int64
	nextID   int64
}

func newConstructionRepository() *constructionRepository {
	return &constructionRepository{
		projects: make(map[int64]*model.ConstructionProject),
		byPublic: make(map[types.PublicID]int64),
		nextID:   1,
	}
}

func copyConstruction(p *model.ConstructionProject) *model.ConstructionProject {
	copied := *p
	copied.DocumentPaths = copyStrings(p.DocumentPaths)
	copied.ImagePaths = copyStrings(p.ImagePaths)
	copied.AssignedAt = copyTime(p.AssignedAt)
	copied.QuotedAt = copyTime(p.QuotedAt)
	copied.ApprovedAt = copyTime(p.ApprovedAt)
	copied.RejectedAt = copyTime(p.RejectedAt)
	copied.CompletedAt = copyTime(p.CompletedAt)
	return &copied
}

func (r *constructionRepository) Create(ctx context.Context, p *model.ConstructionProject) (*model.ConstructionProject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyConstruction(p)
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
	return copyConstruction(created), nil
}

func (r *constructionRepository) Get(ctx context.Context, id int64) (*model.ConstructionProject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.projects[id]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "construction project not found", goerr.V("id", id))
	}
	return copyConstruction(p), nil
}

func (r *constructionRepository) GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.ConstructionProject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byPublic[publicID]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "construction project not found", goerr.V("public_id", publicID))
	}
	return copyConstruction(r.projects[id]), nil
}

func (r *constructionRepository) List(ctx context.Context, filter interfaces.ConstructionFilter) ([]*model.ConstructionProject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	projects := []*model.ConstructionProject{}
	for _, p := range r.projects {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.OwnerID != 0 && p.OwnerID != filter.OwnerID {
			continue
		}
		if filter.AgentID != 0 && p.AgentID != filter.AgentID {
			continue
		}
		if filter.IsPublication && !p.IsPublication {
			continue
		}
		projects = append(projects, copyConstruction(p))
	}
	return projects, nil
}

func (r *constructionRepository) Update(ctx context.Context, p *model.ConstructionProject) (*model.ConstructionProject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.projects[p.ID]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "construction project not found", goerr.V("id", p.ID))
	}
	if existing.Rev != p.Rev {
		return nil, goerr.Wrap(types.ErrConflict, "construction project was modified concurrently",
			goerr.V("id", p.ID),
			goerr.V("expected_rev", p.Rev),
			goerr.V("stored_rev", existing.Rev))
	}

	updated := copyConstruction(p)
	updated.PublicID = existing.PublicID
	updated.Rev = existing.Rev + 1
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.projects[updated.ID] = updated
	return copyConstruction(updated), nil
}

func (r *constructionRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, exists := r.projects[id]
	if !exists {
		return goerr.Wrap(types.ErrNotFound, "construction project not found", goerr.V("id", id))
	}

	delete(r.byPublic, p.PublicID)
	delete(r.projects, id)
	return nil
}

type quoteRepository struct {
	mu       sync.RWMutex
	quotes   map[int64]*model.ConstructionQuote
	byPublic map[types.PublicID]int64
	nextID   int64
}

func newQuoteRepository() *quoteRepository {
	return &quoteRepository{
		quotes:   make(map[int64]*model.ConstructionQuote),
		byPublic: make(map[types.PublicID]int64),
		nextID:   1,
	}
}

func copyQuote(q *model.ConstructionQuote) *model.ConstructionQuote {
	copied := *q
	copied.SentAt = copyTime(q.SentAt)
	copied.RespondedAt = copyTime(q.RespondedAt)
	return &copied
}

func (r *quoteRepository) Create(ctx context.Context, q *model.ConstructionQuote) (*model.ConstructionQuote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyQuote(q)
	created.ID = r.nextID
	if created.PublicID == "" {
		created.PublicID = types.NewPublicID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.quotes[created.ID] = created
	r.byPublic[created.PublicID] = created.ID
	return copyQuote(created), nil
}

func (r *quoteRepository) Get(ctx context.Context, id int64) (*model.ConstructionQuote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, exists := r.quotes[id]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "quote not found", goerr.V("id", id))
	}
	return copyQuote(q), nil
}

func (r *quoteRepository) GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.ConstructionQuote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byPublic[publicID]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "quote not found", goerr.V("public_id", publicID))
	}
	return copyQuote(r.quotes[id]), nil
}

func (r *quoteRepository) ListByProject(ctx context.Context, projectID int64) ([]*model.ConstructionQuote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	quotes := []*model.ConstructionQuote{}
	for _, q := range r.quotes {
		if q.ProjectID == projectID {
			quotes = append(quotes, copyQuote(q))
		}
	}
	return quotes, nil
}

func (r *quoteRepository) ListByAgent(ctx context.Context, agentID int64) ([]*model.ConstructionQuote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	quotes := []*model.ConstructionQuote{}
	for _, q := range r.quotes {
		if q.AgentID == agentID {
			quotes = append(quotes, copyQuote(q))
		}
	}
	return quotes, nil
}

func (r *quoteRepository) Update(ctx context.Context, q *model.ConstructionQuote) (*model.ConstructionQuote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.quotes[q.ID]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "quote not found", goerr.V("id", q.ID))
	}

	updated := copyQuote(q)
	updated.PublicID = existing.PublicID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.quotes[updated.ID] = updated
	return copyQuote(updated), nil
}
