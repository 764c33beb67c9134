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

type searchRequestRepository struct {
	mu       sync.RWMutex
	requests map[int64]*model.SearchRequest
	byPublic map[types.PublicID]int64
	nextID   int64
}

func newSearchRequestRepository() *searchRequestRepository {
	return &searchRequestRepository{
		requests: make(map[int64]*model.SearchRequest),
		byPublic: make(map[types.PublicID]int64),
		nextID:   1,
	}
}

func copySearchRequest(sr *model.SearchRequest) *model.SearchRequest {
	copied := *sr
	copied.LocationPreferences = copyStrings(sr.LocationPreferences)
	copied.ApprovedAt = copyTime(sr.ApprovedAt)
	copied.AssignedAt = copyTime(sr.AssignedAt)
	copied.FulfilledAt = copyTime(sr.FulfilledAt)
	copied.RejectedAt = copyTime(sr.RejectedAt)
	copied.CancelledAt = copyTime(sr.CancelledAt)
	return &copied
}

func (r *searchRequestRepository) Create(ctx context.Context, sr *model.SearchRequest) (*model.SearchRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copySearchRequest(sr)
	created.ID = r.nextID
	if created.PublicID == "" {
		created.PublicID = types.NewPublicID()
	}
	created.Rev = 1
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.requests[created.ID] = created
	r.byPublic[created.PublicID] = created.ID
	return copySearchRequest(created), nil
}

func (r *searchRequestRepository) Get(ctx context.Context, id int64) (*model.SearchRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sr, exists := r.requests[id]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "search request not found", goerr.V("id", id))
	}
	return copySearchRequest(sr), nil
}

func (r *searchRequestRepository) GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.SearchRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byPublic[publicID]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "search request not found", goerr.V("public_id", publicID))
	}
	return copySearchRequest(r.requests[id]), nil
}

func (r *searchRequestRepository) List(ctx context.Context, filter interfaces.SearchRequestFilter) ([]*model.SearchRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var wanted map[types.SearchRequestStatus]bool
	if len(filter.Statuses) > 0 {
		wanted = make(map[types.SearchRequestStatus]bool, len(filter.Statuses))
		for _, s := range filter.Statuses {
			wanted[s] = true
		}
	}

	requests := []*model.SearchRequest{}
	for _, sr := range r.requests {
		if wanted != nil && !wanted[sr.Status] {
			continue
		}
		if filter.OwnerID != 0 && sr.OwnerID != filter.OwnerID {
			continue
		}
		if filter.AgentID != 0 && sr.AgentID != filter.AgentID {
			continue
		}
		requests = append(requests, copySearchRequest(sr))
	}
	return requests, nil
}

func (r *searchRequestRepository) Update(ctx context.Context, sr *model.SearchRequest) (*model.SearchRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.requests[sr.ID]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "search request not found", goerr.V("id", sr.ID))
	}
	if existing.Rev != sr.Rev {
		return nil, goerr.Wrap(types.ErrConflict, "search request was modified concurrently",
			goerr.V("id", sr.ID),
			goerr.V("expected_rev", sr.Rev),
			goerr.V("stored_rev", existing.Rev))
	}

	updated := copySearchRequest(sr)
	updated.PublicID = existing.PublicID
	updated.Rev = existing.Rev + 1
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.requests[updated.ID] = updated
	return copySearchRequest(updated), nil
}

type clientRequestRepository struct {
	mu       sync.RWMutex
	requests map[int64]*model.ClientRequest
	byPublic map[types.PublicID]int64
	nextID   int64
}

func newClientRequestRepository() *clientRequestRepository {
	return &clientRequestRepository{
		requests: make(map[int64]*model.ClientRequest),
		byPublic: make(map[types.PublicID]int64),
		nextID:   1,
	}
}

func copyClientRequest(cr *model.ClientRequest) *model.ClientRequest {
	copied := *cr
	copied.ApprovedAt = copyTime(cr.ApprovedAt)
	copied.RejectedAt = copyTime(cr.RejectedAt)
	copied.AssignedAt = copyTime(cr.AssignedAt)
	return &copied
}

func (r *clientRequestRepository) Create(ctx context.Context, cr *model.ClientRequest) (*model.ClientRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyClientRequest(cr)
	created.ID = r.nextID
	if created.PublicID == "" {
		created.PublicID = types.NewPublicID()
	}
	created.Rev = 1
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.requests[created.ID] = created
	r.byPublic[created.PublicID] = created.ID
	return copyClientRequest(created), nil
}

func (r *clientRequestRepository) Get(ctx context.Context, id int64) (*model.ClientRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cr, exists := r.requests[id]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "client request not found", goerr.V("id", id))
	}
	return copyClientRequest(cr), nil
}

func (r *clientRequestRepository) GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.ClientRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byPublic[publicID]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "client request not found", goerr.V("public_id", publicID))
	}
	return copyClientRequest(r.requests[id]), nil
}

func (r *clientRequestRepository) List(ctx context.Context, filter interfaces.ClientRequestFilter) ([]*model.ClientRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var wanted map[types.ClientRequestStatus]bool
	if len(filter.Statuses) > 0 {
		wanted = make(map[types.ClientRequestStatus]bool, len(filter.Statuses))
		for _, s := range filter.Statuses {
			wanted[s] = true
		}
	}

	requests := []*model.ClientRequest{}
	for _, cr := range r.requests {
		if wanted != nil && !wanted[cr.Status] {
			continue
		}
		if filter.AgentID != 0 && cr.AgentID != filter.AgentID {
			continue
		}
		requests = append(requests, copyClientRequest(cr))
	}
	return requests, nil
}

func (r *clientRequestRepository) Update(ctx context.Context, cr *model.ClientRequest) (*model.ClientRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.requests[cr.ID]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "client request not found", goerr.V("id", cr.ID))
	}
	if existing.Rev != cr.Rev {
		return nil, goerr.Wrap(types.ErrConflict, "client request was modified concurrently",
			goerr.V("id", cr.ID),
			goerr.V("expected_rev", cr.Rev),
			goerr.V("stored_rev", existing.Rev))
	}

	updated := copyClientRequest(cr)
	updated.PublicID = existing.PublicID
	updated.Rev = existing.Rev + 1
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.requests[updated.ID] = updated
	return copyClientRequest(updated), nil
}

type partnershipRepository struct {
	mu           sync.RWMutex
	partnerships map[int64]*model.Partnership
	byPublic     map[types.PublicID]int64
	nextID       int64
}

func newPartnershipRepository() *partnershipRepository {
	return &partnershipRepository{
		partnerships: make(map[int64]*model.Partnership),
		byPublic:     make(map[types.PublicID]int64),
		nextID:       1,
	}
}

func copyPartnership(p *model.Partnership) *model.Partnership {
	copied := *p
	copied.DocumentPaths = copyStrings(p.DocumentPaths)
	copied.ApprovedAt = copyTime(p.ApprovedAt)
	copied.RejectedAt = copyTime(p.RejectedAt)
	return &copied
}

func (r *partnershipRepository) Create(ctx context.Context, p *model.Partnership) (*model.Partnership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyPartnership(p)
	created.ID = r.nextID
	if created.PublicID == "" {
		created.PublicID = types.NewPublicID()
	}
	created.Rev = 1
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.partnerships[created.ID] = created
	r.byPublic[created.PublicID] = created.ID
	return copyPartnership(created), nil
}

func (r *partnershipRepository) Get(ctx context.Context, id int64) (*model.Partnership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.partnerships[id]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "partnership not found", goerr.V("id", id))
	}
	return copyPartnership(p), nil
}

func (r *partnershipRepository) GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.Partnership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byPublic[publicID]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "partnership not found", goerr.V("public_id", publicID))
	}
	return copyPartnership(r.partnerships[id]), nil
}

func (r *partnershipRepository) GetLatestByOwner(ctx context.Context, ownerID int64) (*model.Partnership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *model.Partnership
	for _, p := range r.partnerships {
		if p.OwnerID != ownerID {
			continue
		}
		if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
			latest = p
		}
	}
	if latest == nil {
		return nil, goerr.Wrap(types.ErrNotFound, "partnership not found", goerr.V("owner_id", ownerID))
	}
	return copyPartnership(latest), nil
}

func (r *partnershipRepository) ListByStatus(ctx context.Context, status types.PartnershipStatus) ([]*model.Partnership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	partnerships := []*model.Partnership{}
	for _, p := range r.partnerships {
		if status != "" && p.Status != status {
			continue
		}
		partnerships = append(partnerships, copyPartnership(p))
	}
	return partnerships, nil
}

func (r *partnershipRepository) Update(ctx context.Context, p *model.Partnership) (*model.Partnership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.partnerships[p.ID]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "partnership not found", goerr.V("id", p.ID))
	}
	if existing.Rev != p.Rev {
		return nil, goerr.Wrap(types.ErrConflict, "partnership was modified concurrently",
			goerr.V("id", p.ID),
			goerr.V("expected_rev", p.Rev),
			goerr.V("stored_rev", existing.Rev))
	}

	updated := copyPartnership(p)
	updated.PublicID = existing.PublicID
	updated.Rev = existing.Rev + 1
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.partnerships[updated.ID] = updated
	return copyPartnership(updated), nil
}

func (r *partnershipRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, exists := r.partnerships[id]
	if !exists {
		return goerr.Wrap(types.ErrNotFound, "partnership not found", goerr.V("id", id))
	}

	delete(r.byPublic, p.PublicID)
	delete(r.partnerships, id)
	return nil
}
