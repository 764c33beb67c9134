package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/teranga-immo/teranga/pkg/domain/interfaces"
	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/types"
)

type searchRequestRepository struct {
	client *firestore.Client
	prefix string
}

func (r *searchRequestRepository) collection() string {
	return collectionName(r.prefix, "search_requests")
}

type searchRequestDoc struct {
	ID                     int64
	PublicID               string
	OwnerID                int64
	AgentID                int64
	TransactionType        string
	BudgetMin              string
	BudgetMax              string
	LocationPreferences    []string
	BedroomsMin            int
	SurfaceMin             string
	AdditionalRequirements string
	Priority               int
	Status                 string
	RejectionReason        string
	ApprovedAt             *time.Time
	AssignedAt             *time.Time
	FulfilledAt            *time.Time
	RejectedAt             *time.Time
	CancelledAt            *time.Time
	Rev                    int64
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func toSearchRequestDoc(sr *model.SearchRequest) *searchRequestDoc {
	return &searchRequestDoc{
		ID:                     sr.ID,
		PublicID:               string(sr.PublicID),
		OwnerID:                sr.OwnerID,
		AgentID:                sr.AgentID,
		TransactionType:        sr.TransactionType,
		BudgetMin:              encDecimal(sr.BudgetMin),
		BudgetMax:              encDecimal(sr.BudgetMax),
		LocationPreferences:    sr.LocationPreferences,
		BedroomsMin:            sr.BedroomsMin,
		SurfaceMin:             encDecimal(sr.SurfaceMin),
		AdditionalRequirements: sr.AdditionalRequirements,
		Priority:               sr.Priority,
		Status:                 string(sr.Status),
		RejectionReason:        sr.RejectionReason,
		ApprovedAt:             sr.ApprovedAt,
		AssignedAt:             sr.AssignedAt,
		FulfilledAt:            sr.FulfilledAt,
		RejectedAt:             sr.RejectedAt,
		CancelledAt:            sr.CancelledAt,
		Rev:                    sr.Rev,
		CreatedAt:              sr.CreatedAt,
		UpdatedAt:              sr.UpdatedAt,
	}
}

func (d *searchRequestDoc) toModel() (*model.SearchRequest, error) {
	budgetMin, err := decDecimal(d.BudgetMin)
	if err != nil {
		return nil, err
	}
	budgetMax, err := decDecimal(d.BudgetMax)
	if err != nil {
		return nil, err
	}
	surfaceMin, err := decDecimal(d.SurfaceMin)
	if err != nil {
		return nil, err
	}
	return &model.SearchRequest{
		ID:                     d.ID,
		PublicID:               types.PublicID(d.PublicID),
		OwnerID:                d.OwnerID,
		AgentID:                d.AgentID,
		TransactionType:        d.TransactionType,
		BudgetMin:              budgetMin,
		BudgetMax:              budgetMax,
		LocationPreferences:    d.LocationPreferences,
		BedroomsMin:            d.BedroomsMin,
		SurfaceMin:             surfaceMin,
		AdditionalRequirements: d.AdditionalRequirements,
		Priority:               d.Priority,
		Status:                 types.SearchRequestStatus(d.Status),
		RejectionReason:        d.RejectionReason,
		ApprovedAt:             d.ApprovedAt,
		AssignedAt:             d.AssignedAt,
		FulfilledAt:            d.FulfilledAt,
		RejectedAt:             d.RejectedAt,
		CancelledAt:            d.CancelledAt,
		Rev:                    d.Rev,
		CreatedAt:              d.CreatedAt,
		UpdatedAt:              d.UpdatedAt,
	}, nil
}

func (r *searchRequestRepository) Create(ctx context.Context, sr *model.SearchRequest) (*model.SearchRequest, error) {
	id, err := nextID(ctx, r.client, r.prefix, "search_request_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := *sr
	created.ID = id
	if created.PublicID == "" {
		created.PublicID = types.NewPublicID()
	}
	created.Rev = 1
	created.CreatedAt = now
	created.UpdatedAt = now

	docID := fmt.Sprintf("%d", created.ID)
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, toSearchRequestDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create search request", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *searchRequestRepository) Get(ctx context.Context, id int64) (*model.SearchRequest, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.client.Collection(r.collection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrNotFound, "search request not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get search request", goerr.V("id", id))
	}

	var d searchRequestDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode search request", goerr.V("id", id))
	}
	return d.toModel()
}

func (r *searchRequestRepository) GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.SearchRequest, error) {
	iter := r.client.Collection(r.collection()).
		Where("PublicID", "==", string(publicID)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(types.ErrNotFound, "search request not found", goerr.V("public_id", publicID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query search request", goerr.V("public_id", publicID))
	}

	var d searchRequestDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode search request", goerr.V("public_id", publicID))
	}
	return d.toModel()
}

func (r *searchRequestRepository) List(ctx context.Context, filter interfaces.SearchRequestFilter) ([]*model.SearchRequest, error) {
	query := r.client.Collection(r.collection()).Query
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		query = query.Where("Status", "in", statuses)
	}
	if filter.OwnerID != 0 {
		query = query.Where("OwnerID", "==", filter.OwnerID)
	}
	if filter.AgentID != 0 {
		query = query.Where("AgentID", "==", filter.AgentID)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	requests := []*model.SearchRequest{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate search requests")
		}

		var d searchRequestDoc
		if err := docSnap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode search request", goerr.V("doc_id", docSnap.Ref.ID))
		}
		sr, err := d.toModel()
		if err != nil {
			return nil, err
		}
		requests = append(requests, sr)
	}
	return requests, nil
}

func (r *searchRequestRepository) Update(ctx context.Context, sr *model.SearchRequest) (*model.SearchRequest, error) {
	docID := fmt.Sprintf("%d", sr.ID)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	updated := *sr
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docSnap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(types.ErrNotFound, "search request not found", goerr.V("id", sr.ID))
			}
			return goerr.Wrap(err, "failed to get search request", goerr.V("id", sr.ID))
		}

		var stored searchRequestDoc
		if err := docSnap.DataTo(&stored); err != nil {
			return goerr.Wrap(err, "failed to decode search request", goerr.V("id", sr.ID))
		}
		if stored.Rev != sr.Rev {
			return goerr.Wrap(types.ErrConflict, "search request was modified concurrently",
				goerr.V("id", sr.ID),
				goerr.V("expected_rev", sr.Rev),
				goerr.V("stored_rev", stored.Rev))
		}

		updated.PublicID = types.PublicID(stored.PublicID)
		updated.Rev = stored.Rev + 1
		updated.CreatedAt = stored.CreatedAt
		updated.UpdatedAt = time.Now().UTC()

		return tx.Set(docRef, toSearchRequestDoc(&updated))
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

type clientRequestRepository struct {
	client *firestore.Client
	prefix string
}

func (r *clientRequestRepository) collection() string {
	return collectionName(r.prefix, "client_requests")
}

func (r *clientRequestRepository) Create(ctx context.Context, cr *model.ClientRequest) (*model.ClientRequest, error) {
	id, err := nextID(ctx, r.client, r.prefix, "client_request_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := *cr
	created.ID = id
	if created.PublicID == "" {
		created.PublicID = types.NewPublicID()
	}
	created.Rev = 1
	created.CreatedAt = now
	created.UpdatedAt = now

	docID := fmt.Sprintf("%d", created.ID)
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create client request", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *clientRequestRepository) Get(ctx context.Context, id int64) (*model.ClientRequest, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.client.Collection(r.collection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrNotFound, "client request not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get client request", goerr.V("id", id))
	}

	var cr model.ClientRequest
	if err := docSnap.DataTo(&cr); err != nil {
		return nil, goerr.Wrap(err, "failed to decode client request", goerr.V("id", id))
	}
	return &cr, nil
}

func (r *clientRequestRepository) GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.ClientRequest, error) {
	iter := r.client.Collection(r.collection()).
		Where("PublicID", "==", string(publicID)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(types.ErrNotFound, "client request not found", goerr.V("public_id", publicID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query client request", goerr.V("public_id", publicID))
	}

	var cr model.ClientRequest
	if err := docSnap.DataTo(&cr); err != nil {
		return nil, goerr.Wrap(err, "failed to decode client request", goerr.V("public_id", publicID))
	}
	return &cr, nil
}

func (r *clientRequestRepository) List(ctx context.Context, filter interfaces.ClientRequestFilter) ([]*model.ClientRequest, error) {
	query := r.client.Collection(r.collection()).Query
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		query = query.Where("Status", "in", statuses)
	}
	if filter.AgentID != 0 {
		query = query.Where("AgentID", "==", filter.AgentID)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	requests := []*model.ClientRequest{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate client requests")
		}

		var cr model.ClientRequest
		if err := docSnap.DataTo(&cr); err != nil {
			return nil, goerr.Wrap(err, "failed to decode client request", goerr.V("doc_id", docSnap.Ref.ID))
		}
		requests = append(requests, &cr)
	}
	return requests, nil
}

func (r *clientRequestRepository) Update(ctx context.Context, cr *model.ClientRequest) (*model.ClientRequest, error) {
	docID := fmt.Sprintf("%d", cr.ID)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	updated := *cr
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docSnap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(types.ErrNotFound, "client request not found", goerr.V("id", cr.ID))
			}
			return goerr.Wrap(err, "failed to get client request", goerr.V("id", cr.ID))
		}

		var stored model.ClientRequest
		if err := docSnap.DataTo(&stored); err != nil {
			return goerr.Wrap(err, "failed to decode client request", goerr.V("id", cr.ID))
		}
		if stored.Rev != cr.Rev {
			return goerr.Wrap(types.ErrConflict, "client request was modified concurrently",
				goerr.V("id", cr.ID),
				goerr.V("expected_rev", cr.Rev),
				goerr.V("stored_rev", stored.Rev))
		}

		updated.PublicID = stored.PublicID
		updated.Rev = stored.Rev + 1
		updated.CreatedAt = stored.CreatedAt
		updated.UpdatedAt = time.Now().UTC()

		return tx.Set(docRef, &updated)
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

type partnershipRepository struct {
	client *firestore.Client
	prefix string
}

func (r *partnershipRepository) collection() string {
	return collectionName(r.prefix, "partnerships")
}

func (r *partnershipRepository) Create(ctx context.Context, p *model.Partnership) (*model.Partnership, error) {
	id, err := nextID(ctx, r.client, r.prefix, "partnership_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := *p
	created.ID = id
	if created.PublicID == "" {
		created.PublicID = types.NewPublicID()
	}
	created.Rev = 1
	created.CreatedAt = now
	created.UpdatedAt = now

	docID := fmt.Sprintf("%d", created.ID)
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create partnership", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *partnershipRepository) Get(ctx context.Context, id int64) (*model.Partnership, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.client.Collection(r.collection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrNotFound, "partnership not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get partnership", goerr.V("id", id))
	}

	var p model.Partnership
	if err := docSnap.DataTo(&p); err != nil {
		return nil, goerr.Wrap(err, "failed to decode partnership", goerr.V("id", id))
	}
	return &p, nil
}

func (r *partnershipRepository) GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.Partnership, error) {
	iter := r.client.Collection(r.collection()).
		Where("PublicID", "==", string(publicID)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(types.ErrNotFound, "partnership not found", goerr.V("public_id", publicID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query partnership", goerr.V("public_id", publicID))
	}

	var p model.Partnership
	if err := docSnap.DataTo(&p); err != nil {
		return nil, goerr.Wrap(err, "failed to decode partnership", goerr.V("public_id", publicID))
	}
	return &p, nil
}

func (r *partnershipRepository) GetLatestByOwner(ctx context.Context, ownerID int64) (*model.Partnership, error) {
	iter := r.client.Collection(r.collection()).
		Where("OwnerID", "==", ownerID).
		OrderBy("CreatedAt", firestore.Desc).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(types.ErrNotFound, "partnership not found", goerr.V("owner_id", ownerID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query partnership", goerr.V("owner_id", ownerID))
	}

	var p model.Partnership
	if err := docSnap.DataTo(&p); err != nil {
		return nil, goerr.Wrap(err, "failed to decode partnership", goerr.V("owner_id", ownerID))
	}
	return &p, nil
}

func (r *partnershipRepository) ListByStatus(ctx context.Context, partnershipStatus types.PartnershipStatus) ([]*model.Partnership, error) {
	query := r.client.Collection(r.collection()).Query
	if partnershipStatus != "" {
		query = query.Where("Status", "==", string(partnershipStatus))
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	partnerships := []*model.Partnership{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate partnerships")
		}

		var p model.Partnership
		if err := docSnap.DataTo(&p); err != nil {
			return nil, goerr.Wrap(err, "failed to decode partnership", goerr.V("doc_id", docSnap.Ref.ID))
		}
		partnerships = append(partnerships, &p)
	}
	return partnerships, nil
}

func (r *partnershipRepository) Update(ctx context.Context, p *model.Partnership) (*model.Partnership, error) {
	docID := fmt.Sprintf("%d", p.ID)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	updated := *p
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docSnap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(types.ErrNotFound, "partnership not found", goerr.V("id", p.ID))
			}
			return goerr.Wrap(err, "failed to get partnership", goerr.V("id", p.ID))
		}

		var stored model.Partnership
		if err := docSnap.DataTo(&stored); err != nil {
			return goerr.Wrap(err, "failed to decode partnership", goerr.V("id", p.ID))
		}
		if stored.Rev != p.Rev {
			return goerr.Wrap(types.ErrConflict, "partnership was modified concurrently",
				goerr.V("id", p.ID),
				goerr.V("expected_rev", p.Rev),
				goerr.V("stored_rev", stored.Rev))
		}

		updated.PublicID = stored.PublicID
		updated.Rev = stored.Rev + 1
		updated.CreatedAt = stored.CreatedAt
		updated.UpdatedAt = time.Now().UTC()

		return tx.Set(docRef, &updated)
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *partnershipRepository) Delete(ctx context.Context, id int64) error {
	docID := fmt.Sprintf("%d", id)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(types.ErrNotFound, "partnership not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check partnership existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete partnership", goerr.V("id", id))
	}
	return nil
}
