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

type constructionRepository struct {
	client *firestore.Client
	prefix string
}

func (r *constructionRepository) collection() string {
	return collectionName(r.prefix, "construction_projects")
}

type constructionDoc struct {
	ID              int64
	PublicID        string
	OwnerID         int64
	AgentID         int64
	Title           string
	Description     string
	ProjectType     string
	BudgetMin       string
	BudgetMax       string
	SurfaceArea     string
	Location        string
	City            string
	IsPublication   bool
	Status          string
	RejectionReason string
	AssignedAt      *time.Time
	QuotedAt        *time.Time
	ApprovedAt      *time.Time
	RejectedAt      *time.Time
	CompletedAt     *time.Time
	DocumentPaths   []string
	ImagePaths      []string
	Rev             int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func toConstructionDoc(p *model.ConstructionProject) *constructionDoc {
	return &constructionDoc{
		ID:              p.ID,
		PublicID:        string(p.PublicID),
		OwnerID:         p.OwnerID,
		AgentID:         p.AgentID,
		Title:           p.Title,
		Description:     p.Description,
		ProjectType:     p.ProjectType,
		BudgetMin:       encDecimal(p.BudgetMin),
		BudgetMax:       encDecimal(p.BudgetMax),
		SurfaceArea:     encDecimal(p.SurfaceArea),
		Location:        p.Location,
		City:            p.City,
		IsPublication:   p.IsPublication,
		Status:          string(p.Status),
		RejectionReason: p.RejectionReason,
		AssignedAt:      p.AssignedAt,
		QuotedAt:        p.QuotedAt,
		ApprovedAt:      p.ApprovedAt,
		RejectedAt:      p.RejectedAt,
		CompletedAt:     p.CompletedAt,
		DocumentPaths:   p.DocumentPaths,
		ImagePaths:      p.ImagePaths,
		Rev:             p.Rev,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (d *constructionDoc) toModel() (*model.ConstructionProject, error) {
	budgetMin, err := decDecimal(d.BudgetMin)
	if err != nil {
		return nil, err
	}
	budgetMax, err := decDecimal(d.BudgetMax)
	if err != nil {
		return nil, err
	}
	surface, err := decDecimal(d.SurfaceArea)
	if err != nil {
		return nil, err
	}
	return &model.ConstructionProject{
		ID:              d.ID,
		PublicID:        types.PublicID(d.PublicID),
		OwnerID:         d.OwnerID,
		AgentID:         d.AgentID,
		Title:           d.Title,
		Description:     d.Description,
		ProjectType:     d.ProjectType,
		BudgetMin:       budgetMin,
		BudgetMax:       budgetMax,
		SurfaceArea:     surface,
		Location:        d.Location,
		City:            d.City,
		IsPublication:   d.IsPublication,
		Status:          types.ConstructionStatus(d.Status),
		RejectionReason: d.RejectionReason,
		AssignedAt:      d.AssignedAt,
		QuotedAt:        d.QuotedAt,
		ApprovedAt:      d.ApprovedAt,
		RejectedAt:      d.RejectedAt,
		CompletedAt:     d.CompletedAt,
		DocumentPaths:   d.DocumentPaths,
		ImagePaths:      d.ImagePaths,
		Rev:             d.Rev,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}, nil
}

func (r *constructionRepository) Create(ctx context.Context, p *model.ConstructionProject) (*model.ConstructionProject, error) {
	id, err := nextID(ctx, r.client, r.prefix, "construction_counter")
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
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, toConstructionDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create construction project", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *constructionRepository) Get(ctx context.Context, id int64) (*model.ConstructionProject, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.client.Collection(r.collection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrNotFound, "construction project not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get construction project", goerr.V("id", id))
	}

	var d constructionDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode construction project", goerr.V("id", id))
	}
	return d.toModel()
}

func (r *constructionRepository) GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.ConstructionProject, error) {
	iter := r.client.Collection(r.collection()).
		Where("PublicID", "==", string(publicID)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(types.ErrNotFound, "construction project not found", goerr.V("public_id", publicID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query construction project", goerr.V("public_id", publicID))
	}

	var d constructionDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode construction project", goerr.V("public_id", publicID))
	}
	return d.toModel()
}

func (r *constructionRepository) List(ctx context.Context, filter interfaces.ConstructionFilter) ([]*model.ConstructionProject, error) {
	query := r.client.Collection(r.collection()).Query
	if filter.Status != "" {
		query = query.Where("Status", "==", string(filter.Status))
	}
	if filter.OwnerID != 0 {
		query = query.Where("OwnerID", "==", filter.OwnerID)
	}
	if filter.AgentID != 0 {
		query = query.Where("AgentID", "==", filter.AgentID)
	}
	if filter.IsPublication {
		query = query.Where("IsPublication", "==", true)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	projects := []*model.ConstructionProject{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate construction projects")
		}

		var d constructionDoc
		if err := docSnap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode construction project", goerr.V("doc_id", docSnap.Ref.ID))
		}
		p, err := d.toModel()
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func (r *constructionRepository) Update(ctx context.Context, p *model.ConstructionProject) (*model.ConstructionProject, error) {
	docID := fmt.Sprintf("%d", p.ID)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	updated := *p
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docSnap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(types.ErrNotFound, "construction project not found", goerr.V("id", p.ID))
			}
			return goerr.Wrap(err, "failed to get construction project", goerr.V("id", p.ID))
		}

		var stored constructionDoc
		if err := docSnap.DataTo(&stored); err != nil {
			return goerr.Wrap(err, "failed to decode construction project", goerr.V("id", p.ID))
		}
		if stored.Rev != p.Rev {
			return goerr.Wrap(types.ErrConflict, "construction project was modified concurrently",
				goerr.V("id", p.ID),
				goerr.V("expected_rev", p.Rev),
				goerr.V("stored_rev", stored.Rev))
		}

		updated.PublicID = types.PublicID(stored.PublicID)
		updated.Rev = stored.Rev + 1
		updated.CreatedAt = stored.CreatedAt
		updated.UpdatedAt = time.Now().UTC()

		return tx.Set(docRef, toConstructionDoc(&updated))
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *constructionRepository) Delete(ctx context.Context, id int64) error {
	docID := fmt.Sprintf("%d", id)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(types.ErrNotFound, "construction project not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check construction project existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete construction project", goerr.V("id", id))
	}
	return nil
}

type quoteRepository struct {
	client *firestore.Client
	prefix string
}

func (r *quoteRepository) collection() string {
	return collectionName(r.prefix, "construction_quotes")
}

type quoteDoc struct {
	ID           int64
	PublicID     string
	ProjectID    int64
	AgentID      int64
	QuoteNumber  string
	TotalAmount  string
	Currency     string
	ValidityDays int
	Notes        string
	Status       string
	SentAt       *time.Time
	RespondedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func toQuoteDoc(q *model.ConstructionQuote) *quoteDoc {
	return &quoteDoc{
		ID:           q.ID,
		PublicID:     string(q.PublicID),
		ProjectID:    q.ProjectID,
		AgentID:      q.AgentID,
		QuoteNumber:  q.QuoteNumber,
		TotalAmount:  encDecimal(q.TotalAmount),
		Currency:     q.Currency,
		ValidityDays: q.ValidityDays,
		Notes:        q.Notes,
		Status:       string(q.Status),
		SentAt:       q.SentAt,
		RespondedAt:  q.RespondedAt,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
}

func (d *quoteDoc) toModel() (*model.ConstructionQuote, error) {
	amount, err := decDecimal(d.TotalAmount)
	if err != nil {
		return nil, err
	}
	return &model.ConstructionQuote{
		ID:           d.ID,
		PublicID:     types.PublicID(d.PublicID),
		ProjectID:    d.ProjectID,
		AgentID:      d.AgentID,
		QuoteNumber:  d.QuoteNumber,
		TotalAmount:  amount,
		Currency:     d.Currency,
		ValidityDays: d.ValidityDays,
		Notes:        d.Notes,
		Status:       types.QuoteStatus(d.Status),
		SentAt:       d.SentAt,
		RespondedAt:  d.RespondedAt,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}, nil
}

func (r *quoteRepository) Create(ctx context.Context, q *model.ConstructionQuote) (*model.ConstructionQuote, error) {
	id, err := nextID(ctx, r.client, r.prefix, "quote_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := *q
	created.ID = id
	if created.PublicID == "" {
		created.PublicID = types.NewPublicID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	docID := fmt.Sprintf("%d", created.ID)
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, toQuoteDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create quote", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *quoteRepository) Get(ctx context.Context, id int64) (*model.ConstructionQuote, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.client.Collection(r.collection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrNotFound, "quote not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get quote", goerr.V("id", id))
	}

	var d quoteDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode quote", goerr.V("id", id))
	}
	return d.toModel()
}

func (r *quoteRepository) GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.ConstructionQuote, error) {
	iter := r.client.Collection(r.collection()).
		Where("PublicID", "==", string(publicID)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(types.ErrNotFound, "quote not found", goerr.V("public_id", publicID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query quote", goerr.V("public_id", publicID))
	}

	var d quoteDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode quote", goerr.V("public_id", publicID))
	}
	return d.toModel()
}

func (r *quoteRepository) listWhere(ctx context.Context, field string, value int64) ([]*model.ConstructionQuote, error) {
	iter := r.client.Collection(r.collection()).
		Where(field, "==", value).
		Documents(ctx)
	defer iter.Stop()

	quotes := []*model.ConstructionQuote{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate quotes")
		}

		var d quoteDoc
		if err := docSnap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode quote", goerr.V("doc_id", docSnap.Ref.ID))
		}
		q, err := d.toModel()
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

func (r *quoteRepository) ListByProject(ctx context.Context, projectID int64) ([]*model.ConstructionQuote, error) {
	return r.listWhere(ctx, "ProjectID", projectID)
}

func (r *quoteRepository) ListByAgent(ctx context.Context, agentID int64) ([]*model.ConstructionQuote, error) {
	return r.listWhere(ctx, "AgentID", agentID)
}

func (r *quoteRepository) Update(ctx context.Context, q *model.ConstructionQuote) (*model.ConstructionQuote, error) {
	docID := fmt.Sprintf("%d", q.ID)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrNotFound, "quote not found", goerr.V("id", q.ID))
		}
		return nil, goerr.Wrap(err, "failed to check quote existence", goerr.V("id", q.ID))
	}

	var stored quoteDoc
	if err := docSnap.DataTo(&stored); err != nil {
		return nil, goerr.Wrap(err, "failed to decode quote", goerr.V("id", q.ID))
	}

	updated := *q
	updated.PublicID = types.PublicID(stored.PublicID)
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, toQuoteDoc(&updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update quote", goerr.V("id", q.ID))
	}
	return &updated, nil
}
