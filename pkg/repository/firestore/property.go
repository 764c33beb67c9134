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

type propertyRepository struct {
	client *firestore.Client
	prefix string
}

func (r *propertyRepository) collection() string {
	return collectionName(r.prefix, "properties")
}

type mediaRefDoc struct {
	Path     string
	Name     string
	MimeType string
	Primary  bool
}

type propertyDoc struct {
	ID              int64
	PublicID        string
	OwnerID         int64
	AgentID         int64
	Title           string
	Description     string
	TransactionType string
	PropertyType    string
	Price           string
	Currency        string
	SurfaceArea     string
	Bedrooms        int
	Bathrooms       int
	Address         string
	City            string
	Media           []mediaRefDoc
	Featured        bool
	ViewsCount      int64
	Status          string
	RejectionReason string
	PublishedAt     *time.Time
	ValidatedAt     *time.Time
	ValidatedBy     int64
	AssignedAt      *time.Time
	Rev             int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func toPropertyDoc(p *model.Property) *propertyDoc {
	media := make([]mediaRefDoc, len(p.Media))
	for i, m := range p.Media {
		media[i] = mediaRefDoc(m)
	}
	return &propertyDoc{
		ID:              p.ID,
		PublicID:        string(p.PublicID),
		OwnerID:         p.OwnerID,
		AgentID:         p.AgentID,
		Title:           p.Title,
		Description:     p.Description,
		TransactionType: p.TransactionType,
		PropertyType:    p.PropertyType,
		Price:           encDecimal(p.Price),
		Currency:        p.Currency,
		SurfaceArea:     encDecimal(p.SurfaceArea),
		Bedrooms:        p.Bedrooms,
		Bathrooms:       p.Bathrooms,
		Address:         p.Address,
		City:            p.City,
		Media:           media,
		Featured:        p.Featured,
		ViewsCount:      p.ViewsCount,
		Status:          string(p.Status),
		RejectionReason: p.RejectionReason,
		PublishedAt:     p.PublishedAt,
		ValidatedAt:     p.ValidatedAt,
		ValidatedBy:     p.ValidatedBy,
		AssignedAt:      p.AssignedAt,
		Rev:             p.Rev,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (d *propertyDoc) toModel() (*model.Property, error) {
	price, err := decDecimal(d.Price)
	if err != nil {
		return nil, err
	}
	surface, err := decDecimal(d.SurfaceArea)
	if err != nil {
		return nil, err
	}
	media := make([]model.MediaRef, len(d.Media))
	for i, m := range d.Media {
		media[i] = model.MediaRef(m)
	}
	return &model.Property{
		ID:              d.ID,
		PublicID:        types.PublicID(d.PublicID),
		OwnerID:         d.OwnerID,
		AgentID:         d.AgentID,
		Title:           d.Title,
		Description:     d.Description,
		TransactionType: d.TransactionType,
		PropertyType:    d.PropertyType,
		Price:           price,
		Currency:        d.Currency,
		SurfaceArea:     surface,
		Bedrooms:        d.Bedrooms,
		Bathrooms:       d.Bathrooms,
		Address:         d.Address,
		City:            d.City,
		Media:           media,
		Featured:        d.Featured,
		ViewsCount:      d.ViewsCount,
		Status:          types.PropertyStatus(d.Status),
		RejectionReason: d.RejectionReason,
		PublishedAt:     d.PublishedAt,
		ValidatedAt:     d.ValidatedAt,
		ValidatedBy:     d.ValidatedBy,
		AssignedAt:      d.AssignedAt,
		Rev:             d.Rev,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}, nil
}

func (r *propertyRepository) Create(ctx context.Context, p *model.Property) (*model.Property, error) {
	id, err := nextID(ctx, r.client, r.prefix, "property_counter")
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
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, toPropertyDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create property", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *propertyRepository) Get(ctx context.Context, id int64) (*model.Property, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.client.Collection(r.collection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrNotFound, "property not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get property", goerr.V("id", id))
	}

	var d propertyDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode property", goerr.V("id", id))
	}
	return d.toModel()
}

func (r *propertyRepository) GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.Property, error) {
	iter := r.client.Collection(r.collection()).
		Where("PublicID", "==", string(publicID)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(types.ErrNotFound, "property not found", goerr.V("public_id", publicID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query property", goerr.V("public_id", publicID))
	}

	var d propertyDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode property", goerr.V("public_id", publicID))
	}
	return d.toModel()
}

func (r *propertyRepository) List(ctx context.Context, filter interfaces.PropertyFilter) ([]*model.Property, error) {
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
	if filter.City != "" {
		query = query.Where("City", "==", filter.City)
	}
	if filter.Featured {
		query = query.Where("Featured", "==", true)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	properties := []*model.Property{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate properties")
		}

		var d propertyDoc
		if err := docSnap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode property", goerr.V("doc_id", docSnap.Ref.ID))
		}
		p, err := d.toModel()
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, nil
}

func (r *propertyRepository) Update(ctx context.Context, p *model.Property) (*model.Property, error) {
	docID := fmt.Sprintf("%d", p.ID)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	updated := *p
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docSnap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(types.ErrNotFound, "property not found", goerr.V("id", p.ID))
			}
			return goerr.Wrap(err, "failed to get property", goerr.V("id", p.ID))
		}

		var stored propertyDoc
		if err := docSnap.DataTo(&stored); err != nil {
			return goerr.Wrap(err, "failed to decode property", goerr.V("id", p.ID))
		}
		if stored.Rev != p.Rev {
			return goerr.Wrap(types.ErrConflict, "property was modified concurrently",
				goerr.V("id", p.ID),
				goerr.V("expected_rev", p.Rev),
				goerr.V("stored_rev", stored.Rev))
		}

		updated.PublicID = types.PublicID(stored.PublicID)
		updated.Rev = stored.Rev + 1
		updated.CreatedAt = stored.CreatedAt
		updated.UpdatedAt = time.Now().UTC()

		return tx.Set(docRef, toPropertyDoc(&updated))
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *propertyRepository) Delete(ctx context.Context, id int64) error {
	docID := fmt.Sprintf("%d", id)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(types.ErrNotFound, "property not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check property existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete property", goerr.V("id", id))
	}
	return nil
}
