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

type investmentRepository struct {
	client *firestore.Client
	prefix string
}

func (r *investmentRepository) collection() string {
	return collectionName(r.prefix, "investment_projects")
}

type investmentDoc struct {
	ID              int64
	PublicID        string
	CreatedBy       int64
	Title           string
	Description     string
	ProjectType     string
	Location        string
	City            string
	ReferenceCode   string
	SurfaceArea     string
	ExpectedReturn  string
	DurationMonths  int
	Featured        bool
	TotalInvestment string
	MinInvestment   string
	CurrentFunding  string
	ApprovalStatus  string
	Status          string
	RejectionReason string
	ApprovedAt      *time.Time
	RejectedAt      *time.Time
	DocumentPaths   []string
	ImagePaths      []string
	Rev             int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func toInvestmentDoc(p *model.InvestmentProject) *investmentDoc {
	return &investmentDoc{
		ID:              p.ID,
		PublicID:        string(p.PublicID),
		CreatedBy:       p.CreatedBy,
		Title:           p.Title,
		Description:     p.Description,
		ProjectType:     p.ProjectType,
		Location:        p.Location,
		City:            p.City,
		ReferenceCode:   p.ReferenceCode,
		SurfaceArea:     encDecimal(p.SurfaceArea),
		ExpectedReturn:  encDecimal(p.ExpectedReturn),
		DurationMonths:  p.DurationMonths,
		Featured:        p.Featured,
		TotalInvestment: encDecimal(p.TotalInvestment),
		MinInvestment:   encDecimal(p.MinInvestment),
		CurrentFunding:  encDecimal(p.CurrentFunding),
		ApprovalStatus:  string(p.ApprovalStatus),
		Status:          string(p.Status),
		RejectionReason: p.RejectionReason,
		ApprovedAt:      p.ApprovedAt,
		RejectedAt:      p.RejectedAt,
		DocumentPaths:   p.DocumentPaths,
		ImagePaths:      p.ImagePaths,
		Rev:             p.Rev,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (d *investmentDoc) toModel() (*model.InvestmentProject, error) {
	surface, err := decDecimal(d.SurfaceArea)
	if err != nil {
		return nil, err
	}
	expectedReturn, err := decDecimal(d.ExpectedReturn)
	if err != nil {
		return nil, err
	}
	total, err := decDecimal(d.TotalInvestment)
	if err != nil {
		return nil, err
	}
	min, err := decDecimal(d.MinInvestment)
	if err != nil {
		return nil, err
	}
	funding, err := decDecimal(d.CurrentFunding)
	if err != nil {
		return nil, err
	}
	return &model.InvestmentProject{
		ID:              d.ID,
		PublicID:        types.PublicID(d.PublicID),
		CreatedBy:       d.CreatedBy,
		Title:           d.Title,
		Description:     d.Description,
		ProjectType:     d.ProjectType,
		Location:        d.Location,
		City:            d.City,
		ReferenceCode:   d.ReferenceCode,
		SurfaceArea:     surface,
		ExpectedReturn:  expectedReturn,
		DurationMonths:  d.DurationMonths,
		Featured:        d.Featured,
		TotalInvestment: total,
		MinInvestment:   min,
		CurrentFunding:  funding,
		ApprovalStatus:  types.ApprovalStatus(d.ApprovalStatus),
		Status:          types.InvestmentStatus(d.Status),
		RejectionReason: d.RejectionReason,
		ApprovedAt:      d.ApprovedAt,
		RejectedAt:      d.RejectedAt,
		DocumentPaths:   d.DocumentPaths,
		ImagePaths:      d.ImagePaths,
		Rev:             d.Rev,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}, nil
}

func (r *investmentRepository) Create(ctx context.Context, p *model.InvestmentProject) (*model.InvestmentProject, error) {
	id, err := nextID(ctx, r.client, r.prefix, "investment_counter")
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
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, toInvestmentDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create investment project", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *investmentRepository) Get(ctx context.Context, id int64) (*model.InvestmentProject, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.client.Collection(r.collection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrNotFound, "investment project not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get investment project", goerr.V("id", id))
	}

	var d investmentDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode investment project", goerr.V("id", id))
	}
	return d.toModel()
}

func (r *investmentRepository) GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.InvestmentProject, error) {
	iter := r.client.Collection(r.collection()).
		Where("PublicID", "==", string(publicID)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(types.ErrNotFound, "investment project not found", goerr.V("public_id", publicID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query investment project", goerr.V("public_id", publicID))
	}

	var d investmentDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode investment project", goerr.V("public_id", publicID))
	}
	return d.toModel()
}

func (r *investmentRepository) List(ctx context.Context, filter interfaces.InvestmentFilter) ([]*model.InvestmentProject, error) {
	query := r.client.Collection(r.collection()).Query
	if filter.ApprovalStatus != "" {
		query = query.Where("ApprovalStatus", "==", string(filter.ApprovalStatus))
	}
	if filter.Status != "" {
		query = query.Where("Status", "==", string(filter.Status))
	}
	if filter.CreatedBy != 0 {
		query = query.Where("CreatedBy", "==", filter.CreatedBy)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	projects := []*model.InvestmentProject{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate investment projects")
		}

		var d investmentDoc
		if err := docSnap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode investment project", goerr.V("doc_id", docSnap.Ref.ID))
		}
		p, err := d.toModel()
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func (r *investmentRepository) Update(ctx context.Context, p *model.InvestmentProject) (*model.InvestmentProject, error) {
	docID := fmt.Sprintf("%d", p.ID)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	updated := *p
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docSnap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(types.ErrNotFound, "investment project not found", goerr.V("id", p.ID))
			}
			return goerr.Wrap(err, "failed to get investment project", goerr.V("id", p.ID))
		}

		var stored investmentDoc
		if err := docSnap.DataTo(&stored); err != nil {
			return goerr.Wrap(err, "failed to decode investment project", goerr.V("id", p.ID))
		}
		if stored.Rev != p.Rev {
			return goerr.Wrap(types.ErrConflict, "investment project was modified concurrently",
				goerr.V("id", p.ID),
				goerr.V("expected_rev", p.Rev),
				goerr.V("stored_rev", stored.Rev))
		}

		updated.PublicID = types.PublicID(stored.PublicID)
		updated.Rev = stored.Rev + 1
		updated.CreatedAt = stored.CreatedAt
		updated.UpdatedAt = time.Now().UTC()

		return tx.Set(docRef, toInvestmentDoc(&updated))
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *investmentRepository) Delete(ctx context.Context, id int64) error {
	docID := fmt.Sprintf("%d", id)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(types.ErrNotFound, "investment project not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check investment project existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete investment project", goerr.V("id", id))
	}
	return nil
}

type proposalRepository struct {
	client *firestore.Client
	prefix string
}

func (r *proposalRepository) collection() string {
	return collectionName(r.prefix, "investment_proposals")
}

type proposalDoc struct {
	ID              int64
	PublicID        string
	InvestorID      int64
	ProjectID       int64
	Amount          string
	Message         string
	Status          string
	RejectionReason string
	ReviewedBy      int64
	ReviewedAt      *time.Time
	Rev             int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func toProposalDoc(p *model.InvestmentProposal) *proposalDoc {
	return &proposalDoc{
		ID:              p.ID,
		PublicID:        string(p.PublicID),
		InvestorID:      p.InvestorID,
		ProjectID:       p.ProjectID,
		Amount:          encDecimal(p.Amount),
		Message:         p.Message,
		Status:          string(p.Status),
		RejectionReason: p.RejectionReason,
		ReviewedBy:      p.ReviewedBy,
		ReviewedAt:      p.ReviewedAt,
		Rev:             p.Rev,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (d *proposalDoc) toModel() (*model.InvestmentProposal, error) {
	amount, err := decDecimal(d.Amount)
	if err != nil {
		return nil, err
	}
	return &model.InvestmentProposal{
		ID:              d.ID,
		PublicID:        types.PublicID(d.PublicID),
		InvestorID:      d.InvestorID,
		ProjectID:       d.ProjectID,
		Amount:          amount,
		Message:         d.Message,
		Status:          types.ProposalStatus(d.Status),
		RejectionReason: d.RejectionReason,
		ReviewedBy:      d.ReviewedBy,
		ReviewedAt:      d.ReviewedAt,
		Rev:             d.Rev,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}, nil
}

func (r *proposalRepository) Create(ctx context.Context, p *model.InvestmentProposal) (*model.InvestmentProposal, error) {
	id, err := nextID(ctx, r.client, r.prefix, "proposal_counter")
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
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, toProposalDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create proposal", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *proposalRepository) Get(ctx context.Context, id int64) (*model.InvestmentProposal, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.client.Collection(r.collection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrNotFound, "proposal not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get proposal", goerr.V("id", id))
	}

	var d proposalDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode proposal", goerr.V("id", id))
	}
	return d.toModel()
}

func (r *proposalRepository) GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.InvestmentProposal, error) {
	iter := r.client.Collection(r.collection()).
		Where("PublicID", "==", string(publicID)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(types.ErrNotFound, "proposal not found", goerr.V("public_id", publicID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query proposal", goerr.V("public_id", publicID))
	}

	var d proposalDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode proposal", goerr.V("public_id", publicID))
	}
	return d.toModel()
}

func (r *proposalRepository) listWhere(ctx context.Context, field string, value int64) ([]*model.InvestmentProposal, error) {
	iter := r.client.Collection(r.collection()).
		Where(field, "==", value).
		Documents(ctx)
	defer iter.Stop()

	proposals := []*model.InvestmentProposal{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate proposals")
		}

		var d proposalDoc
		if err := docSnap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode proposal", goerr.V("doc_id", docSnap.Ref.ID))
		}
		p, err := d.toModel()
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, p)
	}
	return proposals, nil
}

func (r *proposalRepository) ListByInvestor(ctx context.Context, investorID int64) ([]*model.InvestmentProposal, error) {
	return r.listWhere(ctx, "InvestorID", investorID)
}

func (r *proposalRepository) ListByProject(ctx context.Context, projectID int64) ([]*model.InvestmentProposal, error) {
	return r.listWhere(ctx, "ProjectID", projectID)
}

func (r *proposalRepository) Update(ctx context.Context, p *model.InvestmentProposal) (*model.InvestmentProposal, error) {
	docID := fmt.Sprintf("%d", p.ID)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	updated := *p
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docSnap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(types.ErrNotFound, "proposal not found", goerr.V("id", p.ID))
			}
			return goerr.Wrap(err, "failed to get proposal", goerr.V("id", p.ID))
		}

		var stored proposalDoc
		if err := docSnap.DataTo(&stored); err != nil {
			return goerr.Wrap(err, "failed to decode proposal", goerr.V("id", p.ID))
		}
		if stored.Rev != p.Rev {
			return goerr.Wrap(types.ErrConflict, "proposal was modified concurrently",
				goerr.V("id", p.ID),
				goerr.V("expected_rev", p.Rev),
				goerr.V("stored_rev", stored.Rev))
		}

		updated.PublicID = types.PublicID(stored.PublicID)
		updated.Rev = stored.Rev + 1
		updated.CreatedAt = stored.CreatedAt
		updated.UpdatedAt = time.Now().UTC()

		return tx.Set(docRef, toProposalDoc(&updated))
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}
