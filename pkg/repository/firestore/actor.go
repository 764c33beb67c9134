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

	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/types"
)

type actorRepository struct {
	client *firestore.Client
	prefix string
}

func (r *actorRepository) collection() string {
	return collectionName(r.prefix, "actors")
}

func (r *actorRepository) Create(ctx context.Context, actor *model.Actor) (*model.Actor, error) {
	id, err := nextID(ctx, r.client, r.prefix, "actor_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := *actor
	created.ID = id
	if created.PublicID == "" {
		created.PublicID = types.NewPublicID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	docID := fmt.Sprintf("%d", created.ID)
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create actor", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *actorRepository) Get(ctx context.Context, id int64) (*model.Actor, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.client.Collection(r.collection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrNotFound, "actor not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get actor", goerr.V("id", id))
	}

	var a model.Actor
	if err := docSnap.DataTo(&a); err != nil {
		return nil, goerr.Wrap(err, "failed to decode actor", goerr.V("id", id))
	}
	return &a, nil
}

func (r *actorRepository) GetByPublicID(ctx context.Context, publicID types.PublicID) (*model.Actor, error) {
	iter := r.client.Collection(r.collection()).
		Where("PublicID", "==", string(publicID)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(types.ErrNotFound, "actor not found", goerr.V("public_id", publicID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query actor", goerr.V("public_id", publicID))
	}

	var a model.Actor
	if err := docSnap.DataTo(&a); err != nil {
		return nil, goerr.Wrap(err, "failed to decode actor", goerr.V("public_id", publicID))
	}
	return &a, nil
}

func (r *actorRepository) ListByRoles(ctx context.Context, roles ...types.Role) ([]*model.Actor, error) {
	roleValues := make([]string, len(roles))
	for i, role := range roles {
		roleValues[i] = string(role)
	}

	iter := r.client.Collection(r.collection()).
		Where("IsActive", "==", true).
		Where("Role", "in", roleValues).
		Documents(ctx)
	defer iter.Stop()

	actors := []*model.Actor{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate actors")
		}

		var a model.Actor
		if err := docSnap.DataTo(&a); err != nil {
			return nil, goerr.Wrap(err, "failed to decode actor", goerr.V("doc_id", docSnap.Ref.ID))
		}
		actors = append(actors, &a)
	}
	return actors, nil
}

func (r *actorRepository) ListAgents(ctx context.Context, agentType types.AgentType) ([]*model.Actor, error) {
	query := r.client.Collection(r.collection()).
		Where("IsActive", "==", true).
		Where("Role", "==", string(types.RoleAgent))
	if agentType != types.AgentTypeAny {
		query = query.Where("AgentType", "==", string(agentType))
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	agents := []*model.Actor{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate agents")
		}

		var a model.Actor
		if err := docSnap.DataTo(&a); err != nil {
			return nil, goerr.Wrap(err, "failed to decode actor", goerr.V("doc_id", docSnap.Ref.ID))
		}
		agents = append(agents, &a)
	}
	return agents, nil
}

func (r *actorRepository) Update(ctx context.Context, actor *model.Actor) (*model.Actor, error) {
	docID := fmt.Sprintf("%d", actor.ID)
	docRef := r.client.Collection(r.collection()).Doc(docID)

	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrNotFound, "actor not found", goerr.V("id", actor.ID))
		}
		return nil, goerr.Wrap(err, "failed to check actor existence", goerr.V("id", actor.ID))
	}

	var existing model.Actor
	if err := docSnap.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to decode actor", goerr.V("id", actor.ID))
	}

	updated := *actor
	updated.PublicID = existing.PublicID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update actor", goerr.V("id", actor.ID))
	}
	return &updated, nil
}
