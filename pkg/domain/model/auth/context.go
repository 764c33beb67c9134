package auth

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/teranga-immo/teranga/pkg/domain/model"
)

type ctxActorKey struct{}

// ContextWithActor embeds the authenticated actor into the context
func ContextWithActor(ctx context.Context, actor *model.Actor) context.Context {
	return context.WithValue(ctx, ctxActorKey{}, actor)
}

// ActorFromContext extracts the authenticated actor from the context
func ActorFromContext(ctx context.Context) (*model.Actor, error) {
	actor, ok := ctx.Value(ctxActorKey{}).(*model.Actor)
	if !ok || actor == nil {
		return nil, goerr.New("no authenticated actor in context")
	}
	return actor, nil
}
