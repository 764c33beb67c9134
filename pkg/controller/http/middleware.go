package http

import (
	"net/http"
	"strings"

	"github.com/teranga-immo/teranga/pkg/domain/interfaces"
	"github.com/teranga-immo/teranga/pkg/domain/model/auth"
	"github.com/teranga-immo/teranga/pkg/service/token"
)

// authMiddleware resolves the bearer token to an actor and embeds it in
// the request context. Requests without a token proceed anonymously;
// public endpoints work, protected ones fail at the authorization gate.
// A present but invalid token is a hard 401.
func authMiddleware(tokens *token.Service, repo interfaces.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				http.Error(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}

			publicID, err := tokens.Verify(raw)
			if err != nil {
				http.Error(w, "invalid authentication token", http.StatusUnauthorized)
				return
			}

			actor, err := repo.Actor().GetByPublicID(r.Context(), publicID)
			if err != nil {
				http.Error(w, "unknown account", http.StatusUnauthorized)
				return
			}

			ctx := auth.ContextWithActor(r.Context(), actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
