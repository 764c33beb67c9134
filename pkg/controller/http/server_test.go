package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	httpctrl "github.com/teranga-immo/teranga/pkg/controller/http"
	"github.com/teranga-immo/teranga/pkg/domain/model"
	"github.com/teranga-immo/teranga/pkg/domain/types"
	"github.com/teranga-immo/teranga/pkg/repository/memory"
	"github.com/teranga-immo/teranga/pkg/service/token"
	"github.com/teranga-immo/teranga/pkg/usecase"
)

type testEnv struct {
	server *httpctrl.Server
	repo   *memory.Repository
	tokens *token.Service
}

func setupServer(t *testing.T) *testEnv {
	t.Helper()
	repo := memory.New()
	tokens := token.New([]byte("test-secret"))
	uc := usecase.New(repo)
	return &testEnv{
		server: httpctrl.New(uc, httpctrl.WithAuth(tokens, repo)),
		repo:   repo,
		tokens: tokens,
	}
}

func (e *testEnv) createActor(t *testing.T, role types.Role) (*model.Actor, string) {
	t.Helper()
	actor, err := e.repo.Actor().Create(context.Background(), &model.Actor{
		Role:     role,
		Email:    string(role) + "@example.sn",
		IsActive: true,
	})
	gt.NoError(t, err).Required()
	raw, err := e.tokens.Issue(actor)
	gt.NoError(t, err).Required()
	return actor, raw
}

func (e *testEnv) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		gt.NoError(t, json.NewEncoder(&buf).Encode(body)).Required()
	}
	req := httptest.NewRequest(method, path, &buf)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

func TestPublicListingNeedsNoAuth(t *testing.T) {
	env := setupServer(t)

	rec := env.do(t, http.MethodGet, "/api/properties", "", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
}

func TestCreatePropertyRequiresRole(t *testing.T) {
	env := setupServer(t)
	_, ownerToken := env.createActor(t, types.RoleProprietaire)
	_, visitorToken := env.createActor(t, types.RoleVisiteur)

	body := map[string]any{
		"title":            "Appartement Plateau",
		"transaction_type": "location",
		"price":            "450000",
		"city":             "Dakar",
	}

	rec := env.do(t, http.MethodPost, "/api/properties", "", body)
	gt.Value(t, rec.Code).Equal(http.StatusForbidden)

	rec = env.do(t, http.MethodPost, "/api/properties", visitorToken, body)
	gt.Value(t, rec.Code).Equal(http.StatusForbidden)

	rec = env.do(t, http.MethodPost, "/api/properties", ownerToken, body)
	gt.Value(t, rec.Code).Equal(http.StatusCreated)
}

func TestInvalidTokenIsUnauthorized(t *testing.T) {
	env := setupServer(t)

	rec := env.do(t, http.MethodGet, "/api/properties", "bogus-token", nil)
	gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
}

func TestValidationErrorsMapTo422(t *testing.T) {
	env := setupServer(t)
	_, ownerToken := env.createActor(t, types.RoleProprietaire)

	body := map[string]any{
		"title":            "",
		"transaction_type": "location",
		"price":            "450000",
		"city":             "Dakar",
	}

	rec := env.do(t, http.MethodPost, "/api/properties", ownerToken, body)
	gt.Value(t, rec.Code).Equal(http.StatusUnprocessableEntity)
}

func TestDraftHiddenOverHTTP(t *testing.T) {
	env := setupServer(t)
	_, ownerToken := env.createActor(t, types.RoleProprietaire)
	_, strangerToken := env.createActor(t, types.RoleVisiteur)

	body := map[string]any{
		"title":            "Terrain à Rufisque",
		"transaction_type": "vente",
		"price":            "15000000",
		"city":             "Rufisque",
	}

	rec := env.do(t, http.MethodPost, "/api/properties", ownerToken, body)
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	var created struct {
		Data struct {
			PublicID string `json:"PublicID"`
		} `json:"data"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created)).Required()
	gt.String(t, created.Data.PublicID).NotEqual("")

	rec = env.do(t, http.MethodGet, "/api/properties/"+created.Data.PublicID, strangerToken, nil)
	gt.Value(t, rec.Code).Equal(http.StatusNotFound)

	rec = env.do(t, http.MethodGet, "/api/properties/"+created.Data.PublicID, ownerToken, nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
}

func TestAnonymousClientRequest(t *testing.T) {
	env := setupServer(t)

	body := map[string]any{
		"name":    "Moussa Diop",
		"email":   "moussa@example.sn",
		"message": "Je cherche un terrain",
		"consent": true,
	}

	rec := env.do(t, http.MethodPost, "/api/client-requests", "", body)
	gt.Value(t, rec.Code).Equal(http.StatusCreated)
}

func TestWorkflowConflictMapsTo409(t *testing.T) {
	env := setupServer(t)
	manager, managerToken := env.createActor(t, types.RoleGestionnaire)
	_ = manager
	_, visitorToken := env.createActor(t, types.RoleVisiteur)

	body := map[string]any{
		"title":      "Maison à Mbour",
		"budget_min": "10000000",
		"budget_max": "20000000",
		"city":       "Mbour",
	}
	rec := env.do(t, http.MethodPost, "/api/constructions", visitorToken, body)
	gt.Value(t, rec.Code).Equal(http.StatusCreated)

	var created struct {
		Data struct {
			PublicID string `json:"PublicID"`
		} `json:"data"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created)).Required()

	// a submitted project cannot be started before approval
	rec = env.do(t, http.MethodPost, "/api/constructions/"+created.Data.PublicID+"/start", managerToken, nil)
	gt.Value(t, rec.Code).Equal(http.StatusConflict)
}
