package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/teranga-immo/teranga/pkg/domain/types"
	"github.com/teranga-immo/teranga/pkg/usecase"
)

type searchRequestRequest struct {
	TransactionType        string          `json:"transaction_type"`
	BudgetMin              decimal.Decimal `json:"budget_min"`
	BudgetMax              decimal.Decimal `json:"budget_max"`
	LocationPreferences    []string        `json:"location_preferences"`
	BedroomsMin            int             `json:"bedrooms_min"`
	SurfaceMin             decimal.Decimal `json:"surface_min"`
	AdditionalRequirements string          `json:"additional_requirements"`
	Priority               int             `json:"priority"`
}

func (s *Server) createSearchRequest(w http.ResponseWriter, r *http.Request) {
	var req searchRequestRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := s.uc.SearchRequest.Create(r.Context(), usecase.SearchRequestInput{
		TransactionType:        req.TransactionType,
		BudgetMin:              req.BudgetMin,
		BudgetMax:              req.BudgetMax,
		LocationPreferences:    req.LocationPreferences,
		BedroomsMin:            req.BedroomsMin,
		SurfaceMin:             req.SurfaceMin,
		AdditionalRequirements: req.AdditionalRequirements,
		Priority:               req.Priority,
	})
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusCreated, created)
}

func (s *Server) getSearchRequest(w http.ResponseWriter, r *http.Request) {
	req, err := s.uc.SearchRequest.Get(r.Context(), pathID(r))
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, req)
}

func (s *Server) approveSearchRequest(w http.ResponseWriter, r *http.Request) {
	req, err := s.uc.SearchRequest.Approve(r.Context(), pathID(r))
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, req)
}

func (s *Server) rejectSearchRequest(w http.ResponseWriter, r *http.Request) {
	var body reasonRequest
	if err := decodeBody(r, &body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	req, err := s.uc.SearchRequest.Reject(r.Context(), pathID(r), body.Reason)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, req)
}

func (s *Server) assignSearchRequest(w http.ResponseWriter, r *http.Request) {
	var body assignRequest
	if err := decodeBody(r, &body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	req, err := s.uc.SearchRequest.Assign(r.Context(), pathID(r), body.AgentID)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, req)
}

func (s *Server) startSearchRequest(w http.ResponseWriter, r *http.Request) {
	req, err := s.uc.SearchRequest.Start(r.Context(), pathID(r))
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, req)
}

func (s *Server) fulfillSearchRequest(w http.ResponseWriter, r *http.Request) {
	req, err := s.uc.SearchRequest.Fulfill(r.Context(), pathID(r))
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, req)
}

func (s *Server) cancelSearchRequest(w http.ResponseWriter, r *http.Request) {
	req, err := s.uc.SearchRequest.Cancel(r.Context(), pathID(r))
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, req)
}

func (s *Server) listMySearchRequests(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.SearchRequest.ListMine(r.Context())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, list)
}

func (s *Server) listAssignedSearchRequests(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.SearchRequest.ListAssigned(r.Context())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, list)
}

func (s *Server) listPendingSearchRequests(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.SearchRequest.ListPending(r.Context())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, list)
}

type clientRequestRequest struct {
	Name               string         `json:"name"`
	Email              string         `json:"email"`
	Phone              string         `json:"phone"`
	Message            string         `json:"message"`
	Sector             string         `json:"sector"`
	ProjectDescription string         `json:"project_description"`
	Consent            bool           `json:"consent"`
	PropertyID         types.PublicID `json:"property_id"`
	ConstructionID     types.PublicID `json:"construction_id"`
	InvestmentID       types.PublicID `json:"investment_id"`
}

func (s *Server) createClientRequest(w http.ResponseWriter, r *http.Request) {
	var req clientRequestRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := s.uc.ClientRequest.Create(r.Context(), usecase.ClientRequestInput{
		Name:                 req.Name,
		Email:                req.Email,
		Phone:                req.Phone,
		Message:              req.Message,
		Sector:               req.Sector,
		ProjectDescription:   req.ProjectDescription,
		Consent:              req.Consent,
		PropertyPublicID:     req.PropertyID,
		ConstructionPublicID: req.ConstructionID,
		InvestmentPublicID:   req.InvestmentID,
	})
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusCreated, created)
}

func (s *Server) getClientRequest(w http.ResponseWriter, r *http.Request) {
	req, err := s.uc.ClientRequest.Get(r.Context(), pathID(r))
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, req)
}

func (s *Server) approveClientRequest(w http.ResponseWriter, r *http.Request) {
	req, err := s.uc.ClientRequest.Approve(r.Context(), pathID(r))
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, req)
}

func (s *Server) rejectClientRequest(w http.ResponseWriter, r *http.Request) {
	var body reasonRequest
	if err := decodeBody(r, &body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	req, err := s.uc.ClientRequest.Reject(r.Context(), pathID(r), body.Reason)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, req)
}

func (s *Server) assignClientRequest(w http.ResponseWriter, r *http.Request) {
	var body assignRequest
	if err := decodeBody(r, &body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	req, err := s.uc.ClientRequest.Assign(r.Context(), pathID(r), body.AgentID)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, req)
}

func (s *Server) listPendingClientRequests(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.ClientRequest.ListPending(r.Context())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, list)
}

func (s *Server) listAssignedClientRequests(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.ClientRequest.ListAssigned(r.Context())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, list)
}
