package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/teranga-immo/teranga/pkg/domain/interfaces"
	"github.com/teranga-immo/teranga/pkg/domain/types"
	"github.com/teranga-immo/teranga/pkg/usecase"
)

type constructionRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ProjectType string          `json:"project_type"`
	BudgetMin   decimal.Decimal `json:"budget_min"`
	BudgetMax   decimal.Decimal `json:"budget_max"`
	SurfaceArea decimal.Decimal `json:"surface_area"`
	Location    string          `json:"location"`
	City        string          `json:"city"`
}

func (req *constructionRequest) toInput() usecase.ConstructionInput {
	return usecase.ConstructionInput{
		Title:       req.Title,
		Description: req.Description,
		ProjectType: req.ProjectType,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		SurfaceArea: req.SurfaceArea,
		Location:    req.Location,
		City:        req.City,
	}
}

func (s *Server) submitConstruction(w http.ResponseWriter, r *http.Request) {
	var req constructionRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := s.uc.Construction.Submit(r.Context(), req.toInput())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusCreated, p)
}

func (s *Server) addConstructionDocument(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	p, err := s.uc.Construction.AddDocument(r.Context(), pathID(r), header.Filename, file)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusCreated, p)
}

func (s *Server) assignConstruction(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := s.uc.Construction.Assign(r.Context(), pathID(r), req.AgentID)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, p)
}

func (s *Server) createConstructionQuote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount       decimal.Decimal `json:"amount"`
		Currency     string          `json:"currency"`
		ValidityDays int             `json:"validity_days"`
		Notes        string          `json:"notes"`
	}
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	quote, err := s.uc.Construction.CreateQuote(r.Context(), pathID(r), req.Amount, req.Currency, req.ValidityDays, req.Notes)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusCreated, quote)
}

func (s *Server) respondToQuote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Accept bool   `json:"accept"`
		Reason string `json:"reason"`
	}
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := s.uc.Construction.RespondToQuote(r.Context(), pathID(r), req.Accept, req.Reason)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, p)
}

func (s *Server) listConstructionQuotes(w http.ResponseWriter, r *http.Request) {
	quotes, err := s.uc.Construction.ListQuotes(r.Context(), pathID(r))
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, quotes)
}

func (s *Server) listMyQuotes(w http.ResponseWriter, r *http.Request) {
	quotes, err := s.uc.Construction.ListMyQuotes(r.Context())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, quotes)
}

func (s *Server) approveConstruction(w http.ResponseWriter, r *http.Request) {
	p, err := s.uc.Construction.Approve(r.Context(), pathID(r))
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, p)
}

func (s *Server) rejectConstruction(w http.ResponseWriter, r *http.Request) {
	var req reasonRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := s.uc.Construction.Reject(r.Context(), pathID(r), req.Reason)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, p)
}

func (s *Server) startConstruction(w http.ResponseWriter, r *http.Request) {
	p, err := s.uc.Construction.Start(r.Context(), pathID(r))
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, p)
}

func (s *Server) completeConstruction(w http.ResponseWriter, r *http.Request) {
	p, err := s.uc.Construction.Complete(r.Context(), pathID(r))
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, p)
}

func (s *Server) publishConstruction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Publish bool `json:"publish"`
	}
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := s.uc.Construction.Publish(r.Context(), pathID(r), req.Publish)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, p)
}

func (s *Server) getConstruction(w http.ResponseWriter, r *http.Request) {
	p, err := s.uc.Construction.Get(r.Context(), pathID(r))
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, p)
}

func (s *Server) listPublishedConstructions(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.Construction.ListPublished(r.Context())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, list)
}

func (s *Server) listMyConstructions(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.Construction.ListMine(r.Context())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, list)
}

func (s *Server) listAssignedConstructions(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.Construction.ListAssigned(r.Context())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, list)
}

func (s *Server) listAllConstructions(w http.ResponseWriter, r *http.Request) {
	filter := interfaces.ConstructionFilter{
		Status: types.ConstructionStatus(r.URL.Query().Get("status")),
	}

	list, err := s.uc.Construction.ListAll(r.Context(), filter)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, list)
}
