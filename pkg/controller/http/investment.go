package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/teranga-immo/teranga/pkg/domain/types"
	"github.com/teranga-immo/teranga/pkg/usecase"
)

type investmentRequest struct {
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	ProjectType     string          `json:"project_type"`
	Location        string          `json:"location"`
	City            string          `json:"city"`
	ReferenceCode   string          `json:"reference_code"`
	SurfaceArea     decimal.Decimal `json:"surface_area"`
	ExpectedReturn  decimal.Decimal `json:"expected_return"`
	DurationMonths  int             `json:"duration_months"`
	TotalInvestment decimal.Decimal `json:"total_investment"`
	MinInvestment   decimal.Decimal `json:"min_investment"`
}

func (req *investmentRequest) toInput() usecase.InvestmentInput {
	return usecase.InvestmentInput{
		Title:           req.Title,
		Description:     req.Description,
		ProjectType:     req.ProjectType,
		Location:        req.Location,
		City:            req.City,
		ReferenceCode:   req.ReferenceCode,
		SurfaceArea:     req.SurfaceArea,
		ExpectedReturn:  req.ExpectedReturn,
		DurationMonths:  req.DurationMonths,
		TotalInvestment: req.TotalInvestment,
		MinInvestment:   req.MinInvestment,
	}
}

func (s *Server) createInvestment(w http.ResponseWriter, r *http.Request) {
	var req investmentRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := s.uc.Investment.Create(r.Context(), req.toInput())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusCreated, p)
}

func (s *Server) agentCreateInvestment(w http.ResponseWriter, r *http.Request) {
	var req investmentRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := s.uc.Investment.AgentCreate(r.Context(), req.toInput())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusCreated, p)
}

func (s *Server) approveInvestment(w http.ResponseWriter, r *http.Request) {
	p, err := s.uc.Investment.Approve(r.Context(), pathID(r))
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, p)
}

func (s *Server) rejectInvestment(w http.ResponseWriter, r *http.Request) {
	var req reasonRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := s.uc.Investment.Reject(r.Context(), pathID(r), req.Reason)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, p)
}

func (s *Server) resubmitInvestment(w http.ResponseWriter, r *http.Request) {
	var req investmentRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := s.uc.Investment.Resubmit(r.Context(), pathID(r), req.toInput())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, p)
}

func (s *Server) setInvestmentStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := s.uc.Investment.SetStatus(r.Context(), pathID(r), types.InvestmentStatus(req.Status))
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, p)
}

func (s *Server) proposeInvestment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount  decimal.Decimal `json:"amount"`
		Message string          `json:"message"`
	}
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	proposal, err := s.uc.Investment.Propose(r.Context(), pathID(r), req.Amount, req.Message)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusCreated, proposal)
}

func (s *Server) reviewProposal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Accept bool   `json:"accept"`
		Reason string `json:"reason"`
	}
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	proposal, err := s.uc.Investment.ReviewProposal(r.Context(), pathID(r), req.Accept, req.Reason)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, proposal)
}

func (s *Server) getInvestment(w http.ResponseWriter, r *http.Request) {
	p, err := s.uc.Investment.Get(r.Context(), pathID(r))
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, p)
}

func (s *Server) listOpenInvestments(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.Investment.ListOpen(r.Context())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, list)
}

func (s *Server) listPendingInvestments(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.Investment.ListPendingReview(r.Context())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, list)
}

func (s *Server) listInvestmentProposals(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.Investment.ListProposals(r.Context(), pathID(r))
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, list)
}

func (s *Server) listMyProposals(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.Investment.ListMyProposals(r.Context())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, list)
}
