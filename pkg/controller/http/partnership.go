package http

import (
	"net/http"

	"github.com/teranga-immo/teranga/pkg/domain/types"
	"github.com/teranga-immo/teranga/pkg/usecase"
)

type partnershipRequest struct {
	CompanyName  string `json:"company_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Message      string `json:"message"`
}

func (req *partnershipRequest) toInput() usecase.PartnershipInput {
	return usecase.PartnershipInput{
		CompanyName:  req.CompanyName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Message:      req.Message,
	}
}

func (s *Server) applyPartnership(w http.ResponseWriter, r *http.Request) {
	var req partnershipRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	app, err := s.uc.Partnership.Apply(r.Context(), req.toInput())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusCreated, app)
}

func (s *Server) updatePartnership(w http.ResponseWriter, r *http.Request) {
	var req partnershipRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	app, err := s.uc.Partnership.Update(r.Context(), pathID(r), req.toInput())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, app)
}

func (s *Server) addPartnershipDocument(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	app, err := s.uc.Partnership.AddDocument(r.Context(), pathID(r), header.Filename, file)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusCreated, app)
}

func (s *Server) approvePartnership(w http.ResponseWriter, r *http.Request) {
	app, err := s.uc.Partnership.Approve(r.Context(), pathID(r))
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, app)
}

func (s *Server) rejectPartnership(w http.ResponseWriter, r *http.Request) {
	var body reasonRequest
	if err := decodeBody(r, &body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	app, err := s.uc.Partnership.Reject(r.Context(), pathID(r), body.Reason)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, app)
}

func (s *Server) getMyPartnership(w http.ResponseWriter, r *http.Request) {
	app, err := s.uc.Partnership.GetMine(r.Context())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, app)
}

func (s *Server) listPartnerships(w http.ResponseWriter, r *http.Request) {
	status := types.PartnershipStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = types.PartnershipStatusPending
	}

	list, err := s.uc.Partnership.ListByStatus(r.Context(), status)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, list)
}
