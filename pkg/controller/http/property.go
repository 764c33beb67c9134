package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/teranga-immo/teranga/pkg/domain/interfaces"
	"github.com/teranga-immo/teranga/pkg/domain/types"
	"github.com/teranga-immo/teranga/pkg/usecase"
)

func pathID(r *http.Request) types.PublicID {
	return types.PublicID(chi.URLParam(r, "id"))
}

type propertyRequest struct {
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	TransactionType string          `json:"transaction_type"`
	PropertyType    string          `json:"property_type"`
	Price           decimal.Decimal `json:"price"`
	Currency        string          `json:"currency"`
	SurfaceArea     decimal.Decimal `json:"surface_area"`
	Bedrooms        int             `json:"bedrooms"`
	Bathrooms       int             `json:"bathrooms"`
	Address         string          `json:"address"`
	City            string          `json:"city"`
}

func (req *propertyRequest) toInput() usecase.PropertyInput {
	return usecase.PropertyInput{
		Title:           req.Title,
		Description:     req.Description,
		TransactionType: req.TransactionType,
		PropertyType:    req.PropertyType,
		Price:           req.Price,
		Currency:        req.Currency,
		SurfaceArea:     req.SurfaceArea,
		Bedrooms:        req.Bedrooms,
		Bathrooms:       req.Bathrooms,
		Address:         req.Address,
		City:            req.City,
	}
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

type assignRequest struct {
	AgentID types.PublicID `json:"agent_id"`
}

func (s *Server) createProperty(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := s.uc.Property.Create(r.Context(), req.toInput())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusCreated, p)
}

func (s *Server) updateProperty(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := s.uc.Property.Update(r.Context(), pathID(r), req.toInput())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, p)
}

func (s *Server) getProperty(w http.ResponseWriter, r *http.Request) {
	p, err := s.uc.Property.Get(r.Context(), pathID(r))
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, p)
}

func (s *Server) deleteProperty(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Property.Delete(r.Context(), pathID(r)); err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, nil)
}

func (s *Server) submitProperty(w http.ResponseWriter, r *http.Request) {
	p, err := s.uc.Property.Submit(r.Context(), pathID(r))
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, p)
}

func (s *Server) addPropertyMedia(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	primary := r.FormValue("primary") == "true"
	mimeType := header.Header.Get("Content-Type")

	p, err := s.uc.Property.AddMedia(r.Context(), pathID(r), header.Filename, mimeType, primary, file)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusCreated, p)
}

func (s *Server) assignProperty(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := s.uc.Property.Assign(r.Context(), pathID(r), req.AgentID)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, p)
}

func (s *Server) validateProperty(w http.ResponseWriter, r *http.Request) {
	p, err := s.uc.Property.Validate(r.Context(), pathID(r))
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, p)
}

func (s *Server) rejectProperty(w http.ResponseWriter, r *http.Request) {
	var req reasonRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := s.uc.Property.Reject(r.Context(), pathID(r), req.Reason)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, p)
}

func (s *Server) featureProperty(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Featured bool `json:"featured"`
	}
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := s.uc.Property.Feature(r.Context(), pathID(r), req.Featured)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, p)
}

func (s *Server) listPublicProperties(w http.ResponseWriter, r *http.Request) {
	filter := interfaces.PropertyFilter{
		City:     r.URL.Query().Get("city"),
		Featured: r.URL.Query().Get("featured") == "true",
	}

	list, err := s.uc.Property.ListPublic(r.Context(), filter)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, list)
}

func (s *Server) listMyProperties(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.Property.ListMine(r.Context())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, list)
}

func (s *Server) listAssignedProperties(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.Property.ListAssigned(r.Context())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, list)
}

func (s *Server) listAllProperties(w http.ResponseWriter, r *http.Request) {
	filter := interfaces.PropertyFilter{
		Status: types.PropertyStatus(r.URL.Query().Get("status")),
		City:   r.URL.Query().Get("city"),
	}

	list, err := s.uc.Property.ListAll(r.Context(), filter)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, list)
}
