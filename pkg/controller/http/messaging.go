package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/teranga-immo/teranga/pkg/domain/types"
	"github.com/teranga-immo/teranga/pkg/usecase"
)

func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RecipientID types.PublicID `json:"recipient_id"`
		PropertyID  types.PublicID `json:"property_id"`
		Subject     string         `json:"subject"`
		Body        string         `json:"body"`
	}
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	m, err := s.uc.Message.Send(r.Context(), usecase.MessageInput{
		RecipientPublicID: req.RecipientID,
		PropertyPublicID:  req.PropertyID,
		Subject:           req.Subject,
		Body:              req.Body,
	})
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusCreated, m)
}

func (s *Server) replyMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Body string `json:"body"`
	}
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	m, err := s.uc.Message.Reply(r.Context(), pathID(r), req.Body)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusCreated, m)
}

func (s *Server) markMessageRead(w http.ResponseWriter, r *http.Request) {
	m, err := s.uc.Message.MarkRead(r.Context(), pathID(r))
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, m)
}

func (s *Server) listInbox(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.Message.Inbox(r.Context())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, list)
}

func (s *Server) getThread(w http.ResponseWriter, r *http.Request) {
	thread, err := s.uc.Message.Thread(r.Context(), pathID(r))
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, thread)
}

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	list, err := s.uc.Notification.List(r.Context())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, list)
}

func (s *Server) countUnreadNotifications(w http.ResponseWriter, r *http.Request) {
	count, err := s.uc.Notification.CountUnread(r.Context())
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, map[string]int64{"unread": count})
}

func (s *Server) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid notification id", http.StatusBadRequest)
		return
	}

	n, err := s.uc.Notification.MarkRead(r.Context(), id)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, n)
}

func (s *Server) markAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Notification.MarkAllRead(r.Context()); err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, nil)
}

func (s *Server) deleteNotification(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid notification id", http.StatusBadRequest)
		return
	}

	if err := s.uc.Notification.Delete(r.Context(), id); err != nil {
		respondError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, nil)
}
