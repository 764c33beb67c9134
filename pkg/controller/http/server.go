package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/teranga-immo/teranga/pkg/domain/interfaces"
	"github.com/teranga-immo/teranga/pkg/service/token"
	"github.com/teranga-immo/teranga/pkg/usecase"
	"github.com/teranga-immo/teranga/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
	tokens *token.Service
	repo   interfaces.Repository
}

type Options func(*Server)

// WithAuth enables bearer-token authentication backed by the repository
func WithAuth(tokens *token.Service, repo interfaces.Repository) Options {
	return func(s *Server) {
		s.tokens = tokens
		s.repo = repo
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	if s.tokens != nil && s.repo != nil {
		r.Use(authMiddleware(s.tokens, s.repo))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/properties", func(r chi.Router) {
			r.Get("/", s.listPublicProperties)
			r.Post("/", s.createProperty)
			r.Get("/mine", s.listMyProperties)
			r.Get("/assigned", s.listAssignedProperties)
			r.Get("/all", s.listAllProperties)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getProperty)
				r.Put("/", s.updateProperty)
				r.Delete("/", s.deleteProperty)
				r.Post("/submit", s.submitProperty)
				r.Post("/media", s.addPropertyMedia)
				r.Post("/assign", s.assignProperty)
				r.Post("/validate", s.validateProperty)
				r.Post("/reject", s.rejectProperty)
				r.Post("/feature", s.featureProperty)
			})
		})

		r.Route("/constructions", func(r chi.Router) {
			r.Get("/", s.listPublishedConstructions)
			r.Post("/", s.submitConstruction)
			r.Get("/mine", s.listMyConstructions)
			r.Get("/assigned", s.listAssignedConstructions)
			r.Get("/all", s.listAllConstructions)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getConstruction)
				r.Post("/documents", s.addConstructionDocument)
				r.Post("/assign", s.assignConstruction)
				r.Post("/quotes", s.createConstructionQuote)
				r.Get("/quotes", s.listConstructionQuotes)
				r.Post("/approve", s.approveConstruction)
				r.Post("/reject", s.rejectConstruction)
				r.Post("/start", s.startConstruction)
				r.Post("/complete", s.completeConstruction)
				r.Post("/publish", s.publishConstruction)
			})
		})
		r.Get("/quotes/mine", s.listMyQuotes)
		r.Post("/quotes/{id}/respond", s.respondToQuote)

		r.Route("/investments", func(r chi.Router) {
			r.Get("/", s.listOpenInvestments)
			r.Post("/", s.createInvestment)
			r.Post("/agent", s.agentCreateInvestment)
			r.Get("/pending", s.listPendingInvestments)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getInvestment)
				r.Post("/approve", s.approveInvestment)
				r.Post("/reject", s.rejectInvestment)
				r.Post("/resubmit", s.resubmitInvestment)
				r.Post("/status", s.setInvestmentStatus)
				r.Post("/proposals", s.proposeInvestment)
				r.Get("/proposals", s.listInvestmentProposals)
			})
		})
		r.Get("/proposals/mine", s.listMyProposals)
		r.Post("/proposals/{id}/review", s.reviewProposal)

		r.Route("/search-requests", func(r chi.Router) {
			r.Post("/", s.createSearchRequest)
			r.Get("/mine", s.listMySearchRequests)
			r.Get("/assigned", s.listAssignedSearchRequests)
			r.Get("/pending", s.listPendingSearchRequests)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getSearchRequest)
				r.Post("/approve", s.approveSearchRequest)
				r.Post("/reject", s.rejectSearchRequest)
				r.Post("/assign", s.assignSearchRequest)
				r.Post("/start", s.startSearchRequest)
				r.Post("/fulfill", s.fulfillSearchRequest)
				r.Post("/cancel", s.cancelSearchRequest)
			})
		})

		r.Route("/client-requests", func(r chi.Router) {
			r.Post("/", s.createClientRequest)
			r.Get("/pending", s.listPendingClientRequests)
			r.Get("/assigned", s.listAssignedClientRequests)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getClientRequest)
				r.Post("/approve", s.approveClientRequest)
				r.Post("/reject", s.rejectClientRequest)
				r.Post("/assign", s.assignClientRequest)
			})
		})

		r.Route("/partnerships", func(r chi.Router) {
			r.Post("/", s.applyPartnership)
			r.Get("/mine", s.getMyPartnership)
			r.Get("/", s.listPartnerships)
			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", s.updatePartnership)
				r.Post("/documents", s.addPartnershipDocument)
				r.Post("/approve", s.approvePartnership)
				r.Post("/reject", s.rejectPartnership)
			})
		})

		r.Route("/messages", func(r chi.Router) {
			r.Post("/", s.sendMessage)
			r.Get("/", s.listInbox)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/thread", s.getThread)
				r.Post("/reply", s.replyMessage)
				r.Post("/read", s.markMessageRead)
			})
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", s.listNotifications)
			r.Get("/unread-count", s.countUnreadNotifications)
			r.Post("/read-all", s.markAllNotificationsRead)
			r.Post("/{id}/read", s.markNotificationRead)
			r.Delete("/{id}", s.deleteNotification)
		})

		r.Route("/actors", func(r chi.Router) {
			r.Get("/agents", s.listAgents)
			r.Post("/{id}/active", s.setActorActive)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger logs every HTTP request with its outcome
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
