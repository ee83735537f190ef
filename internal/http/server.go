// Package http exposes the trip ledger as a JSON API.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	applog "tripsplit/internal/log"
	"tripsplit/internal/services"
)

type Server struct {
	svc             *services.TripService
	defaultCurrency string
	logger          *applog.Logger
}

// NewHandler builds the API router. defaultCurrency is used for
// snapshots when the caller does not pass ?currency=.
func NewHandler(svc *services.TripService, defaultCurrency string, logger *applog.Logger) http.Handler {
	s := &Server{
		svc:             svc,
		defaultCurrency: defaultCurrency,
		logger:          logger.WithComponent(applog.ComponentHTTP),
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(applog.Middleware(s.logger))
	r.Use(s.requestLogger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.handleCreateTrip)
		r.Get("/", s.handleListTrips)

		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.handleGetTrip)
			r.Get("/snapshot", s.handleSnapshot)

			r.Post("/participants", s.handleAddParticipant)
			r.Get("/participants", s.handleListParticipants)
			r.Delete("/participants/{participantID}", s.handleRemoveParticipant)

			r.Post("/expenses", s.handleAddExpense)
			r.Get("/expenses", s.handleListExpenses)
			r.Delete("/expenses/{expenseID}", s.handleRemoveExpense)
		})
	})

	return r
}

// NewServer wraps the handler in an http.Server with sane timeouts.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16, // 64KB
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.InfoContext(r.Context(), "Request handled",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, ww.Status(),
			applog.FieldDuration, time.Since(start).Milliseconds(),
			applog.FieldRequestID, chimiddleware.GetReqID(r.Context()))
	})
}
