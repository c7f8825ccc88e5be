// Package http exposes the tracker as a JSON API. It is the view-controller
// layer: it routes user actions to the store and the aggregator, and keeps
// view state (the active date filter) in request parameters rather than in
// the server.
package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/singleflight"

	"viaggio/internal/core"
	applog "viaggio/internal/log"
	"viaggio/internal/store"
)

// Advisor produces a spending analysis for a snapshot of the expense list.
// It never fails; failures surface as the advisor's fallback result.
type Advisor interface {
	Analyze(ctx context.Context, expenses []core.Expense, baseCurrency string) core.AnalysisResult
}

type Server struct {
	http.Server

	store        *store.Store
	advisor      Advisor
	baseCurrency string

	// Concurrent analysis requests collapse into the in-flight call; the
	// limiter keeps a misbehaving client from hammering the paid endpoint.
	analyses       singleflight.Group
	analyzeLimiter *rateLimiter
}

func NewServer(addr string, st *store.Store, adv Advisor, baseCurrency string, analyzePerMinute int, logger *applog.Logger) *Server {
	s := &Server{
		store:          st,
		advisor:        adv,
		baseCurrency:   baseCurrency,
		analyzeLimiter: newRateLimiter(analyzePerMinute),
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(applog.RequestLogger(logger))

	r.Get("/healthz", s.handleHealthz)

	r.Route("/api", func(r chi.Router) {
		r.Get("/taxonomy", s.handleTaxonomy)

		r.Get("/expenses", s.handleListExpenses)
		r.Post("/expenses", s.handleCreateExpense)
		r.Delete("/expenses/{id}", s.handleDeleteExpense)

		r.Get("/dashboard", s.handleDashboard)

		r.With(s.analyzeLimiter.Handler).Post("/analyze", s.handleAnalyze)
	})

	s.Addr = addr
	s.Handler = r
	return s
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"expenses": s.store.Count(),
	})
}

func (s *Server) handleTaxonomy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"currencies": core.Currencies,
		"categories": core.Categories,
	})
}
