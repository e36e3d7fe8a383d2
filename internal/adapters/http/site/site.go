// Package site serves the dashboard pages, their SVG charts and the stylesheet.
package site

import (
	"context"
	"net/http"

	"github.com/a-h/templ"

	service "github.com/okian/blaugrana/internal/app"
	"github.com/okian/blaugrana/internal/domain/model"
	"github.com/okian/blaugrana/pkg/logger"
)

// Dependencies are the read views the pages and charts are built from.
type Dependencies interface {
	Overview(ctx context.Context) service.Overview
	SeasonDetail(ctx context.Context, id string) (service.SeasonView, bool)
	Compare(ctx context.Context) service.CompareView
	Players(ctx context.Context, seasonID string) service.PlayersView
	ListSeasons(ctx context.Context) []model.Season
	GetSeason(ctx context.Context, id string) (model.Season, bool)
}

// Middleware wraps a handler with an endpoint name, e.g. for metrics.
type Middleware func(next http.HandlerFunc, endpoint string) http.HandlerFunc

// Option configures Register.
type Option func(*Handler)

// WithMiddleware wraps every route.
func WithMiddleware(m Middleware) Option {
	return func(h *Handler) {
		if m != nil {
			h.wrap = m
		}
	}
}

// WithLogger sets the logger used for render failures.
func WithLogger(l logger.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// Handler serves the dashboard.
type Handler struct {
	deps   Dependencies
	wrap   Middleware
	logger logger.Logger
}

// NewHandler creates a site handler.
func NewHandler(deps Dependencies, opts ...Option) *Handler {
	h := &Handler{
		deps:   deps,
		wrap:   func(next http.HandlerFunc, _ string) http.HandlerFunc { return next },
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register attaches the page, chart and static routes to mux. Any path no
// other route claims gets the 404 page.
func Register(_ context.Context, mux *http.ServeMux, deps Dependencies, opts ...Option) {
	if mux == nil {
		panic("mux is nil")
	}
	h := NewHandler(deps, opts...)

	mux.HandleFunc("GET /{$}", h.wrap(h.HandleOverview, "overview"))
	mux.HandleFunc("GET /season/{id}", h.wrap(h.HandleSeason, "season"))
	mux.HandleFunc("GET /compare", h.wrap(h.HandleCompare, "compare"))
	mux.HandleFunc("GET /players", h.wrap(h.HandlePlayers, "players"))
	mux.HandleFunc("GET /players/{id}", h.wrap(h.HandlePlayers, "players"))

	mux.HandleFunc("GET /charts/compare/{file}", h.wrap(h.HandleCompareChart, "chart_compare"))
	mux.HandleFunc("GET /charts/season/{id}/{file}", h.wrap(h.HandleSeasonChart, "chart_season"))
	mux.HandleFunc("GET /charts/players/top-scorers.svg", h.wrap(h.HandleTopScorersChart, "chart_players"))
	mux.HandleFunc("GET /charts/players/{id}/{file}", h.wrap(h.HandlePlayerChart, "chart_players"))

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(FS())))
	mux.HandleFunc("/", h.wrap(h.HandleNotFound, "not_found"))
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, c templ.Component, status int) {
	templ.Handler(c,
		templ.WithStatus(status),
		templ.WithErrorHandler(func(r *http.Request, err error) http.Handler {
			h.logger.Error(r.Context(), "page render failed",
				logger.String("path", r.URL.Path),
				logger.Error(err))
			return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			})
		}),
	).ServeHTTP(w, r)
}

// HandleOverview handles GET /.
func (h *Handler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	v := h.deps.Overview(r.Context())
	h.render(w, r, page(pageOverview, "Champions League Winners", v), http.StatusOK)
}

// HandleSeason handles GET /season/{id}.
func (h *Handler) HandleSeason(w http.ResponseWriter, r *http.Request) {
	v, ok := h.deps.SeasonDetail(r.Context(), r.PathValue("id"))
	if !ok {
		h.notFound(w, r, "Season not found")
		return
	}
	h.render(w, r, page(pageSeason, v.Season.DisplayName, v), http.StatusOK)
}

// HandleCompare handles GET /compare.
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	v := h.deps.Compare(r.Context())
	h.render(w, r, page(pageCompare, "Cross-Season Comparison", v), http.StatusOK)
}

// HandlePlayers handles GET /players?season={id} and GET /players/{id}.
func (h *Handler) HandlePlayers(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		id = r.URL.Query().Get("season")
	}
	v := h.deps.Players(r.Context(), id)
	h.render(w, r, page(pagePlayers, "Player Contribution Engine", v), http.StatusOK)
}

// HandleNotFound serves the 404 page.
func (h *Handler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	h.notFound(w, r, "Page not found")
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request, msg string) {
	h.render(w, r, page(pageNotFound, msg, msg), http.StatusNotFound)
}
