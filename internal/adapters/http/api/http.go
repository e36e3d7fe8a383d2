// Package api declares the JSON API contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/okian/blaugrana/internal/domain/model"
	"github.com/okian/blaugrana/internal/domain/players"
	"github.com/okian/blaugrana/pkg/logger"
)

// DefaultMaxLimit caps /api/players?limit.
const DefaultMaxLimit = 100

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ListSeasons(ctx context.Context) []model.Season
	GetSeason(ctx context.Context, id string) (model.Season, bool)
	CrossSeason(ctx context.Context) model.CrossSeason
	Metadata(ctx context.Context) model.Metadata
	Count(ctx context.Context) int

	// Ranking returns aggregated players; limit <= 0 means all.
	Ranking(ctx context.Context, limit int) []players.Summary
}

// Server wires HTTP routes for the JSON API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	seasonsHandler *SeasonsHandler
	playersHandler *PlayersHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	if maxLimit <= 0 {
		maxLimit = DefaultMaxLimit
	}
	return &Server{
		healthHandler:  NewHealthHandler(deps),
		statsHandler:   NewStatsHandler(statsProvider),
		seasonsHandler: NewSeasonsHandler(deps),
		playersHandler: NewPlayersHandler(deps, maxLimit),
	}
}

// Register attaches all API routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", MetricsMiddleware(s.healthHandler.HandleMetrics, "metrics"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("GET /api/seasons", MetricsMiddleware(s.seasonsHandler.HandleListSeasons, "seasons"))
	mux.HandleFunc("GET /api/season/{id}", MetricsMiddleware(s.seasonsHandler.HandleGetSeason, "season"))
	mux.HandleFunc("GET /api/matches/{season}", MetricsMiddleware(s.seasonsHandler.HandleGetMatches, "matches"))
	mux.HandleFunc("GET /api/cross-season", MetricsMiddleware(s.seasonsHandler.HandleCrossSeason, "cross_season"))
	mux.HandleFunc("GET /api/metadata", MetricsMiddleware(s.seasonsHandler.HandleMetadata, "metadata"))
	mux.HandleFunc("GET /api/players", MetricsMiddleware(s.playersHandler.HandleGetPlayers, "players"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := sonic.Marshal(v)
	if err != nil {
		logger.Get().Error(context.Background(), "encode response", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, code string, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
