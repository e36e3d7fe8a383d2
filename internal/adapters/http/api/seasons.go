package api

import (
	"net/http"

	"github.com/okian/blaugrana/internal/domain/model"
	"github.com/okian/blaugrana/internal/domain/types"
)

const (
	codeNotFound   = "not_found"
	codeBadRequest = "bad_request"

	msgSeasonNotFound = "Season not found"
)

// SeasonsHandler serves the dataset read routes.
type SeasonsHandler struct {
	deps Dependencies
}

// NewSeasonsHandler creates a new seasons handler.
func NewSeasonsHandler(deps Dependencies) *SeasonsHandler {
	return &SeasonsHandler{deps: deps}
}

// HandleListSeasons handles GET /api/seasons.
func (h *SeasonsHandler) HandleListSeasons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.SummarizeAll(h.deps.ListSeasons(r.Context())))
}

// HandleGetSeason handles GET /api/season/{id}.
func (h *SeasonsHandler) HandleGetSeason(w http.ResponseWriter, r *http.Request) {
	season, ok := h.deps.GetSeason(r.Context(), r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, codeNotFound, msgSeasonNotFound)
		return
	}
	writeJSON(w, http.StatusOK, season)
}

// HandleGetMatches handles GET /api/matches/{season}.
func (h *SeasonsHandler) HandleGetMatches(w http.ResponseWriter, r *http.Request) {
	season, ok := h.deps.GetSeason(r.Context(), r.PathValue("season"))
	if !ok {
		writeError(w, http.StatusNotFound, codeNotFound, msgSeasonNotFound)
		return
	}
	matches := season.Matches
	if matches == nil {
		matches = []model.Match{}
	}
	writeJSON(w, http.StatusOK, matches)
}

// HandleCrossSeason handles GET /api/cross-season.
func (h *SeasonsHandler) HandleCrossSeason(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.CrossSeason(r.Context()))
}

// HandleMetadata handles GET /api/metadata.
func (h *SeasonsHandler) HandleMetadata(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Metadata(r.Context()))
}
