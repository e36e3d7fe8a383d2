package api

import (
	"net/http"
	"strconv"

	"github.com/cockroachdb/errors"
)

// PlayersHandler serves the aggregated player ranking.
type PlayersHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps Dependencies, maxLimit int) *PlayersHandler {
	return &PlayersHandler{deps: deps, maxLimit: maxLimit}
}

// parseLimit reads ?limit; absent means 0 (all).
func parseLimit(raw string, maxLimit int) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Mark(errors.Wrapf(err, "limit %q", raw), ErrBadRequest)
	}
	if n < 1 || n > maxLimit {
		return 0, errors.Mark(errors.Newf("limit must be between 1 and %d", maxLimit), ErrBadRequest)
	}
	return n, nil
}

// HandleGetPlayers handles GET /api/players?limit=N.
func (h *PlayersHandler) HandleGetPlayers(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"), h.maxLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Ranking(r.Context(), limit))
}
