// Package repository provides read-only access to the campaign dataset.
package repository

import (
	"context"

	"github.com/okian/blaugrana/internal/domain/model"
)

// Store provides read access to the loaded dataset. Implementations are safe
// for concurrent use and return values that callers must not mutate.
type Store interface {
	// ListSeasons returns every season in dataset order.
	ListSeasons(ctx context.Context) []model.Season
	// GetSeason looks a season up by id. The bool reports presence.
	GetSeason(ctx context.Context, id string) (model.Season, bool)
	// CrossSeason returns the precomputed comparison block.
	CrossSeason(ctx context.Context) model.CrossSeason
	// Metadata returns the dataset description.
	Metadata(ctx context.Context) model.Metadata
	// Count returns the number of seasons.
	Count(ctx context.Context) int
}
