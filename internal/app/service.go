// Package service provides the dashboard service that the HTTP pages, the JSON
// API and the static exporter read from.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/okian/blaugrana/internal/adapters/repository"
	"github.com/okian/blaugrana/internal/domain/crossseason"
	"github.com/okian/blaugrana/internal/domain/model"
	"github.com/okian/blaugrana/pkg/logger"
	"github.com/okian/blaugrana/pkg/metrics"
)

// DefaultMaxPlayerRows is the length of the aggregated players table.
const DefaultMaxPlayerRows = 12

// Service serves read-only views over the campaign dataset.
type Service struct {
	mu sync.RWMutex

	store repository.Store

	// Configuration
	datasetPath   string
	maxPlayerRows int
	preloaded     bool

	// State
	started   bool
	startedAt time.Time
	drift     []crossseason.Drift

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDatasetPath loads the dataset from a file instead of the embedded copy.
func WithDatasetPath(path string) Option {
	return func(s *Service) {
		s.datasetPath = path
	}
}

// WithStore uses an already built store; Start then skips loading.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
			s.preloaded = true
		}
	}
}

// WithMaxPlayerRows caps the aggregated players table.
func WithMaxPlayerRows(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxPlayerRows = n
		}
	}
}

// New constructs a Service. It serves an empty dataset until Start succeeds.
func New(opts ...Option) *Service {
	s := &Service{
		store:         repository.NewMemStore(nil),
		maxPlayerRows: DefaultMaxPlayerRows,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads and checks the dataset. Drift between stored and recomputed
// metrics is logged and kept for GetStats; it does not fail the start.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting dashboard service...")

	if !s.preloaded {
		store, err := repository.Load(ctx,
			repository.WithPath(s.datasetPath),
			repository.WithLogger(s.logger.Named("repository")),
		)
		if err != nil {
			return err
		}
		s.store = store
	}

	s.drift = crossseason.Verify(dataset(ctx, s.store))
	metrics.UpdateDatasetDrift(len(s.drift))
	for _, d := range s.drift {
		s.logger.Warn(ctx, "precomputed metric drift",
			logger.String("season", d.Season),
			logger.String("field", d.Field),
			logger.String("stored", d.Stored),
			logger.String("computed", d.Computed),
		)
	}

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "dashboard service started",
		logger.Int("seasons", s.store.Count(ctx)),
		logger.Int("drift", len(s.drift)),
		logger.Int("maxPlayerRows", s.maxPlayerRows),
	)
	return nil
}

// Stop marks the service stopped. The loaded dataset stays readable.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

func dataset(ctx context.Context, store repository.Store) *model.Dataset {
	return &model.Dataset{
		Metadata:    store.Metadata(ctx),
		Seasons:     store.ListSeasons(ctx),
		CrossSeason: store.CrossSeason(ctx),
	}
}

func (s *Service) current() repository.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store
}

// Started reports whether Start has completed.
func (s *Service) Started() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// MaxPlayerRows is the configured length of the aggregated players table.
func (s *Service) MaxPlayerRows() int { return s.maxPlayerRows }

// Drift returns the metric disagreements found by Start.
func (s *Service) Drift() []crossseason.Drift {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drift
}

// ListSeasons implements repository.Store.
func (s *Service) ListSeasons(ctx context.Context) []model.Season {
	return s.current().ListSeasons(ctx)
}

// GetSeason implements repository.Store.
func (s *Service) GetSeason(ctx context.Context, id string) (model.Season, bool) {
	return s.current().GetSeason(ctx, id)
}

// CrossSeason implements repository.Store.
func (s *Service) CrossSeason(ctx context.Context) model.CrossSeason {
	return s.current().CrossSeason(ctx)
}

// Metadata implements repository.Store.
func (s *Service) Metadata(ctx context.Context) model.Metadata {
	return s.current().Metadata(ctx)
}

// Count implements repository.Store.
func (s *Service) Count(ctx context.Context) int {
	return s.current().Count(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":       s.started,
		"maxPlayerRows": s.maxPlayerRows,
		"datasetPath":   s.datasetPath,
	}

	if s.started {
		seasons := s.store.Count(ctx)
		drift := make([]string, 0, len(s.drift))
		for _, d := range s.drift {
			drift = append(drift, d.String())
		}

		stats["seasons"] = seasons
		stats["drift"] = drift
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())

		metrics.UpdateDatasetSeasons(seasons)
		metrics.UpdateDatasetDrift(len(s.drift))
	}

	return stats
}
