package repository

import (
	"context"
	_ "embed"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/okian/blaugrana/internal/domain/model"
	"github.com/okian/blaugrana/pkg/logger"
	"github.com/okian/blaugrana/pkg/metrics"
)

//go:embed data/campaigns.json
var embedded []byte

// Embedded returns the dataset bundled into the binary.
func Embedded() []byte { return embedded }

// MemStore is an immutable in-memory Store built once by Load.
type MemStore struct {
	dataset *model.Dataset
	byID    map[string]int
}

var _ Store = (*MemStore)(nil)

// Load decodes and validates a dataset. Any decode or validation failure is
// returned and no store is built.
func Load(ctx context.Context, opts ...Option) (*MemStore, error) {
	o := &loadOptions{data: embedded, logger: logger.Nop()}
	for _, opt := range opts {
		opt(o)
	}

	start := time.Now()
	raw := o.data
	source := "embedded"
	if o.path != "" {
		b, err := os.ReadFile(o.path)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "read %s", o.path), ErrReadDataset)
		}
		raw, source = b, o.path
	}

	var ds model.Dataset
	if err := sonic.ConfigStd.Unmarshal(raw, &ds); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "decode %s", source), ErrDecode)
	}
	if err := model.NewValidator().Validate(ctx, &ds); err != nil {
		return nil, errors.Mark(err, ErrInvalidDataset)
	}

	s := NewMemStore(&ds)

	elapsed := time.Since(start)
	metrics.UpdateDatasetSeasons(len(ds.Seasons))
	metrics.UpdateDatasetLoadDuration(elapsed)
	o.logger.Info(ctx, "dataset loaded",
		logger.String("source", source),
		logger.Int("seasons", len(ds.Seasons)),
		logger.Duration("elapsed", elapsed))
	return s, nil
}

// NewMemStore indexes ds without validating it. A nil ds gives an empty store.
func NewMemStore(ds *model.Dataset) *MemStore {
	if ds == nil {
		ds = &model.Dataset{}
	}
	s := &MemStore{dataset: ds, byID: make(map[string]int, len(ds.Seasons))}
	for i, season := range ds.Seasons {
		if _, dup := s.byID[season.ID]; !dup {
			s.byID[season.ID] = i
		}
	}
	return s
}

// Dataset returns the whole decoded document.
func (s *MemStore) Dataset() *model.Dataset { return s.dataset }

// ListSeasons implements Store.
func (s *MemStore) ListSeasons(context.Context) []model.Season {
	return s.dataset.Seasons
}

// GetSeason implements Store.
func (s *MemStore) GetSeason(_ context.Context, id string) (model.Season, bool) {
	start := time.Now()
	i, ok := s.byID[id]
	metrics.RecordSeasonLookup(ok)
	metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	if !ok {
		return model.Season{}, false
	}
	return s.dataset.Seasons[i], true
}

// CrossSeason implements Store.
func (s *MemStore) CrossSeason(context.Context) model.CrossSeason {
	return s.dataset.CrossSeason
}

// Metadata implements Store.
func (s *MemStore) Metadata(context.Context) model.Metadata {
	return s.dataset.Metadata
}

// Count implements Store.
func (s *MemStore) Count(context.Context) int {
	return len(s.dataset.Seasons)
}
