package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okian/blaugrana/internal/adapters/export/sqlite"
	"github.com/okian/blaugrana/internal/adapters/repository"
	"github.com/okian/blaugrana/internal/domain/model"
	"github.com/okian/blaugrana/pkg/logger"
)

func dataset(t *testing.T) *model.Dataset {
	t.Helper()
	store, err := repository.Load(context.Background(), repository.WithLogger(logger.Nop()))
	require.NoError(t, err)
	return store.Dataset()
}

func openMemory(t *testing.T) *sqlite.Exporter {
	t.Helper()
	e, err := sqlite.Open(context.Background(), ":memory:", sqlite.WithLogger(logger.Nop()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	e := openMemory(t)

	counts, err := e.Export(ctx, dataset(t))
	require.NoError(t, err)
	assert.Equal(t, sqlite.Counts{
		Seasons:        5,
		Matches:        62,
		TopScorers:     25,
		KnockoutRounds: 20,
		Finals:         5,
		CrossSeason:    5,
	}, counts)

	db := e.DB()

	t.Run("season totals match the dataset", func(t *testing.T) {
		var goals int
		require.NoError(t, db.GetContext(ctx, &goals, `SELECT SUM(goals_scored) FROM seasons`))
		assert.Equal(t, 126, goals)

		var matches int
		require.NoError(t, db.GetContext(ctx, &matches, `SELECT COUNT(*) FROM matches WHERE season_id = ?`, "1991-92"))
		assert.Equal(t, 10, matches)
	})

	t.Run("missing possession is stored as NULL", func(t *testing.T) {
		var poss sql.NullFloat64
		require.NoError(t, db.GetContext(ctx, &poss, `SELECT avg_possession FROM seasons WHERE id = ?`, "1991-92"))
		assert.False(t, poss.Valid)

		require.NoError(t, db.GetContext(ctx, &poss, `SELECT avg_possession FROM seasons WHERE id = ?`, "2008-09"))
		assert.True(t, poss.Valid)
		assert.InDelta(t, 63.0, poss.Float64, 1e-9)
	})

	t.Run("matches carry their result code", func(t *testing.T) {
		var wins int
		require.NoError(t, db.GetContext(ctx, &wins, `SELECT COUNT(*) FROM matches WHERE season_id = ? AND result = 'W'`, "1991-92"))
		assert.Equal(t, 8, wins)
	})

	t.Run("players aggregate across seasons", func(t *testing.T) {
		var row struct {
			Goals   int `db:"goals"`
			Assists int `db:"assists"`
			Seasons int `db:"seasons"`
		}
		require.NoError(t, db.GetContext(ctx, &row,
			`SELECT SUM(goals) AS goals, SUM(assists) AS assists, COUNT(DISTINCT season_id) AS seasons
			 FROM top_scorers WHERE name = ?`, "Lionel Messi"))
		assert.Equal(t, 31, row.Goals)
		assert.Equal(t, 8, row.Assists)
		assert.Equal(t, 3, row.Seasons)
	})

	t.Run("finals keep extra time and attendance", func(t *testing.T) {
		var f struct {
			ExtraTime  bool   `db:"extra_time"`
			Attendance int    `db:"attendance"`
			Scorers    string `db:"scorers"`
		}
		require.NoError(t, db.GetContext(ctx, &f, `SELECT extra_time, attendance, scorers FROM finals WHERE season_id = ?`, "1991-92"))
		assert.True(t, f.ExtraTime)
		assert.Equal(t, 70827, f.Attendance)
		assert.JSONEq(t, `[{"name":"Ronald Koeman","minute":112}]`, f.Scorers)
	})

	t.Run("two-legged ties keep both legs", func(t *testing.T) {
		var legs struct {
			Leg1 sql.NullString `db:"leg1_score"`
			Leg2 sql.NullString `db:"leg2_score"`
		}
		require.NoError(t, db.GetContext(ctx, &legs,
			`SELECT leg1_score, leg2_score FROM knockout_rounds WHERE season_id = ? AND seq = 0`, "1991-92"))
		assert.Equal(t, "2-0", legs.Leg1.String)
		assert.Equal(t, "1-0", legs.Leg2.String)
	})

	t.Run("best dominance index comes from 2014-15", func(t *testing.T) {
		var id string
		require.NoError(t, db.GetContext(ctx, &id, `SELECT season_id FROM cross_season ORDER BY dominance_index DESC LIMIT 1`))
		assert.Equal(t, "2014-15", id)
	})
}

func TestExportIsRepeatable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "campaigns.db")
	ds := dataset(t)

	for range 2 {
		e, err := sqlite.Open(ctx, path, sqlite.WithLogger(logger.Nop()))
		require.NoError(t, err)
		_, err = e.Export(ctx, ds)
		require.NoError(t, err)

		var n int
		require.NoError(t, e.DB().GetContext(ctx, &n, `SELECT COUNT(*) FROM seasons`))
		assert.Equal(t, 5, n)
		require.NoError(t, e.Close())
	}
}

func TestExportFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("nil dataset", func(t *testing.T) {
		_, err := openMemory(t).Export(ctx, nil)
		assert.True(t, errors.Is(err, sqlite.ErrExport))
	})

	t.Run("duplicate season ids roll back", func(t *testing.T) {
		e := openMemory(t)
		ds := dataset(t)
		dup := *ds
		dup.Seasons = append([]model.Season{}, ds.Seasons...)
		dup.Seasons = append(dup.Seasons, ds.Seasons[0])

		_, err := e.Export(ctx, &dup)
		require.Error(t, err)
		assert.True(t, errors.Is(err, sqlite.ErrExport))

		var n int
		require.NoError(t, e.DB().GetContext(ctx, &n, `SELECT COUNT(*) FROM seasons`))
		assert.Zero(t, n)
	})

	t.Run("closed database", func(t *testing.T) {
		e, err := sqlite.Open(ctx, ":memory:", sqlite.WithLogger(logger.Nop()))
		require.NoError(t, err)
		require.NoError(t, e.Close())

		_, err = e.Export(ctx, dataset(t))
		assert.True(t, errors.Is(err, sqlite.ErrExport))
	})

	t.Run("unreachable path", func(t *testing.T) {
		_, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "missing", "dir", "x.db"), sqlite.WithLogger(logger.Nop()))
		assert.True(t, errors.Is(err, sqlite.ErrExport))
	})
}
