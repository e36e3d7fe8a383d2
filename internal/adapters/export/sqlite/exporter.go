// Package sqlite writes the campaign dataset into a sqlite database so it can
// be queried with SQL tools.
package sqlite

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	_ "github.com/glebarez/go-sqlite" // registers the "sqlite" driver
	"github.com/jmoiron/sqlx"

	"github.com/okian/blaugrana/internal/domain/model"
	"github.com/okian/blaugrana/pkg/logger"
)

const driverName = "sqlite"

const (
	insertSeason = `INSERT INTO seasons (id, display_name, competition, manager, formation, squad_core,
    matches_played, wins, draws, losses, goals_scored, goals_conceded, goal_difference, clean_sheets,
    goals_per_match, goals_conceded_per_match, win_percentage, avg_possession)
VALUES (:id, :display_name, :competition, :manager, :formation, :squad_core,
    :matches_played, :wins, :draws, :losses, :goals_scored, :goals_conceded, :goal_difference, :clean_sheets,
    :goals_per_match, :goals_conceded_per_match, :win_percentage, :avg_possession)`

	insertMatch = `INSERT INTO matches (season_id, seq, date, opponent, home_away, score, goals_scored,
    goals_conceded, result, stage, scorers, possession, shots, shots_on_target, extra_time)
VALUES (:season_id, :seq, :date, :opponent, :home_away, :score, :goals_scored,
    :goals_conceded, :result, :stage, :scorers, :possession, :shots, :shots_on_target, :extra_time)`

	insertScorer = `INSERT INTO top_scorers (season_id, seq, name, goals, assists, minutes, contribution_share)
VALUES (:season_id, :seq, :name, :goals, :assists, :minutes, :contribution_share)`

	insertKnockout = `INSERT INTO knockout_rounds (season_id, seq, round, opponent, leg1_score, leg1_venue,
    leg2_score, leg2_venue, aggregate, key_contributors, detail, note, venue, score)
VALUES (:season_id, :seq, :round, :opponent, :leg1_score, :leg1_venue,
    :leg2_score, :leg2_venue, :aggregate, :key_contributors, :detail, :note, :venue, :score)`

	insertFinal = `INSERT INTO finals (season_id, opponent, venue, date, score, extra_time, scorers, attendance)
VALUES (:season_id, :opponent, :venue, :date, :score, :extra_time, :scorers, :attendance)`

	insertCrossSeason = `INSERT INTO cross_season (season_id, display_name, goals_per_match,
    goals_conceded_per_match, goal_difference, win_percentage, clean_sheets, avg_possession,
    top_scorer, top_scorer_goals, top_scorer_dependency, dominance_index)
VALUES (:season_id, :display_name, :goals_per_match,
    :goals_conceded_per_match, :goal_difference, :win_percentage, :clean_sheets, :avg_possession,
    :top_scorer, :top_scorer_goals, :top_scorer_dependency, :dominance_index)`
)

// Counts is the number of rows written per table.
type Counts struct {
	Seasons        int
	Matches        int
	TopScorers     int
	KnockoutRounds int
	Finals         int
	CrossSeason    int
}

// Exporter writes datasets into a sqlite database.
type Exporter struct {
	db     *sqlx.DB
	logger logger.Logger
}

// Open connects to the sqlite database at dsn (":memory:" works) and creates
// the schema if needed.
func Open(ctx context.Context, dsn string, opts ...Option) (*Exporter, error) {
	db, err := sqlx.ConnectContext(ctx, driverName, dsn)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "open %s", dsn), ErrExport)
	}
	// A single connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	e, err := New(ctx, db, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return e, nil
}

// New wraps an existing connection and creates the schema if needed.
func New(ctx context.Context, db *sqlx.DB, opts ...Option) (*Exporter, error) {
	e := &Exporter{db: db, logger: logger.Get()}
	for _, opt := range opts {
		opt(e)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "create schema"), ErrExport)
	}
	return e, nil
}

// DB exposes the underlying connection for queries.
func (e *Exporter) DB() *sqlx.DB { return e.db }

// Close closes the database.
func (e *Exporter) Close() error {
	if err := e.db.Close(); err != nil {
		return errors.Mark(errors.Wrap(err, "close"), ErrExport)
	}
	return nil
}

// Export replaces the contents of every table with ds in one transaction.
func (e *Exporter) Export(ctx context.Context, ds *model.Dataset) (Counts, error) {
	if ds == nil {
		return Counts{}, errors.Mark(errors.New("nil dataset"), ErrExport)
	}
	start := time.Now()

	tx, err := e.db.BeginTxx(ctx, nil)
	if err != nil {
		return Counts{}, errors.Mark(errors.Wrap(err, "begin tx"), ErrExport)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Children first so the season references never dangle.
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+tables[i]); err != nil {
			return Counts{}, errors.Mark(errors.Wrapf(err, "clear %s", tables[i]), ErrExport)
		}
	}

	var c Counts
	for _, s := range ds.Seasons {
		if err := writeSeason(ctx, tx, s, &c); err != nil {
			return Counts{}, errors.Mark(errors.Wrapf(err, "season %s", s.ID), ErrExport)
		}
	}
	for _, row := range ds.CrossSeason.Comparison {
		if _, err := tx.NamedExecContext(ctx, insertCrossSeason, toCrossSeasonRow(row)); err != nil {
			return Counts{}, errors.Mark(errors.Wrapf(err, "cross season %s", row.Season), ErrExport)
		}
		c.CrossSeason++
	}

	if err := tx.Commit(); err != nil {
		return Counts{}, errors.Mark(errors.Wrap(err, "commit"), ErrExport)
	}

	e.logger.Info(ctx, "sqlite export written",
		logger.Int("seasons", c.Seasons),
		logger.Int("matches", c.Matches),
		logger.Int("top_scorers", c.TopScorers),
		logger.Int("knockout_rounds", c.KnockoutRounds),
		logger.Duration("duration", time.Since(start)))
	return c, nil
}

func writeSeason(ctx context.Context, tx *sqlx.Tx, s model.Season, c *Counts) error {
	row, err := toSeasonRow(s)
	if err != nil {
		return err
	}
	if _, err := tx.NamedExecContext(ctx, insertSeason, row); err != nil {
		return errors.Wrap(err, "insert season")
	}
	c.Seasons++

	for i, m := range s.Matches {
		mr, err := toMatchRow(s.ID, i, m)
		if err != nil {
			return err
		}
		if _, err := tx.NamedExecContext(ctx, insertMatch, mr); err != nil {
			return errors.Wrapf(err, "insert match %d", i)
		}
		c.Matches++
	}

	for i, p := range s.TopScorers {
		sr := scorerRow{
			SeasonID:          s.ID,
			Seq:               i,
			Name:              p.Name,
			Goals:             p.Goals,
			Assists:           p.Assists,
			Minutes:           p.Minutes,
			ContributionShare: p.ContributionShare,
		}
		if _, err := tx.NamedExecContext(ctx, insertScorer, sr); err != nil {
			return errors.Wrapf(err, "insert scorer %s", p.Name)
		}
		c.TopScorers++
	}

	for i, k := range s.KnockoutPath {
		kr, err := toKnockoutRow(s.ID, i, k)
		if err != nil {
			return err
		}
		if _, err := tx.NamedExecContext(ctx, insertKnockout, kr); err != nil {
			return errors.Wrapf(err, "insert round %s", k.Round)
		}
		c.KnockoutRounds++
	}

	fr, err := toFinalRow(s.ID, s.Final)
	if err != nil {
		return err
	}
	if _, err := tx.NamedExecContext(ctx, insertFinal, fr); err != nil {
		return errors.Wrap(err, "insert final")
	}
	c.Finals++
	return nil
}
