package sqlite

import (
	"database/sql"

	"github.com/bytedance/sonic"

	"github.com/okian/blaugrana/internal/domain/model"
	"github.com/okian/blaugrana/internal/domain/outcome"
)

type seasonRow struct {
	ID                    string          `db:"id"`
	DisplayName           string          `db:"display_name"`
	Competition           string          `db:"competition"`
	Manager               string          `db:"manager"`
	Formation             string          `db:"formation"`
	SquadCore             string          `db:"squad_core"`
	MatchesPlayed         int             `db:"matches_played"`
	Wins                  int             `db:"wins"`
	Draws                 int             `db:"draws"`
	Losses                int             `db:"losses"`
	GoalsScored           int             `db:"goals_scored"`
	GoalsConceded         int             `db:"goals_conceded"`
	GoalDifference        int             `db:"goal_difference"`
	CleanSheets           int             `db:"clean_sheets"`
	GoalsPerMatch         float64         `db:"goals_per_match"`
	GoalsConcededPerMatch float64         `db:"goals_conceded_per_match"`
	WinPercentage         float64         `db:"win_percentage"`
	AvgPossession         sql.NullFloat64 `db:"avg_possession"`
}

type matchRow struct {
	SeasonID      string        `db:"season_id"`
	Seq           int           `db:"seq"`
	Date          string        `db:"date"`
	Opponent      string        `db:"opponent"`
	HomeAway      string        `db:"home_away"`
	Score         string        `db:"score"`
	GoalsScored   int           `db:"goals_scored"`
	GoalsConceded int           `db:"goals_conceded"`
	Result        string        `db:"result"`
	Stage         string        `db:"stage"`
	Scorers       string        `db:"scorers"`
	Possession    sql.NullInt64 `db:"possession"`
	Shots         sql.NullInt64 `db:"shots"`
	ShotsOnTarget sql.NullInt64 `db:"shots_on_target"`
	ExtraTime     bool          `db:"extra_time"`
}

type scorerRow struct {
	SeasonID          string  `db:"season_id"`
	Seq               int     `db:"seq"`
	Name              string  `db:"name"`
	Goals             int     `db:"goals"`
	Assists           int     `db:"assists"`
	Minutes           int     `db:"minutes"`
	ContributionShare float64 `db:"contribution_share"`
}

type knockoutRow struct {
	SeasonID        string         `db:"season_id"`
	Seq             int            `db:"seq"`
	Round           string         `db:"round"`
	Opponent        string         `db:"opponent"`
	Leg1Score       sql.NullString `db:"leg1_score"`
	Leg1Venue       sql.NullString `db:"leg1_venue"`
	Leg2Score       sql.NullString `db:"leg2_score"`
	Leg2Venue       sql.NullString `db:"leg2_venue"`
	Aggregate       string         `db:"aggregate"`
	KeyContributors string         `db:"key_contributors"`
	Detail          string         `db:"detail"`
	Note            string         `db:"note"`
	Venue           string         `db:"venue"`
	Score           string         `db:"score"`
}

type finalRow struct {
	SeasonID   string `db:"season_id"`
	Opponent   string `db:"opponent"`
	Venue      string `db:"venue"`
	Date       string `db:"date"`
	Score      string `db:"score"`
	ExtraTime  bool   `db:"extra_time"`
	Scorers    string `db:"scorers"`
	Attendance int    `db:"attendance"`
}

type crossSeasonRow struct {
	SeasonID              string          `db:"season_id"`
	DisplayName           string          `db:"display_name"`
	GoalsPerMatch         float64         `db:"goals_per_match"`
	GoalsConcededPerMatch float64         `db:"goals_conceded_per_match"`
	GoalDifference        int             `db:"goal_difference"`
	WinPercentage         float64         `db:"win_percentage"`
	CleanSheets           int             `db:"clean_sheets"`
	AvgPossession         sql.NullFloat64 `db:"avg_possession"`
	TopScorer             string          `db:"top_scorer"`
	TopScorerGoals        int             `db:"top_scorer_goals"`
	TopScorerDependency   float64         `db:"top_scorer_dependency"`
	DominanceIndex        float64         `db:"dominance_index"`
}

// jsonText stores list columns as JSON arrays; nil becomes "[]".
func jsonText(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	b, err := sonic.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func legColumns(l *model.Leg) (score, venue sql.NullString) {
	if l == nil {
		return sql.NullString{}, sql.NullString{}
	}
	return sql.NullString{String: l.Score, Valid: true}, sql.NullString{String: l.Venue, Valid: true}
}

func toSeasonRow(s model.Season) (seasonRow, error) {
	squad, err := jsonText(s.SquadCore)
	if err != nil {
		return seasonRow{}, err
	}
	return seasonRow{
		ID:                    s.ID,
		DisplayName:           s.DisplayName,
		Competition:           s.Competition,
		Manager:               s.Manager,
		Formation:             s.Formation,
		SquadCore:             squad,
		MatchesPlayed:         s.MatchesPlayed,
		Wins:                  s.Wins,
		Draws:                 s.Draws,
		Losses:                s.Losses,
		GoalsScored:           s.GoalsScored,
		GoalsConceded:         s.GoalsConceded,
		GoalDifference:        s.GoalDifference,
		CleanSheets:           s.CleanSheets,
		GoalsPerMatch:         s.GoalsPerMatch,
		GoalsConcededPerMatch: s.GoalsConcededPerMatch,
		WinPercentage:         s.WinPercentage,
		AvgPossession:         nullFloat(s.AvgPossession),
	}, nil
}

func toMatchRow(seasonID string, seq int, m model.Match) (matchRow, error) {
	scorers, err := jsonText(m.Scorers)
	if err != nil {
		return matchRow{}, err
	}
	return matchRow{
		SeasonID:      seasonID,
		Seq:           seq,
		Date:          m.Date,
		Opponent:      m.Opponent,
		HomeAway:      m.HomeAway,
		Score:         m.Score,
		GoalsScored:   m.GoalsScored,
		GoalsConceded: m.GoalsConceded,
		Result:        outcome.Classify(m.GoalsScored, m.GoalsConceded),
		Stage:         m.Stage,
		Scorers:       scorers,
		Possession:    nullInt(m.Possession),
		Shots:         nullInt(m.Shots),
		ShotsOnTarget: nullInt(m.ShotsOnTarget),
		ExtraTime:     m.ExtraTime,
	}, nil
}

func toKnockoutRow(seasonID string, seq int, k model.KnockoutRound) (knockoutRow, error) {
	contributors, err := jsonText(k.KeyContributors)
	if err != nil {
		return knockoutRow{}, err
	}
	row := knockoutRow{
		SeasonID:        seasonID,
		Seq:             seq,
		Round:           k.Round,
		Opponent:        k.Opponent,
		Aggregate:       k.Aggregate,
		KeyContributors: contributors,
		Detail:          k.Detail,
		Note:            k.Note,
		Venue:           k.Venue,
		Score:           k.Score,
	}
	row.Leg1Score, row.Leg1Venue = legColumns(k.Leg1)
	row.Leg2Score, row.Leg2Venue = legColumns(k.Leg2)
	return row, nil
}

func toFinalRow(seasonID string, f model.FinalInfo) (finalRow, error) {
	scorers := f.Scorers
	if scorers == nil {
		scorers = []model.FinalScorer{}
	}
	b, err := sonic.Marshal(scorers)
	if err != nil {
		return finalRow{}, err
	}
	return finalRow{
		SeasonID:   seasonID,
		Opponent:   f.Opponent,
		Venue:      f.Venue,
		Date:       f.Date,
		Score:      f.Score,
		ExtraTime:  f.ExtraTime,
		Scorers:    string(b),
		Attendance: f.Attendance,
	}, nil
}

func toCrossSeasonRow(c model.CrossSeasonComparison) crossSeasonRow {
	return crossSeasonRow{
		SeasonID:              c.Season,
		DisplayName:           c.DisplayName,
		GoalsPerMatch:         c.GoalsPerMatch,
		GoalsConcededPerMatch: c.GoalsConcededPerMatch,
		GoalDifference:        c.GoalDifference,
		WinPercentage:         c.WinPercentage,
		CleanSheets:           c.CleanSheets,
		AvgPossession:         nullFloat(c.AvgPossession),
		TopScorer:             c.TopScorer,
		TopScorerGoals:        c.TopScorerGoals,
		TopScorerDependency:   c.TopScorerDependency,
		DominanceIndex:        c.DominanceIndex,
	}
}
