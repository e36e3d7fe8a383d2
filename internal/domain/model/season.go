// Package model contains the campaign dataset types passed between layers.
// Every value is built once when the dataset is decoded and never mutated.
package model

// Venue codes used by Match.HomeAway and leg venues.
const (
	VenueHome    = "H"
	VenueAway    = "A"
	VenueNeutral = "N"
)

// Dataset is the whole embedded document.
type Dataset struct {
	Metadata    Metadata    `json:"metadata" validate:"required"`
	Seasons     []Season    `json:"seasons" validate:"required,min=1,unique=ID,dive"`
	CrossSeason CrossSeason `json:"cross_season"`
}

// Metadata describes where the dataset comes from.
type Metadata struct {
	Title             string   `json:"title" validate:"required"`
	Description       string   `json:"description"`
	SeasonsCovered    []string `json:"seasons_covered"`
	DataSources       []string `json:"data_sources"`
	DataIntegrityNote string   `json:"data_integrity_note"`
}

// Season is one winning campaign.
type Season struct {
	ID                    string          `json:"id" validate:"required"`
	DisplayName           string          `json:"display_name" validate:"required"`
	Competition           string          `json:"competition"`
	Manager               string          `json:"manager"`
	SquadCore             []string        `json:"squad_core"`
	Formation             string          `json:"formation"`
	MatchesPlayed         int             `json:"matches_played" validate:"gte=1"`
	Wins                  int             `json:"wins" validate:"gte=0"`
	Draws                 int             `json:"draws" validate:"gte=0"`
	Losses                int             `json:"losses" validate:"gte=0"`
	GoalsScored           int             `json:"goals_scored" validate:"gte=0"`
	GoalsConceded         int             `json:"goals_conceded" validate:"gte=0"`
	GoalDifference        int             `json:"goal_difference"`
	CleanSheets           int             `json:"clean_sheets" validate:"gte=0,ltefield=MatchesPlayed"`
	GoalsPerMatch         float64         `json:"goals_per_match" validate:"gte=0"`
	GoalsConcededPerMatch float64         `json:"goals_conceded_per_match" validate:"gte=0"`
	WinPercentage         float64         `json:"win_percentage" validate:"gte=0,lte=100"`
	AvgPossession         *float64        `json:"avg_possession" validate:"omitempty,gte=0,lte=100"`
	KnockoutPath          []KnockoutRound `json:"knockout_path" validate:"dive"`
	Final                 FinalInfo       `json:"final"`
	Matches               []Match         `json:"matches" validate:"dive"`
	TopScorers            []PlayerStat    `json:"top_scorers" validate:"dive"`
}

// HasPossession reports whether possession was recorded for the season.
func (s Season) HasPossession() bool { return s.AvgPossession != nil }

// TopScorer returns the first listed scorer; the dataset lists the leading scorer first.
func (s Season) TopScorer() (PlayerStat, bool) {
	if len(s.TopScorers) == 0 {
		return PlayerStat{}, false
	}
	return s.TopScorers[0], true
}

// Match is a single fixture of a campaign.
type Match struct {
	Date          string   `json:"date" validate:"required,datetime=2006-01-02"`
	Opponent      string   `json:"opponent" validate:"required"`
	HomeAway      string   `json:"home_away" validate:"oneof=H A N"`
	Score         string   `json:"score"`
	GoalsScored   int      `json:"goals_scored" validate:"gte=0"`
	GoalsConceded int      `json:"goals_conceded" validate:"gte=0"`
	Stage         string   `json:"stage"`
	Scorers       []string `json:"scorers"`
	Possession    *int     `json:"possession" validate:"omitempty,gte=0,lte=100"`
	Shots         *int     `json:"shots" validate:"omitempty,gte=0"`
	ShotsOnTarget *int     `json:"shots_on_target" validate:"omitempty,gte=0"`
	ExtraTime     bool     `json:"extra_time,omitempty"`
}

// Leg is one half of a two-legged tie.
type Leg struct {
	Score string `json:"score"`
	Venue string `json:"venue" validate:"omitempty,oneof=H A N"`
}

// KnockoutRound is an elimination tie on the road to the final.
type KnockoutRound struct {
	Round           string   `json:"round" validate:"required"`
	Opponent        string   `json:"opponent"`
	Leg1            *Leg     `json:"leg1,omitempty"`
	Leg2            *Leg     `json:"leg2,omitempty"`
	Aggregate       string   `json:"aggregate"`
	KeyContributors []string `json:"key_contributors"`
	Detail          string   `json:"detail,omitempty"`
	Note            string   `json:"note,omitempty"`
	Venue           string   `json:"venue,omitempty"`
	Score           string   `json:"score,omitempty"`
}

// TwoLegged reports whether both legs are recorded.
func (k KnockoutRound) TwoLegged() bool { return k.Leg1 != nil && k.Leg2 != nil }

// PlayerStat is a player's campaign line. ContributionShare is precomputed upstream.
type PlayerStat struct {
	Name              string  `json:"name" validate:"required"`
	Goals             int     `json:"goals" validate:"gte=0"`
	Assists           int     `json:"assists" validate:"gte=0"`
	Minutes           int     `json:"minutes" validate:"gte=0"`
	ContributionShare float64 `json:"contribution_share"`
}

// FinalScorer is a goal in the final.
type FinalScorer struct {
	Name   string `json:"name"`
	Minute int    `json:"minute"`
}

// FinalInfo describes the final.
type FinalInfo struct {
	Opponent   string        `json:"opponent"`
	Venue      string        `json:"venue"`
	Date       string        `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Score      string        `json:"score"`
	ExtraTime  bool          `json:"extra_time"`
	Scorers    []FinalScorer `json:"scorers"`
	Attendance int           `json:"attendance" validate:"gte=0"`
}

// CrossSeason holds the precomputed comparison rows and dataset-wide traits.
type CrossSeason struct {
	Comparison   []CrossSeasonComparison `json:"comparison"`
	CommonTraits CommonTraits            `json:"common_traits"`
}

// CrossSeasonComparison is one season's comparative row.
type CrossSeasonComparison struct {
	Season                string   `json:"season"`
	DisplayName           string   `json:"display_name"`
	Manager               string   `json:"manager"`
	GoalsPerMatch         float64  `json:"goals_per_match"`
	GoalsConcededPerMatch float64  `json:"goals_conceded_per_match"`
	GoalDifference        int      `json:"goal_difference"`
	WinPercentage         float64  `json:"win_percentage"`
	CleanSheets           int      `json:"clean_sheets"`
	AvgPossession         *float64 `json:"avg_possession"`
	MatchesPlayed         int      `json:"matches_played"`
	GoalsScored           int      `json:"goals_scored"`
	GoalsConceded         int      `json:"goals_conceded"`
	TopScorer             string   `json:"top_scorer"`
	TopScorerGoals        int      `json:"top_scorer_goals"`
	TopScorerDependency   float64  `json:"top_scorer_dependency"`
	DominanceIndex        float64  `json:"dominance_index"`
}

// CommonTraits are dataset-wide averages and totals.
type CommonTraits struct {
	AvgGoalsPerMatch         float64 `json:"avg_goals_per_match"`
	AvgGoalsConcededPerMatch float64 `json:"avg_goals_conceded_per_match"`
	AvgWinPercentage         float64 `json:"avg_win_percentage"`
	AvgCleanSheetPct         float64 `json:"avg_clean_sheet_pct"`
	TotalGoalsScored         int     `json:"total_goals_scored"`
	TotalMatches             int     `json:"total_matches"`
	TotalGoalsConceded       int     `json:"total_goals_conceded"`
}
