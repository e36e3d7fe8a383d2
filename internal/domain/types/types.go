// Package types contains read shapes shared by the API and the pages.
package types

import "github.com/okian/blaugrana/internal/domain/model"

// StageWinner is the only stage any campaign in the dataset reached.
const StageWinner = "Winner"

// SeasonSummary is the list row returned by GET /api/seasons.
type SeasonSummary struct {
	ID             string  `json:"id"`
	DisplayName    string  `json:"display_name"`
	Manager        string  `json:"manager"`
	MatchesPlayed  int     `json:"matches_played"`
	GoalsScored    int     `json:"goals_scored"`
	GoalsConceded  int     `json:"goals_conceded"`
	GoalDifference int     `json:"goal_difference"`
	WinPercentage  float64 `json:"win_percentage"`
	StageReached   string  `json:"stage_reached"`
}

// Summarize projects a season onto its list row.
func Summarize(s model.Season) SeasonSummary {
	return SeasonSummary{
		ID:             s.ID,
		DisplayName:    s.DisplayName,
		Manager:        s.Manager,
		MatchesPlayed:  s.MatchesPlayed,
		GoalsScored:    s.GoalsScored,
		GoalsConceded:  s.GoalsConceded,
		GoalDifference: s.GoalDifference,
		WinPercentage:  s.WinPercentage,
		StageReached:   StageWinner,
	}
}

// SummarizeAll keeps input order.
func SummarizeAll(seasons []model.Season) []SeasonSummary {
	out := make([]SeasonSummary, 0, len(seasons))
	for _, s := range seasons {
		out = append(out, Summarize(s))
	}
	return out
}
