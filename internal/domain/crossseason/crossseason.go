// Package crossseason derives the comparative metrics shown on the compare page
// and checks the dataset's precomputed copies of them.
package crossseason

import (
	"math"

	"github.com/okian/blaugrana/internal/domain/model"
)

// Dominance index weights: goal difference and win rate are worth 40 points
// each, clean sheets 20, on a 0-100 scale.
const (
	gdCap          = 40.0
	gdPerMatchFull = 2.5
	winWeight      = 40.0
	csWeight       = 20.0
)

// round half to even at the given decimals, matching the dataset generator.
func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.RoundToEven(v*p) / p
}

// DominanceIndex is min(gd/mp/2.5*40, 40) + win%/100*40 + cs/mp*20, to 1 dp.
func DominanceIndex(s model.Season) float64 {
	if s.MatchesPlayed <= 0 {
		return 0
	}
	mp := float64(s.MatchesPlayed)
	gd := math.Min(float64(s.GoalDifference)/mp/gdPerMatchFull*gdCap, gdCap)
	win := s.WinPercentage / 100 * winWeight
	cs := float64(s.CleanSheets) / mp * csWeight
	return round(gd+win+cs, 1)
}

// TopScorerDependency is the leading scorer's share of the season's goals in percent, to 1 dp.
func TopScorerDependency(s model.Season) float64 {
	top, ok := s.TopScorer()
	if !ok || s.GoalsScored <= 0 {
		return 0
	}
	return round(float64(top.Goals)/float64(s.GoalsScored)*100, 1)
}

// Compare builds the comparison row for a season.
func Compare(s model.Season) model.CrossSeasonComparison {
	row := model.CrossSeasonComparison{
		Season:                s.ID,
		DisplayName:           s.DisplayName,
		Manager:               s.Manager,
		GoalsPerMatch:         s.GoalsPerMatch,
		GoalsConcededPerMatch: s.GoalsConcededPerMatch,
		GoalDifference:        s.GoalDifference,
		WinPercentage:         s.WinPercentage,
		CleanSheets:           s.CleanSheets,
		AvgPossession:         s.AvgPossession,
		MatchesPlayed:         s.MatchesPlayed,
		GoalsScored:           s.GoalsScored,
		GoalsConceded:         s.GoalsConceded,
		TopScorerDependency:   TopScorerDependency(s),
		DominanceIndex:        DominanceIndex(s),
	}
	if top, ok := s.TopScorer(); ok {
		row.TopScorer = top.Name
		row.TopScorerGoals = top.Goals
	}
	return row
}

// Traits recomputes the dataset-wide averages and totals.
func Traits(seasons []model.Season) model.CommonTraits {
	var t model.CommonTraits
	if len(seasons) == 0 {
		return t
	}
	var gpm, gcpm, win, cs float64
	for _, s := range seasons {
		gpm += s.GoalsPerMatch
		gcpm += s.GoalsConcededPerMatch
		win += s.WinPercentage
		if s.MatchesPlayed > 0 {
			cs += float64(s.CleanSheets) / float64(s.MatchesPlayed) * 100
		}
		t.TotalGoalsScored += s.GoalsScored
		t.TotalGoalsConceded += s.GoalsConceded
		t.TotalMatches += s.MatchesPlayed
	}
	n := float64(len(seasons))
	t.AvgGoalsPerMatch = round(gpm/n, 2)
	t.AvgGoalsConcededPerMatch = round(gcpm/n, 2)
	t.AvgWinPercentage = round(win/n, 1)
	t.AvgCleanSheetPct = round(cs/n, 1)
	return t
}

// Best returns the row with the highest dominance index; the first wins ties.
func Best(rows []model.CrossSeasonComparison) (model.CrossSeasonComparison, bool) {
	if len(rows) == 0 {
		return model.CrossSeasonComparison{}, false
	}
	best := rows[0]
	for _, r := range rows[1:] {
		if r.DominanceIndex > best.DominanceIndex {
			best = r
		}
	}
	return best, true
}

// Metric is one axis of a season profile.
type Metric struct {
	Label string  `json:"metric"`
	Value float64 `json:"value"`
}

// Profile scales a row's headline numbers onto comparable axes.
func Profile(r model.CrossSeasonComparison) []Metric {
	return []Metric{
		{Label: "Goals/Match", Value: r.GoalsPerMatch},
		{Label: "Win %", Value: r.WinPercentage / 10},
		{Label: "Clean Sheets", Value: float64(r.CleanSheets)},
		{Label: "Goal Diff", Value: float64(r.GoalDifference)},
		{Label: "Dominance", Value: r.DominanceIndex / 10},
	}
}
