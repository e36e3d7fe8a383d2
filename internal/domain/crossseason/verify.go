package crossseason

import (
	"fmt"
	"math"

	"github.com/okian/blaugrana/internal/domain/model"
)

// Tolerance for comparing stored and recomputed decimals.
const tolerance = 0.05

// Drift is a precomputed value that disagrees with its recomputation.
type Drift struct {
	Season   string `json:"season"`
	Field    string `json:"field"`
	Stored   string `json:"stored"`
	Computed string `json:"computed"`
}

func (d Drift) String() string {
	season := d.Season
	if season == "" {
		season = "common_traits"
	}
	return fmt.Sprintf("%s.%s: stored %s, computed %s", season, d.Field, d.Stored, d.Computed)
}

// Verify recomputes every comparison row and the common traits and reports
// disagreements. Rows are matched to seasons by id; a season with no row, or a
// row with no season, is reported under the "row" field.
func Verify(ds *model.Dataset) []Drift {
	var out []Drift
	if ds == nil {
		return out
	}

	rows := make(map[string]model.CrossSeasonComparison, len(ds.CrossSeason.Comparison))
	for _, r := range ds.CrossSeason.Comparison {
		rows[r.Season] = r
	}

	seen := make(map[string]bool, len(ds.Seasons))
	for _, s := range ds.Seasons {
		seen[s.ID] = true
		stored, ok := rows[s.ID]
		if !ok {
			out = append(out, Drift{Season: s.ID, Field: "row", Stored: "missing", Computed: "present"})
			continue
		}
		want := Compare(s)
		out = appendFloat(out, s.ID, "dominance_index", stored.DominanceIndex, want.DominanceIndex)
		out = appendFloat(out, s.ID, "top_scorer_dependency", stored.TopScorerDependency, want.TopScorerDependency)
		out = appendInt(out, s.ID, "top_scorer_goals", stored.TopScorerGoals, want.TopScorerGoals)
		out = appendInt(out, s.ID, "goal_difference", stored.GoalDifference, want.GoalDifference)
		out = appendInt(out, s.ID, "goals_scored", stored.GoalsScored, want.GoalsScored)
		out = appendInt(out, s.ID, "clean_sheets", stored.CleanSheets, want.CleanSheets)
		if stored.TopScorer != want.TopScorer {
			out = append(out, Drift{Season: s.ID, Field: "top_scorer", Stored: stored.TopScorer, Computed: want.TopScorer})
		}
	}
	for _, r := range ds.CrossSeason.Comparison {
		if !seen[r.Season] {
			out = append(out, Drift{Season: r.Season, Field: "row", Stored: "present", Computed: "missing"})
		}
	}

	got, want := ds.CrossSeason.CommonTraits, Traits(ds.Seasons)
	out = appendFloat(out, "", "avg_goals_per_match", got.AvgGoalsPerMatch, want.AvgGoalsPerMatch)
	out = appendFloat(out, "", "avg_goals_conceded_per_match", got.AvgGoalsConcededPerMatch, want.AvgGoalsConcededPerMatch)
	out = appendFloat(out, "", "avg_win_percentage", got.AvgWinPercentage, want.AvgWinPercentage)
	out = appendFloat(out, "", "avg_clean_sheet_pct", got.AvgCleanSheetPct, want.AvgCleanSheetPct)
	out = appendInt(out, "", "total_goals_scored", got.TotalGoalsScored, want.TotalGoalsScored)
	out = appendInt(out, "", "total_goals_conceded", got.TotalGoalsConceded, want.TotalGoalsConceded)
	out = appendInt(out, "", "total_matches", got.TotalMatches, want.TotalMatches)
	return out
}

func appendFloat(out []Drift, season, field string, stored, computed float64) []Drift {
	if math.Abs(stored-computed) <= tolerance {
		return out
	}
	return append(out, Drift{Season: season, Field: field, Stored: fmt.Sprintf("%g", stored), Computed: fmt.Sprintf("%g", computed)})
}

func appendInt(out []Drift, season, field string, stored, computed int) []Drift {
	if stored == computed {
		return out
	}
	return append(out, Drift{Season: season, Field: field, Stored: fmt.Sprint(stored), Computed: fmt.Sprint(computed)})
}
