// Package outcome classifies match results and summarizes them for charts.
package outcome

import "github.com/okian/blaugrana/internal/domain/model"

// Result codes.
const (
	Win  = "W"
	Draw = "D"
	Loss = "L"
)

// Margin bucket labels.
const (
	BigWin = "3+ Goal Win"
	TwoWin = "2 Goal Win"
	OneWin = "1 Goal Win"
	Drawn  = "Draw"
	Defeat = "Loss"
)

// bigDiff is the largest margin with its own bucket.
const bigDiff = 2

// MarginOrder is the fixed display order of the margin buckets.
var MarginOrder = []string{BigWin, TwoWin, OneWin, Drawn, Defeat}

// Classify returns W, D or L from the team's point of view.
func Classify(scored, conceded int) string {
	switch {
	case scored > conceded:
		return Win
	case scored == conceded:
		return Draw
	default:
		return Loss
	}
}

// Margin buckets the goal difference of a match.
func Margin(scored, conceded int) string {
	switch diff := scored - conceded; {
	case diff > bigDiff:
		return BigWin
	case diff == 2:
		return TwoWin
	case diff == 1:
		return OneWin
	case diff == 0:
		return Drawn
	default:
		return Defeat
	}
}

// Bucket is one bar of the margin distribution.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Distribution counts matches per margin bucket in MarginOrder, omitting empty buckets.
func Distribution(matches []model.Match) []Bucket {
	counts := make(map[string]int, len(MarginOrder))
	for _, m := range matches {
		counts[Margin(m.GoalsScored, m.GoalsConceded)]++
	}
	out := make([]Bucket, 0, len(counts))
	for _, label := range MarginOrder {
		if n := counts[label]; n > 0 {
			out = append(out, Bucket{Label: label, Count: n})
		}
	}
	return out
}

// Record is wins out of matches played at one venue type.
type Record struct {
	Wins   int `json:"wins"`
	Played int `json:"played"`
}

// VenueRecord holds home, away and neutral win records.
type VenueRecord struct {
	Home    Record `json:"home"`
	Away    Record `json:"away"`
	Neutral Record `json:"neutral"`
}

// Venues tallies wins by venue code. Unknown codes are ignored.
func Venues(matches []model.Match) VenueRecord {
	var vr VenueRecord
	for _, m := range matches {
		var r *Record
		switch m.HomeAway {
		case model.VenueHome:
			r = &vr.Home
		case model.VenueAway:
			r = &vr.Away
		case model.VenueNeutral:
			r = &vr.Neutral
		default:
			continue
		}
		r.Played++
		if Classify(m.GoalsScored, m.GoalsConceded) == Win {
			r.Wins++
		}
	}
	return vr
}

// Tally counts W/D/L across matches.
type Tally struct {
	Wins   int `json:"wins"`
	Draws  int `json:"draws"`
	Losses int `json:"losses"`
}

// Count classifies every match.
func Count(matches []model.Match) Tally {
	var t Tally
	for _, m := range matches {
		switch Classify(m.GoalsScored, m.GoalsConceded) {
		case Win:
			t.Wins++
		case Draw:
			t.Draws++
		default:
			t.Losses++
		}
	}
	return t
}
