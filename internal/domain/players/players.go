// Package players builds per-player views over the campaign top-scorer lists.
package players

import (
	"slices"
	"strings"

	"github.com/okian/blaugrana/internal/domain/model"
)

const minutesPerMatch = 90

// Summary is one player's totals across every campaign they appear in.
type Summary struct {
	Name          string   `json:"name"`
	Goals         int      `json:"total_goals"`
	Assists       int      `json:"total_assists"`
	Minutes       int      `json:"total_minutes"`
	Seasons       []string `json:"seasons"`
	GoalsPer90    float64  `json:"per90_goals"`
	AssistsPer90  float64  `json:"per90_assists"`
	Contributions int      `json:"contributions"`
}

// Per90 normalizes count to 90 minutes; zero minutes gives zero.
func Per90(count, minutes int) float64 {
	if minutes <= 0 {
		return 0
	}
	return float64(count) * minutesPerMatch / float64(minutes)
}

// Aggregate groups every season's top scorers by exact name and ranks them by
// goals+assists descending. Ties keep first-encounter order. Seasons lists
// display names in dataset order.
func Aggregate(seasons []model.Season) []Summary {
	index := make(map[string]int)
	out := make([]Summary, 0)

	for _, s := range seasons {
		for _, p := range s.TopScorers {
			i, ok := index[p.Name]
			if !ok {
				i = len(out)
				index[p.Name] = i
				out = append(out, Summary{Name: p.Name})
			}
			sum := &out[i]
			sum.Goals += p.Goals
			sum.Assists += p.Assists
			sum.Minutes += p.Minutes
			if n := len(sum.Seasons); n == 0 || sum.Seasons[n-1] != s.DisplayName {
				sum.Seasons = append(sum.Seasons, s.DisplayName)
			}
		}
	}

	for i := range out {
		out[i].Contributions = out[i].Goals + out[i].Assists
		out[i].GoalsPer90 = Per90(out[i].Goals, out[i].Minutes)
		out[i].AssistsPer90 = Per90(out[i].Assists, out[i].Minutes)
	}

	slices.SortStableFunc(out, func(a, b Summary) int {
		return b.Contributions - a.Contributions
	})
	return out
}

// Top returns at most n rows of an aggregated ranking.
func Top(all []Summary, n int) []Summary {
	if n < 0 || n >= len(all) {
		return all
	}
	return all[:n]
}

// Row is a line of the per-season players table.
type Row struct {
	Name              string  `json:"name"`
	ShortName         string  `json:"short_name"`
	Goals             int     `json:"goals"`
	Assists           int     `json:"assists"`
	Contributions     int     `json:"contributions"`
	Minutes           int     `json:"minutes"`
	GoalsPer90        float64 `json:"per90_goals"`
	AssistsPer90      float64 `json:"per90_assists"`
	ContributionShare float64 `json:"contribution_share"`
}

// SeasonRows keeps the dataset order of the season's scorers.
func SeasonRows(s model.Season) []Row {
	rows := make([]Row, 0, len(s.TopScorers))
	for _, p := range s.TopScorers {
		rows = append(rows, Row{
			Name:              p.Name,
			ShortName:         ShortName(p.Name),
			Goals:             p.Goals,
			Assists:           p.Assists,
			Contributions:     p.Goals + p.Assists,
			Minutes:           p.Minutes,
			GoalsPer90:        Per90(p.Goals, p.Minutes),
			AssistsPer90:      Per90(p.Assists, p.Minutes),
			ContributionShare: p.ContributionShare,
		})
	}
	return rows
}

// Leader is a season's leading scorer.
type Leader struct {
	SeasonID    string `json:"season"`
	DisplayName string `json:"display_name"`
	Name        string `json:"name"`
	Goals       int    `json:"goals"`
}

// TopScorers returns the first listed scorer of every season that has one.
func TopScorers(seasons []model.Season) []Leader {
	out := make([]Leader, 0, len(seasons))
	for _, s := range seasons {
		top, ok := s.TopScorer()
		if !ok {
			continue
		}
		out = append(out, Leader{SeasonID: s.ID, DisplayName: s.DisplayName, Name: top.Name, Goals: top.Goals})
	}
	return out
}

// ShortName is the last word of a name, used for compact chart labels.
func ShortName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}
	return fields[len(fields)-1]
}
