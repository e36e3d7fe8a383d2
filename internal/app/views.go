package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/blaugrana/internal/domain/crossseason"
	"github.com/okian/blaugrana/internal/domain/model"
	"github.com/okian/blaugrana/internal/domain/outcome"
	"github.com/okian/blaugrana/internal/domain/players"
)

// Overview is the landing page.
type Overview struct {
	Metadata  model.Metadata
	TitlesWon int
	Traits    model.CommonTraits
	Seasons   []model.Season
}

// MatchRow is a match with its W/D/L code.
type MatchRow struct {
	model.Match
	Result string
}

// SeasonView is the detail page of one campaign.
type SeasonView struct {
	Season  model.Season
	Matches []MatchRow
	Margins []outcome.Bucket
	Venues  outcome.VenueRecord
	Players []players.Row
}

// CompareView is the cross-season page.
type CompareView struct {
	Rows         []model.CrossSeasonComparison
	Traits       model.CommonTraits
	Best         model.CrossSeasonComparison
	HasBest      bool
	Profile      []crossseason.Metric
	Observations []string
}

// PlayersView is the players page for one selected season.
type PlayersView struct {
	Seasons  []model.Season
	Selected model.Season
	Rows     []players.Row
	Leaders  []players.Leader
	Ranking  []players.Summary
}

// Overview builds the landing page view.
func (s *Service) Overview(ctx context.Context) Overview {
	store := s.current()
	seasons := store.ListSeasons(ctx)
	return Overview{
		Metadata:  store.Metadata(ctx),
		TitlesWon: len(seasons),
		Traits:    store.CrossSeason(ctx).CommonTraits,
		Seasons:   seasons,
	}
}

// SeasonDetail builds the view of one season. The bool reports presence.
func (s *Service) SeasonDetail(ctx context.Context, id string) (SeasonView, bool) {
	season, ok := s.current().GetSeason(ctx, id)
	if !ok {
		return SeasonView{}, false
	}

	matches := make([]MatchRow, 0, len(season.Matches))
	for _, m := range season.Matches {
		matches = append(matches, MatchRow{Match: m, Result: outcome.Classify(m.GoalsScored, m.GoalsConceded)})
	}
	return SeasonView{
		Season:  season,
		Matches: matches,
		Margins: outcome.Distribution(season.Matches),
		Venues:  outcome.Venues(season.Matches),
		Players: players.SeasonRows(season),
	}, true
}

// Compare builds the cross-season view from the stored comparison rows.
func (s *Service) Compare(ctx context.Context) CompareView {
	cs := s.current().CrossSeason(ctx)
	v := CompareView{
		Rows:         cs.Comparison,
		Traits:       cs.CommonTraits,
		Observations: observations(cs),
	}
	if best, ok := crossseason.Best(cs.Comparison); ok {
		v.Best, v.HasBest = best, true
		v.Profile = crossseason.Profile(best)
	}
	return v
}

// Players builds the players view. An unknown or empty season id selects the
// first season.
func (s *Service) Players(ctx context.Context, seasonID string) PlayersView {
	seasons := s.current().ListSeasons(ctx)
	v := PlayersView{
		Seasons: seasons,
		Leaders: players.TopScorers(seasons),
		Ranking: players.Top(players.Aggregate(seasons), s.maxPlayerRows),
	}
	if len(seasons) == 0 {
		return v
	}

	v.Selected = seasons[0]
	for _, season := range seasons {
		if season.ID == seasonID {
			v.Selected = season
			break
		}
	}
	v.Rows = players.SeasonRows(v.Selected)
	return v
}

// Ranking returns the aggregated players; limit <= 0 returns all of them.
func (s *Service) Ranking(ctx context.Context, limit int) []players.Summary {
	all := players.Aggregate(s.current().ListSeasons(ctx))
	if limit <= 0 {
		return all
	}
	return players.Top(all, limit)
}

func observations(cs model.CrossSeason) []string {
	rows := cs.Comparison
	if len(rows) == 0 {
		return []string{}
	}

	scoring, defence, shortest := rows[0], rows[0], rows[0]
	for _, r := range rows[1:] {
		if r.GoalsScored > scoring.GoalsScored {
			scoring = r
		}
		if r.GoalsConcededPerMatch < defence.GoalsConcededPerMatch {
			defence = r
		}
		if r.MatchesPlayed < shortest.MatchesPlayed {
			shortest = r
		}
	}

	var joint []string
	for _, r := range rows {
		if r.GoalsScored == scoring.GoalsScored {
			joint = append(joint, r.DisplayName)
		}
	}

	out := make([]string, 0, 4)
	if len(joint) > 1 {
		out = append(out, fmt.Sprintf("The %s campaigns share the highest goal tally (%d).",
			strings.Join(joint, " and "), scoring.GoalsScored))
	} else {
		out = append(out, fmt.Sprintf("The %s side scored the most goals (%d) across %d matches.",
			scoring.DisplayName, scoring.GoalsScored, scoring.MatchesPlayed))
	}
	out = append(out,
		fmt.Sprintf("The %s side had the meanest defence, conceding %d goals (%.2f per match).",
			defence.DisplayName, defence.GoalsConceded, defence.GoalsConcededPerMatch),
		fmt.Sprintf("The %s campaign had the fewest matches (%d) and still kept %d clean sheets.",
			shortest.DisplayName, shortest.MatchesPlayed, shortest.CleanSheets),
		fmt.Sprintf("Across all %d campaigns, the winning sides averaged a %.1f%% win rate.",
			len(rows), cs.CommonTraits.AvgWinPercentage),
	)
	return out
}
