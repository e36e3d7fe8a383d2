package site

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	service "github.com/okian/blaugrana/internal/app"
	"github.com/okian/blaugrana/internal/chart"
	"github.com/okian/blaugrana/internal/domain/model"
	"github.com/okian/blaugrana/internal/domain/outcome"
	"github.com/okian/blaugrana/internal/domain/players"
	"github.com/okian/blaugrana/pkg/logger"
	"github.com/okian/blaugrana/pkg/metrics"
)

const (
	svgSuffix      = ".svg"
	svgContentType = "image/svg+xml"
	chartHeight    = 320
)

type drawFunc func(w io.Writer) error

// serveChart buffers the SVG so a failed render can still answer 500.
func (h *Handler) serveChart(w http.ResponseWriter, r *http.Request, name string, draw drawFunc) {
	start := time.Now()
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := draw(buf); err != nil {
		h.logger.Error(r.Context(), "chart render failed",
			logger.String("chart", name),
			logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	metrics.RecordChartRender(name, float64(time.Since(start).Microseconds())/1000)

	w.Header().Set("Content-Type", svgContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// chartName strips the .svg suffix; ok is false without it.
func chartName(file string) (string, bool) {
	name, ok := strings.CutSuffix(file, svgSuffix)
	return name, ok && name != ""
}

// HandleCompareChart handles GET /charts/compare/{file}.
func (h *Handler) HandleCompareChart(w http.ResponseWriter, r *http.Request) {
	name, ok := chartName(r.PathValue("file"))
	if !ok {
		h.HandleNotFound(w, r)
		return
	}
	draw, err := compareChart(name, h.deps.Compare(r.Context()))
	if err != nil {
		h.HandleNotFound(w, r)
		return
	}
	h.serveChart(w, r, "compare_"+name, draw)
}

// HandleSeasonChart handles GET /charts/season/{id}/{file}.
func (h *Handler) HandleSeasonChart(w http.ResponseWriter, r *http.Request) {
	name, ok := chartName(r.PathValue("file"))
	if !ok {
		h.HandleNotFound(w, r)
		return
	}
	v, found := h.deps.SeasonDetail(r.Context(), r.PathValue("id"))
	if !found {
		h.notFound(w, r, "Season not found")
		return
	}
	var draw drawFunc
	switch name {
	case "goals":
		draw = seasonGoalsChart(v.Season)
	case "margins":
		draw = marginsChart(v.Margins)
	default:
		h.HandleNotFound(w, r)
		return
	}
	h.serveChart(w, r, "season_"+name, draw)
}

// HandlePlayerChart handles GET /charts/players/{id}/{file}.
func (h *Handler) HandlePlayerChart(w http.ResponseWriter, r *http.Request) {
	name, ok := chartName(r.PathValue("file"))
	if !ok {
		h.HandleNotFound(w, r)
		return
	}
	season, found := h.deps.GetSeason(r.Context(), r.PathValue("id"))
	if !found {
		h.notFound(w, r, "Season not found")
		return
	}
	rows := players.SeasonRows(season)
	var draw drawFunc
	switch name {
	case "goals":
		draw = playerBars("Goals by Player", "Goals", rows, chart.Accent, func(p players.Row) float64 { return float64(p.Goals) })
	case "share":
		draw = playerBars("Contribution Share (%)", "%", rows, chart.Secondary, func(p players.Row) float64 { return p.ContributionShare })
	default:
		h.HandleNotFound(w, r)
		return
	}
	h.serveChart(w, r, "players_"+name, draw)
}

// HandleTopScorersChart handles GET /charts/players/top-scorers.svg.
func (h *Handler) HandleTopScorersChart(w http.ResponseWriter, r *http.Request) {
	leaders := players.TopScorers(h.deps.ListSeasons(r.Context()))
	points := make([]chart.Point, 0, len(leaders))
	for _, l := range leaders {
		points = append(points, chart.Point{Label: l.DisplayName, Value: float64(l.Goals), Color: chart.Accent})
	}
	h.serveChart(w, r, "players_top_scorers", func(w io.Writer) error {
		return chart.Bar(w, chart.BarConfig{Title: "Top Scorer Across Campaigns", YLabel: "Goals", Height: chartHeight, Points: points})
	})
}

func compareChart(name string, v service.CompareView) (drawFunc, error) {
	rows := v.Rows
	bars := func(title, yLabel, color string, value func(model.CrossSeasonComparison) float64) drawFunc {
		points := make([]chart.Point, 0, len(rows))
		for _, r := range rows {
			points = append(points, chart.Point{Label: r.DisplayName, Value: value(r), Color: color})
		}
		return func(w io.Writer) error {
			return chart.Bar(w, chart.BarConfig{Title: title, YLabel: yLabel, Height: chartHeight, Points: points})
		}
	}

	switch name {
	case "goals":
		cats := make([]string, 0, len(rows))
		scored := chart.Series{Name: "Goals Scored", Color: chart.Accent}
		conceded := chart.Series{Name: "Goals Conceded", Color: chart.LossColor}
		for _, r := range rows {
			cats = append(cats, r.DisplayName)
			scored.Points = append(scored.Points, chart.Point{Label: r.DisplayName, Value: float64(r.GoalsScored)})
			conceded.Points = append(conceded.Points, chart.Point{Label: r.DisplayName, Value: float64(r.GoalsConceded)})
		}
		return func(w io.Writer) error {
			return chart.GroupedBar(w, chart.GroupedConfig{
				Title:      "Goals Scored vs Conceded",
				YLabel:     "Goals",
				Height:     chartHeight,
				Categories: cats,
				Series:     []chart.Series{scored, conceded},
			})
		}, nil
	case "goals-per-match":
		return bars("Goals Per Match", "Goals", chart.Accent, func(r model.CrossSeasonComparison) float64 { return r.GoalsPerMatch }), nil
	case "win-rate":
		return bars("Win Rate (%)", "%", chart.WinColor, func(r model.CrossSeasonComparison) float64 { return r.WinPercentage }), nil
	case "dominance":
		return bars("Dominance Index", "Index", chart.Accent, func(r model.CrossSeasonComparison) float64 { return r.DominanceIndex }), nil
	case "dependency":
		return bars("Top Scorer Dependency (%)", "%", chart.Secondary, func(r model.CrossSeasonComparison) float64 { return r.TopScorerDependency }), nil
	case "profile":
		return profileChart(v), nil
	default:
		return nil, errors.Mark(errors.Newf("compare chart %q", name), ErrUnknownChart)
	}
}

func profileChart(v service.CompareView) drawFunc {
	var points []chart.Point
	title := "Best Season Profile"
	if v.HasBest {
		title = "Best Season Profile: " + v.Best.DisplayName
		points = make([]chart.Point, 0, len(v.Profile))
		for _, m := range v.Profile {
			points = append(points, chart.Point{Label: m.Label, Value: m.Value})
		}
	}
	return func(w io.Writer) error {
		return chart.Bar(w, chart.BarConfig{Title: title, Height: chartHeight, Points: points})
	}
}

func seasonGoalsChart(s model.Season) drawFunc {
	scored := chart.Series{Name: "Scored", Color: chart.Accent}
	conceded := chart.Series{Name: "Conceded", Color: chart.LossColor}
	for _, m := range s.Matches {
		label := m.Opponent + " (" + m.HomeAway + ")"
		scored.Points = append(scored.Points, chart.Point{Label: label, Value: float64(m.GoalsScored)})
		conceded.Points = append(conceded.Points, chart.Point{Label: label, Value: float64(m.GoalsConceded)})
	}
	return func(w io.Writer) error {
		return chart.Line(w, chart.LineConfig{
			Title:  "Goals Per Match",
			YLabel: "Goals",
			Height: chartHeight,
			Series: []chart.Series{scored, conceded},
		})
	}
}

var marginColors = map[string]string{
	outcome.BigWin: chart.WinColor,
	outcome.TwoWin: chart.WinColor,
	outcome.OneWin: chart.WinColor,
	outcome.Drawn:  chart.DrawColor,
	outcome.Defeat: chart.LossColor,
}

func marginsChart(buckets []outcome.Bucket) drawFunc {
	points := make([]chart.Point, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, chart.Point{Label: b.Label, Value: float64(b.Count), Color: marginColors[b.Label]})
	}
	return func(w io.Writer) error {
		return chart.Bar(w, chart.BarConfig{Title: "Win Margin Distribution", YLabel: "Matches", Height: chartHeight, Points: points})
	}
}

func playerBars(title, yLabel string, rows []players.Row, color string, value func(players.Row) float64) drawFunc {
	points := make([]chart.Point, 0, len(rows))
	for _, p := range rows {
		points = append(points, chart.Point{Label: p.ShortName, Value: value(p), Color: color})
	}
	return func(w io.Writer) error {
		return chart.Bar(w, chart.BarConfig{Title: title, YLabel: yLabel, Height: chartHeight, Points: points})
	}
}

// ChartPaths lists every chart URL for the given seasons, for static export.
func ChartPaths(seasons []model.Season) []string {
	paths := []string{"/charts/players/top-scorers.svg"}
	for _, name := range compareCharts {
		paths = append(paths, "/charts/compare/"+name+svgSuffix)
	}
	for _, s := range seasons {
		paths = append(paths,
			"/charts/season/"+s.ID+"/goals.svg",
			"/charts/season/"+s.ID+"/margins.svg",
			"/charts/players/"+s.ID+"/goals.svg",
			"/charts/players/"+s.ID+"/share.svg",
		)
	}
	return paths
}

// PagePaths lists every page URL for the given seasons, for static export.
func PagePaths(seasons []model.Season) []string {
	paths := []string{"/", "/compare", "/players"}
	for _, s := range seasons {
		paths = append(paths, "/season/"+s.ID, "/players/"+s.ID)
	}
	return paths
}

var compareCharts = []string{"goals", "goals-per-match", "win-rate", "dominance", "dependency", "profile"}
