// Package chart renders the dashboard's bar and line charts as SVG.
package chart

import (
	"io"
	"math"

	"github.com/cockroachdb/errors"
	gochart "github.com/wcharczuk/go-chart/v2"
)

// ErrRender marks a failed chart render.
var ErrRender = errors.New("render chart")

// Default canvas size in pixels.
const (
	DefaultWidth  = 720
	DefaultHeight = 360
)

// axisMargin is the horizontal space reserved for the y axis.
const axisMargin = 80

// placeholderLabel is shown when a chart has nothing to plot.
const placeholderLabel = "No data"

// Point is a labelled value.
type Point struct {
	Label string
	Value float64
	// Color overrides the palette for this bar.
	Color string
}

// Series is a named run of points sharing a colour.
type Series struct {
	Name   string
	Color  string
	Points []Point
}

// BarConfig describes a single-series bar chart.
type BarConfig struct {
	Title  string
	YLabel string
	Width  int
	Height int
	Points []Point
}

// GroupedConfig describes a bar chart with one bar per series in each category.
type GroupedConfig struct {
	Title      string
	YLabel     string
	Width      int
	Height     int
	Categories []string
	Series     []Series
}

// LineConfig describes a line chart; points are placed at equal x steps.
type LineConfig struct {
	Title  string
	YLabel string
	Width  int
	Height int
	Series []Series
}

func size(w, h int) (int, int) {
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// upper returns a y-axis maximum with some headroom above max.
func upper(v float64) float64 {
	if v <= 0 || math.IsNaN(v) {
		return 1
	}
	return math.Ceil(v * 1.15)
}

func barLayout(width, bars int) (barWidth, spacing int) {
	slot := (width - axisMargin) / max(bars, 1)
	barWidth = max(slot*3/5, 4)
	spacing = max(slot-barWidth, 2)
	return barWidth, spacing
}

// Bar renders cfg as an SVG bar chart. An empty chart renders a placeholder.
func Bar(w io.Writer, cfg BarConfig) error {
	points := cfg.Points
	if len(points) == 0 {
		points = []Point{{Label: placeholderLabel}}
	}

	bars := make([]gochart.Value, 0, len(points))
	top := 0.0
	for i, p := range points {
		top = math.Max(top, p.Value)
		c := pick(p.Color, i)
		bars = append(bars, gochart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: gochart.Style{FillColor: c, StrokeColor: c},
		})
	}
	return renderBars(w, cfg.Title, cfg.YLabel, cfg.Width, cfg.Height, bars, top)
}

// GroupedBar renders cfg as interleaved bars. The category label is written
// under the first bar of each group.
func GroupedBar(w io.Writer, cfg GroupedConfig) error {
	if len(cfg.Categories) == 0 || len(cfg.Series) == 0 {
		return Bar(w, BarConfig{Title: cfg.Title, YLabel: cfg.YLabel, Width: cfg.Width, Height: cfg.Height})
	}

	bars := make([]gochart.Value, 0, len(cfg.Categories)*len(cfg.Series))
	top := 0.0
	for ci, category := range cfg.Categories {
		for si, s := range cfg.Series {
			v := 0.0
			if ci < len(s.Points) {
				v = s.Points[ci].Value
			}
			top = math.Max(top, v)
			label := ""
			if si == 0 {
				label = category
			}
			c := pick(s.Color, si)
			bars = append(bars, gochart.Value{
				Label: label,
				Value: v,
				Style: gochart.Style{FillColor: c, StrokeColor: c},
			})
		}
	}
	return renderBars(w, cfg.Title, cfg.YLabel, cfg.Width, cfg.Height, bars, top)
}

func renderBars(w io.Writer, title, yLabel string, width, height int, bars []gochart.Value, top float64) error {
	width, height = size(width, height)
	barWidth, spacing := barLayout(width, len(bars))

	bc := gochart.BarChart{
		Title:      title,
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10}},
		YAxis: gochart.YAxis{
			Name:  yLabel,
			Range: &gochart.ContinuousRange{Min: 0, Max: upper(top)},
		},
		Bars: bars,
	}
	if err := bc.Render(gochart.SVG, w); err != nil {
		return errors.Mark(errors.Wrapf(err, "bar chart %q", title), ErrRender)
	}
	return nil
}

// Line renders cfg as an SVG line chart with a legend. Series shorter than the
// longest one simply end early. An empty chart renders a placeholder.
func Line(w io.Writer, cfg LineConfig) error {
	n := 0
	for _, s := range cfg.Series {
		n = max(n, len(s.Points))
	}
	if n == 0 {
		return Bar(w, BarConfig{Title: cfg.Title, YLabel: cfg.YLabel, Width: cfg.Width, Height: cfg.Height})
	}

	var labels []Point
	series := make([]gochart.Series, 0, len(cfg.Series))
	top := 0.0
	for i, s := range cfg.Series {
		if len(s.Points) == 0 {
			continue
		}
		if len(s.Points) > len(labels) {
			labels = s.Points
		}
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for j, p := range s.Points {
			xs[j], ys[j] = float64(j), p.Value
			top = math.Max(top, p.Value)
		}
		c := pick(s.Color, i)
		series = append(series, gochart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor: c,
				StrokeWidth: 2,
				DotColor:    c,
				DotWidth:    3,
			},
		})
	}

	ticks := make([]gochart.Tick, 0, len(labels))
	for j, p := range labels {
		ticks = append(ticks, gochart.Tick{Value: float64(j), Label: p.Label})
	}

	width, height := size(cfg.Width, cfg.Height)
	ch := gochart.Chart{
		Title:      cfg.Title,
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10}},
		XAxis: gochart.XAxis{
			Ticks: ticks,
			Range: &gochart.ContinuousRange{Min: -0.5, Max: float64(n) - 0.5},
		},
		YAxis: gochart.YAxis{
			Name:  cfg.YLabel,
			Range: &gochart.ContinuousRange{Min: 0, Max: upper(top)},
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	if err := ch.Render(gochart.SVG, w); err != nil {
		return errors.Mark(errors.Wrapf(err, "line chart %q", cfg.Title), ErrRender)
	}
	return nil
}
