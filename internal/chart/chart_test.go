package chart_test

import (
	"bytes"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/blaugrana/internal/chart"
)

func TestBar(t *testing.T) {
	Convey("Given bar points", t, func() {
		var buf bytes.Buffer
		err := chart.Bar(&buf, chart.BarConfig{
			Title:  "Goals per Match",
			YLabel: "Goals",
			Points: []chart.Point{
				{Label: "1991-92", Value: 1.4},
				{Label: "2014-15", Value: 2.46, Color: chart.WinColor},
			},
		})

		Convey("Then an SVG with the labels is written", func() {
			So(err, ShouldBeNil)
			out := buf.String()
			So(out, ShouldStartWith, "<svg")
			So(out, ShouldContainSubstring, "1991-92")
			So(out, ShouldContainSubstring, "Goals per Match")
		})

		Convey("And a per-point colour overrides the palette", func() {
			So(buf.String(), ShouldContainSubstring, "rgba(45,138,78")
		})
	})

	Convey("Given no points", t, func() {
		var buf bytes.Buffer
		err := chart.Bar(&buf, chart.BarConfig{Title: "Empty"})

		Convey("Then a placeholder is rendered instead of an error", func() {
			So(err, ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "No data")
		})
	})

	Convey("Given only zero values", t, func() {
		var buf bytes.Buffer
		err := chart.Bar(&buf, chart.BarConfig{Points: []chart.Point{{Label: "Draw", Value: 0}}})

		So(err, ShouldBeNil)
		So(buf.Len(), ShouldBeGreaterThan, 0)
	})
}

func TestGroupedBar(t *testing.T) {
	Convey("Given two series over two categories", t, func() {
		var buf bytes.Buffer
		err := chart.GroupedBar(&buf, chart.GroupedConfig{
			Title:      "Goals Scored vs Conceded",
			Categories: []string{"2008-09", "2010-11"},
			Series: []chart.Series{
				{Name: "Scored", Color: chart.Accent, Points: []chart.Point{{Value: 30}, {Value: 30}}},
				{Name: "Conceded", Color: chart.LossColor, Points: []chart.Point{{Value: 10}}},
			},
		})

		Convey("Then both categories are labelled and both colours are used", func() {
			So(err, ShouldBeNil)
			out := buf.String()
			So(out, ShouldContainSubstring, "2008-09")
			So(out, ShouldContainSubstring, "2010-11")
			So(out, ShouldContainSubstring, "rgba(192,57,43")
		})
	})

	Convey("Given no categories", t, func() {
		var buf bytes.Buffer
		So(chart.GroupedBar(&buf, chart.GroupedConfig{}), ShouldBeNil)
		So(buf.String(), ShouldContainSubstring, "No data")
	})
}

func TestLine(t *testing.T) {
	Convey("Given goals per match", t, func() {
		var buf bytes.Buffer
		err := chart.Line(&buf, chart.LineConfig{
			Title: "Goals by Match",
			Series: []chart.Series{
				{Name: "Scored", Color: chart.Accent, Points: []chart.Point{{Label: "M1", Value: 2}, {Label: "M2", Value: 4}, {Label: "M3", Value: 1}}},
				{Name: "Conceded", Color: chart.LossColor, Points: []chart.Point{{Label: "M1", Value: 0}, {Label: "M2", Value: 0}, {Label: "M3", Value: 1}}},
			},
		})

		Convey("Then a line chart with a legend is written", func() {
			So(err, ShouldBeNil)
			out := buf.String()
			So(out, ShouldStartWith, "<svg")
			So(out, ShouldContainSubstring, "Scored")
			So(out, ShouldContainSubstring, "Conceded")
			So(out, ShouldContainSubstring, "M2")
		})
	})

	Convey("Given a single point", t, func() {
		var buf bytes.Buffer
		err := chart.Line(&buf, chart.LineConfig{Series: []chart.Series{{Name: "Scored", Points: []chart.Point{{Label: "M1", Value: 3}}}}})

		So(err, ShouldBeNil)
		So(buf.Len(), ShouldBeGreaterThan, 0)
	})

	Convey("Given no series", t, func() {
		var buf bytes.Buffer
		So(chart.Line(&buf, chart.LineConfig{Title: "Empty"}), ShouldBeNil)
		So(buf.String(), ShouldContainSubstring, "No data")
	})
}
