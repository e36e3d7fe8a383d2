package chart

import (
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Dashboard palette, as hex codes.
const (
	Accent     = "#1C2A39"
	Secondary  = "#4A6B8A"
	Tertiary   = "#7B9CB8"
	Quaternary = "#A8C4D9"
	Quinary    = "#D4E3ED"
	WinColor   = "#2D8A4E"
	LossColor  = "#C0392B"
	DrawColor  = "#B08522"
)

// Palette is the cycle used when a bar or series has no colour of its own.
var Palette = []string{Accent, Secondary, Tertiary, Quaternary, Quinary}

func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// pick returns hex, or the i-th palette entry when hex is empty.
func pick(hex string, i int) drawing.Color {
	if hex == "" {
		hex = Palette[i%len(Palette)]
	}
	return color(hex)
}
