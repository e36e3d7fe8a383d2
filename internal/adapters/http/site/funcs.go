package site

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const isoDate = "2006-01-02"

// funcs are the formatting helpers available to every page template.
var funcs = template.FuncMap{
	"num":      num,
	"dec1":     func(f float64) string { return strconv.FormatFloat(f, 'f', 1, 64) },
	"dec2":     func(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) },
	"pct":      func(f float64) string { return num(f) + "%" },
	"signed":   signed,
	"comma":    func(n int) string { return humanize.Comma(int64(n)) },
	"longDate": func(s string) string { return date(s, "2 January 2006") },
	"logDate":  func(s string) string { return date(s, "02 Jan 2006") },
	"poss":     possession,
	"matchPoss": func(p *int) string {
		if p == nil {
			return "N/A"
		}
		return strconv.Itoa(*p) + "%"
	},
	"lower": strings.ToLower,
	"inc":   func(i int) int { return i + 1 },
	"join":  strings.Join,
	"width": func(f float64) string { return strconv.FormatFloat(min(max(f, 0), 100), 'f', 1, 64) + "%" },
}

// num prints a float without trailing zeros: 2.0 is "2" and 2.31 is "2.31".
func num(f float64) string { return humanize.Ftoa(f) }

func signed(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return strconv.Itoa(n)
}

// date reformats an ISO date; unparsable input is returned unchanged.
func date(s, layout string) string {
	t, err := time.Parse(isoDate, s)
	if err != nil {
		return s
	}
	return t.Format(layout)
}

func possession(p *float64) string {
	if p == nil {
		return "N/A"
	}
	return num(*p) + "%"
}
