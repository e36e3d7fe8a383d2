package site

import (
	"context"
	"html/template"
	"io"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/okian/blaugrana/pkg/metrics"
)

// Page names; each has a templates/<name>.html defining "content".
const (
	pageOverview = "overview"
	pageSeason   = "season"
	pageCompare  = "compare"
	pagePlayers  = "players"
	pageNotFound = "notfound"
)

var pageNames = []string{pageOverview, pageSeason, pageCompare, pagePlayers, pageNotFound}

// view is what the layout template receives.
type view struct {
	Title  string
	Active string
	Data   any
}

var (
	parseOnce sync.Once
	pages     map[string]*template.Template
	parseErr  error
)

// templates parses the layout once and clones it for every page.
func templates() (map[string]*template.Template, error) {
	parseOnce.Do(func() {
		layout, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
		if err != nil {
			parseErr = errors.Mark(errors.Wrap(err, "parse layout"), ErrTemplate)
			return
		}
		out := make(map[string]*template.Template, len(pageNames))
		for _, name := range pageNames {
			clone, err := layout.Clone()
			if err != nil {
				parseErr = errors.Mark(errors.Wrapf(err, "clone layout for %s", name), ErrTemplate)
				return
			}
			if _, err := clone.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
				parseErr = errors.Mark(errors.Wrapf(err, "parse %s", name), ErrTemplate)
				return
			}
			out[name] = clone
		}
		pages = out
	})
	return pages, parseErr
}

// page renders a named template inside the layout as a templ component.
// Output is buffered so a failed render never writes a partial page.
func page(name, title string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		start := time.Now()
		set, err := templates()
		if err != nil {
			return err
		}
		tmpl, ok := set[name]
		if !ok {
			return errors.Mark(errors.Newf("no template %q", name), ErrTemplate)
		}

		buf := bytebufferpool.Get()
		defer bytebufferpool.Put(buf)

		if err := tmpl.ExecuteTemplate(buf, "layout.html", view{Title: title, Active: name, Data: data}); err != nil {
			return errors.Mark(errors.Wrapf(err, "execute %s", name), ErrTemplate)
		}
		if _, err := buf.WriteTo(w); err != nil {
			return errors.Wrap(err, "write page")
		}
		metrics.RecordPageRender(name, float64(time.Since(start).Microseconds())/1000)
		return nil
	})
}
