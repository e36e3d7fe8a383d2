// Package staticsite renders the dashboard to a directory of static files by
// replaying GET requests against the HTTP handler.
package staticsite

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"

	"github.com/okian/blaugrana/internal/adapters/http/site"
	"github.com/okian/blaugrana/internal/domain/model"
	"github.com/okian/blaugrana/pkg/logger"
	"github.com/okian/blaugrana/pkg/metrics"
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o640
)

const (
	apiPrefix = "/api/"
	indexFile = "index.html"
	jsonExt   = ".json"
)

// Renderer writes handler responses under a root directory.
type Renderer struct {
	handler http.Handler
	root    string
	workers int
	logger  logger.Logger
}

// Result lists the files written, relative to the root, in sorted order.
type Result struct {
	Files    []string
	Duration time.Duration
}

// New returns a Renderer for h writing under root.
func New(h http.Handler, root string, opts ...Option) *Renderer {
	r := &Renderer{
		handler: h,
		root:    root,
		workers: DefaultWorkers,
		logger:  logger.Get(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Paths lists every URL the export renders for the given seasons: pages,
// charts, the stylesheet and the JSON documents.
func Paths(seasons []model.Season) []string {
	paths := site.PagePaths(seasons)
	paths = append(paths, site.ChartPaths(seasons)...)
	paths = append(paths, "/static/style.css",
		"/api/seasons", "/api/cross-season", "/api/metadata", "/api/players")
	for _, s := range seasons {
		paths = append(paths, "/api/season/"+s.ID, "/api/matches/"+s.ID)
	}
	return paths
}

// Target maps a URL path to its file path relative to the export root.
// Pages become directory indexes and API documents get a .json extension.
func Target(urlPath string) string {
	clean := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	switch {
	case clean == "":
		return indexFile
	case strings.HasPrefix("/"+clean, apiPrefix):
		return filepath.FromSlash(clean + jsonExt)
	case path.Ext(clean) != "":
		return filepath.FromSlash(clean)
	default:
		return filepath.FromSlash(path.Join(clean, indexFile))
	}
}

// Render fetches every path and writes it under the root. The first failure
// cancels outstanding renders; every failure is marked ErrRender.
func (r *Renderer) Render(ctx context.Context, paths []string) (Result, error) {
	start := time.Now()
	if err := os.MkdirAll(r.root, directoryPermission); err != nil {
		return Result{}, errors.Mark(errors.Wrapf(err, "create %s", r.root), ErrRender)
	}

	var (
		mu    sync.Mutex
		files = make([]string, 0, len(paths))
	)
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError().WithMaxGoroutines(r.workers)
	for _, u := range paths {
		p.Go(func(ctx context.Context) error {
			rel, err := r.renderOne(ctx, u)
			if err != nil {
				return err
			}
			mu.Lock()
			files = append(files, rel)
			mu.Unlock()
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return Result{}, err
	}

	slices.Sort(files)
	res := Result{Files: files, Duration: time.Since(start)}
	r.logger.Info(ctx, "static export written",
		logger.String("root", r.root),
		logger.Int("files", len(files)),
		logger.Duration("duration", res.Duration))
	return res, nil
}

func (r *Renderer) renderOne(ctx context.Context, urlPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Mark(errors.Wrapf(err, "render %s", urlPath), ErrRender)
	}
	req := httptest.NewRequestWithContext(ctx, http.MethodGet, urlPath, http.NoBody)
	rec := httptest.NewRecorder()
	r.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		return "", errors.Mark(errors.Newf("render %s: status %d", urlPath, rec.Code), ErrRender)
	}

	rel := Target(urlPath)
	dst := filepath.Join(r.root, rel)
	if err := os.MkdirAll(filepath.Dir(dst), directoryPermission); err != nil {
		return "", errors.Mark(errors.Wrapf(err, "create dir for %s", urlPath), ErrRender)
	}
	if err := os.WriteFile(dst, rec.Body.Bytes(), filePermission); err != nil {
		return "", errors.Mark(errors.Wrapf(err, "write %s", dst), ErrRender)
	}
	metrics.RecordExportedFile()
	r.logger.Debug(ctx, "rendered", logger.String("path", urlPath), logger.String("file", rel))
	return rel, nil
}
