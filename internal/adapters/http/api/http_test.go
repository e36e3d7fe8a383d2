package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/blaugrana/internal/adapters/http/api"
	service "github.com/okian/blaugrana/internal/app"
	"github.com/okian/blaugrana/internal/domain/model"
	"github.com/okian/blaugrana/internal/domain/players"
	"github.com/okian/blaugrana/internal/domain/types"
	"github.com/okian/blaugrana/pkg/logger"
)

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	svc := service.New(service.WithLogger(logger.Nop()))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, &mockStatsProvider{stats: map[string]interface{}{"started": true}}, 10).Register(context.Background(), mux)
	return api.Chain(mux, logger.Nop())
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func decode(w *httptest.ResponseRecorder, v any) {
	So(sonic.Unmarshal(w.Body.Bytes(), v), ShouldBeNil)
}

func TestSeasonsRoutes(t *testing.T) {
	h := newHandler(t)

	Convey("Given the seasons list", t, func() {
		w := get(h, "/api/seasons")

		Convey("Then each season is summarised as a winner", func() {
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldStartWith, "application/json")

			var out []types.SeasonSummary
			decode(w, &out)
			So(out, ShouldHaveLength, 5)
			So(out[0].ID, ShouldEqual, "1991-92")
			So(out[0].StageReached, ShouldEqual, types.StageWinner)
			So(w.Body.String(), ShouldContainSubstring, `"stage_reached":"Winner"`)
		})
	})

	Convey("Given a season lookup", t, func() {
		Convey("When the season exists", func() {
			w := get(h, "/api/season/2010-11")
			var s model.Season
			decode(w, &s)

			So(w.Code, ShouldEqual, http.StatusOK)
			So(s.Manager, ShouldEqual, "Pep Guardiola")
			So(s.GoalDifference, ShouldEqual, 22)
		})

		Convey("When the season is unknown", func() {
			w := get(h, "/api/season/non-existent-id")

			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(w.Body.String(), ShouldEqual, `{"code":"not_found","message":"Season not found"}`)
		})
	})

	Convey("Given a matches lookup", t, func() {
		Convey("When the season exists", func() {
			w := get(h, "/api/matches/1991-92")
			var ms []model.Match
			decode(w, &ms)

			So(w.Code, ShouldEqual, http.StatusOK)
			So(ms, ShouldHaveLength, 10)
			So(ms[len(ms)-1].ExtraTime, ShouldBeTrue)
			So(ms[0].Possession, ShouldBeNil)
		})

		Convey("When the season is unknown", func() {
			So(get(h, "/api/matches/1900-01").Code, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Given the cross-season and metadata routes", t, func() {
		var cs model.CrossSeason
		decode(get(h, "/api/cross-season"), &cs)
		var md model.Metadata
		decode(get(h, "/api/metadata"), &md)

		So(cs.Comparison, ShouldHaveLength, 5)
		So(cs.CommonTraits.AvgCleanSheetPct, ShouldEqual, 41.8)
		So(md.SeasonsCovered, ShouldHaveLength, 5)
	})
}

func TestPlayersRoute(t *testing.T) {
	h := newHandler(t)

	Convey("Given the players ranking", t, func() {
		Convey("When no limit is given", func() {
			var out []players.Summary
			decode(get(h, "/api/players"), &out)

			So(len(out), ShouldBeGreaterThan, 10)
			So(out[0].Name, ShouldEqual, "Lionel Messi")
		})

		Convey("When a valid limit is given", func() {
			var out []players.Summary
			decode(get(h, "/api/players?limit=3"), &out)
			So(out, ShouldHaveLength, 3)
		})

		Convey("When the limit is invalid", func() {
			for _, q := range []string{"abc", "0", "-1", "11"} {
				w := get(h, "/api/players?limit="+q)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, `"code":"bad_request"`)
			}
		})
	})
}

func TestServiceRoutes(t *testing.T) {
	h := newHandler(t)

	Convey("Given the service routes", t, func() {
		Convey("Then healthz reports the season count", func() {
			w := get(h, "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldEqual, `{"status":"ok","seasons":5}`)
		})

		Convey("And metrics are exposed in Prometheus format", func() {
			get(h, "/healthz")
			w := get(h, "/metrics")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "blaugrana_dashboard_http_requests_total")
		})

		Convey("And stats come from the provider", func() {
			w := get(h, "/stats")
			So(w.Body.String(), ShouldEqual, `{"started":true}`)
		})
	})
}

func TestMiddleware(t *testing.T) {
	h := newHandler(t)

	Convey("Given any request", t, func() {
		Convey("When no request id is sent", func() {
			w := get(h, "/healthz")

			Convey("Then one is generated", func() {
				So(w.Header().Get(api.RequestIDHeader), ShouldHaveLength, 36)
			})
		})

		Convey("When a request id is sent", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/season/nope", nil)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then it is echoed even on errors", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
			})
		})
	})

	Convey("Given a handler that panics", t, func() {
		boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })
		w := httptest.NewRecorder()
		api.Chain(boom, logger.Nop()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		Convey("Then a JSON 500 is returned", func() {
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(strings.TrimSpace(w.Body.String()), ShouldEqual, `{"code":"internal_error","message":"Internal Server Error"}`)
			So(w.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)
		})
	})

	Convey("Given a nil mux", t, func() {
		server := api.NewServer(service.New(), &mockStatsProvider{}, 0)
		So(func() { server.Register(context.Background(), nil) }, ShouldPanic)
	})
}
