package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/blaugrana/internal/adapters/http/api"
	"github.com/okian/blaugrana/internal/adapters/http/router"
	service "github.com/okian/blaugrana/internal/app"
	"github.com/okian/blaugrana/pkg/logger"
)

func TestRouter(t *testing.T) {
	Convey("Given the assembled router", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithLogger(logger.Nop()))
		So(svc.Start(ctx), ShouldBeNil)
		h := router.New(ctx, svc, logger.Nop())

		cases := []struct {
			path   string
			status int
		}{
			{"/", http.StatusOK},
			{"/season/2008-09", http.StatusOK},
			{"/compare", http.StatusOK},
			{"/players/2014-15", http.StatusOK},
			{"/charts/compare/dominance.svg", http.StatusOK},
			{"/static/style.css", http.StatusOK},
			{"/api/seasons", http.StatusOK},
			{"/api/season/nope", http.StatusNotFound},
			{"/healthz", http.StatusOK},
			{"/openapi.yaml", http.StatusOK},
			{"/api-docs", http.StatusOK},
			{"/does/not/exist", http.StatusNotFound},
		}

		for _, c := range cases {
			Convey("Then "+c.path+" is routed", func() {
				w := httptest.NewRecorder()
				h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, c.path, nil))

				So(w.Code, ShouldEqual, c.status)
				So(w.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)
			})
		}
	})
}
