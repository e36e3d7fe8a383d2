// Package router assembles the dashboard pages, the JSON API and the API docs
// on one mux.
package router

import (
	"context"
	"net/http"

	"github.com/okian/blaugrana/internal/adapters/http/api"
	"github.com/okian/blaugrana/internal/adapters/http/site"
	"github.com/okian/blaugrana/internal/adapters/http/swagger"
	service "github.com/okian/blaugrana/internal/app"
	"github.com/okian/blaugrana/pkg/logger"
)

// New registers every route against svc and wraps the mux with the request id
// and recovery middleware.
func New(ctx context.Context, svc *service.Service, log logger.Logger) http.Handler {
	if log == nil {
		log = logger.Get()
	}
	mux := http.NewServeMux()

	swagger.Register(ctx, mux)
	api.NewServer(svc, svc, svc.MaxPlayerRows()).Register(ctx, mux)
	site.Register(ctx, mux, svc,
		site.WithMiddleware(api.MetricsMiddleware),
		site.WithLogger(log.Named("site")),
	)

	return api.Chain(mux, log.Named("http"))
}
