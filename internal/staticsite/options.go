package staticsite

import "github.com/okian/blaugrana/pkg/logger"

// DefaultWorkers bounds concurrent renders when no option is given.
const DefaultWorkers = 4

// Option configures a Renderer.
type Option func(*Renderer)

// WithWorkers sets the render concurrency; values below one are ignored.
func WithWorkers(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithLogger sets the renderer logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}
