package sqlite

import "github.com/okian/blaugrana/pkg/logger"

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the exporter logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.logger = l
		}
	}
}
