package repository

import "github.com/okian/blaugrana/pkg/logger"

// Option applies a configuration option to Load.
type Option func(*loadOptions)

type loadOptions struct {
	path   string
	data   []byte
	logger logger.Logger
}

// WithPath reads the dataset from a file instead of the embedded copy.
// An empty path keeps the embedded dataset.
func WithPath(path string) Option {
	return func(o *loadOptions) {
		o.path = path
	}
}

// WithData decodes the given document instead of the embedded copy.
func WithData(data []byte) Option {
	return func(o *loadOptions) {
		o.data = data
	}
}

// WithLogger sets the logger used while loading.
func WithLogger(l logger.Logger) Option {
	return func(o *loadOptions) {
		if l != nil {
			o.logger = l
		}
	}
}
