package staticsite

import "github.com/cockroachdb/errors"

// ErrRender marks a path that could not be rendered or written.
var ErrRender = errors.New("static render failed")
