package api

import "github.com/cockroachdb/errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrPanic      = errors.New("handler panic")
)
