package site

import "github.com/cockroachdb/errors"

// Sentinel kinds for site errors.
var (
	ErrTemplate     = errors.New("page template failed")
	ErrUnknownChart = errors.New("unknown chart")
)
