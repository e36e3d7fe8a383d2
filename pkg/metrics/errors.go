package metrics

import (
	"github.com/cockroachdb/errors"
)

// Sentinel kinds for metrics errors.
var (
	ErrGather = errors.New("metrics gather failed")
)
