package repository

import "github.com/cockroachdb/errors"

// Sentinel kinds for dataset loading.
var (
	ErrNotFound       = errors.New("season not found")
	ErrReadDataset    = errors.New("read dataset")
	ErrDecode         = errors.New("decode dataset")
	ErrInvalidDataset = errors.New("invalid dataset")
)
