package sqlite

import "github.com/cockroachdb/errors"

// ErrExport marks any failure opening, writing or committing the export database.
var ErrExport = errors.New("sqlite export failed")
