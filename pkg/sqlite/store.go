// Package sqlite provides the public API for the SQLite pets catalog.
// This package exposes the factory for creating stores while keeping
// implementation details internal.
package sqlite

import (
	"log/slog"

	"github.com/mesh-intelligence/shelter/internal/sqlite"
	"github.com/mesh-intelligence/shelter/pkg/types"
)

// NewStore creates a new, unopened SQLite catalog. A nil logger discards
// log output.
//
// Example:
//
//	catalog := sqlite.NewStore(nil)
//	err := catalog.Open(types.Config{DataDir: ".shelter-db"})
//	defer catalog.Close()
func NewStore(logger *slog.Logger) types.Catalog {
	return sqlite.NewStore(sqlite.WithLogger(logger))
}
