package types

import (
	"context"
	"errors"
)

// Catalog is the persistent pets store. A Catalog is Unopened until Open
// succeeds and returns to Unopened after Close.
type Catalog interface {
	SchemaManager

	// Open creates the database file if needed and ensures the schema for
	// config.Version. Returns ErrAlreadyOpen if the catalog is open and
	// ErrStorageUnavailable if the file cannot be created or opened.
	Open(config Config) error

	// Close releases the database handle. Idempotent.
	Close() error

	// Insert writes one row and returns its assigned id. Returns
	// ErrConstraintViolation when a required column is missing or the
	// table does not exist, ErrUnknownColumn for keys outside the schema.
	Insert(ctx context.Context, values Values) (int64, error)

	// QueryAll returns every row projected onto columns. No columns means
	// all columns. Returns ErrUnknownColumn before touching the database if
	// a column is not in the schema. The caller must Close the RowSet.
	QueryAll(ctx context.Context, columns ...string) (RowSet, error)

	// Get returns the pet with the given id, or ErrNotFound.
	Get(ctx context.Context, id int64) (*Pet, error)

	// Count returns the number of rows in the catalog.
	Count(ctx context.Context) (int64, error)
}

// SchemaManager holds the create and upgrade hooks run while opening.
type SchemaManager interface {
	// EnsureSchema creates the pets table if it does not exist.
	EnsureSchema(ctx context.Context) error

	// UpgradeSchema migrates the file from oldVersion to newVersion.
	UpgradeSchema(ctx context.Context, oldVersion, newVersion int) error
}

// Catalog lifecycle errors.
var (
	ErrStoreClosed        = errors.New("catalog is not open")
	ErrAlreadyOpen        = errors.New("catalog is already open")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrSchemaDowngrade    = errors.New("cannot downgrade schema")
)

// Catalog operation errors.
var (
	ErrConstraintViolation = errors.New("constraint violation")
	ErrUnknownColumn       = errors.New("unknown column")
	ErrInvalidValues       = errors.New("invalid values")
	ErrNotFound            = errors.New("pet not found")
	ErrInvalidGender       = errors.New("invalid gender")
)
