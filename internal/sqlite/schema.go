// Package sqlite implements the SQLite catalog store for the shelter.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// createPets is the pets table DDL. Column names come from the schema
// contract in pkg/types.
const createPets = `CREATE TABLE IF NOT EXISTS pets (
    _id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    breed TEXT,
    gender INTEGER NOT NULL,
    weight INTEGER NOT NULL DEFAULT 0
);`

const (
	pragmaUserVersion    = `PRAGMA user_version;`
	pragmaSetUserVersion = `PRAGMA user_version = %d;`
)

// execer is satisfied by *sql.DB, *sql.Conn, *sql.Tx and their sqlx wrappers.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// queryRower is satisfied by *sql.DB, *sql.Conn, *sql.Tx and their sqlx
// wrappers.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// createSchema runs the table DDL.
func createSchema(ctx context.Context, ex execer) error {
	if _, err := ex.ExecContext(ctx, createPets); err != nil {
		return fmt.Errorf("create pets table: %w", err)
	}
	return nil
}

// migrations holds the statements that move a file up to each version.
// Version 1 is created by createSchema and no later version has shipped.
var migrations = map[int][]string{}

// upgradeSchema applies every registered migration after oldVersion up to
// and including newVersion, in order. Versions without an entry are skipped.
func upgradeSchema(ctx context.Context, ex execer, oldVersion, newVersion int) error {
	for v := oldVersion + 1; v <= newVersion; v++ {
		for _, stmt := range migrations[v] {
			if _, err := ex.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migrate to version %d: %w", v, err)
			}
		}
	}
	return nil
}

// userVersion reads the schema version recorded in the file. A new file
// reports 0.
func userVersion(ctx context.Context, q queryRower) (int, error) {
	var v int
	if err := q.QueryRowContext(ctx, pragmaUserVersion).Scan(&v); err != nil {
		return 0, fmt.Errorf("read user_version: %w", err)
	}
	return v, nil
}

// setUserVersion records the schema version. PRAGMA does not accept bound
// parameters, so the integer is formatted into the statement.
func setUserVersion(ctx context.Context, ex execer, v int) error {
	if _, err := ex.ExecContext(ctx, fmt.Sprintf(pragmaSetUserVersion, v)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}
