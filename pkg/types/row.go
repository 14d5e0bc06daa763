package types

import (
	"fmt"
	"iter"
	"strconv"
)

// Values maps column names to the values written by Catalog.Insert.
// Columns absent from the map are not written, so the engine applies its
// default or rejects the row.
type Values map[string]any

// Row is one projected result row, keyed by column name. Only the columns
// requested from QueryAll are present.
type Row map[string]any

// Has reports whether the row carries the column.
func (r Row) Has(col string) bool {
	_, ok := r[col]
	return ok
}

// IsNull reports whether the column is present and NULL.
func (r Row) IsNull(col string) bool {
	v, ok := r[col]
	return ok && v == nil
}

// Int64 returns the column as an integer. NULL and absent columns yield 0.
func (r Row) Int64(col string) int64 {
	switch v := r[col].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case []byte:
		n, _ := strconv.ParseInt(string(v), 10, 64)
		return n
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}

// String returns the column as text. NULL and absent columns yield "".
func (r Row) String(col string) string {
	switch v := r[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// Pet maps the row onto a Pet. Columns missing from the projection keep
// their zero value.
func (r Row) Pet() Pet {
	p := Pet{
		ID:     r.Int64(ColumnID),
		Name:   r.String(ColumnName),
		Gender: Gender(r.Int64(ColumnGender)),
		Weight: r.Int64(ColumnWeight),
	}
	if r.Has(ColumnBreed) && !r.IsNull(ColumnBreed) {
		breed := r.String(ColumnBreed)
		p.Breed = &breed
	}
	return p
}

// RowSet is a lazy, one-pass sequence of query results. It holds an open
// cursor until it is exhausted or closed, and it is not safe for use by more
// than one goroutine.
type RowSet interface {
	// Columns returns the projection in request order.
	Columns() []string

	// Next advances to the next row. It returns false when the set is
	// exhausted or iteration failed; the set is closed in both cases.
	Next() bool

	// Row returns the current row. Valid only after Next returned true.
	Row() Row

	// Err returns the error that stopped iteration, if any.
	Err() error

	// Close releases the cursor. Close is idempotent.
	Close() error

	// All ranges over the remaining rows. The set is closed when the loop
	// ends, including on break or error. An iteration error is yielded once
	// with a nil Row.
	All() iter.Seq2[Row, error]
}
