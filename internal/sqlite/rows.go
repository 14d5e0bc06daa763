package sqlite

import (
	"fmt"
	"iter"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/mesh-intelligence/shelter/pkg/types"
)

// rowSet is the lazy cursor behind QueryAll. It closes the underlying rows
// as soon as iteration ends, whether by exhaustion, error or Close.
type rowSet struct {
	rows    *sqlx.Rows
	columns []string

	cur  types.Row
	err  error
	once sync.Once
	cerr error
}

var _ types.RowSet = (*rowSet)(nil)

func newRowSet(rows *sqlx.Rows, columns []string) *rowSet {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &rowSet{rows: rows, columns: cols}
}

func (r *rowSet) Columns() []string {
	return r.columns
}

func (r *rowSet) Next() bool {
	r.cur = nil
	if r.err != nil || r.rows == nil {
		return false
	}
	if !r.rows.Next() {
		r.err = r.rows.Err()
		r.Close()
		return false
	}

	row := make(map[string]any, len(r.columns))
	if err := r.rows.MapScan(row); err != nil {
		r.err = fmt.Errorf("scan pet row: %w", err)
		r.Close()
		return false
	}
	r.cur = types.Row(row)
	return true
}

func (r *rowSet) Row() types.Row {
	return r.cur
}

func (r *rowSet) Err() error {
	return r.err
}

func (r *rowSet) Close() error {
	r.once.Do(func() {
		if r.rows != nil {
			r.cerr = r.rows.Close()
			r.rows = nil
		}
	})
	return r.cerr
}

func (r *rowSet) All() iter.Seq2[types.Row, error] {
	return func(yield func(types.Row, error) bool) {
		defer r.Close()
		for r.Next() {
			if !yield(r.cur, nil) {
				return
			}
		}
		if r.err != nil {
			yield(nil, r.err)
		}
	}
}
