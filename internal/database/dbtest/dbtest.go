// Package dbtest provides an in-memory database.Querier for provider tests.
package dbtest

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier returns canned rows and records the last query it received
type Querier struct {
	Rows [][]any
	Err  error

	SQL  string
	Args []any
}

// Query implements database.Querier
func (q *Querier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.SQL = sql
	q.Args = args
	if q.Err != nil {
		return nil, q.Err
	}
	return &Rows{data: q.Rows, pos: -1}, nil
}

// Rows is a pgx.Rows over a slice of value tuples
type Rows struct {
	data   [][]any
	pos    int
	err    error
	closed bool
}

var _ pgx.Rows = (*Rows)(nil)

func (r *Rows) Close() { r.closed = true }

func (r *Rows) Err() error { return r.err }

func (r *Rows) CommandTag() pgconn.CommandTag {
	return pgconn.NewCommandTag(fmt.Sprintf("SELECT %d", len(r.data)))
}

func (r *Rows) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (r *Rows) Next() bool {
	if r.closed || r.err != nil {
		return false
	}
	r.pos++
	if r.pos >= len(r.data) {
		r.closed = true
		return false
	}
	return true
}

// Scan assigns the current tuple to dest by position. Values must be
// assignable or convertible to the destination type.
func (r *Rows) Scan(dest ...any) error {
	if r.pos < 0 || r.pos >= len(r.data) {
		return fmt.Errorf("dbtest: scan called without a current row")
	}
	row := r.data[r.pos]
	if len(dest) != len(row) {
		return fmt.Errorf("dbtest: row has %d values, scan got %d destinations", len(row), len(dest))
	}

	for i, d := range dest {
		target := reflect.ValueOf(d)
		if target.Kind() != reflect.Pointer || target.IsNil() {
			return fmt.Errorf("dbtest: destination %d is not a pointer", i)
		}
		target = target.Elem()

		if row[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}

		v := reflect.ValueOf(row[i])
		switch {
		case v.Type().AssignableTo(target.Type()):
			target.Set(v)
		case v.Type().ConvertibleTo(target.Type()):
			target.Set(v.Convert(target.Type()))
		default:
			return fmt.Errorf("dbtest: cannot scan %T into %s", row[i], target.Type())
		}
	}
	return nil
}

func (r *Rows) Values() ([]any, error) {
	if r.pos < 0 || r.pos >= len(r.data) {
		return nil, fmt.Errorf("dbtest: no current row")
	}
	return append([]any(nil), r.data[r.pos]...), nil
}

func (r *Rows) RawValues() [][]byte { return nil }

func (r *Rows) Conn() *pgx.Conn { return nil }
