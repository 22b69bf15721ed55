package csvstream

import (
	"database/sql/driver"
	"fmt"
	"iter"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
)

// Field is a single column of a row.
type Field struct {
	Column string
	Value  any
}

// Row is an ordered set of fields.
type Row []Field

// Get returns the value of column and whether it is present.
func (r Row) Get(column string) (any, bool) {
	for _, f := range r {
		if f.Column == column {
			return f.Value, true
		}
	}
	return nil, false
}

// RowFromMap builds a Row with columns in sorted order.
func RowFromMap(m map[string]any) Row {
	row := make(Row, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		row = append(row, Field{Column: k, Value: m[k]})
	}
	return row
}

// Source yields rows lazily. A non-nil error ends the stream.
type Source = iter.Seq2[Row, error]

// FromRows adapts an in-memory slice of rows.
func FromRows(rows []Row) Source {
	return func(yield func(Row, error) bool) {
		for _, r := range rows {
			if !yield(r, nil) {
				return
			}
		}
	}
}

// FromMaps adapts plain maps. Columns are sorted by name.
func FromMaps(rows []map[string]any) Source {
	return func(yield func(Row, error) bool) {
		for _, m := range rows {
			if !yield(RowFromMap(m), nil) {
				return
			}
		}
	}
}

// FromPgxRows streams a query result in the result set's column order.
// The rows are closed when iteration stops.
func FromPgxRows(rows pgx.Rows) Source {
	return func(yield func(Row, error) bool) {
		defer rows.Close()

		fds := rows.FieldDescriptions()
		for rows.Next() {
			values, err := rows.Values()
			if err != nil {
				yield(nil, err)
				return
			}
			row := make(Row, len(values))
			for i, v := range values {
				row[i] = Field{Column: fds[i].Name, Value: v}
			}
			if !yield(row, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, err)
		}
	}
}

// cell converts a value to its CSV text. ok is false for values that have no
// CSV representation.
func cell(v any) (s string, ok bool) {
	switch val := v.(type) {
	case nil:
		return "", true
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', 2, 64), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', 2, 32), true
	case time.Time:
		return val.Format(time.RFC3339Nano), true
	case *time.Time:
		if val == nil {
			return "", true
		}
		return val.Format(time.RFC3339Nano), true
	case []byte:
		return string(val), true
	case driver.Valuer:
		dv, err := val.Value()
		if err != nil {
			return "", false
		}
		if _, nested := dv.(driver.Valuer); nested {
			return fmt.Sprint(dv), true
		}
		return cell(dv)
	case fmt.Stringer:
		return val.String(), true
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return "", false
	}
	return fmt.Sprint(v), true
}
