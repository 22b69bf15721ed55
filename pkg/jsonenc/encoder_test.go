package jsonenc_test

import (
	"encoding/json"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/httpkit/pkg/jsonenc"
)

type entity struct {
	ID   int
	Name string
	Tags []string
}

func (e entity) AsDict() map[string]any {
	return map[string]any{"id": e.ID, "name": e.Name, "tags": e.Tags}
}

func (e entity) AsShallow() map[string]any {
	return map[string]any{"id": e.ID}
}

type dictOnly struct{ v int }

func (d dictOnly) AsDict() map[string]any { return map[string]any{"v": d.v} }

type sliceQuery struct {
	items []any
	err   error
}

func (q sliceQuery) All() ([]any, error) { return q.items, q.err }

// fakeRows is a minimal in-memory pgx.Rows.
type fakeRows struct {
	fields []string
	data   [][]any
	pos    int
	closed bool
	err    error
}

func (r *fakeRows) Close()                        { r.closed = true }
func (r *fakeRows) Err() error                    { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (r *fakeRows) Conn() *pgx.Conn               { return nil }
func (r *fakeRows) RawValues() [][]byte           { return nil }

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	fds := make([]pgconn.FieldDescription, len(r.fields))
	for i, name := range r.fields {
		fds[i] = pgconn.FieldDescription{Name: name}
	}
	return fds
}

func (r *fakeRows) Next() bool {
	if r.closed || r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Values() ([]any, error) {
	return r.data[r.pos-1], nil
}

func (r *fakeRows) Scan(dest ...any) error {
	if len(dest) == 1 {
		if rs, ok := dest[0].(pgx.RowScanner); ok {
			return rs.ScanRow(r)
		}
	}
	return errors.New("unsupported scan")
}

func encodeToAny(t *testing.T, enc *jsonenc.Encoder, v any) any {
	t.Helper()
	data, err := enc.Encode(v)
	require.NoError(t, err)
	var out any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestEncodeDicters(t *testing.T) {
	t.Parallel()

	e := entity{ID: 7, Name: "Acme", Tags: []string{"energy"}}

	t.Run("deep uses AsDict", func(t *testing.T) {
		t.Parallel()
		got := encodeToAny(t, jsonenc.New(), e)
		assert.Equal(t, map[string]any{"id": float64(7), "name": "Acme", "tags": []any{"energy"}}, got)
	})

	t.Run("shallow prefers AsShallow", func(t *testing.T) {
		t.Parallel()
		enc := jsonenc.New(jsonenc.WithShallow(true))
		assert.True(t, enc.Shallow())
		got := encodeToAny(t, enc, []any{e, dictOnly{v: 1}})
		assert.Equal(t, []any{
			map[string]any{"id": float64(7)},
			map[string]any{"v": float64(1)},
		}, got)
	})

	t.Run("nested in maps", func(t *testing.T) {
		t.Parallel()
		got := encodeToAny(t, jsonenc.New(), map[string]any{"results": []entity{e}, "count": 1})
		assert.Equal(t, map[string]any{
			"count":   float64(1),
			"results": []any{map[string]any{"id": float64(7), "name": "Acme", "tags": []any{"energy"}}},
		}, got)
	})
}

func TestEncodeTime(t *testing.T) {
	t.Parallel()

	ts := time.Date(2013, 4, 5, 10, 11, 12, 500, time.UTC)
	data, err := jsonenc.Marshal(map[string]any{"created": ts})
	require.NoError(t, err)

	var out struct {
		Created string `json:"created"`
	}
	require.NoError(t, json.Unmarshal(data, &out))

	parsed, err := time.Parse(time.RFC3339Nano, out.Created)
	require.NoError(t, err)
	assert.True(t, ts.Equal(parsed))
}

func TestEncodeDecimals(t *testing.T) {
	t.Parallel()

	data, err := jsonenc.Marshal(map[string]any{
		"decimal": decimal.RequireFromString("3.14"),
		"null":    decimal.NullDecimal{},
		"float":   big.NewFloat(2.5),
		"rat":     big.NewRat(1, 4),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"decimal":3.14,"null":null,"float":2.5,"rat":0.25}`, string(data))
}

func TestEncodeQueries(t *testing.T) {
	t.Parallel()

	t.Run("query interface", func(t *testing.T) {
		t.Parallel()
		got := encodeToAny(t, jsonenc.New(), sliceQuery{items: []any{entity{ID: 1, Name: "a"}, 2}})
		assert.Equal(t, []any{map[string]any{"id": float64(1), "name": "a", "tags": nil}, float64(2)}, got)
	})

	t.Run("query error", func(t *testing.T) {
		t.Parallel()
		_, err := jsonenc.Marshal(sliceQuery{err: errors.New("db down")})
		require.ErrorIs(t, err, jsonenc.ErrQueryFailed)
	})

	t.Run("iterator", func(t *testing.T) {
		t.Parallel()
		seq := func(yield func(any) bool) {
			for i := range 3 {
				if !yield(i) {
					return
				}
			}
		}
		got := encodeToAny(t, jsonenc.New(), seq)
		assert.Equal(t, []any{float64(0), float64(1), float64(2)}, got)
	})

	t.Run("pgx rows", func(t *testing.T) {
		t.Parallel()
		rows := &fakeRows{
			fields: []string{"id", "name"},
			data:   [][]any{{int64(1), "Acme"}, {int64(2), "Globex"}},
		}
		got := encodeToAny(t, jsonenc.New(), rows)
		assert.Equal(t, []any{
			map[string]any{"id": float64(1), "name": "Acme"},
			map[string]any{"id": float64(2), "name": "Globex"},
		}, got)
		assert.True(t, rows.closed)
	})

	t.Run("pgx rows error", func(t *testing.T) {
		t.Parallel()
		rows := &fakeRows{err: errors.New("conn reset")}
		_, err := jsonenc.Marshal(rows)
		require.ErrorIs(t, err, jsonenc.ErrQueryFailed)
	})
}

func TestEncodeNotSerializable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
	}{
		{"channel", make(chan int)},
		{"function", func() {}},
		{"complex", complex(1, 2)},
		{"nested channel", map[string]any{"ch": make(chan int)}},
		{"unsupported map key", map[float64]string{1.5: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := jsonenc.Marshal(tt.value)
			require.ErrorIs(t, err, jsonenc.ErrNotSerializable)

			var nsErr *jsonenc.NotSerializableError
			require.ErrorAs(t, err, &nsErr)
			assert.NotNil(t, nsErr.Value)
			assert.Contains(t, nsErr.Error(), "is not JSON serializable")
		})
	}
}

type selfRef struct{}

func (s selfRef) AsDict() map[string]any { return map[string]any{"self": s} }

func TestEncodeRecursionLimit(t *testing.T) {
	t.Parallel()

	_, err := jsonenc.Marshal(selfRef{})
	require.ErrorIs(t, err, jsonenc.ErrTooDeep)
}

func TestEncodePassThrough(t *testing.T) {
	t.Parallel()

	type plain struct {
		A int    `json:"a"`
		B string `json:"b"`
	}
	var nilSlice []int
	data, err := jsonenc.Marshal(map[string]any{
		"struct": plain{A: 1, B: "x"},
		"ptr":    &plain{A: 2},
		"nil":    nilSlice,
		"bytes":  []byte("hi"),
		"ints":   map[int]string{1: "one"},
		"array":  [2]int{1, 2},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"struct": {"a":1,"b":"x"},
		"ptr": {"a":2,"b":""},
		"nil": null,
		"bytes": "aGk=",
		"ints": {"1":"one"},
		"array": [1,2]
	}`, string(data))
}

type Base struct {
	ID   int    `json:"id"`
	Kind string `json:"kind"`
}

type holder struct {
	Base
	Kind    string          `json:"kind"`
	Amount  decimal.Decimal `json:"amount"`
	Nested  dictOnly        `json:"nested"`
	Owner   *entity         `json:"owner"`
	When    time.Time       `json:"when"`
	Note    string          `json:"note,omitempty"`
	Skipped string          `json:"-"`
	Plain   int
	hidden  int
}

func TestEncodeStructFields(t *testing.T) {
	t.Parallel()

	when := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("fields get the same conversions as top-level values", func(t *testing.T) {
		t.Parallel()
		got := encodeToAny(t, jsonenc.New(), holder{
			Base:    Base{ID: 9, Kind: "base"},
			Kind:    "outer",
			Amount:  decimal.RequireFromString("3.14"),
			Nested:  dictOnly{v: 2},
			Owner:   &entity{ID: 1, Name: "Acme"},
			When:    when,
			Skipped: "x",
			Plain:   4,
			hidden:  5,
		})
		assert.Equal(t, map[string]any{
			"id":     float64(9),
			"kind":   "outer",
			"amount": 3.14,
			"nested": map[string]any{"v": float64(2)},
			"owner":  map[string]any{"id": float64(1), "name": "Acme", "tags": nil},
			"when":   "2024-01-02T03:04:05Z",
			"Plain":  float64(4),
		}, got)
	})

	t.Run("pointer to struct", func(t *testing.T) {
		t.Parallel()
		got := encodeToAny(t, jsonenc.New(), &holder{Note: "n"})
		m, ok := got.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "n", m["note"])
		assert.Nil(t, m["owner"])
		assert.Equal(t, 0.0, m["amount"])
	})

	t.Run("shallow applies to fields", func(t *testing.T) {
		t.Parallel()
		got := encodeToAny(t, jsonenc.New(jsonenc.WithShallow(true)), holder{Owner: &entity{ID: 3, Name: "x"}})
		m, ok := got.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, map[string]any{"id": float64(3)}, m["owner"])
	})

	t.Run("unsupported field kind", func(t *testing.T) {
		t.Parallel()
		type withChan struct {
			C chan int
		}
		_, err := jsonenc.Marshal(withChan{C: make(chan int)})
		require.ErrorIs(t, err, jsonenc.ErrNotSerializable)

		var nsErr *jsonenc.NotSerializableError
		require.ErrorAs(t, err, &nsErr)
	})

	t.Run("self referencing pointers hit the depth limit", func(t *testing.T) {
		t.Parallel()
		type node struct {
			Next *node
		}
		n := &node{}
		n.Next = n
		_, err := jsonenc.Marshal(n)
		require.ErrorIs(t, err, jsonenc.ErrTooDeep)
	})
}

func TestEncodeTypedNilDicter(t *testing.T) {
	t.Parallel()

	var missing *entity
	for _, enc := range []*jsonenc.Encoder{jsonenc.New(), jsonenc.New(jsonenc.WithShallow(true))} {
		data, err := enc.Encode(map[string]any{"entity": missing})
		require.NoError(t, err)
		assert.Equal(t, `{"entity": null}`, string(data))
	}
}

func TestEncodeSeparators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"object", map[string]any{"a": 1}, `{"a": 1}`},
		{"nested", map[string]any{"a": []any{1, 2}, "b": map[string]any{"c": nil}}, `{"a": [1, 2], "b": {"c": null}}`},
		{"separators inside strings are kept", map[string]any{"k:,": `x, "y": z\`}, `{"k:,": "x, \"y\": z\\"}`},
		{"scalar", 3, `3`},
		{"empty containers", []any{map[string]any{}, []any{}}, `[{}, []]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			data, err := jsonenc.Marshal(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}
