package jsonenc

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"math/big"
	"reflect"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// maxDepth bounds recursion through nested and self-referencing values.
const maxDepth = 64

// Dicter is implemented by domain types that know their JSON shape.
type Dicter interface {
	AsDict() map[string]any
}

// ShallowDicter is implemented by types with a reduced representation,
// typically without nested collections. It is only consulted in shallow mode.
type ShallowDicter interface {
	AsShallow() map[string]any
}

// Query is a lazily evaluated result set.
type Query interface {
	All() ([]any, error)
}

// Encoder converts values into JSON. It is safe for concurrent use.
type Encoder struct {
	shallow bool
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithShallow makes the encoder prefer ShallowDicter over Dicter.
func WithShallow(shallow bool) Option {
	return func(e *Encoder) {
		e.shallow = shallow
	}
}

// New creates an Encoder.
func New(opts ...Option) *Encoder {
	e := &Encoder{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Shallow reports whether the encoder runs in shallow mode.
func (e *Encoder) Shallow() bool {
	return e.shallow
}

// Encode returns the JSON encoding of v. Items are separated by ", " and
// keys from values by ": ".
func (e *Encoder) Encode(v any) ([]byte, error) {
	normalized, err := e.Normalize(v)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(normalized)
	if err != nil {
		return nil, err
	}
	return spaceSeparators(data), nil
}

// Normalize converts v into a tree that encoding/json can marshal.
func (e *Encoder) Normalize(v any) (any, error) {
	return e.normalize(v, 0)
}

// Marshal encodes v with a default, non-shallow encoder.
func Marshal(v any) ([]byte, error) {
	return New().Encode(v)
}

func (e *Encoder) normalize(v any, depth int) (any, error) {
	if v == nil {
		return nil, nil
	}
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: %d", ErrTooDeep, maxDepth)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, nil
	}

	if e.shallow {
		if s, ok := v.(ShallowDicter); ok {
			return e.normalizeMap(s.AsShallow(), depth+1)
		}
	}
	if d, ok := v.(Dicter); ok {
		return e.normalizeMap(d.AsDict(), depth+1)
	}

	switch val := v.(type) {
	case string, bool, float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number, json.RawMessage:
		return val, nil
	case time.Time:
		return val.Format(time.RFC3339Nano), nil
	case decimal.Decimal:
		return val.InexactFloat64(), nil
	case decimal.NullDecimal:
		if !val.Valid {
			return nil, nil
		}
		return val.Decimal.InexactFloat64(), nil
	case *big.Float:
		if val == nil {
			return nil, nil
		}
		f, _ := val.Float64()
		return f, nil
	case *big.Rat:
		if val == nil {
			return nil, nil
		}
		f, _ := val.Float64()
		return f, nil
	case pgx.Rows:
		rows, err := pgx.CollectRows(val, pgx.RowToMap)
		if err != nil {
			return nil, errors.Join(ErrQueryFailed, err)
		}
		return e.normalizeSlice(reflect.ValueOf(rows), depth)
	case Query:
		items, err := val.All()
		if err != nil {
			return nil, errors.Join(ErrQueryFailed, err)
		}
		return e.normalizeSlice(reflect.ValueOf(items), depth)
	case iter.Seq[any]:
		return e.normalizeSeq(val, depth)
	case func(func(any) bool):
		return e.normalizeSeq(val, depth)
	case json.Marshaler, encoding.TextMarshaler:
		return val, nil
	}

	switch rv.Kind() {
	case reflect.Pointer:
		return e.normalize(rv.Elem().Interface(), depth+1)
	case reflect.Struct:
		return e.normalizeStruct(rv, depth)
	case reflect.Map:
		return e.normalizeMapValue(rv, depth)
	case reflect.Slice:
		if rv.IsNil() {
			return nil, nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return v, nil
		}
		return e.normalizeSlice(rv, depth)
	case reflect.Array:
		return e.normalizeSlice(rv, depth)
	case reflect.Chan, reflect.Func, reflect.Complex64, reflect.Complex128, reflect.UnsafePointer:
		return nil, &NotSerializableError{Value: v}
	}

	return v, nil
}

func (e *Encoder) normalizeMap(m map[string]any, depth int) (any, error) {
	if m == nil {
		return nil, nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		nv, err := e.normalize(v, depth+1)
		if err != nil {
			return nil, err
		}
		out[k] = nv
	}
	return out, nil
}

func (e *Encoder) normalizeMapValue(rv reflect.Value, depth int) (any, error) {
	if rv.IsNil() {
		return nil, nil
	}
	out := make(map[string]any, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		key, err := mapKey(it.Key())
		if err != nil {
			return nil, err
		}
		nv, err := e.normalize(it.Value().Interface(), depth+1)
		if err != nil {
			return nil, err
		}
		out[key] = nv
	}
	return out, nil
}

func (e *Encoder) normalizeSlice(rv reflect.Value, depth int) (any, error) {
	out := make([]any, rv.Len())
	for i := range rv.Len() {
		nv, err := e.normalize(rv.Index(i).Interface(), depth+1)
		if err != nil {
			return nil, err
		}
		out[i] = nv
	}
	return out, nil
}

func (e *Encoder) normalizeSeq(seq iter.Seq[any], depth int) (any, error) {
	out := []any{}
	for item := range seq {
		nv, err := e.normalize(item, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, nv)
	}
	return out, nil
}

// mapKey mirrors the key rules of encoding/json.
func mapKey(k reflect.Value) (string, error) {
	if k.Kind() == reflect.String {
		return k.String(), nil
	}
	if tm, ok := k.Interface().(encoding.TextMarshaler); ok {
		b, err := tm.MarshalText()
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10), nil
	}
	return "", &NotSerializableError{Value: k.Interface()}
}
