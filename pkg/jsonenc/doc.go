// Package jsonenc encodes domain values to JSON.
//
// encoding/json handles structs, maps and scalars on its own. This package
// adds a normalisation pass in front of it so that a few extra kinds of
// values can be returned from handlers directly:
//
//   - types implementing ShallowDicter (only when the encoder is shallow)
//   - types implementing Dicter
//   - time.Time, rendered as an ISO-8601 string
//   - decimal.Decimal, *big.Float and *big.Rat, rendered as JSON numbers
//     (precision beyond float64 is lost)
//   - lazily evaluated query results: pgx.Rows, Query and iter.Seq[any],
//     which are materialised into arrays
//
// The checks run in that order and are applied recursively through maps,
// slices and arrays. Struct fields are left to encoding/json. Values that
// cannot be represented at all (channels, functions, complex numbers) fail
// with a *NotSerializableError that wraps ErrNotSerializable.
//
//	type Entity struct{ ID int; Name string; Tags []string }
//
//	func (e Entity) AsDict() map[string]any {
//		return map[string]any{"id": e.ID, "name": e.Name, "tags": e.Tags}
//	}
//
//	func (e Entity) AsShallow() map[string]any {
//		return map[string]any{"id": e.ID, "name": e.Name}
//	}
//
//	data, err := jsonenc.New(jsonenc.WithShallow(true)).Encode([]Entity{...})
package jsonenc
