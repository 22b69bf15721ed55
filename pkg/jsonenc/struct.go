package jsonenc

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// normalizeStruct walks the exported fields of a struct so that nested
// values get the same conversions as top-level ones. Field names and the
// "-" and "omitempty" options follow the json struct tag.
func (e *Encoder) normalizeStruct(rv reflect.Value, depth int) (any, error) {
	out := make(map[string]any, rv.NumField())
	if err := e.collectFields(out, rv, depth); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Encoder) collectFields(out map[string]any, rv reflect.Value, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("%w: %d", ErrTooDeep, maxDepth)
	}

	t := rv.Type()
	var embedded []reflect.Value
	for i := range t.NumField() {
		sf := t.Field(i)
		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		fv := rv.Field(i)

		// Promoted fields of unexported embedded types are skipped.
		if sf.Anonymous && name == "" && sf.IsExported() {
			ft := sf.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				if fv.Kind() == reflect.Pointer {
					if fv.IsNil() {
						continue
					}
					fv = fv.Elem()
				}
				embedded = append(embedded, fv)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		if slices.Contains(strings.Split(opts, ","), "omitempty") && isEmptyValue(fv) {
			continue
		}

		nv, err := e.normalize(fv.Interface(), depth+1)
		if err != nil {
			return err
		}
		out[name] = nv
	}

	// Fields declared on the outer struct win over promoted ones.
	for _, ev := range embedded {
		inner := make(map[string]any, ev.NumField())
		if err := e.collectFields(inner, ev, depth+1); err != nil {
			return err
		}
		for k, v := range inner {
			if _, ok := out[k]; !ok {
				out[k] = v
			}
		}
	}
	return nil
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	}
	return false
}

// spaceSeparators rewrites compact JSON so that items are separated by ", "
// and keys from values by ": ".
func spaceSeparators(compact []byte) []byte {
	out := make([]byte, 0, len(compact)+len(compact)/8)
	inString, escaped := false, false
	for _, c := range compact {
		out = append(out, c)
		switch {
		case inString:
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
		case c == '"':
			inString = true
		case c == ',' || c == ':':
			out = append(out, ' ')
		}
	}
	return out
}
