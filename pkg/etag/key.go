package etag

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"
)

// ModifiedKey is the reserved key holding the last modification time.
const ModifiedKey = "modified"

// Key describes the content of a response for caching purposes.
type Key map[string]any

// Modified returns the time stored under ModifiedKey, or the zero time.
func (k Key) Modified() time.Time {
	switch v := k[ModifiedKey].(type) {
	case time.Time:
		return v
	case *time.Time:
		if v != nil {
			return *v
		}
	}
	return time.Time{}
}

// String returns the canonical representation hashed by Compute: the items
// sorted by key, rendered as a list of (key, value) pairs.
func (k Key) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, name := range slices.Sorted(maps.Keys(k)) {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		b.WriteString(strconv.Quote(name))
		b.WriteString(", ")
		b.WriteString(canonical(k[name]))
		b.WriteByte(')')
	}
	b.WriteByte(']')
	return b.String()
}

// Compute returns the hex encoded SHA-1 of the canonical key.
func Compute(k Key) string {
	sum := sha1.Sum([]byte(k.String()))
	return hex.EncodeToString(sum[:])
}

// canonical renders values without process specific noise such as the
// monotonic clock reading of time.Time.
func canonical(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case string:
		return strconv.Quote(val)
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano)
	case *time.Time:
		if val == nil {
			return "None"
		}
		return val.UTC().Format(time.RFC3339Nano)
	case fmt.Stringer:
		return val.String()
	}
	return fmt.Sprintf("%v", v)
}
