package tree

import (
	"strings"
	"time"
)

// Keys carrying either prefix hold raw or internal-only data and are dropped
// wholesale by Sanitize, without recursing into their values.
const (
	rawKeyPrefix      = "Raw"
	internalKeyPrefix = "_"
)

// TimestampLayout is the textual form of a timestamp leaf when serialization
// is requested: microsecond precision with a numeric zone offset.
const TimestampLayout = "2006-01-02 15:04:05.000000-0700"

// Sanitize returns a copy of value with every internal-only key removed at
// every nesting depth. When serializeTimestamps is true, time.Time leaves are
// rewritten to TimestampLayout strings. The input is never mutated, and the
// pass is idempotent: sanitizing a sanitized tree returns an equal tree.
func Sanitize(value any, serializeTimestamps bool) any {
	switch v := value.(type) {
	case *Map:
		out := NewMap()
		v.Range(func(key string, elem any) bool {
			if strings.HasPrefix(key, rawKeyPrefix) || strings.HasPrefix(key, internalKeyPrefix) {
				return true
			}
			out.Set(key, Sanitize(elem, serializeTimestamps))
			return true
		})
		return out
	case List:
		out := make(List, len(v))
		for i, elem := range v {
			out[i] = Sanitize(elem, serializeTimestamps)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = Sanitize(elem, serializeTimestamps)
		}
		return out
	case time.Time:
		if serializeTimestamps {
			return v.Format(TimestampLayout)
		}
		return v
	default:
		return value
	}
}
