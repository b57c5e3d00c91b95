// Package document holds the YAML document model of a device configuration:
// decoding text into an ordered value tree, encoding it back, locating key
// paths in the source, and the comment-encoded disabled blocks that live at
// the end of the file.
package document

import (
	"fmt"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Mapping is an insertion-ordered YAML mapping.
type Mapping = orderedmap.OrderedMap[string, any]

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return orderedmap.New[string, any]()
}

// MappingOf builds a mapping from alternating key/value arguments.
func MappingOf(kv ...any) *Mapping {
	m := NewMapping()
	for i := 0; i+1 < len(kv); i += 2 {
		m.Set(fmt.Sprint(kv[i]), kv[i+1])
	}
	return m
}

// Secret is the decoded form of a `!secret <key>` scalar.
type Secret struct {
	Key string
}

// Tagged is a scalar carrying any other local tag, such as `!lambda`.
type Tagged struct {
	Tag   string
	Value string
}

// Clone returns a deep copy of a decoded value.
func Clone(v any) any {
	switch x := v.(type) {
	case *Mapping:
		return CloneMapping(x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = Clone(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = Clone(item)
		}
		return out
	default:
		return v
	}
}

// CloneMapping deep copies m. A nil mapping clones to an empty one.
func CloneMapping(m *Mapping) *Mapping {
	out := NewMapping()
	if m == nil {
		return out
	}
	for p := m.Oldest(); p != nil; p = p.Next() {
		out.Set(p.Key, Clone(p.Value))
	}
	return out
}

// ShallowCopy copies the pairs of m into a new mapping without cloning values.
func ShallowCopy(m *Mapping) *Mapping {
	out := NewMapping()
	if m == nil {
		return out
	}
	for p := m.Oldest(); p != nil; p = p.Next() {
		out.Set(p.Key, p.Value)
	}
	return out
}

// Keys returns the keys of m in insertion order.
func Keys(m *Mapping) []string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, m.Len())
	for p := m.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys(m *Mapping) []string {
	keys := Keys(m)
	sort.Strings(keys)
	return keys
}

// Plain converts ordered mappings to map[string]any recursively, for
// comparisons that ignore key order.
func Plain(v any) any {
	switch x := v.(type) {
	case *Mapping:
		out := make(map[string]any, x.Len())
		for p := x.Oldest(); p != nil; p = p.Next() {
			out[p.Key] = Plain(p.Value)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = Plain(item)
		}
		return out
	default:
		return v
	}
}

// KindOf names the shape of a decoded value for diagnostics.
func KindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case *Mapping, map[string]any:
		return "mapping"
	case []any:
		return "sequence"
	case string, Secret, Tagged:
		return "string"
	case bool:
		return "boolean"
	case int, int64, uint64, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// IsNumber reports whether v decoded from a numeric scalar.
func IsNumber(v any) bool {
	switch v.(type) {
	case int, int64, uint64, float64:
		return true
	}
	return false
}

// FormatScalar renders a scalar the way it would appear as plain text.
func FormatScalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case Secret:
		return "!secret " + x.Key
	case Tagged:
		return x.Value
	default:
		return fmt.Sprint(x)
	}
}
