package tree

import (
	"bytes"

	json "github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is the map-like node of a decoded tree. Key order is insertion order,
// which for decoded binary records means declaration order in the grammar.
type Map struct {
	om *orderedmap.OrderedMap[string, any]
}

// List is the sequence-like node of a decoded tree.
type List []any

// NewMap returns an empty map node.
func NewMap() *Map {
	return &Map{om: orderedmap.New[string, any]()}
}

// MapOf builds a map node from alternating key/value arguments, preserving
// the argument order. It panics when given a non-string key or an odd number
// of arguments, since call sites are static grammar definitions.
func MapOf(pairs ...any) *Map {
	if len(pairs)%2 != 0 {
		panic("tree.MapOf: odd number of arguments")
	}
	m := NewMap()
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic("tree.MapOf: key is not a string")
		}
		m.Set(key, pairs[i+1])
	}
	return m
}

// Set stores value under key, appending the key when it is new.
func (m *Map) Set(key string, value any) {
	m.om.Set(key, value)
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	return m.om.Get(key)
}

// Len returns the number of keys.
func (m *Map) Len() int {
	return m.om.Len()
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, m.om.Len())
	for pair := m.om.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Range calls fn for each key/value pair in insertion order until fn
// returns false.
func (m *Map) Range(fn func(key string, value any) bool) {
	for pair := m.om.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// MarshalJSON emits the map node as a JSON object with keys in insertion
// order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for pair := m.om.Oldest(); pair != nil; pair = pair.Next() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, err := json.Marshal(pair.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(pair.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
