package binding

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Map is a submitted mapping that remembers key order.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// FromMap converts a plain map. Keys are sorted since Go maps carry no order.
func FromMap(values map[string]any) *Map {
	m := NewMap()
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		m.Set(key, values[key])
	}
	return m
}

// Set stores value under key, appending new keys at the end.
func (m *Map) Set(key string, value any) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	value, ok := m.values[key]
	return value, ok
}

// Keys returns the keys in submission order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Len reports the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Plain converts m (recursively) into plain maps and slices.
func (m *Map) Plain() map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m.keys))
	for _, key := range m.keys {
		out[key] = plain(m.values[key])
	}
	return out
}

// MarshalJSON writes the entries in submission order.
func (m *Map) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		encodedValue, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(encodedValue)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func plain(value any) any {
	switch v := value.(type) {
	case *Map:
		return v.Plain()
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = plain(item)
		}
		return out
	default:
		return value
	}
}
