package engine

import (
	"reflect"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind classifies a container node.
type Kind int

const (
	// KindScalar covers nil, strings, numbers, booleans and any value that is
	// not one of the container types below.
	KindScalar Kind = iota
	// KindSequence is a []any.
	KindSequence
	// KindMapping is an *Map or a map[string]any.
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "scalar"
	}
}

// KindOf reports the container kind of value.
func KindOf(value any) Kind {
	switch v := value.(type) {
	case []any:
		return KindSequence
	case *Map:
		if v == nil {
			return KindScalar
		}
		return KindMapping
	case map[string]any:
		if v == nil {
			return KindScalar
		}
		return KindMapping
	default:
		return KindScalar
	}
}

// Map is a string-keyed mapping that remembers insertion order. Keys set again
// keep their original position. The zero value is an empty map.
type Map struct {
	entries *orderedmap.OrderedMap[string, any]
}

// Pair is one key/value entry of a Map.
type Pair struct {
	Key   string
	Value any
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{entries: orderedmap.New[string, any]()}
}

// MapOf builds a Map from pairs, in order.
func MapOf(pairs ...Pair) *Map {
	m := &Map{entries: orderedmap.New[string, any](orderedmap.WithCapacity[string, any](len(pairs)))}
	for _, pair := range pairs {
		m.Set(pair.Key, pair.Value)
	}
	return m
}

func (m *Map) Len() int {
	if m == nil || m.entries == nil {
		return 0
	}
	return m.entries.Len()
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil || m.entries == nil {
		return nil, false
	}
	return m.entries.Get(key)
}

func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores value under key, appending key when it is new.
func (m *Map) Set(key string, value any) {
	if m.entries == nil {
		m.entries = orderedmap.New[string, any]()
	}
	m.entries.Set(key, value)
}

// Delete removes key and returns the value it held.
func (m *Map) Delete(key string) (any, bool) {
	if m == nil || m.entries == nil {
		return nil, false
	}
	return m.entries.Delete(key)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m.Len() == 0 {
		return nil
	}
	keys := make([]string, 0, m.Len())
	for pair := m.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Pairs returns the entries in insertion order.
func (m *Map) Pairs() []Pair {
	if m.Len() == 0 {
		return nil
	}
	out := make([]Pair, 0, m.Len())
	for pair := m.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, Pair{Key: pair.Key, Value: pair.Value})
	}
	return out
}

// Range calls fn for each entry in order until fn returns false.
func (m *Map) Range(fn func(key string, value any) bool) {
	if m.Len() == 0 {
		return
	}
	for pair := m.entries.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Equal reports whether both maps hold equal entries in the same order.
func (m *Map) Equal(other *Map) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.Len() != other.Len() {
		return false
	}
	if m.Len() == 0 {
		return true
	}
	a, b := m.entries.Oldest(), other.entries.Oldest()
	for ; a != nil && b != nil; a, b = a.Next(), b.Next() {
		if a.Key != b.Key || !Equal(a.Value, b.Value) {
			return false
		}
	}
	return a == nil && b == nil
}

// MarshalJSON encodes the map as a JSON object with keys in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	if m.entries == nil {
		return []byte("{}"), nil
	}
	return m.entries.MarshalJSON()
}

// Equal compares two container values. Mappings of the same flavour compare
// by entries, sequences element-wise, anything else with reflect.DeepEqual.
func Equal(a, b any) bool {
	switch x := a.(type) {
	case *Map:
		y, ok := b.(*Map)
		return ok && x.Equal(y)
	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || len(x) != len(y) || (x == nil) != (y == nil) {
			return false
		}
		for key, value := range x {
			other, ok := y[key]
			if !ok || !Equal(value, other) {
				return false
			}
		}
		return true
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

// sequenceToMap converts a sequence into a Map keyed by decimal indices.
func sequenceToMap(seq []any) *Map {
	m := &Map{entries: orderedmap.New[string, any](orderedmap.WithCapacity[string, any](len(seq)))}
	for i, value := range seq {
		m.Set(strconv.Itoa(i), value)
	}
	return m
}
