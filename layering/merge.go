package layering

import "github.com/goliatone/go-dotpath/engine"

// MergeLayers composes container trees ordered from strongest to weakest,
// returning a new tree that keeps explicit values from stronger layers while
// filling missing data from weaker ones. Inputs are never modified.
func MergeLayers(layers ...any) any {
	if len(layers) == 0 {
		return nil
	}

	merged := Clone(layers[len(layers)-1])
	for i := len(layers) - 2; i >= 0; i-- {
		merged = mergeValue(layers[i], merged)
	}
	return merged
}

// mergeValue merges strong over weak. weak is already a private copy.
func mergeValue(strong, weak any) any {
	if strong == nil {
		return weak
	}

	switch s := strong.(type) {
	case *engine.Map:
		if s == nil {
			return weak
		}
		result := engine.NewMap()
		weakPairs := mappingPairs(weak)
		for _, pair := range weakPairs {
			result.Set(pair.Key, pair.Value)
		}
		for _, pair := range s.Pairs() {
			existing, ok := result.Get(pair.Key)
			if ok {
				result.Set(pair.Key, mergeValue(pair.Value, existing))
				continue
			}
			result.Set(pair.Key, Clone(pair.Value))
		}
		return result
	case map[string]any:
		if s == nil {
			return weak
		}
		result := make(map[string]any, len(s))
		for _, pair := range mappingPairs(weak) {
			result[pair.Key] = pair.Value
		}
		for key, value := range s {
			if existing, ok := result[key]; ok {
				result[key] = mergeValue(value, existing)
				continue
			}
			result[key] = Clone(value)
		}
		return result
	default:
		// Sequences and scalars from the stronger layer replace the weaker value.
		return Clone(strong)
	}
}

func mappingPairs(value any) []engine.Pair {
	switch v := value.(type) {
	case *engine.Map:
		return v.Pairs()
	case map[string]any:
		pairs := make([]engine.Pair, 0, len(v))
		for key, item := range v {
			pairs = append(pairs, engine.Pair{Key: key, Value: item})
		}
		return pairs
	default:
		return nil
	}
}

// Clone returns a deep copy of a container tree. Scalars are returned as is.
func Clone(value any) any {
	switch v := value.(type) {
	case *engine.Map:
		if v == nil {
			return v
		}
		clone := engine.NewMap()
		for _, pair := range v.Pairs() {
			clone.Set(pair.Key, Clone(pair.Value))
		}
		return clone
	case map[string]any:
		if v == nil {
			return v
		}
		clone := make(map[string]any, len(v))
		for key, item := range v {
			clone[key] = Clone(item)
		}
		return clone
	case []any:
		if v == nil {
			return v
		}
		clone := make([]any, len(v))
		for i, item := range v {
			clone[i] = Clone(item)
		}
		return clone
	default:
		return value
	}
}
