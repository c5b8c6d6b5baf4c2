package engine

import (
	"fmt"
	"regexp"
	"sort"
)

// Group is an ordered collection of paths and nested groups used by batch
// reads. Entries may carry an explicit output key; entries without one are
// keyed positionally or by the last path segment.
type Group struct {
	entries []groupEntry
}

type groupEntry struct {
	key   string
	path  string
	group *Group
}

// PathsOf builds a group of positional paths.
func PathsOf(paths ...string) Group {
	entries := make([]groupEntry, len(paths))
	for i, path := range paths {
		entries[i] = groupEntry{path: path}
	}
	return Group{entries: entries}
}

// Path appends a path keyed by derivation.
func (g Group) Path(path string) Group {
	return g.with(groupEntry{path: path})
}

// As appends a path whose result is stored under key.
func (g Group) As(key, path string) Group {
	return g.with(groupEntry{key: key, path: path})
}

// Nest appends a nested group keyed by its position.
func (g Group) Nest(sub Group) Group {
	return g.with(groupEntry{group: &sub})
}

// NestAs appends a nested group stored under key.
func (g Group) NestAs(key string, sub Group) Group {
	return g.with(groupEntry{key: key, group: &sub})
}

// Len returns the number of top-level entries.
func (g Group) Len() int {
	return len(g.entries)
}

func (g Group) with(entry groupEntry) Group {
	entries := make([]groupEntry, len(g.entries), len(g.entries)+1)
	copy(entries, g.entries)
	return Group{entries: append(entries, entry)}
}

// GroupOf converts a dynamic description into a Group. It accepts a path
// string, []string, []any of paths and nested descriptions, an *Map of output
// key to path or description, and plain string-keyed maps, whose keys are
// visited in sorted order.
func GroupOf(value any) (Group, error) {
	switch v := value.(type) {
	case Group:
		return v, nil
	case *Group:
		if v == nil {
			return Group{}, nil
		}
		return *v, nil
	case string:
		return PathsOf(v), nil
	case []string:
		return PathsOf(v...), nil
	case []any:
		group := Group{}
		for _, item := range v {
			next, err := group.appendItem("", item)
			if err != nil {
				return Group{}, err
			}
			group = next
		}
		return group, nil
	case *Map:
		group := Group{}
		for _, pair := range v.Pairs() {
			next, err := group.appendItem(pair.Key, pair.Value)
			if err != nil {
				return Group{}, err
			}
			group = next
		}
		return group, nil
	case map[string]string:
		group := Group{}
		for _, key := range sortedKeys(v) {
			group = group.As(key, v[key])
		}
		return group, nil
	case map[string]any:
		group := Group{}
		for _, key := range sortedKeys(v) {
			next, err := group.appendItem(key, v[key])
			if err != nil {
				return Group{}, err
			}
			group = next
		}
		return group, nil
	case nil:
		return Group{}, nil
	default:
		return Group{}, fmt.Errorf("dotpath: unsupported path group type %T", value)
	}
}

func (g Group) appendItem(key string, item any) (Group, error) {
	if path, ok := item.(string); ok {
		return g.with(groupEntry{key: key, path: path}), nil
	}
	sub, err := GroupOf(item)
	if err != nil {
		return Group{}, err
	}
	return g.with(groupEntry{key: key, group: &sub}), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

var numericPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// IsNumeric reports whether s reads as a decimal number.
func IsNumeric(s string) bool {
	return numericPattern.MatchString(s)
}
