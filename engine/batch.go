package engine

import "strconv"

// Batch runs multi-path operations on top of a PathEngine.
type Batch struct {
	paths PathEngine
}

// NewBatch wraps paths. A nil engine falls back to a zero Paths.
func NewBatch(paths PathEngine) *Batch {
	if paths == nil {
		paths = &Paths{}
	}
	return &Batch{paths: paths}
}

// PathEngine returns the single-path engine the batch delegates to.
func (b *Batch) PathEngine() PathEngine {
	return b.paths
}

// GetMulti resolves every entry of group. Results are collected into an
// ordered *Map; a group with exactly one entry returns that entry's value.
// When def is a []any, entry n receives def[n] as its default.
func (b *Batch) GetMulti(root any, group Group, def any) (any, error) {
	if group.Len() == 0 {
		return root, nil
	}

	result := NewMap()
	first := ""
	for n, entry := range group.entries {
		entryDefault := positionalDefault(def, n)

		var (
			key   string
			value any
			err   error
		)
		if entry.group != nil {
			key = entryKey(entry.key, n)
			value, err = b.GetMulti(root, *entry.group, entryDefault)
		} else {
			key = entry.key
			if key == "" || IsNumeric(key) {
				key = derivedKey(entry.path, n)
			}
			value, err = b.paths.Get(root, entry.path, entryDefault)
		}
		if err != nil {
			return nil, err
		}

		key = uniqueKey(result, key, n)
		result.Set(key, value)
		if n == 0 {
			first = key
		}
	}

	if group.Len() == 1 {
		value, _ := result.Get(first)
		return value, nil
	}
	return result, nil
}

// SetMulti applies pairs in order. Later pairs win where paths overlap.
func (b *Batch) SetMulti(root any, pairs []Pair) any {
	for _, pair := range pairs {
		root = b.paths.Set(root, pair.Key, pair.Value)
	}
	return root
}

// DeleteMulti deletes paths in order. With throwOnMissing the first missing
// path stops the batch; earlier deletions stay applied.
func (b *Batch) DeleteMulti(root any, paths []string, throwOnMissing bool) (any, error) {
	for _, path := range paths {
		updated, err := b.paths.Delete(root, path, throwOnMissing)
		if err != nil {
			return updated, err
		}
		root = updated
	}
	return root, nil
}

// ExistsAll reports whether every path exists.
func (b *Batch) ExistsAll(root any, paths []string) bool {
	for _, path := range paths {
		if !b.paths.Exists(root, path) {
			return false
		}
	}
	return true
}

// ExistsAny reports whether at least one path exists.
func (b *Batch) ExistsAny(root any, paths []string) bool {
	for _, path := range paths {
		if b.paths.Exists(root, path) {
			return true
		}
	}
	return false
}

func positionalDefault(def any, n int) any {
	seq, ok := def.([]any)
	if !ok {
		return def
	}
	if n < len(seq) {
		return seq[n]
	}
	return nil
}

func entryKey(explicit string, n int) string {
	if explicit == "" || IsNumeric(explicit) {
		return strconv.Itoa(n)
	}
	return explicit
}

// derivedKey names a path result after its last segment, falling back to the
// batch position when that segment is a sequence index or empty.
func derivedKey(path string, n int) string {
	segments := Parse(path)
	if len(segments) == 0 {
		return strconv.Itoa(n)
	}
	last := segments[len(segments)-1]
	if last == "" || IsNumeric(last) {
		return strconv.Itoa(n)
	}
	return last
}

func uniqueKey(result *Map, key string, n int) string {
	suffix := "_" + strconv.Itoa(n)
	for result.Has(key) {
		key += suffix
	}
	return key
}
