package engine

import (
	"strconv"
	"strings"
)

// PathEngine resolves and mutates single dotted paths inside a container.
// Set and Delete return the root because a scalar or sequence root may be
// replaced; callers must keep the returned value.
type PathEngine interface {
	Get(root any, path string, def any) (any, error)
	Set(root any, path string, value any) any
	Delete(root any, path string, throwOnMissing bool) (any, error)
	Exists(root any, path string) bool
}

// Paths is the default PathEngine. The zero value is ready to use.
type Paths struct {
	hooks  Hooks
	policy DefaultPolicy
}

var _ PathEngine = (*Paths)(nil)

// NewPaths constructs a Paths engine.
func NewPaths(opts ...Option) *Paths {
	p := &Paths{}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Parse splits path on dots. The empty path yields no segments.
func Parse(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// Get resolves path inside root. A miss returns def when the default policy
// accepts it, otherwise a *KeyNotFoundError.
func (p *Paths) Get(root any, path string, def any) (any, error) {
	if path == "" {
		return root, nil
	}
	hooks, policy := p.settings()

	value, miss := lookup(root, Parse(path))
	if miss != nil {
		if !policy.Applies(def) {
			return nil, miss
		}
		if hooks.OnDefault != nil {
			hooks.OnDefault(def, path, miss.Key)
		}
		return def, nil
	}
	if hooks.OnResolve != nil {
		hooks.OnResolve(value, path)
	}
	return value, nil
}

// Exists reports whether path resolves without a default.
func (p *Paths) Exists(root any, path string) bool {
	_, miss := lookup(root, Parse(path))
	return miss == nil
}

// Set writes value at path, creating or overwriting intermediate nodes. The
// empty path replaces the root.
func (p *Paths) Set(root any, path string, value any) any {
	hooks, _ := p.settings()
	segments := Parse(path)
	if len(segments) == 0 {
		if Equal(root, value) {
			return root
		}
		hooks.setting(value, path, root)
		return value
	}
	return assign(root, segments, value, path, hooks, false)
}

// Delete removes path from root. A missing segment is ignored unless
// throwOnMissing is set, in which case the error carries the full path.
func (p *Paths) Delete(root any, path string, throwOnMissing bool) (any, error) {
	hooks, _ := p.settings()
	segments := Parse(path)
	if len(segments) > 0 {
		if updated, removed, ok := remove(root, segments); ok {
			if hooks.OnDelete != nil {
				hooks.OnDelete(path, removed)
			}
			return updated, nil
		}
	}
	if throwOnMissing {
		return root, &KeyNotFoundError{Key: path}
	}
	return root, nil
}

func (p *Paths) settings() (Hooks, DefaultPolicy) {
	if p == nil {
		return Hooks{}, DefaultNullOnly
	}
	return p.hooks, p.policy
}

func lookup(root any, segments []string) (any, *KeyNotFoundError) {
	current := root
	for i, segment := range segments {
		next, ok := child(current, segment)
		if !ok {
			return nil, &KeyNotFoundError{
				Key:      segment,
				KeysPath: strings.Join(segments[:i], "."),
			}
		}
		current = next
	}
	return current, nil
}

func child(node any, segment string) (any, bool) {
	switch v := node.(type) {
	case *Map:
		return v.Get(segment)
	case map[string]any:
		value, ok := v[segment]
		return value, ok
	case []any:
		idx, ok := sequenceIndex(segment)
		if !ok || idx >= len(v) {
			return nil, false
		}
		return v[idx], true
	default:
		return nil, false
	}
}

// sequenceIndex accepts canonical non-negative decimal integers only.
func sequenceIndex(segment string) (int, bool) {
	if segment == "" || (len(segment) > 1 && segment[0] == '0') {
		return 0, false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	idx, err := strconv.Atoi(segment)
	if err != nil {
		return 0, false
	}
	return idx, true
}

func assign(node any, segments []string, value any, path string, hooks Hooks, plain bool) any {
	segment, rest := segments[0], segments[1:]
	parent := holderFor(node, segment, plain)
	_, plain = parent.(map[string]any)

	current, present := child(parent, segment)
	if len(rest) == 0 {
		if present && Equal(current, value) {
			return parent
		}
		hooks.setting(value, path, current)
		return put(parent, segment, value)
	}
	return put(parent, segment, assign(current, rest, value, path, hooks, plain))
}

// holderFor returns node when it can hold segment, otherwise a replacement
// container. Scalars are discarded. A sequence stays a sequence only when
// segment addresses an existing slot or the next free one; any other segment,
// including an index past the end, turns it into a mapping keyed by its
// indices so sparse writes never pad.
func holderFor(node any, segment string, plain bool) any {
	switch v := node.(type) {
	case *Map:
		if v != nil {
			return v
		}
	case map[string]any:
		if v != nil {
			return v
		}
		return map[string]any{}
	case []any:
		if idx, ok := sequenceIndex(segment); ok && idx <= len(v) {
			return v
		}
		if plain {
			out := make(map[string]any, len(v))
			for i, item := range v {
				out[strconv.Itoa(i)] = item
			}
			return out
		}
		return sequenceToMap(v)
	}
	if plain {
		return map[string]any{}
	}
	return NewMap()
}

func put(container any, segment string, value any) any {
	switch v := container.(type) {
	case *Map:
		v.Set(segment, value)
		return v
	case map[string]any:
		v[segment] = value
		return v
	case []any:
		idx, _ := sequenceIndex(segment)
		if idx < len(v) {
			v[idx] = value
			return v
		}
		return append(v, value)
	default:
		return container
	}
}

func remove(node any, segments []string) (any, any, bool) {
	segment := segments[0]
	current, ok := child(node, segment)
	if !ok {
		return node, nil, false
	}
	if len(segments) == 1 {
		updated, removed := drop(node, segment)
		return updated, removed, true
	}
	updated, removed, ok := remove(current, segments[1:])
	if !ok {
		return node, nil, false
	}
	return put(node, segment, updated), removed, true
}

func drop(container any, segment string) (any, any) {
	switch v := container.(type) {
	case *Map:
		removed, _ := v.Delete(segment)
		return v, removed
	case map[string]any:
		removed := v[segment]
		delete(v, segment)
		return v, removed
	case []any:
		idx, _ := sequenceIndex(segment)
		removed := v[idx]
		out := make([]any, 0, len(v)-1)
		out = append(out, v[:idx]...)
		out = append(out, v[idx+1:]...)
		return out, removed
	default:
		return container, nil
	}
}
