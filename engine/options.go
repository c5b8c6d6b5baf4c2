package engine

import "reflect"

// DefaultPolicy decides which default values count as "no default".
type DefaultPolicy int

const (
	// DefaultNullOnly treats only nil as an absent default.
	DefaultNullOnly DefaultPolicy = iota
	// DefaultFalsy also treats false, numeric zero and "" as absent.
	DefaultFalsy
)

// Applies reports whether def should be returned in place of a missing key.
func (p DefaultPolicy) Applies(def any) bool {
	if def == nil {
		return false
	}
	if p != DefaultFalsy {
		return true
	}
	rv := reflect.ValueOf(def)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return !rv.IsZero()
	default:
		return true
	}
}

// Hooks are optional observers. They receive values but cannot change what
// the engine returns.
type Hooks struct {
	// OnDefault runs before a default is returned for path; segment is the
	// one that was missing.
	OnDefault func(def any, path, segment string)
	// OnResolve runs after path resolved to value.
	OnResolve func(value any, path string)
	// OnSet runs before value is assigned at path. Unchanged values skip it.
	OnSet func(value any, path string)
	// OnReplace runs right after OnSet with the value about to be replaced,
	// nil when path did not exist.
	OnReplace func(path string, previous, value any)
	// OnDelete runs after path was removed; removed is the old value.
	OnDelete func(path string, removed any)
}

func (h Hooks) setting(value any, path string, previous any) {
	if h.OnSet != nil {
		h.OnSet(value, path)
	}
	if h.OnReplace != nil {
		h.OnReplace(path, previous, value)
	}
}

// Option configures a Paths engine.
type Option func(*Paths)

// WithHooks installs observers on the engine.
func WithHooks(hooks Hooks) Option {
	return func(p *Paths) {
		p.hooks = hooks
	}
}

// WithDefaultPolicy selects how defaults are recognised.
func WithDefaultPolicy(policy DefaultPolicy) Option {
	return func(p *Paths) {
		p.policy = policy
	}
}
