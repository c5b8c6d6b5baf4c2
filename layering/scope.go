package layering

import (
	"fmt"
	"slices"
	"strings"
)

// ScopeLevel identifies the precedence of a document layer. Higher levels
// override lower levels when layering.
type ScopeLevel int

const (
	// ScopeLevelUnknown guards against misconfiguration so call sites can
	// detect missing metadata.
	ScopeLevelUnknown ScopeLevel = iota
	// ScopeLevelGlobal is the weakest layer (shared defaults).
	ScopeLevelGlobal
	// ScopeLevelGroup overrides global values for a tenant or team.
	ScopeLevelGroup
	// ScopeLevelUser is the strongest layer.
	ScopeLevelUser
)

func (l ScopeLevel) String() string {
	switch l {
	case ScopeLevelGlobal:
		return "global"
	case ScopeLevelGroup:
		return "group"
	case ScopeLevelUser:
		return "user"
	default:
		return "unknown"
	}
}

// ParseScopeLevel converts a level name, case-insensitively. Unrecognised
// values yield ScopeLevelUnknown.
func ParseScopeLevel(value string) ScopeLevel {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "global":
		return ScopeLevelGlobal
	case "group":
		return ScopeLevelGroup
	case "user":
		return ScopeLevelUser
	default:
		return ScopeLevelUnknown
	}
}

// Scope names one layer: a level plus the owner identifier for group and
// user levels.
type Scope struct {
	Level ScopeLevel
	Owner string
}

// GlobalScope returns the shared scope.
func GlobalScope() Scope {
	return Scope{Level: ScopeLevelGlobal}
}

// GroupScope returns the scope owned by group id.
func GroupScope(id string) Scope {
	return Scope{Level: ScopeLevelGroup, Owner: id}
}

// UserScope returns the scope owned by user id.
func UserScope(id string) Scope {
	return Scope{Level: ScopeLevelUser, Owner: id}
}

// Segment returns the storage key fragment for the scope, e.g. "user/42" or
// "global". Group and user scopes require an owner.
func (s Scope) Segment() (string, error) {
	switch s.Level {
	case ScopeLevelGlobal:
		return "global", nil
	case ScopeLevelGroup, ScopeLevelUser:
		owner := strings.TrimSpace(s.Owner)
		if owner == "" {
			return "", fmt.Errorf("layering: %s scope requires an owner", s.Level)
		}
		return fmt.Sprintf("%s/%s", s.Level, owner), nil
	default:
		return "", fmt.Errorf("layering: unsupported scope level %q", s.Level)
	}
}

func (s Scope) String() string {
	if s.Owner == "" {
		return s.Level.String()
	}
	return s.Level.String() + ":" + s.Owner
}

// ScopeChain describes the ordered layering sequence from strongest to weakest.
type ScopeChain struct {
	ordered []Scope
}

// NewScopeChain orders scopes strongest first, dropping unknown levels and
// duplicates while keeping the relative order of peers.
func NewScopeChain(scopes ...Scope) ScopeChain {
	filtered := make([]Scope, 0, len(scopes))
	seen := map[Scope]struct{}{}

	for _, scope := range scopes {
		if scope.Level == ScopeLevelUnknown {
			continue
		}
		if _, exists := seen[scope]; exists {
			continue
		}
		seen[scope] = struct{}{}
		filtered = append(filtered, scope)
	}

	slices.SortStableFunc(filtered, func(a, b Scope) int {
		return int(b.Level) - int(a.Level)
	})

	return ScopeChain{ordered: filtered}
}

// Ordered returns the layering sequence from strongest (index 0) to weakest.
func (c ScopeChain) Ordered() []Scope {
	out := make([]Scope, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Len reports the number of scopes in the chain.
func (c ScopeChain) Len() int {
	return len(c.ordered)
}

// Strongest returns the first scope in the chain (zero scope if empty).
func (c ScopeChain) Strongest() Scope {
	if len(c.ordered) == 0 {
		return Scope{}
	}
	return c.ordered[0]
}

// Weakest returns the final scope in the chain (zero scope if empty).
func (c ScopeChain) Weakest() Scope {
	if len(c.ordered) == 0 {
		return Scope{}
	}
	return c.ordered[len(c.ordered)-1]
}
