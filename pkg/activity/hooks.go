package activity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Event describes one change applied to a document. Path is the dotted path
// that changed and is empty for whole-document events. Identifiers are plain
// strings so callers are free to use any ID scheme.
type Event struct {
	Verb       string
	Document   string
	Path       string
	OldValue   any
	NewValue   any
	ActorID    string
	UserID     string
	TenantID   string
	Channel    string
	Metadata   map[string]any
	OccurredAt time.Time
}

// ActivityHook receives normalized events.
type ActivityHook interface {
	Notify(ctx context.Context, event Event) error
}

// HookFunc adapts a function to ActivityHook.
type HookFunc func(ctx context.Context, event Event) error

func (fn HookFunc) Notify(ctx context.Context, event Event) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, event)
}

// Hooks is an ordered list of receivers.
type Hooks []ActivityHook

func (h Hooks) Enabled() bool {
	return len(h) > 0
}

// Notify normalizes event once and hands the same copy to every hook. All
// hooks run even when one fails; failures are joined and tagged with the
// hook position. Events without a verb are dropped.
func (h Hooks) Notify(ctx context.Context, event Event) error {
	if len(h) == 0 {
		return nil
	}
	normalized := NormalizeEvent(event)
	if normalized.Verb == "" {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var errs []error
	for i, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, normalized); err != nil {
			errs = append(errs, fmt.Errorf("activity: hook %d on %s: %w", i, normalized.Verb, err))
		}
	}
	return errors.Join(errs...)
}

// NormalizeEvent trims identifiers, copies metadata and stamps OccurredAt
// when unset. Path is left untouched: " a" and "a" are different keys.
func NormalizeEvent(event Event) Event {
	out := event
	for _, field := range []*string{&out.Verb, &out.Document, &out.ActorID, &out.UserID, &out.TenantID, &out.Channel} {
		*field = strings.TrimSpace(*field)
	}
	out.Metadata = cloneMap(event.Metadata)
	if out.OccurredAt.IsZero() {
		out.OccurredAt = time.Now()
	}
	return out
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
