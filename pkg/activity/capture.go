package activity

import (
	"context"
	"sync"
)

// CaptureHook keeps every event it receives, which makes it handy in tests
// and demos. When Only is set, events with other verbs are ignored. Err is
// returned from every Notify call.
type CaptureHook struct {
	Only   []string
	Err    error
	Events []Event

	mu sync.Mutex
}

func (h *CaptureHook) Notify(_ context.Context, event Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.accepts(event.Verb) {
		h.Events = append(h.Events, NormalizeEvent(event))
	}
	return h.Err
}

// Verbs lists the recorded verbs in arrival order.
func (h *CaptureHook) Verbs() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	verbs := make([]string, 0, len(h.Events))
	for _, event := range h.Events {
		verbs = append(verbs, event.Verb)
	}
	return verbs
}

// Paths lists the recorded paths in arrival order.
func (h *CaptureHook) Paths() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	paths := make([]string, 0, len(h.Events))
	for _, event := range h.Events {
		paths = append(paths, event.Path)
	}
	return paths
}

func (h *CaptureHook) accepts(verb string) bool {
	if len(h.Only) == 0 {
		return true
	}
	for _, only := range h.Only {
		if only == verb {
			return true
		}
	}
	return false
}
