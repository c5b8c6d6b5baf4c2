package activity

import (
	"strings"
	"time"
)

const (
	VerbPathSet      = "path.set"
	VerbPathDeleted  = "path.deleted"
	VerbLayerApplied = "document.layer.applied"
)

// PathEventInput describes the common fields for document mutation events.
type PathEventInput struct {
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

// BuildPathSetEvent constructs an event for a value written at a path.
func BuildPathSetEvent(input PathEventInput) Event {
	return buildPathEvent(VerbPathSet, input)
}

// BuildPathDeletedEvent constructs an event for a path removed from a document.
func BuildPathDeletedEvent(input PathEventInput) Event {
	return buildPathEvent(VerbPathDeleted, input)
}

// BuildLayerAppliedEvent constructs an event for layers merged into a
// document. Path is normally empty since the whole tree is affected.
func BuildLayerAppliedEvent(input PathEventInput) Event {
	return buildPathEvent(VerbLayerApplied, input)
}

func buildPathEvent(verb string, input PathEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if input.Path != "" {
		metadata = ensureMetadata(metadata)
		metadata["path"] = input.Path
	}
	if input.Document != "" {
		metadata = ensureMetadata(metadata)
		metadata["document"] = strings.TrimSpace(input.Document)
	}

	return Event{
		Verb:       verb,
		Document:   strings.TrimSpace(input.Document),
		Path:       input.Path,
		OldValue:   input.OldValue,
		NewValue:   input.NewValue,
		ActorID:    strings.TrimSpace(input.ActorID),
		UserID:     strings.TrimSpace(input.UserID),
		TenantID:   strings.TrimSpace(input.TenantID),
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
