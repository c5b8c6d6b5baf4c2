package usersink

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-dotpath/pkg/activity"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// ObjectType is recorded on every activity record produced by Hook.
const ObjectType = "dotpath.document"

// Hook adapts document activity events to a go-users ActivitySink.
type Hook struct {
	Sink usertypes.ActivitySink
}

// Notify maps the event into an ActivityRecord and forwards it to the sink.
// The record object ID is the document name, falling back to the path.
func (h Hook) Notify(ctx context.Context, event activity.Event) error {
	if h.Sink == nil {
		return nil
	}

	normalized := activity.NormalizeEvent(event)
	objectID := objectIDFor(normalized)
	if normalized.Verb == "" || objectID == "" {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	record := usertypes.ActivityRecord{
		ActorID:    parseUUID(normalized.ActorID),
		UserID:     parseUUID(normalized.UserID),
		TenantID:   parseUUID(normalized.TenantID),
		Verb:       normalized.Verb,
		ObjectType: ObjectType,
		ObjectID:   objectID,
		Channel:    normalized.Channel,
		Data:       recordData(normalized),
		OccurredAt: normalized.OccurredAt,
	}
	if record.OccurredAt.IsZero() {
		record.OccurredAt = time.Now()
	}

	return h.Sink.Log(ctx, record)
}

func objectIDFor(event activity.Event) string {
	if event.Document != "" {
		return event.Document
	}
	return strings.TrimSpace(event.Path)
}

func recordData(event activity.Event) map[string]any {
	data := make(map[string]any, len(event.Metadata)+3)
	for key, value := range event.Metadata {
		data[key] = value
	}
	data["path"] = event.Path
	if event.OldValue != nil {
		data["old_value"] = event.OldValue
	}
	if event.NewValue != nil {
		data["new_value"] = event.NewValue
	}
	return data
}

func parseUUID(input string) uuid.UUID {
	value := strings.TrimSpace(input)
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil
	}
	return id
}
