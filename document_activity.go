package dotpath

import (
	"context"

	"github.com/goliatone/go-dotpath/engine"
	"github.com/goliatone/go-dotpath/pkg/activity"
)

// ActivityEnabled reports whether mutations are forwarded to activity hooks.
func (d *Document) ActivityEnabled() bool {
	return d != nil && d.emitter.Enabled()
}

// engineHooks chains the caller's observers with access logging and
// activity emission.
func (d *Document) engineHooks() engine.Hooks {
	user := d.cfg.hooks
	return engine.Hooks{
		OnDefault: func(def any, path, segment string) {
			d.cfg.accessLogger().LogAccess(AccessEvent{Op: OpDefault, Paths: []string{path}, Segment: segment})
			if user.OnDefault != nil {
				user.OnDefault(def, path, segment)
			}
		},
		OnResolve: user.OnResolve,
		OnSet:     user.OnSet,
		OnReplace: func(path string, previous, value any) {
			if user.OnReplace != nil {
				user.OnReplace(path, previous, value)
			}
			if d.emitter.Enabled() {
				d.emit(activity.BuildPathSetEvent(activity.PathEventInput{
					Path:     path,
					OldValue: previous,
					NewValue: value,
				}))
			}
		},
		OnDelete: func(path string, removed any) {
			if user.OnDelete != nil {
				user.OnDelete(path, removed)
			}
			if d.emitter.Enabled() {
				d.emit(activity.BuildPathDeletedEvent(activity.PathEventInput{
					Path:     path,
					OldValue: removed,
				}))
			}
		},
	}
}

func (d *Document) emitLayerApplied(previous any, layers int) {
	if !d.emitter.Enabled() {
		return
	}
	d.emit(activity.BuildLayerAppliedEvent(activity.PathEventInput{
		OldValue: previous,
		NewValue: d.root,
		Metadata: map[string]any{"layers": layers},
	}))
}

// emit never fails the calling operation; hook errors go to the access
// logger.
func (d *Document) emit(event activity.Event) {
	if err := d.emitter.Emit(context.Background(), event); err != nil {
		d.cfg.accessLogger().LogAccess(AccessEvent{
			Op:    OpActivity,
			Paths: []string{event.Path},
			Err:   wrapActivityError(event.Verb, event.Path, err),
		})
	}
}
