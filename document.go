package dotpath

import (
	"time"

	"github.com/goliatone/go-dotpath/engine"
	"github.com/goliatone/go-dotpath/layering"
	"github.com/goliatone/go-dotpath/pkg/activity"
)

// Document owns one nested container and exposes dotted-path access to it.
// A Document is not safe for concurrent use; wrap it with Locked when it is
// shared between goroutines.
type Document struct {
	root    any
	cfg     documentConfig
	paths   *engine.Paths
	batch   *engine.Batch
	emitter *activity.Emitter
}

// New wraps value. A nil value starts an empty ordered mapping. The value is
// not copied; mutations through the document are visible to other holders of
// the same maps.
func New(value any, opts ...Option) *Document {
	return newDocument(value, applyOptions(opts))
}

func newDocument(value any, cfg documentConfig) *Document {
	if value == nil {
		value = engine.NewMap()
	}
	d := &Document{root: value, cfg: cfg}
	d.emitter = activity.NewEmitter(cfg.activityHooks, cfg.emitterConfig())
	d.paths = engine.NewPaths(
		engine.WithDefaultPolicy(cfg.policy),
		engine.WithHooks(d.engineHooks()),
	)
	d.batch = engine.NewBatch(d.paths)
	return d
}

// Get returns the value at path. The empty path returns the whole container.
func (d *Document) Get(path string) (any, error) {
	return d.GetOr(path, nil)
}

// GetOr returns the value at path, or def when the path is missing and the
// default policy accepts def.
func (d *Document) GetOr(path string, def any) (any, error) {
	start := time.Now()
	value, err := d.paths.Get(d.root, path, def)
	d.logAccess(OpGet, start, err, path)
	return value, err
}

// GetMany resolves a path group. group is an engine.Group or any value
// accepted by engine.GroupOf. A single-entry group yields the bare value,
// otherwise an ordered *engine.Map keyed by output key.
func (d *Document) GetMany(group any, def any) (any, error) {
	start := time.Now()
	g, err := engine.GroupOf(group)
	if err != nil {
		d.logAccess(OpGetMany, start, err)
		return nil, err
	}
	value, err := d.batch.GetMulti(d.root, g, def)
	d.logAccess(OpGetMany, start, err)
	return value, err
}

// Set writes value at path, creating intermediate mappings as needed.
func (d *Document) Set(path string, value any) *Document {
	start := time.Now()
	d.root = d.paths.Set(d.root, path, value)
	d.logAccess(OpSet, start, nil, path)
	return d
}

// SetMany writes pairs in order; each pair key is a path.
func (d *Document) SetMany(pairs ...engine.Pair) *Document {
	start := time.Now()
	d.root = d.batch.SetMulti(d.root, pairs)
	d.logAccess(OpSetMany, start, nil, pairKeys(pairs)...)
	return d
}

// Delete removes paths, ignoring those that do not exist.
func (d *Document) Delete(paths ...string) *Document {
	start := time.Now()
	d.root, _ = d.batch.DeleteMulti(d.root, paths, false)
	d.logAccess(OpDelete, start, nil, paths...)
	return d
}

// DeleteStrict removes paths in order and stops at the first missing one.
// Paths removed before the failure stay removed.
func (d *Document) DeleteStrict(paths ...string) error {
	start := time.Now()
	root, err := d.batch.DeleteMulti(d.root, paths, true)
	d.root = root
	d.logAccess(OpDelete, start, err, paths...)
	return err
}

// Has reports whether every path exists. It is false when no paths are given.
func (d *Document) Has(paths ...string) bool {
	if len(paths) == 0 {
		return false
	}
	start := time.Now()
	ok := d.batch.ExistsAll(d.root, paths)
	d.logAccess(OpHas, start, nil, paths...)
	return ok
}

// HasAny reports whether at least one path exists.
func (d *Document) HasAny(paths ...string) bool {
	start := time.Now()
	ok := d.batch.ExistsAny(d.root, paths)
	d.logAccess(OpHasAny, start, nil, paths...)
	return ok
}

// Value returns the underlying container.
func (d *Document) Value() any {
	if d == nil {
		return nil
	}
	return d.root
}

// Clone returns a document with a deep copy of the container and the same
// options.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	return newDocument(layering.Clone(d.root), d.cfg)
}

// LayerWith merges layers ordered strongest to weakest over the current
// container, which acts as the weakest layer. The receiver is not modified.
func (d *Document) LayerWith(layers ...any) *Document {
	if d == nil {
		if len(layers) == 0 {
			return nil
		}
		return New(layering.MergeLayers(layers...))
	}

	start := time.Now()
	combined := append([]any(nil), layers...)
	combined = append(combined, d.root)
	merged := newDocument(layering.MergeLayers(combined...), d.cfg)
	d.logAccess(OpLayer, start, nil)
	merged.emitLayerApplied(d.root, len(layers))
	return merged
}

func pairKeys(pairs []engine.Pair) []string {
	keys := make([]string, len(pairs))
	for i, pair := range pairs {
		keys[i] = pair.Key
	}
	return keys
}
