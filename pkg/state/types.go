package state

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	dotpath "github.com/goliatone/go-dotpath"
	"github.com/goliatone/go-dotpath/layering"
)

var ErrNotFound = errors.New("state: document not found")

var ErrETagMismatch = errors.New("state: etag mismatch")

// Ref identifies one persisted document for one scope.
type Ref struct {
	Name  string
	Scope layering.Scope
}

// Meta is storage-owned metadata used for audit and concurrency control.
type Meta struct {
	SnapshotID string            `json:"snapshot_id,omitempty"`
	ETag       string            `json:"etag,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Store loads and saves one container for a single Ref. Implementations must
// not retain the value passed to Save without copying it.
type Store interface {
	Load(ctx context.Context, ref Ref) (value any, meta Meta, ok bool, err error)
	Save(ctx context.Context, ref Ref, value any, meta Meta) (Meta, error)
}

// Resolver loads persisted documents and layers them across scopes.
type Resolver struct {
	Store Store
	// Options are applied to every document the resolver returns.
	Options []dotpath.Option
}

// Mutator edits a document in place.
type Mutator func(*dotpath.Document) error

// Identifier returns the deterministic storage key for the ref, e.g.
// "user/42/settings" or "global/settings".
func (r Ref) Identifier() (string, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return "", fmt.Errorf("state: document name is required")
	}
	segment, err := r.Scope.Segment()
	if err != nil {
		return "", err
	}
	return segment + "/" + name, nil
}

// Load returns the document stored for ref, or ErrNotFound.
func (r Resolver) Load(ctx context.Context, ref Ref) (*dotpath.Document, Meta, error) {
	if r.Store == nil {
		return nil, Meta{}, fmt.Errorf("state: store is required")
	}
	value, meta, ok, err := r.Store.Load(ctx, ref)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("state: load %q for scope %q: %w", ref.Name, ref.Scope, err)
	}
	if !ok {
		return nil, Meta{}, fmt.Errorf("%w: %q for scope %q", ErrNotFound, ref.Name, ref.Scope)
	}
	return dotpath.New(value, r.Options...), meta, nil
}

// Resolve loads name for every scope in chain and merges the found documents
// strongest first. Scopes without a stored document are skipped.
func (r Resolver) Resolve(ctx context.Context, name string, chain layering.ScopeChain) (*dotpath.Document, error) {
	if chain.Len() == 0 {
		return nil, fmt.Errorf("state: at least one scope is required")
	}
	layers, err := r.loadLayers(ctx, name, chain)
	if err != nil {
		return nil, err
	}
	if len(layers) == 0 {
		return nil, fmt.Errorf("%w: no layers found for %q", ErrNotFound, name)
	}
	return dotpath.New(layering.MergeLayers(layers...), r.Options...), nil
}

// ResolveWithDefaults behaves like Resolve with defaults as the weakest
// layer. It succeeds even when no scope has a stored document.
func (r Resolver) ResolveWithDefaults(ctx context.Context, name string, defaults any, chain layering.ScopeChain) (*dotpath.Document, error) {
	layers, err := r.loadLayers(ctx, name, chain)
	if err != nil {
		return nil, err
	}
	layers = append(layers, defaults)
	return dotpath.New(layering.MergeLayers(layers...), r.Options...), nil
}

func (r Resolver) loadLayers(ctx context.Context, name string, chain layering.ScopeChain) ([]any, error) {
	if r.Store == nil {
		return nil, fmt.Errorf("state: store is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("state: document name is required")
	}

	layers := make([]any, 0, chain.Len()+1)
	for _, scope := range chain.Ordered() {
		value, _, ok, err := r.Store.Load(ctx, Ref{Name: name, Scope: scope})
		if err != nil {
			return nil, fmt.Errorf("state: load %q for scope %q: %w", name, scope, err)
		}
		if !ok {
			continue
		}
		layers = append(layers, value)
	}
	return layers, nil
}

// Mutate loads one document, applies fn, then saves the result. A missing
// document starts empty. When meta carries an ETag it must match the stored
// one.
func (r Resolver) Mutate(ctx context.Context, ref Ref, meta Meta, fn Mutator) (*dotpath.Document, Meta, error) {
	if r.Store == nil {
		return nil, Meta{}, fmt.Errorf("state: store is required")
	}
	if strings.TrimSpace(ref.Name) == "" {
		return nil, Meta{}, fmt.Errorf("state: document name is required")
	}
	if fn == nil {
		return nil, Meta{}, fmt.Errorf("state: mutator is required")
	}

	value, loadedMeta, ok, err := r.Store.Load(ctx, ref)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("state: load %q for scope %q: %w", ref.Name, ref.Scope, err)
	}
	if !ok {
		value = nil
		loadedMeta = Meta{}
	}

	if meta.ETag != "" && loadedMeta.ETag != "" && meta.ETag != loadedMeta.ETag {
		return nil, loadedMeta, fmt.Errorf("%w: expected %q, got %q", ErrETagMismatch, meta.ETag, loadedMeta.ETag)
	}

	doc := dotpath.New(layering.Clone(value), r.Options...)
	if err := fn(doc); err != nil {
		return nil, loadedMeta, err
	}

	saveMeta := mergeMeta(loadedMeta, meta)
	savedMeta, err := r.Store.Save(ctx, ref, doc.Value(), saveMeta)
	if err != nil {
		return nil, loadedMeta, fmt.Errorf("state: save %q for scope %q: %w", ref.Name, ref.Scope, err)
	}
	return doc, savedMeta, nil
}

func mergeMeta(base, override Meta) Meta {
	out := base
	if override.SnapshotID != "" {
		out.SnapshotID = override.SnapshotID
	}
	if override.ETag != "" {
		out.ETag = override.ETag
	}
	if !override.UpdatedAt.IsZero() {
		out.UpdatedAt = override.UpdatedAt
	}
	if override.Extra != nil {
		out.Extra = override.Extra
	}
	return out
}
