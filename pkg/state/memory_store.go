package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goliatone/go-dotpath/layering"
	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store intended for tests and examples. It keys
// records by Ref.Identifier, stores deep copies, and issues a fresh
// SnapshotID and ETag on every save. A save whose meta carries an ETag that
// no longer matches the stored record fails with ErrETagMismatch.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
	now     func() time.Time
}

type memoryRecord struct {
	value any
	meta  Meta
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string]memoryRecord{}, now: time.Now}
}

func (s *MemoryStore) Load(_ context.Context, ref Ref) (any, Meta, bool, error) {
	key, err := ref.Identifier()
	if err != nil {
		return nil, Meta{}, false, err
	}

	s.mu.RLock()
	record, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return nil, Meta{}, false, nil
	}
	return layering.Clone(record.value), cloneMeta(record.meta), true, nil
}

func (s *MemoryStore) Save(_ context.Context, ref Ref, value any, meta Meta) (Meta, error) {
	key, err := ref.Identifier()
	if err != nil {
		return Meta{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.records[key]; ok && meta.ETag != "" && meta.ETag != current.meta.ETag {
		return Meta{}, fmt.Errorf("%w: expected %q, got %q", ErrETagMismatch, meta.ETag, current.meta.ETag)
	}

	saved := cloneMeta(meta)
	saved.SnapshotID = uuid.NewString()
	saved.ETag = uuid.NewString()
	saved.UpdatedAt = s.now().UTC()
	s.records[key] = memoryRecord{value: layering.Clone(value), meta: saved}
	return cloneMeta(saved), nil
}

// Delete removes the record for ref. It reports whether a record existed.
func (s *MemoryStore) Delete(_ context.Context, ref Ref) (bool, error) {
	key, err := ref.Identifier()
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[key]
	delete(s.records, key)
	return ok, nil
}

func cloneMeta(meta Meta) Meta {
	out := meta
	if meta.Extra == nil {
		return out
	}
	out.Extra = make(map[string]string, len(meta.Extra))
	for k, v := range meta.Extra {
		out.Extra[k] = v
	}
	return out
}
