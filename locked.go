package dotpath

import (
	"sync"

	"github.com/goliatone/go-dotpath/engine"
)

// Locked guards a Document with a read/write mutex. Reads share the lock and
// writes are exclusive. Hooks run while the lock is held and must not call
// back into the same Locked value.
type Locked struct {
	mu  sync.RWMutex
	doc *Document
}

// NewLocked wraps doc. A nil doc starts an empty document.
func NewLocked(doc *Document) *Locked {
	if doc == nil {
		doc = New(nil)
	}
	return &Locked{doc: doc}
}

func (l *Locked) Get(path string) (any, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.doc.Get(path)
}

func (l *Locked) GetOr(path string, def any) (any, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.doc.GetOr(path, def)
}

func (l *Locked) GetMany(group any, def any) (any, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.doc.GetMany(group, def)
}

func (l *Locked) Has(paths ...string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.doc.Has(paths...)
}

func (l *Locked) HasAny(paths ...string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.doc.HasAny(paths...)
}

func (l *Locked) Set(path string, value any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.doc.Set(path, value)
}

func (l *Locked) SetMany(pairs ...engine.Pair) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.doc.SetMany(pairs...)
}

func (l *Locked) Delete(paths ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.doc.Delete(paths...)
}

func (l *Locked) DeleteStrict(paths ...string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.doc.DeleteStrict(paths...)
}

// Snapshot returns a deep copy of the guarded document.
func (l *Locked) Snapshot() *Document {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.doc.Clone()
}

// Update runs fn with exclusive access. The document may be replaced by
// returning a non-nil value from fn.
func (l *Locked) Update(fn func(*Document) (*Document, error)) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	next, err := fn(l.doc)
	if err != nil {
		return err
	}
	if next != nil {
		l.doc = next
	}
	return nil
}

// View runs fn with shared access. fn must not mutate the document.
func (l *Locked) View(fn func(*Document) error) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return fn(l.doc)
}
