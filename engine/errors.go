package engine

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound is matched by every *KeyNotFoundError via errors.Is.
var ErrKeyNotFound = errors.New("dotpath: key not found")

// KeyNotFoundError reports the segment that could not be resolved and the
// dotted prefix that was walked before it.
type KeyNotFoundError struct {
	Key      string
	KeysPath string
}

func (e *KeyNotFoundError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.KeysPath == "" {
		return fmt.Sprintf("dotpath: key %q not found", e.Key)
	}
	return fmt.Sprintf("dotpath: key %q not found in path %q", e.Key, e.KeysPath)
}

// Is reports whether target is ErrKeyNotFound.
func (e *KeyNotFoundError) Is(target error) bool {
	return target == ErrKeyNotFound
}

// IsKeyNotFound reports whether err is, or wraps, a key-not-found failure.
func IsKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}
