package dotpath

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-dotpath/engine"
)

// ErrKeyNotFound matches every missing-key failure via errors.Is.
var ErrKeyNotFound = engine.ErrKeyNotFound

// KeyNotFoundError reports the missing segment and the path walked before it.
type KeyNotFoundError = engine.KeyNotFoundError

// IsKeyNotFound reports whether err is a missing-key failure.
func IsKeyNotFound(err error) bool {
	return engine.IsKeyNotFound(err)
}

// ActivityError wraps a failure raised by an activity hook.
type ActivityError struct {
	Verb string
	Path string
	Err  error
}

func (e *ActivityError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("dotpath: activity %s path=%q: %v", e.Verb, e.Path, e.Err)
}

func (e *ActivityError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func wrapActivityError(verb, path string, err error) error {
	if err == nil {
		return nil
	}
	var activityErr *ActivityError
	if errors.As(err, &activityErr) {
		return err
	}
	return &ActivityError{Verb: verb, Path: path, Err: err}
}

// DecodeError reports a subtree that could not be decoded into the requested
// type.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("dotpath: decode path %q: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// wrapDecodeError leaves missing-key and already wrapped errors untouched.
func wrapDecodeError(path string, err error) error {
	if err == nil || errors.Is(err, ErrKeyNotFound) {
		return err
	}
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return err
	}
	return &DecodeError{Path: path, Err: err}
}
