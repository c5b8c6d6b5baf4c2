// Package hydrate turns untyped document subtrees into typed Go values.
package hydrate

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Context names the subtree being decoded. Document is optional.
type Context struct {
	Document string
	Path     string
}

func (c Context) describe() string {
	if c.Document == "" {
		return fmt.Sprintf("path %q", c.Path)
	}
	return fmt.Sprintf("path %q of %q", c.Path, c.Document)
}

// PreHook receives a detached copy of the subtree and returns the value to
// decode. Returning nil keeps the input.
type PreHook func(Context, any) (any, error)

// PostHook inspects or adjusts the decoded value.
type PostHook[T any] func(Context, *T) error

// CustomDecoder converts the prepared subtree itself instead of going
// through encoding/json.
type CustomDecoder[T any] func(Context, any) (T, error)

type DecoderOption[T any] func(*Decoder[T])

// Decoder converts subtrees into T. A Decoder is immutable once built and
// may be shared.
type Decoder[T any] struct {
	pre       []PreHook
	post      []PostHook[T]
	custom    CustomDecoder[T]
	useNumber bool
	strict    bool
	allowNil  bool
}

func WithPreHook[T any](hook PreHook) DecoderOption[T] {
	return func(d *Decoder[T]) {
		if hook != nil {
			d.pre = append(d.pre, hook)
		}
	}
}

func WithPostHook[T any](hook PostHook[T]) DecoderOption[T] {
	return func(d *Decoder[T]) {
		if hook != nil {
			d.post = append(d.post, hook)
		}
	}
}

// WithUseNumber keeps numbers held in interface values as json.Number.
func WithUseNumber[T any]() DecoderOption[T] {
	return func(d *Decoder[T]) { d.useNumber = true }
}

// WithDisallowUnknownFields rejects mapping keys that match no struct field.
func WithDisallowUnknownFields[T any]() DecoderOption[T] {
	return func(d *Decoder[T]) { d.strict = true }
}

func WithCustomDecoder[T any](decoder CustomDecoder[T]) DecoderOption[T] {
	return func(d *Decoder[T]) { d.custom = decoder }
}

// WithAllowNil decodes a nil subtree into the zero value.
func WithAllowNil[T any]() DecoderOption[T] {
	return func(d *Decoder[T]) { d.allowNil = true }
}

func NewDecoder[T any](opts ...DecoderOption[T]) *Decoder[T] {
	d := &Decoder[T]{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Decode prepares payload (detached copy, then pre-hooks), converts it and
// runs the post-hooks. Ordered *engine.Map values are accepted because the
// copy goes through their JSON encoding.
func (d *Decoder[T]) Decode(ctx Context, payload any) (T, error) {
	var out T
	if payload == nil && !d.allowNil {
		return out, fmt.Errorf("hydrate: payload is nil for %s", ctx.describe())
	}

	prepared, err := d.prepare(ctx, payload)
	if err != nil {
		return out, err
	}
	if out, err = d.convert(ctx, prepared); err != nil {
		return out, err
	}
	for _, hook := range d.post {
		if err := hook(ctx, &out); err != nil {
			var zero T
			return zero, stageError("post-hook", ctx, err)
		}
	}
	return out, nil
}

func (d *Decoder[T]) prepare(ctx Context, payload any) (any, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, stageError("copy", ctx, err)
	}
	var current any
	if err := json.Unmarshal(raw, &current); err != nil {
		return nil, stageError("copy", ctx, err)
	}
	for _, hook := range d.pre {
		next, err := hook(ctx, current)
		if err != nil {
			return nil, stageError("pre-hook", ctx, err)
		}
		if next != nil {
			current = next
		}
	}
	return current, nil
}

func (d *Decoder[T]) convert(ctx Context, prepared any) (T, error) {
	if d.custom != nil {
		out, err := d.custom(ctx, prepared)
		if err != nil {
			return out, stageError("custom decoder", ctx, err)
		}
		return out, nil
	}

	var out T
	raw, err := json.Marshal(prepared)
	if err != nil {
		return out, stageError("encode", ctx, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if d.useNumber {
		dec.UseNumber()
	}
	if d.strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&out); err != nil {
		var zero T
		return zero, stageError("decode", ctx, err)
	}
	return out, nil
}

func stageError(stage string, ctx Context, err error) error {
	return fmt.Errorf("hydrate: %s for %s failed: %w", stage, ctx.describe(), err)
}
