package dotpath

import (
	"github.com/goliatone/go-dotpath/internal/hydrate"
)

// DecodeContext identifies the subtree handed to decode hooks.
type DecodeContext = hydrate.Context

// DecodeOption configures Decode.
type DecodeOption[T any] = hydrate.DecoderOption[T]

// DecodeWithPreHook rewrites the subtree before it is decoded. The hook
// receives a detached copy.
func DecodeWithPreHook[T any](hook func(DecodeContext, any) (any, error)) DecodeOption[T] {
	return hydrate.WithPreHook[T](hook)
}

// DecodeWithPostHook adjusts or validates the decoded value.
func DecodeWithPostHook[T any](hook func(DecodeContext, *T) error) DecodeOption[T] {
	return hydrate.WithPostHook[T](hook)
}

// DecodeDisallowUnknownFields fails on mapping keys without a matching field.
func DecodeDisallowUnknownFields[T any]() DecodeOption[T] {
	return hydrate.WithDisallowUnknownFields[T]()
}

// DecodeUseNumber decodes numbers held in interface fields as json.Number.
func DecodeUseNumber[T any]() DecodeOption[T] {
	return hydrate.WithUseNumber[T]()
}

// DecodeAllowNil decodes a nil subtree into the zero value of T.
func DecodeAllowNil[T any]() DecodeOption[T] {
	return hydrate.WithAllowNil[T]()
}

// Decode resolves path in doc and decodes the subtree into T using JSON
// field tags. A missing path returns the KeyNotFoundError unchanged.
func Decode[T any](doc *Document, path string, opts ...DecodeOption[T]) (T, error) {
	var zero T
	if doc == nil {
		return zero, wrapDecodeError(path, ErrKeyNotFound)
	}
	subtree, err := doc.Get(path)
	if err != nil {
		return zero, err
	}

	ctx := hydrate.Context{Path: path, Document: doc.emitter.Document()}
	value, err := hydrate.NewDecoder[T](opts...).Decode(ctx, subtree)
	if err != nil {
		return zero, wrapDecodeError(path, err)
	}
	return value, nil
}

// DecodeWithCustomDecoder converts the subtree with fn instead of JSON field
// tags. fn receives the same detached copy the pre-hooks produced.
func DecodeWithCustomDecoder[T any](fn func(DecodeContext, any) (T, error)) DecodeOption[T] {
	return hydrate.WithCustomDecoder[T](fn)
}
