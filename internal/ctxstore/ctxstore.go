// Package ctxstore stores typed values on a context.Context under string
// keys, so request-scoped data travels with the request instead of being
// bolted onto framework objects.
package ctxstore

import "context"

type Key string

func With[T any](ctx context.Context, key Key, value T) context.Context {
	return context.WithValue(ctx, key, value)
}

func From[T any](ctx context.Context, key Key) (T, bool) {
	value, ok := ctx.Value(key).(T)
	return value, ok
}
