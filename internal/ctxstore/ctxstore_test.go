package ctxstore

import (
	"context"
	"testing"
)

const testKey = Key("test")

func TestWithFrom(t *testing.T) {
	ctx := With(context.Background(), testKey, 42)
	v, ok := From[int](ctx, testKey)
	if !ok || v != 42 {
		t.Errorf("From = %v, %v; want 42, true", v, ok)
	}
	if _, ok := From[string](ctx, testKey); ok {
		t.Error("From with wrong type should fail")
	}
	if _, ok := From[int](context.Background(), testKey); ok {
		t.Error("From on empty context should fail")
	}
}
