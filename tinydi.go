package tinydi

import (
	"context"
	"fmt"
	"reflect"
)

type Lifetime int

const (
	// For `Transient` service new instance is returned on every request.
	Transient Lifetime = iota
	// For `Scoped` service same instance is returned within one Scope.
	Scoped
	// For `Singleton` service same instance is returned always.
	Singleton
)

func (l Lifetime) String() string {
	switch l {
	case Transient:
		return "Transient"
	case Scoped:
		return "Scoped"
	case Singleton:
		return "Singleton"
	default:
		return fmt.Sprintf("Lifetime(%d)", int(l))
	}
}

// Locator resolves services by key.
// A missing service is reported as (nil, nil).
// Implemented by *Provider, *Scope and *Services.
type Locator interface {
	Get(key Key) (any, error)
}

type scopeCtxKey struct{}

// WithScope returns a copy of ctx carrying s.
func WithScope(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, scopeCtxKey{}, s)
}

// ScopeFrom returns the Scope carried by ctx, if any.
func ScopeFrom(ctx context.Context) (*Scope, bool) {
	if ctx == nil {
		return nil, false
	}

	s, ok := ctx.Value(scopeCtxKey{}).(*Scope)
	return s, ok && s != nil
}

// Get resolves service of type T.
// If ctx carries a Scope (see WithScope) and l is a *Provider,
// Scoped services are resolved within that Scope.
func Get[T any](ctx context.Context, l Locator) (T, error) {
	return get[T](ctx, l, TypeKey[T]())
}

// GetNamed resolves service registered under name and returns it as T.
func GetNamed[T any](ctx context.Context, l Locator, name string) (T, error) {
	return get[T](ctx, l, Name(name))
}

// MustGet is like Get but panics on error.
func MustGet[T any](ctx context.Context, l Locator) T {
	s, err := Get[T](ctx, l)
	if err != nil {
		panic(err)
	}

	return s
}

func get[T any](ctx context.Context, l Locator, key Key) (T, error) {
	var zero T

	if p, ok := l.(*Provider); ok {
		if s, ok := ScopeFrom(ctx); ok && s.provider == p {
			l = s
		}
	}

	v, err := l.Get(key)
	if err != nil {
		return zero, err
	}

	if v == nil {
		return zero, newServiceNotFoundError(key)
	}

	s, ok := v.(T)
	if !ok {
		return zero, newServiceTypeError(key, reflect.TypeOf((*T)(nil)).Elem(), v)
	}

	return s, nil
}
