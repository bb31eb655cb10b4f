package tinydi

import "reflect"

// Key identifies a service: either a type or a logical name.
// Name keys are compared by their canonical form, so Name("CatsController")
// and Name("cats_controller") denote the same service.
type Key struct {
	typ  reflect.Type
	name string
}

// keyID is the comparable identity of a Key.
type keyID struct {
	typ  reflect.Type
	name string
}

// TypeKey returns the key of type T.
func TypeKey[T any]() Key {
	return Key{typ: reflect.TypeOf((*T)(nil)).Elem()}
}

// KeyOf returns the key of type t.
func KeyOf(t reflect.Type) Key {
	return Key{typ: t}
}

// Name returns a key for a logical service name.
func Name(name string) Key {
	return Key{name: name}
}

func (k Key) IsZero() bool {
	return k.typ == nil && k.name == ""
}

func (k Key) IsType() bool {
	return k.typ != nil
}

// Type returns the type of a type key or nil for a name key.
func (k Key) Type() reflect.Type {
	return k.typ
}

// Name returns the short name of the key: the declared type name with
// pointers stripped for a type key, the name itself for a name key.
func (k Key) Name() string {
	if k.typ == nil {
		return k.name
	}

	return typeName(k.typ)
}

func (k Key) String() string {
	if k.typ == nil {
		return k.name
	}

	return k.typ.String()
}

// Equal reports whether k and other denote the same service.
func (k Key) Equal(other Key) bool {
	return k.id() == other.id()
}

func (k Key) id() keyID {
	if k.typ != nil {
		return keyID{typ: k.typ}
	}

	return keyID{name: Canonicalize(k.name)}
}

// canonical is the name used for name-convention and duality lookups.
func (k Key) canonical() string {
	return Canonicalize(k.Name())
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer && t.Name() == "" {
		t = t.Elem()
	}

	if t.Name() == "" {
		return t.String()
	}

	return t.Name()
}
