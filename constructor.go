package tinydi

import (
	"reflect"
	"slices"
	"strings"
)

const tagName = "di"

// Param declares one constructor parameter.
// A zero Key means the parameter is untyped and can only be resolved by
// alias or by name convention.
type Param struct {
	Key          Key
	Name         string
	Alternatives []Key
	Union        bool
}

// Arg declares a parameter by name. Its type is taken from the
// constructor signature.
func Arg(name string) Param {
	return Param{Name: name}
}

// Union declares a parameter that accepts one of several types.
// Such parameters are not supported and fail the build.
func Union(name string, alternatives ...Key) Param {
	return Param{Name: name, Union: true, Alternatives: alternatives}
}

// Constructor describes how to build a concrete type from its parameters.
type Constructor struct {
	Type   reflect.Type
	New    func(args ...any) (any, error)
	Params []Param
}

// ConstructorFunc lazily produces a Constructor, e.g. Struct[MyService].
type ConstructorFunc func() (Constructor, error)

// Struct returns *T instance with exported fields filled by registered services.
// Every exported field is a parameter named after the field,
// fields of type `any` are untyped.
// Field tag `di:"name"` renames parameter, `di:"-"` skips field
// and `di:",union"` marks field as union (unsupported).
func Struct[T any]() (Constructor, error) {
	t := reflect.TypeOf(new(T)).Elem()

	if t.Kind() != reflect.Struct {
		return Constructor{}, &StructError{T: t}
	}

	fields := make([]int, 0, t.NumField())
	params := make([]Param, 0, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, opts, _ := strings.Cut(field.Tag.Get(tagName), ",")
		if name == "-" {
			continue
		}

		if name == "" {
			name = field.Name
		}

		param := Param{Name: name, Key: declaredKey(field.Type)}
		if slices.Contains(strings.Split(opts, ","), "union") {
			param.Union = true

			if !param.Key.IsZero() {
				param.Alternatives = []Key{param.Key}
			}
		}

		params = append(params, param)
		fields = append(fields, i)
	}

	return Constructor{
		Type:   reflect.TypeOf(new(T)),
		Params: params,
		New:    getPointerInstance[T](fields),
	}, nil
}

// Func uses constructor function fn of form func(T1, T2, ...) T or
// func(T1, T2, ...) (T, error). One Param should be given per argument.
func Func(fn any, params ...Param) ConstructorFunc {
	return func() (Constructor, error) {
		t := reflect.TypeOf(fn)
		if t == nil || t.Kind() != reflect.Func {
			return Constructor{}, newBadConstructorError(ErrNotAFunction, t)
		}

		if t.IsVariadic() {
			return Constructor{}, newBadConstructorError(ErrVariadicConstructor, t)
		}

		withError, err := getResultShape(t)
		if err != nil {
			return Constructor{}, newBadConstructorError(
				&ConstructorTemplateError{SupportedConstructorTemplates: constructorTemplateStr},
				t,
			)
		}

		if len(params) != t.NumIn() {
			return Constructor{}, newBadConstructorError(ErrParamCountMismatch, t)
		}

		declared := make([]Param, len(params))
		for i, param := range params {
			if param.Key.IsZero() {
				param.Key = declaredKey(t.In(i))
			}

			declared[i] = param
		}

		return Constructor{
			Type:   t.Out(0),
			Params: declared,
			New:    getFuncInstance(reflect.ValueOf(fn), declared, withError),
		}, nil
	}
}

// declaredKey returns zero Key for `any`, as such parameter carries no type.
func declaredKey(t reflect.Type) Key {
	if t.Kind() == reflect.Interface && t.NumMethod() == 0 {
		return Key{}
	}

	return KeyOf(t)
}

func getResultShape(t reflect.Type) (withError bool, err error) {
	switch t.NumOut() {
	case 1:
		if t.Out(0) == errorInterface {
			return false, ErrNotAFunction
		}

		return false, nil
	case 2:
		if t.Out(1) != errorInterface {
			return false, ErrNotAFunction
		}

		return true, nil
	default:
		return false, ErrNotAFunction
	}
}

func argValue(name string, t reflect.Type, v any) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}

	value := reflect.ValueOf(v)
	if !value.Type().AssignableTo(t) {
		return reflect.Value{}, newTypeMismatchError(name, t, v)
	}

	return value, nil
}

func getPointerInstance[T any](fields []int) func(...any) (any, error) {
	return func(values ...any) (any, error) {
		p := reflect.ValueOf(new(T)).Elem()

		for i, v := range values {
			field := p.Field(fields[i])

			value, err := argValue(p.Type().Field(fields[i]).Name, field.Type(), v)
			if err != nil {
				return nil, err
			}

			field.Set(value)
		}

		return p.Addr().Interface(), nil
	}
}

func getFuncInstance(fn reflect.Value, params []Param, withError bool) func(...any) (any, error) {
	t := fn.Type()

	return func(values ...any) (any, error) {
		args := make([]reflect.Value, len(values))

		for i, v := range values {
			value, err := argValue(params[i].Name, t.In(i), v)
			if err != nil {
				return nil, err
			}

			args[i] = value
		}

		out := fn.Call(args)
		if withError && !out[1].IsNil() {
			return nil, out[1].Interface().(error)
		}

		return out[0].Interface(), nil
	}
}
