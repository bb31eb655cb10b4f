package tinydi

import "reflect"

type factoryArity int

const (
	noArgs factoryArity = iota
	withServices
	withServicesAndActivatingKey
)

// factory wraps a user factory function of one of the supported shapes.
type factory struct {
	fn        reflect.Value
	out       reflect.Type
	arity     factoryArity
	withError bool
}

func newFactory(fn any) (*factory, error) {
	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func {
		return nil, newBadConstructorError(ErrNotAFunction, t)
	}

	if t.IsVariadic() {
		return nil, newBadConstructorError(ErrVariadicConstructor, t)
	}

	templateErr := newBadConstructorError(
		&ConstructorTemplateError{SupportedConstructorTemplates: factoryTemplateStr},
		t,
	)

	withError, err := getResultShape(t)
	if err != nil {
		return nil, templateErr
	}

	f := &factory{
		fn:        reflect.ValueOf(fn),
		out:       t.Out(0),
		arity:     factoryArity(t.NumIn()),
		withError: withError,
	}

	switch t.NumIn() {
	case 0:
	case 1:
		if t.In(0) != servicesType {
			return nil, templateErr
		}
	case 2:
		if t.In(0) != servicesType || t.In(1) != keyType {
			return nil, templateErr
		}
	default:
		return nil, templateErr
	}

	return f, nil
}

// key returns the declared return type, unless it is ambiguous (`any`).
func (f *factory) key() (Key, bool) {
	k := declaredKey(f.out)
	return k, !k.IsZero()
}

func (f *factory) call(services *Services, activating Key) (any, error) {
	var args []reflect.Value

	switch f.arity {
	case withServices:
		args = []reflect.Value{reflect.ValueOf(services)}
	case withServicesAndActivatingKey:
		args = []reflect.Value{reflect.ValueOf(services), reflect.ValueOf(activating)}
	}

	out := f.fn.Call(args)
	if f.withError && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}

	return out[0].Interface(), nil
}
