package tinydi

import (
	"fmt"
	"reflect"
	"strings"
)

const (
	constructorTemplateStr string = "func(T1, ...) [T|(T, error)]"
	factoryTemplateStr     string = "func([*tinydi.Services[, tinydi.Key]]) [T|(T, error)]"
)

var (
	errorInterface = reflect.TypeOf((*error)(nil)).Elem()
	keyType        = reflect.TypeOf(Key{})
	servicesType   = reflect.TypeOf((*Services)(nil))

	ErrVariadicConstructor = fmt.Errorf("variadic constructor is not supported")
	ErrNotAFunction        = fmt.Errorf("constructor is not a function")
	ErrParamCountMismatch  = fmt.Errorf("number of declared parameters does not match constructor signature")
	ErrScopeClosed         = fmt.Errorf("scope is closed")
	ErrEmptyKey            = fmt.Errorf("service key is empty")
)

func newOverridingServiceError(key Key) error {
	return &OverridingServiceError{Key: key}
}

// OverridingServiceError is returned when a key is registered twice.
type OverridingServiceError struct {
	Key Key
}

func (err *OverridingServiceError) Error() string {
	return fmt.Sprintf("service %s is already registered", err.Key)
}

func newMissingTypeError(t reflect.Type) error {
	return &MissingTypeError{Type: t}
}

// MissingTypeError is returned when the service key can not be inferred
// from a factory or an instance and no explicit key was given.
type MissingTypeError struct {
	Type reflect.Type
}

func (err *MissingTypeError) Error() string {
	if err.Type == nil {
		return "missing service key for nil value"
	}

	return fmt.Sprintf("missing service key for %s: declare a concrete return type or pass a key", err.Type)
}

func newBadConstructorError(cause error, constructorType reflect.Type) error {
	return &BadConstructorError{
		cause:           cause,
		ConstructorType: constructorType,
	}
}

type BadConstructorError struct {
	cause           error
	ConstructorType reflect.Type
}

func (err *BadConstructorError) Error() string {
	return fmt.Sprintf("bad constructor %s: %s", err.ConstructorType, err.cause)
}

func (err *BadConstructorError) Unwrap() error {
	return err.cause
}

type ConstructorTemplateError struct {
	SupportedConstructorTemplates string
}

func (err *ConstructorTemplateError) Error() string {
	return fmt.Sprintf("only %s can be used", err.SupportedConstructorTemplates)
}

type StructError struct {
	T reflect.Type
}

func (err *StructError) Error() string {
	return fmt.Sprintf("tinydi.Struct can only be used with a struct, got %s", err.T)
}

// NotAssignableError is returned when a constructed type can not be used as
// the abstract type it is registered for.
type NotAssignableError struct {
	Abstract, Concrete reflect.Type
}

func (err *NotAssignableError) Error() string {
	return fmt.Sprintf("%s is not assignable to %s", err.Concrete, err.Abstract)
}

func newCircularDependencyError(chain []Key) error {
	return &CircularDependencyError{Chain: chain}
}

// CircularDependencyError lists the services forming a cycle.
// The first and the last element of Chain are the same service.
type CircularDependencyError struct {
	Chain []Key
}

func (err *CircularDependencyError) Error() string {
	names := make([]string, len(err.Chain))
	for i, key := range err.Chain {
		names[i] = key.String()
	}

	return fmt.Sprintf("circular dependency: %s", strings.Join(names, " -> "))
}

func newUnsupportedUnionTypeError(owner Key, param Param) error {
	return &UnsupportedUnionTypeError{Owner: owner, Param: param.Name, Alternatives: param.Alternatives}
}

// UnsupportedUnionTypeError is returned for parameters declared with a
// union or optional shape.
type UnsupportedUnionTypeError struct {
	Owner        Key
	Param        string
	Alternatives []Key
}

func (err *UnsupportedUnionTypeError) Error() string {
	return fmt.Sprintf("union or optional parameter %q of %s is not supported", err.Param, err.Owner)
}

func newMissingDependencyError(owner Key, param Param) error {
	return &MissingDependencyError{Owner: owner, Param: param.Name, Declared: param.Key}
}

// MissingDependencyError is returned when no registered service satisfies
// a constructor parameter.
type MissingDependencyError struct {
	Owner    Key
	Param    string
	Declared Key
}

func (err *MissingDependencyError) Error() string {
	if err.Declared.IsZero() {
		return fmt.Sprintf("cannot resolve parameter %q of %s", err.Param, err.Owner)
	}

	return fmt.Sprintf("cannot resolve parameter %q (%s) of %s", err.Param, err.Declared, err.Owner)
}

func newServiceBuilderError(cause error, lifetime Lifetime, key Key) error {
	return &ServiceBuilderError{
		cause:    cause,
		Lifetime: lifetime,
		Key:      key,
	}
}

type ServiceBuilderError struct {
	cause    error
	Key      Key
	Lifetime Lifetime
}

func (err *ServiceBuilderError) Error() string {
	return fmt.Sprintf("cannot build %s %s: %s", err.Lifetime, err.Key, err.cause)
}

func (err *ServiceBuilderError) Unwrap() error {
	return err.cause
}

func newTypeMismatchError(param string, expected reflect.Type, value any) error {
	return &TypeMismatchError{Param: param, Expected: expected, Actual: reflect.TypeOf(value)}
}

// TypeMismatchError is returned when a resolved value can not be passed
// to a constructor parameter.
type TypeMismatchError struct {
	Expected reflect.Type
	Actual   reflect.Type
	Param    string
}

func (err *TypeMismatchError) Error() string {
	return fmt.Sprintf("parameter %q expects %s, got %s", err.Param, err.Expected, err.Actual)
}

func newServiceTypeError(key Key, expected reflect.Type, value any) error {
	return &ServiceTypeError{Key: key, Expected: expected, Actual: reflect.TypeOf(value)}
}

// ServiceTypeError is returned by Get[T] when the resolved service is not a T.
type ServiceTypeError struct {
	Key      Key
	Expected reflect.Type
	Actual   reflect.Type
}

func (err *ServiceTypeError) Error() string {
	return fmt.Sprintf("service %s is %s, not %s", err.Key, err.Actual, err.Expected)
}

func newServiceNotFoundError(key Key) error {
	return &ServiceNotFoundError{Key: key}
}

type ServiceNotFoundError struct {
	Key Key
}

func (err *ServiceNotFoundError) Error() string {
	return fmt.Sprintf("service %s not found", err.Key)
}
