package tinydi

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/go-logr/logr"
)

type ContainerConfiguration struct {
	Logger                           logr.Logger
	SilenceCaptiveDependencyWarnings bool
}

type ContainerOption func(*ContainerConfiguration)

var (
	WithLogger = func(log logr.Logger) ContainerOption {
		return func(opt *ContainerConfiguration) { opt.Logger = log }
	}

	SilenceCaptiveDependencyWarnings ContainerOption = func(opt *ContainerConfiguration) {
		opt.SilenceCaptiveDependencyWarnings = true
	}
)

// Returns new Container.
func New(opts ...ContainerOption) *Container {
	conf := ContainerConfiguration{
		Logger: logger(),
	}

	for _, opt := range opts {
		opt(&conf)
	}

	return &Container{
		conf:     conf,
		registry: newRegistry(),
	}
}

// Container collects service registrations.
// Registration methods return the Container to allow chaining;
// the first failed registration is kept, reported by Err and returned by Build.
// Later registrations are ignored once an error occurred.
type Container struct {
	err      atomic.Pointer[error]
	registry *registry
	conf     ContainerConfiguration
	mu       sync.RWMutex
}

// Err returns the first registration error, if any.
func (c *Container) Err() error {
	if err := c.err.Load(); err != nil {
		return *err
	}

	return nil
}

// AddInstance registers value as Singleton under key or under the dynamic type of value.
func (c *Container) AddInstance(value any, key ...Key) *Container {
	k, ok := optionalKey(key)
	if !ok {
		if value == nil {
			return c.fail(newMissingTypeError(nil))
		}

		k = KeyOf(reflect.TypeOf(value))
	}

	return c.add(&descriptor{key: k, lifetime: Singleton, kind: instanceKind, instance: value})
}

// AddTransient registers constructor to be used for key with Transient lifetime.
func (c *Container) AddTransient(key Key, constructor ConstructorFunc) *Container {
	if key.IsZero() {
		return c.fail(ErrEmptyKey)
	}

	return c.addConstructor(Transient, key, constructor)
}

// AddScoped registers constructor to be used for key with Scoped lifetime.
func (c *Container) AddScoped(key Key, constructor ConstructorFunc) *Container {
	if key.IsZero() {
		return c.fail(ErrEmptyKey)
	}

	return c.addConstructor(Scoped, key, constructor)
}

// AddSingleton registers constructor to be used for key with Singleton lifetime.
func (c *Container) AddSingleton(key Key, constructor ConstructorFunc) *Container {
	if key.IsZero() {
		return c.fail(ErrEmptyKey)
	}

	return c.addConstructor(Singleton, key, constructor)
}

// AddExactTransient registers constructor under the type it builds.
func (c *Container) AddExactTransient(constructor ConstructorFunc) *Container {
	return c.addConstructor(Transient, Key{}, constructor)
}

// AddExactScoped registers constructor under the type it builds.
func (c *Container) AddExactScoped(constructor ConstructorFunc) *Container {
	return c.addConstructor(Scoped, Key{}, constructor)
}

// AddExactSingleton registers constructor under the type it builds.
func (c *Container) AddExactSingleton(constructor ConstructorFunc) *Container {
	return c.addConstructor(Singleton, Key{}, constructor)
}

// AddTransientByFactory registers factory with Transient lifetime.
// Factory should be of type `func([*Services[, Key]]) [T|(T, error)]`.
// Service key is key if given, otherwise T. If T is `any` key is required.
func (c *Container) AddTransientByFactory(factory any, key ...Key) *Container {
	return c.addFactory(Transient, factory, key)
}

// AddScopedByFactory registers factory with Scoped lifetime.
// See AddTransientByFactory for supported factories.
func (c *Container) AddScopedByFactory(factory any, key ...Key) *Container {
	return c.addFactory(Scoped, factory, key)
}

// AddSingletonByFactory registers factory with Singleton lifetime.
// See AddTransientByFactory for supported factories.
func (c *Container) AddSingletonByFactory(factory any, key ...Key) *Container {
	return c.addFactory(Singleton, factory, key)
}

// AddAlias adds key as a candidate for constructor parameters named name.
// Candidates are tried in order after the declared parameter type.
func (c *Container) AddAlias(name string, key Key) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.registry.aliases.add(name, key)

	return c
}

// SetAlias makes key the only candidate for constructor parameters named name.
// It takes precedence over the declared parameter type.
func (c *Container) SetAlias(name string, key Key) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.registry.aliases.set(name, key)

	return c
}

// Contains reports whether a service is registered for key,
// by type, by name or by alias.
func (c *Container) Contains(key Key) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.registry.lookup(key)
	return ok
}

// Build validates registrations and returns a Provider.
// Container can be changed afterwards without affecting returned Provider.
func (c *Container) Build() (*Provider, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := c.Err(); err != nil {
		return nil, err
	}

	r := c.registry.clone()
	if err := r.analyze(c.conf.Logger, c.conf.SilenceCaptiveDependencyWarnings); err != nil {
		return nil, err
	}

	c.conf.Logger.V(1).Info("provider built", "services", len(r.descriptors), "aliases", len(r.aliases))

	return newProvider(r), nil
}

func (c *Container) addConstructor(lifetime Lifetime, key Key, constructor ConstructorFunc) *Container {
	if c.Err() != nil {
		return c
	}

	ctor, err := constructor()
	if err != nil {
		return c.fail(err)
	}

	kind := concreteKind
	if key.IsZero() {
		key = KeyOf(ctor.Type)
		kind = selfKind
	}

	if key.IsType() && !ctor.Type.AssignableTo(key.Type()) {
		return c.fail(newBadConstructorError(
			&NotAssignableError{Abstract: key.Type(), Concrete: ctor.Type},
			ctor.Type,
		))
	}

	return c.add(&descriptor{key: key, lifetime: lifetime, kind: kind, ctor: &ctor})
}

func (c *Container) addFactory(lifetime Lifetime, fn any, key []Key) *Container {
	if c.Err() != nil {
		return c
	}

	f, err := newFactory(fn)
	if err != nil {
		return c.fail(err)
	}

	k, ok := optionalKey(key)
	if !ok {
		if k, ok = f.key(); !ok {
			return c.fail(newMissingTypeError(reflect.TypeOf(fn)))
		}
	}

	return c.add(&descriptor{key: k, lifetime: lifetime, kind: factoryKind, factory: f})
}

func (c *Container) add(d *descriptor) *Container {
	if c.Err() != nil {
		return c
	}

	c.mu.Lock()
	err := c.registry.add(d)
	c.mu.Unlock()

	if err != nil {
		return c.fail(err)
	}

	return c
}

func (c *Container) fail(err error) *Container {
	c.conf.Logger.V(1).Info("registration rejected", "error", err.Error())
	c.err.CompareAndSwap(nil, &err)

	return c
}

func optionalKey(key []Key) (Key, bool) {
	if len(key) == 0 || key[0].IsZero() {
		return Key{}, false
	}

	return key[0], true
}
