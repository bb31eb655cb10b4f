package tinydi

import "sync"

var _ Locator = new(Provider)

func newProvider(r *registry) *Provider {
	p := &Provider{
		registry: r,
		services: NewServices(),
	}
	p.rootServices = p.services.with(p)

	return p
}

// Provider resolves services registered in the Container it was built from.
// It is safe for concurrent use.
type Provider struct {
	registry     *registry
	services     *Services
	// rootServices is the view handed to Singleton factories. It resolves through
	// the Provider, never through the Scope that triggered construction.
	rootServices *Services
	sMu          sync.Map
	singletons   sync.Map
}

// Get resolves service registered for key within a new Scope
// that is closed when Get returns.
// Returns (nil, nil) if there is no such service.
func (p *Provider) Get(key Key) (any, error) {
	s := p.CreateScope()
	defer s.Close()

	return s.Get(key)
}

// Contains reports whether service can be resolved for key.
func (p *Provider) Contains(key Key) bool {
	if _, ok := p.registry.lookup(key); ok {
		return true
	}

	return p.services.Contains(key)
}

// Services returns ambient values store.
// Values stored there are returned for keys with no registered service
// and are visible to factories.
func (p *Provider) Services() *Services {
	return p.services
}

// CreateScope returns new Scope. Scope should be closed when no longer needed.
func (p *Provider) CreateScope() *Scope {
	s := &Scope{
		provider:  p,
		instances: make(map[int]any),
	}
	s.services = p.services.with(s)

	return s
}

// InScope calls fn with a new Scope and closes it once fn returns or panics.
func (p *Provider) InScope(fn func(*Scope) error) error {
	s := p.CreateScope()
	defer s.Close()

	return fn(s)
}

func (p *Provider) get(s *Scope, key Key) (any, error) {
	d, ok := p.registry.lookup(key)
	if !ok {
		v, _ := p.services.lookup(key)
		return v, nil
	}

	return p.resolve(d, s, key)
}

func (p *Provider) resolve(d *descriptor, s *Scope, activating Key) (any, error) {
	switch d.lifetime {
	case Singleton:
		return p.getSingleton(d, s, activating)
	case Scoped:
		return s.getScoped(d, activating)
	default:
		return p.build(d, s, activating)
	}
}

func (p *Provider) build(d *descriptor, s *Scope, activating Key) (any, error) {
	switch d.kind {
	case instanceKind:
		return d.instance, nil
	case factoryKind:
		if d.lifetime == Singleton {
			return d.factory.call(p.rootServices, activating)
		}

		return d.factory.call(s.services, activating)
	}

	args := make([]any, len(d.plan))
	owner := d.owner()

	for i, dep := range d.plan {
		v, err := p.resolve(dep, s, owner)
		if err != nil {
			return nil, err
		}

		args[i] = v
	}

	return d.ctor.New(args...)
}

func (p *Provider) getSingleton(d *descriptor, s *Scope, activating Key) (any, error) {
	if d.kind == instanceKind {
		return d.instance, nil
	}

	if servicePtr, ok := p.singletons.Load(d.id); ok {
		return *servicePtr.(*any), nil
	}

	mu, _ := p.sMu.LoadOrStore(d.id, new(sync.Mutex))

	mu.(*sync.Mutex).Lock()
	defer mu.(*sync.Mutex).Unlock()

	servicePtr, ok := p.singletons.Load(d.id)
	if ok {
		return *servicePtr.(*any), nil
	}

	service, err := p.build(d, s, activating)
	if err != nil {
		return nil, err
	}

	p.singletons.Store(d.id, &service)

	return service, nil
}
