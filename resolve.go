package tinydi

type descriptorKind int

const (
	instanceKind descriptorKind = iota
	factoryKind
	concreteKind
	selfKind
)

func (k descriptorKind) constructible() bool {
	return k == concreteKind || k == selfKind
}

type descriptor struct {
	instance any
	factory  *factory
	ctor     *Constructor
	key      Key
	// plan holds resolved parameters of a constructible, filled by Build.
	plan     []*descriptor
	id       int
	lifetime Lifetime
	kind     descriptorKind
}

// owner is the key passed as activating key to the parameters of a constructible.
func (d *descriptor) owner() Key {
	if d.ctor != nil {
		return KeyOf(d.ctor.Type)
	}

	return d.key
}

// registry indexes descriptors by key, by canonical name and by alias.
type registry struct {
	byKey       map[keyID]*descriptor
	names       map[string]*descriptor
	aliases     aliases
	descriptors []*descriptor
}

func newRegistry() *registry {
	return &registry{
		byKey:   make(map[keyID]*descriptor),
		names:   make(map[string]*descriptor),
		aliases: make(aliases),
	}
}

func (r *registry) add(d *descriptor) error {
	id := d.key.id()
	if _, ok := r.byKey[id]; ok {
		return newOverridingServiceError(d.key)
	}

	d.id = len(r.descriptors)
	r.descriptors = append(r.descriptors, d)
	r.byKey[id] = d

	// first registered service wins the name
	if name := d.key.canonical(); name != "" {
		if _, ok := r.names[name]; !ok {
			r.names[name] = d
		}
	}

	return nil
}

// clone copies descriptors so that later registrations and plans
// do not leak between a Container and Providers built from it.
func (r *registry) clone() *registry {
	result := newRegistry()
	result.aliases = r.aliases.clone()

	for _, d := range r.descriptors {
		c := *d
		c.plan = nil

		_ = result.add(&c)
	}

	return result
}

// exact returns the descriptor registered under exactly this key.
func (r *registry) exact(key Key) (*descriptor, bool) {
	d, ok := r.byKey[key.id()]
	return d, ok
}

// lookup finds a descriptor by key, then by alias, then by canonical name.
// Type keys skip aliases and match only name keys.
func (r *registry) lookup(key Key) (*descriptor, bool) {
	if key.IsZero() {
		return nil, false
	}

	if d, ok := r.exact(key); ok {
		return d, true
	}

	if !key.IsType() {
		if d, ok := r.fromAlias(key.name, true); ok {
			return d, true
		}

		if d, ok := r.fromAlias(key.name, false); ok {
			return d, true
		}

		d, ok := r.names[key.canonical()]
		return d, ok
	}

	// a type key only falls back to a service registered under its name,
	// never to another type sharing the short name
	d, ok := r.byKey[Name(key.Name()).id()]
	return d, ok
}

func (r *registry) fromAlias(name string, exact bool) (*descriptor, bool) {
	entry, ok := r.aliases.get(name)
	if !ok {
		return nil, false
	}

	for _, key := range entry.candidates(exact) {
		if d, ok := r.exact(key); ok {
			return d, true
		}

		if d, ok := r.names[key.canonical()]; ok && !key.IsType() {
			return d, true
		}
	}

	return nil, false
}

// resolveParam picks the service for a constructor parameter:
// exact alias, declared type, appended aliases, then name convention.
func (r *registry) resolveParam(owner *descriptor, param Param) (*descriptor, error) {
	if param.Union {
		return nil, newUnsupportedUnionTypeError(owner.key, param)
	}

	if d, ok := r.fromAlias(param.Name, true); ok {
		return d, nil
	}

	if !param.Key.IsZero() {
		if d, ok := r.exact(param.Key); ok {
			return d, nil
		}
	}

	if d, ok := r.fromAlias(param.Name, false); ok {
		return d, nil
	}

	if d, ok := r.names[Canonicalize(param.Name)]; ok {
		return d, nil
	}

	return nil, newMissingDependencyError(owner.key, param)
}
