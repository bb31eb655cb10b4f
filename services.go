package tinydi

import "sync"

var _ Locator = new(Services)

// Services is a flat key to value store.
// A value stored under a type key can also be read by the type name
// and a value stored under a name by a type of that name.
// Services handed to factories fall back to the Scope that invoked them.
type Services struct {
	store *store
	next  Locator
}

type store struct {
	values map[keyID]any
	names  map[string]keyID
	mu     sync.RWMutex
}

func NewServices() *Services {
	return &Services{
		store: &store{
			values: make(map[keyID]any),
			names:  make(map[string]keyID),
		},
	}
}

// with returns a view sharing the same values that falls back to next.
func (s *Services) with(next Locator) *Services {
	return &Services{store: s.store, next: next}
}

// Set stores value under key replacing previous value.
func (s *Services) Set(key Key, value any) *Services {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	id := key.id()
	s.store.values[id] = value

	if name := key.canonical(); name != "" {
		if _, ok := s.store.names[name]; !ok {
			s.store.names[name] = id
		}
	}

	return s
}

func (s *Services) lookup(key Key) (any, bool) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	if v, ok := s.store.values[key.id()]; ok {
		return v, true
	}

	if key.IsType() {
		v, ok := s.store.values[Name(key.Name()).id()]
		return v, ok
	}

	if id, ok := s.store.names[key.canonical()]; ok {
		v, ok := s.store.values[id]
		return v, ok
	}

	return nil, false
}

// Get returns value stored under key.
// If nothing is stored it asks the Scope the store is bound to, if any.
func (s *Services) Get(key Key) (any, error) {
	if v, ok := s.lookup(key); ok {
		return v, nil
	}

	if s.next != nil {
		return s.next.Get(key)
	}

	return nil, nil
}

// Contains reports whether a value is stored under key.
func (s *Services) Contains(key Key) bool {
	_, ok := s.lookup(key)
	return ok
}
