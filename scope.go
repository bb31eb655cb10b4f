package tinydi

import "sync"

var _ Locator = new(Scope)

// Scope shares Scoped services between resolutions made through it.
// Scope is not meant to be used from several goroutines at once.
type Scope struct {
	provider  *Provider
	services  *Services
	instances map[int]any
	mu        sync.Mutex
}

// Get resolves service registered for key within s.
// Returns (nil, nil) if there is no such service.
func (s *Scope) Get(key Key) (any, error) {
	s.mu.Lock()
	closed := s.instances == nil
	s.mu.Unlock()

	if closed {
		return nil, ErrScopeClosed
	}

	return s.provider.get(s, key)
}

// Close releases Scoped services. Closing closed Scope has no effect.
func (s *Scope) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.instances = nil

	return nil
}

func (s *Scope) getScoped(d *descriptor, activating Key) (any, error) {
	s.mu.Lock()
	service, ok := s.instances[d.id]
	s.mu.Unlock()

	if ok {
		return service, nil
	}

	service, err := s.provider.build(d, s, activating)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.instances != nil {
		s.instances[d.id] = service
	}

	return service, nil
}
