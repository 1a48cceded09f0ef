package services

import "sync"

// KeyedGuard admits at most one holder per key. It does not queue: a second
// TryAcquire for a held key fails immediately.
type KeyedGuard[K comparable] struct {
	mu   sync.Mutex
	held map[K]struct{}
}

func NewKeyedGuard[K comparable]() *KeyedGuard[K] {
	return &KeyedGuard[K]{held: make(map[K]struct{})}
}

// TryAcquire claims key. On success the returned release must be called
// exactly once; extra calls are no-ops.
func (g *KeyedGuard[K]) TryAcquire(key K) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.held[key]; busy {
		return nil, false
	}
	g.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.held, key)
			g.mu.Unlock()
		})
	}, true
}

// Held reports whether key is currently claimed.
func (g *KeyedGuard[K]) Held(key K) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.held[key]
	return busy
}
