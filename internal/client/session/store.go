// Package session holds the authenticated user of the running client and
// notifies subscribers whenever it changes.
package session

import (
	"sync"

	"github.com/dmitrijs2005/shopsphere/internal/client/models"
)

// Listener receives the new user after every change; nil means signed out.
type Listener func(u *models.User)

// Store is safe for concurrent use. Listeners run synchronously on the
// goroutine that made the change, after the lock is released.
type Store struct {
	mu        sync.RWMutex
	user      *models.User
	nextID    int
	listeners map[int]Listener
}

func NewStore() *Store {
	return &Store{listeners: make(map[int]Listener)}
}

// Set publishes u. A nil u is the same as Clear.
func (s *Store) Set(u *models.User) {
	var cp *models.User
	if u != nil {
		v := *u
		cp = &v
	}
	s.mu.Lock()
	s.user = cp
	ls := s.snapshotListeners()
	s.mu.Unlock()
	notify(ls, cp)
}

func (s *Store) Clear() {
	s.Set(nil)
}

// Current returns a copy of the session user, or nil.
func (s *Store) Current() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	v := *s.user
	return &v
}

func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Username is the session user's name, or "" when signed out.
func (s *Store) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Name
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) snapshotListeners() []Listener {
	ls := make([]Listener, 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.listeners[id]; ok {
			ls = append(ls, fn)
		}
	}
	return ls
}

func notify(ls []Listener, u *models.User) {
	for _, fn := range ls {
		if u == nil {
			fn(nil)
			continue
		}
		v := *u
		fn(&v)
	}
}
