package directory

import (
	"sync"

	"github.com/adnanprojects/userdir/pkg/errors"
)

// Store is the process-local user directory. All access goes through a
// single mutex; concurrent creates can never collide on an id and
// concurrent deletes can never be lost.
type Store struct {
	mu     sync.RWMutex
	users  []*User
	lastID int
}

// NewStore creates an empty directory.
func NewStore() *Store {
	return &Store{}
}

// Create assigns the next id and appends the record. The id is a
// high-water mark, not the last element's id plus one: an empty store
// starts at 1 and deleted ids are never handed out again.
func (s *Store) Create(attributes map[string]interface{}) *User {
	s.mu.Lock()
	defer s.mu.Unlock()

	attrs := make(map[string]interface{}, len(attributes))
	for k, v := range attributes {
		if k == "id" {
			continue // the store owns id assignment
		}
		attrs[k] = v
	}

	s.lastID++
	u := &User{ID: s.lastID, Attributes: attrs}
	s.users = append(s.users, u)
	return u.Clone()
}

// FindByID returns the record with the given id.
func (s *Store) FindByID(id int) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, err := s.indexOf(id)
	if err != nil {
		return nil, err
	}
	return s.users[i].Clone(), nil
}

// IndexByID returns the positional index of the record with the given id.
func (s *Store) IndexByID(id int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id)
}

// indexOf must be called with the lock held.
func (s *Store) indexOf(id int) (int, error) {
	for i, u := range s.users {
		if u.ID == id {
			return i, nil
		}
	}
	return -1, errors.NewNotFoundError("user")
}

// Replace swaps out every attribute of the record, keeping only its id.
func (s *Store) Replace(id int, attributes map[string]interface{}) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.indexOf(id)
	if err != nil {
		return nil, err
	}

	attrs := make(map[string]interface{}, len(attributes))
	for k, v := range attributes {
		if k == "id" {
			continue
		}
		attrs[k] = v
	}

	s.users[i] = &User{ID: id, Attributes: attrs}
	return s.users[i].Clone(), nil
}

// Merge shallow-merges the given attributes over the existing record.
func (s *Store) Merge(id int, attributes map[string]interface{}) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.indexOf(id)
	if err != nil {
		return nil, err
	}

	merged := s.users[i].Clone()
	for k, v := range attributes {
		if k == "id" {
			continue
		}
		merged.Attributes[k] = v
	}

	s.users[i] = merged
	return merged.Clone(), nil
}

// Delete removes the record. Remaining ids are not renumbered and the
// deleted id is never reassigned.
func (s *Store) Delete(id int) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.indexOf(id)
	if err != nil {
		return nil, err
	}

	removed := s.users[i]
	s.users = append(s.users[:i], s.users[i+1:]...)
	return removed, nil
}

// List returns all records in insertion order, optionally narrowed by a
// predicate. A nil predicate matches everything.
func (s *Store) List(predicate func(*User) bool) []*User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*User, 0, len(s.users))
	for _, u := range s.users {
		if predicate == nil || predicate(u) {
			out = append(out, u.Clone())
		}
	}
	return out
}

// FindFirst returns the first record matching the predicate, in
// insertion order.
func (s *Store) FindFirst(predicate func(*User) bool) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if predicate(u) {
			return u.Clone(), nil
		}
	}
	return nil, errors.NewNotFoundError("user")
}

// Last returns the most recently inserted record. Deriving anything from
// the last element of an empty store is the classic id-assignment bug,
// so this surfaces it as a typed error instead.
func (s *Store) Last() (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.users) == 0 {
		return nil, errors.NewEmptyStoreError()
	}
	return s.users[len(s.users)-1].Clone(), nil
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
