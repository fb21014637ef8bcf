package session

import (
	"github.com/adnanprojects/userdir/pkg/errors"
)

// AddItem appends an item to the session's cart. Only an authenticated
// session owns a cart.
func (s *Session) AddItem(item interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == 0 {
		return errors.NewUnauthorizedError("login required to use the cart")
	}

	s.cart = append(s.cart, item)
	return nil
}

// Items returns a copy of the cart in insertion order. The result is
// empty, never nil, when nothing has been added yet.
func (s *Session) Items() ([]interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userID == 0 {
		return nil, errors.NewUnauthorizedError("login required to use the cart")
	}

	items := make([]interface{}, len(s.cart))
	copy(items, s.cart)
	return items, nil
}
