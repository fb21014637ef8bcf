// Package auth validates credentials against the user directory and
// binds user identities to sessions.
package auth

import (
	"github.com/adnanprojects/userdir/pkg/directory"
	"github.com/adnanprojects/userdir/pkg/errors"
	"github.com/adnanprojects/userdir/pkg/session"
)

// Attribute names the gate reads off directory records.
const (
	UsernameAttribute = "username"
	PasswordAttribute = "password"
)

// Gate checks credentials and manages the session's auth binding.
type Gate struct {
	store *directory.Store
}

// NewGate creates an auth gate over the given directory.
func NewGate(store *directory.Store) *Gate {
	return &Gate{store: store}
}

// Login matches the first directory record with the given username and
// compares passwords with strict equality. Success binds the user to the
// session; any failure yields the same invalid-credentials error, so the
// response never reveals whether the username exists.
func (g *Gate) Login(sess *session.Session, username, password string) (*directory.User, error) {
	user, err := g.store.FindFirst(func(u *directory.User) bool {
		v, ok := u.Attribute(UsernameAttribute)
		name, isString := v.(string)
		return ok && isString && name == username
	})
	if err != nil {
		return nil, errors.NewInvalidCredentialsError()
	}

	stored, ok := user.Attribute(PasswordAttribute)
	storedPassword, isString := stored.(string)
	if !ok || !isString || storedPassword != password {
		return nil, errors.NewInvalidCredentialsError()
	}

	sess.Bind(user.ID)
	return user, nil
}

// Status returns the entity bound to the session, if any. A binding to a
// since-deleted user is stale: it is cleared and treated as anonymous.
func (g *Gate) Status(sess *session.Session) (*directory.User, error) {
	if !sess.Authenticated() {
		return nil, errors.NewUnauthorizedError("not authenticated")
	}

	user, err := g.store.FindByID(sess.UserID())
	if err != nil {
		sess.Unbind()
		return nil, errors.NewUnauthorizedError("not authenticated")
	}
	return user, nil
}

// Logout drops the session's auth binding.
func (g *Gate) Logout(sess *session.Session) {
	sess.Unbind()
}
