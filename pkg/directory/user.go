// Package directory implements the in-memory user directory: an ordered,
// mutex-guarded collection of user records with dynamic attributes, plus the
// attribute-filter evaluator used by listing requests.
package directory

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/adnanprojects/userdir/pkg/errors"
)

// User is a directory record: a unique integer id plus arbitrary named
// attributes. Ids are assigned monotonically and never reused.
type User struct {
	ID         int
	Attributes map[string]interface{}
}

// Attribute returns the named attribute. Missing attributes are reported
// via ok rather than a panic, so attacker-controlled field names stay safe.
func (u *User) Attribute(name string) (interface{}, bool) {
	if u.Attributes == nil {
		return nil, false
	}
	v, ok := u.Attributes[name]
	return v, ok
}

// AttributeString returns the string form of the named attribute.
func (u *User) AttributeString(name string) (string, bool) {
	v, ok := u.Attribute(name)
	if !ok {
		return "", false
	}
	if s, isString := v.(string); isString {
		return s, true
	}
	return fmt.Sprintf("%v", v), true
}

// Clone returns a deep-enough copy for handing records across the store
// boundary without sharing the attribute map.
func (u *User) Clone() *User {
	attrs := make(map[string]interface{}, len(u.Attributes))
	for k, v := range u.Attributes {
		attrs[k] = v
	}
	return &User{ID: u.ID, Attributes: attrs}
}

// MarshalJSON renders the record flat, with the id alongside the attributes.
func (u *User) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, len(u.Attributes)+1)
	for k, v := range u.Attributes {
		flat[k] = v
	}
	flat["id"] = u.ID
	return json.Marshal(flat)
}

// UnmarshalJSON accepts the flat wire form produced by MarshalJSON.
func (u *User) UnmarshalJSON(data []byte) error {
	var flat map[string]interface{}
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	if raw, ok := flat["id"]; ok {
		num, isNum := raw.(float64)
		if !isNum {
			return fmt.Errorf("directory: id must be a number, got %T", raw)
		}
		u.ID = int(num)
		delete(flat, "id")
	}
	u.Attributes = flat
	return nil
}

// ParseID validates an externally supplied id. Anything that is not a
// well-formed integer is a bad request, distinct from a missing record.
func ParseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewBadRequestError(fmt.Sprintf("invalid id %q", raw))
	}
	return id, nil
}
