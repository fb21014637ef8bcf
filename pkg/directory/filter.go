package directory

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/adnanprojects/userdir/pkg/errors"
)

// DefaultFilterMinLen and DefaultFilterMaxLen bound the filter field name.
const (
	DefaultFilterMinLen = 3
	DefaultFilterMaxLen = 20
)

// FilterQuery is the transient request to the filter evaluator. Presence
// flags are tracked separately from the values: an absent parameter is a
// permissive fallback, an invalid present one is a validation failure.
type FilterQuery struct {
	Field    string
	Value    string
	HasField bool
	HasValue bool
}

// Evaluator performs validated substring search over entity attributes
// named at request time.
type Evaluator struct {
	validate *validator.Validate
	minLen   int
	maxLen   int
}

// NewEvaluator creates an evaluator with the given field-name length
// bounds, falling back to the defaults when a bound is zero.
func NewEvaluator(minLen, maxLen int) *Evaluator {
	if minLen <= 0 {
		minLen = DefaultFilterMinLen
	}
	if maxLen <= 0 {
		maxLen = DefaultFilterMaxLen
	}
	return &Evaluator{
		validate: validator.New(),
		minLen:   minLen,
		maxLen:   maxLen,
	}
}

// Evaluate applies the filter query to the store.
//
// If the field name is present it must pass validation; a failure yields
// a typed validation error carrying the violated rules, never a panic.
// If either parameter is absent the full list is returned unfiltered.
// Records lacking the named attribute are non-matches, not errors.
func (e *Evaluator) Evaluate(store *Store, q FilterQuery) ([]*User, error) {
	if q.HasField {
		if violations := e.checkField(q.Field); len(violations) > 0 {
			return nil, errors.NewValidationError("invalid filter parameter").
				WithViolations(violations...)
		}
	}

	if !q.HasField || !q.HasValue {
		return store.List(nil), nil
	}

	return store.List(func(u *User) bool {
		s, ok := u.AttributeString(q.Field)
		return ok && strings.Contains(s, q.Value)
	}), nil
}

// checkField validates the field name and translates validator tags into
// client-facing violations.
func (e *Evaluator) checkField(field string) []errors.Violation {
	rules := fmt.Sprintf("required,min=%d,max=%d", e.minLen, e.maxLen)
	err := e.validate.Var(field, rules)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []errors.Violation{{
			Field:   "filter",
			Rule:    "invalid",
			Message: "filter must be a valid string",
		}}
	}

	violations := make([]errors.Violation, 0, len(verrs))
	for _, fe := range verrs {
		violations = append(violations, errors.Violation{
			Field:   "filter",
			Rule:    fe.Tag(),
			Message: e.messageFor(fe.Tag()),
		})
	}
	return violations
}

func (e *Evaluator) messageFor(tag string) string {
	switch tag {
	case "required":
		return "filter must not be empty"
	case "min":
		return fmt.Sprintf("filter must be at least %d characters", e.minLen)
	case "max":
		return fmt.Sprintf("filter must be at most %d characters", e.maxLen)
	default:
		return "filter is invalid"
	}
}
