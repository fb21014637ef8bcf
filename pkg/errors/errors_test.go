package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	t.Run("WithoutCause", func(t *testing.T) {
		err := NewNotFoundError("user")
		assert.Equal(t, "[NOT_FOUND] user not found", err.Error())
	})

	t.Run("WithCause", func(t *testing.T) {
		cause := stderrors.New("boom")
		err := NewInternalError("something failed", cause)
		assert.Contains(t, err.Error(), "something failed")
		assert.Contains(t, err.Error(), "boom")
		assert.Equal(t, cause, stderrors.Unwrap(err))
	})
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
	}{
		{NewBadRequestError("bad id"), http.StatusBadRequest},
		{NewValidationError("invalid filter"), http.StatusBadRequest},
		{NewNotFoundError("user"), http.StatusNotFound},
		{NewUnauthorizedError("login required"), http.StatusUnauthorized},
		{NewInvalidCredentialsError(), http.StatusUnauthorized},
		{NewEmptyStoreError(), http.StatusInternalServerError},
		{NewInternalError("oops", nil), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(string(tc.err.Code), func(t *testing.T) {
			assert.Equal(t, tc.status, tc.err.HTTPStatus())
		})
	}
}

func TestCodeOf(t *testing.T) {
	t.Run("StructuredError", func(t *testing.T) {
		assert.Equal(t, ErrCodeNotFound, CodeOf(NewNotFoundError("user")))
	})

	t.Run("WrappedStructuredError", func(t *testing.T) {
		wrapped := fmt.Errorf("handler: %w", NewUnauthorizedError("nope"))
		assert.Equal(t, ErrCodeUnauthorized, CodeOf(wrapped))
		assert.True(t, IsCode(wrapped, ErrCodeUnauthorized))
	})

	t.Run("PlainError", func(t *testing.T) {
		assert.Equal(t, ErrCodeInternal, CodeOf(stderrors.New("plain")))
	})
}

func TestAsError(t *testing.T) {
	t.Run("PassesThroughStructured", func(t *testing.T) {
		orig := NewValidationError("invalid filter")
		assert.Same(t, orig, AsError(orig))
	})

	t.Run("ConvertsPlainToInternal", func(t *testing.T) {
		plain := stderrors.New("plain")
		e := AsError(plain)
		require.NotNil(t, e)
		assert.Equal(t, ErrCodeInternal, e.Code)
		assert.Equal(t, plain, e.Cause)
	})
}

func TestWithViolations(t *testing.T) {
	err := NewValidationError("invalid filter").WithViolations(
		Violation{Field: "filter", Rule: "min", Message: "too short"},
		Violation{Field: "filter", Rule: "max", Message: "too long"},
	)
	require.Len(t, err.Violations, 2)
	assert.Equal(t, "min", err.Violations[0].Rule)
}
