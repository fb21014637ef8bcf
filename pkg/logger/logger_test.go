package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleLoggerLevels(t *testing.T) {
	t.Run("InfoAlwaysLogged", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewConsoleLogger("info")
		l.SetOutput(&buf)

		l.Info("server started", map[string]interface{}{"port": 3000})

		assert.Contains(t, buf.String(), "[INFO] server started")
		assert.Contains(t, buf.String(), "port=3000")
	})

	t.Run("DebugSuppressedAtInfoLevel", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewConsoleLogger("info")
		l.SetOutput(&buf)

		l.Debug("noisy detail")

		assert.Empty(t, buf.String())
	})

	t.Run("DebugLoggedAtDebugLevel", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewConsoleLogger("debug")
		l.SetOutput(&buf)

		l.Debug("noisy detail")

		assert.Contains(t, buf.String(), "[DEBUG] noisy detail")
	})
}

func TestConsoleLoggerError(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger("info")
	l.SetOutput(&buf)

	l.Error("request failed", errors.New("boom"), map[string]interface{}{"path": "/users"})

	out := buf.String()
	assert.Contains(t, out, "[ERROR] request failed")
	assert.Contains(t, out, "error=boom")
	assert.Contains(t, out, "path=/users")
}
