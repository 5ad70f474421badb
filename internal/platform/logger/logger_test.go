package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loanengine/internal/platform/config"
)

func TestNew(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := New(&buf, config.LogConfig{Level: "info", Format: "json"})
		require.NoError(t, err)

		log.Info("loan decision computed", "outcome", "approved")
		log.Debug("dropped")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "loan decision computed", entry["msg"])
		assert.Equal(t, "approved", entry["outcome"])
		assert.Equal(t, "loanengine", entry["service"])
	})

	t.Run("text format honours level", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := New(&buf, config.LogConfig{Level: "debug", Format: "text"})
		require.NoError(t, err)

		log.Debug("visible")
		assert.Contains(t, buf.String(), "msg=visible")
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := New(&bytes.Buffer{}, config.LogConfig{Level: "loud"})
		assert.Error(t, err)
	})
}
