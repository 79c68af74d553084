package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", "production")

	log.Info("dropped")
	require.Zero(t, buf.Len())

	log.Warn("kept")
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "parish", rec["service"])
	assert.Equal(t, "production", rec["env"])
}

func TestNew_UnknownLevelMeansInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "verbose", "dev")

	log.Debug("dropped")
	assert.Zero(t, buf.Len())
	log.Info("kept")
	assert.Contains(t, buf.String(), `"kept"`)
}
