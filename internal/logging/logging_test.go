package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_JSON(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	var buf bytes.Buffer
	require.NoError(t, Setup("warn", "json", &buf))

	log.Info().Msg("hidden")
	log.Warn().Str("instrument", "ACME").Msg("shown")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["message"])
	assert.Equal(t, "ACME", line["instrument"])
	assert.Equal(t, "warn", line["level"])
}

func TestSetup_BadLevel(t *testing.T) {
	assert.Error(t, Setup("loud", "console", nil))
}
