package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, Level(false, false))
	assert.Equal(t, zerolog.DebugLevel, Level(false, true))
	assert.Equal(t, zerolog.WarnLevel, Level(true, false))
	assert.Equal(t, zerolog.WarnLevel, Level(true, true))
}

func TestNewTagsRun(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "powerspec", false, false)
	logger.Info().Int("points", 42).Msg("reading input")

	out := buf.String()
	assert.Contains(t, out, "reading input")
	assert.Contains(t, out, "cmd=")
	assert.Contains(t, out, "powerspec")
	assert.Contains(t, out, "run=")
}

func TestQuietDropsInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "fclean", true, false)
	logger.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	logger.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}
