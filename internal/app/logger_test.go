package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger_LevelFiltersRecords(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger("warn", "text", &buf)

	logger.Info("below threshold")
	logger.Warn("at threshold")

	assert.NotContains(t, buf.String(), "below threshold")
	assert.Contains(t, buf.String(), "at threshold")
}

func TestNewLogger_JSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger("info", "json", &buf)

	logger.Info("hello")

	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestNewLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger("loud", "text", &buf)

	logger.Debug("too quiet")
	logger.Info("audible")

	assert.NotContains(t, buf.String(), "too quiet")
	assert.Contains(t, buf.String(), "audible")
}
