package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_DefaultLevelIsWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	logger.Debug("hidden debug")
	logger.Info("hidden info")
	logger.Warn("shown warning")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown warning")
	assert.Contains(t, out, "WARN")
}

func TestNew_Verbose(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)

	logger.Debug("track decoded")

	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "tinyplay")
	assert.Contains(t, buf.String(), "track decoded")
}
