package logging_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestNewWriter_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	l := logging.NewWriter(&buf, slog.LevelInfo)
	l.Info("boom", "error", errors.New("bad"))
	l.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "err=bad")
	assert.NotContains(t, out, "error=")
	assert.NotContains(t, out, "hidden")
}

func TestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.Level(true))
	assert.Equal(t, slog.LevelInfo, logging.Level(false))
	logging.NewNop().Error("dropped")
}
