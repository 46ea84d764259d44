package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitLoggerLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	require.NoError(t, InitLogger("development"))

	assert.False(t, GetLogger().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, GetLogger().Core().Enabled(zapcore.ErrorLevel))
}

func TestInitLoggerRejectsUnknownLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")

	assert.Error(t, InitLogger("development"))
}
