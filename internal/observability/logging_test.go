package observability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/Jack-WebDev/ahsa/internal/config"
	"github.com/Jack-WebDev/ahsa/internal/observability"
)

func TestNewLoggerHonorsConfiguredLevel(t *testing.T) {
	logger, err := observability.NewLogger(config.LoggerConfig{Level: "debug"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLoggerFallsBackToInfoOnBadLevel(t *testing.T) {
	logger, err := observability.NewLogger(config.LoggerConfig{Level: "chatty"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}
