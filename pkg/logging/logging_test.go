package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestSetup(t *testing.T) {
	logger, err := Setup(true, "ezcode", "test")
	require.NoError(t, err)
	assert.Same(t, logger, Logger)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = Setup(false, "ezcode", "test")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}
