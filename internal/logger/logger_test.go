package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitAndSetLevel(t *testing.T) {
	require.NoError(t, Init("development"))
	assert.Equal(t, zapcore.DebugLevel, Level())

	require.NoError(t, SetLevel("warn"))
	assert.Equal(t, zapcore.WarnLevel, Level())

	require.NoError(t, SetLevel(""))
	assert.Equal(t, zapcore.WarnLevel, Level())

	assert.Error(t, SetLevel("loud"))

	require.NoError(t, Init("production"))
	assert.Equal(t, zapcore.InfoLevel, Level())
}
