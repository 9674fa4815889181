package log

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for text, expected := range map[string]slog.Level{
		"trace":   LevelTrace,
		"DEBUG":   LevelDebug,
		"info":    LevelInfo,
		"warning": LevelWarn,
		"error":   LevelError,
		"crit":    LevelCrit,
	} {
		level, err := ParseLevel(text)
		require.NoError(t, err)
		assert.Equal(t, expected, level)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestModuleGating(t *testing.T) {
	original := Root()
	defer SetDefault(original)

	buffer := &bytes.Buffer{}
	require.NoError(t, InitLogger(buffer, "trace"))

	Debug(AllocatorModule, "first", "value", 3)
	DisableModule(AllocatorModule)
	Debug(AllocatorModule, "hidden")
	Trace(AllocatorModule, "hidden")
	Warn(AllocatorModule, "second")
	EnableModule(AllocatorModule)
	Trace(AllocatorModule, "third")

	output := buffer.String()
	assert.Contains(t, output, `level=debug msg=first module=allocator value=3`)
	assert.NotContains(t, output, "hidden")
	assert.Contains(t, output, `level=warn msg=second module=allocator`)
	assert.Contains(t, output, `level=trace msg=third`)
	assert.NotContains(t, output, "time=")
}

func TestLevelFiltering(t *testing.T) {
	original := Root()
	defer SetDefault(original)

	buffer := &bytes.Buffer{}
	require.NoError(t, InitLogger(buffer, "warn"))

	Info(CLIModule, "quiet")
	Error(CLIModule, "loud")

	assert.NotContains(t, buffer.String(), "quiet")
	assert.Contains(t, buffer.String(), "level=error msg=loud module=cli")
}

func TestDefaultRootDiscards(t *testing.T) {
	logger := NewLogger(DiscardHandler())
	assert.NotPanics(t, func() { logger.Info(CLIModule, "nothing") })
	assert.False(t, logger.Enabled(context.Background(), LevelCrit))
}
