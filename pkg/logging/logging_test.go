package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWritesToEveryWriter(t *testing.T) {
	var a, b bytes.Buffer
	logger := New(slog.LevelInfo, &a, &b)

	logger.Debug("hidden")
	logger.Info("add_row", "height", 3)

	for _, buf := range []*bytes.Buffer{&a, &b} {
		require.NotContains(t, buf.String(), "hidden")
		require.Contains(t, buf.String(), "msg=add_row")
		require.Contains(t, buf.String(), "height=3")
	}
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, level)

	level, err = ParseLevel("warn")
	require.NoError(t, err)
	require.Equal(t, slog.LevelWarn, level)

	_, err = ParseLevel("loud")
	require.Error(t, err)
}
