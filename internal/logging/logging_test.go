package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/mdouchement/tiffcodec/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_ContextAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Logger(&buf, true, slog.LevelInfo)

	ctx := logging.AppendCtx(context.Background(), slog.String("name", "tiffstrip"))
	ctx = logging.AppendCtx(ctx, slog.Int("strip", 3))
	logger.InfoContext(ctx, "decoded", "bytes", 42)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "decoded", record["msg"])
	assert.Equal(t, "tiffstrip", record["name"])
	assert.Equal(t, 3.0, record["strip"])
	assert.Equal(t, 42.0, record["bytes"])
}

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Logger(&buf, false, slog.LevelWarn)

	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	logger.With("codec", "LZW").Warn("shown")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "codec=LZW")
}

func TestAppendCtx_DoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Logger(&buf, false, slog.LevelInfo)

	parent := logging.AppendCtx(context.Background(), slog.String("a", "1"))
	_ = logging.AppendCtx(parent, slog.String("b", "2"))

	logger.InfoContext(parent, "parent")
	assert.Contains(t, buf.String(), "a=1")
	assert.NotContains(t, buf.String(), "b=2")
}

func TestFileWriter(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "tiffstrip.log")

	w := logging.FileWriter(filename)
	logging.Logger(w, false, slog.LevelInfo).Info("rotated")
	require.NoError(t, w.Close())

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=rotated")
}
