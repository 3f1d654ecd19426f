package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
}

func TestNew_ConsoleLogger(t *testing.T) {
	log, err := New(DefaultConfig())

	require.NoError(t, err)
	require.NotNil(t, log)
	log.Info("console logger works")
}

func TestNew_JSONLogger(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = "json"

	log, err := New(cfg)

	require.NoError(t, err)
	log.Info("json logger works")
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "erpcli.log")
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.Output = path

	log, err := New(cfg)

	require.NoError(t, err)
	log.Info("written to file")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("info"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("WARNING"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.FatalLevel, parseLevel("fatal"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("nonsense"))
}
