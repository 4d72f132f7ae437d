package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

func TestFileModeSet(t *testing.T) {
	var m FileMode
	require.NoError(t, m.Set(""))
	assert.Equal(t, FileModeAppend, m)
	require.NoError(t, m.Set("rotate"))
	assert.Equal(t, FileModeRotate, m)
	assert.Error(t, m.Set("bogus"))
}

func TestConfigYAML(t *testing.T) {
	var conf Config
	err := yaml.Unmarshal([]byte("path: stdout\nmode: truncate\nlevel: debug\ndevmode: true\n"), &conf)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Path:    "stdout",
		Mode:    FileModeTruncate,
		Level:   zapcore.DebugLevel,
		DevMode: true,
	}, conf)
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zcol.log")
	log, err := New(Config{Path: path, Mode: FileModeTruncate, Level: zapcore.InfoLevel})
	require.NoError(t, err)
	log.Debug("dropped")
	log.Info("kept", zap.Int("rows", 3))
	require.NoError(t, log.Sync())
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"kept"`)
	assert.Contains(t, string(b), `"rows":3`)
	assert.NotContains(t, string(b), "dropped")
}
