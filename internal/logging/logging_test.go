package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" INFO ":  zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"Error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
		"bogus":   zapcore.WarnLevel,
		"":        zapcore.WarnLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in, zapcore.WarnLevel), in)
	}
}

func TestNewCoreTeesToFile(t *testing.T) {
	var console, file bytes.Buffer
	core := NewCore(zapcore.InfoLevel, zapcore.AddSync(&console), zapcore.AddSync(&file), false)
	log := zap.New(core)

	log.Debug("hidden")
	log.Info("pipeline built", zap.Int("stages", 2))

	assert.NotContains(t, console.String(), "hidden")
	assert.Contains(t, console.String(), "pipeline built")
	assert.Contains(t, file.String(), `"stages":2`)
}

func TestNewWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dieselxr.log")
	log := New(Options{FilePath: path, Level: "info"})
	log.Info("negotiated")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "negotiated")
}

func TestSetNilRestoresNop(t *testing.T) {
	orig := L()
	t.Cleanup(func() { Set(orig) })

	var buf bytes.Buffer
	custom := zap.New(NewCore(zapcore.DebugLevel, zapcore.AddSync(&buf), nil, false))
	Set(custom)
	assert.Same(t, custom, L())
	L().Debug("visible")
	assert.Contains(t, buf.String(), "visible")

	Set(nil)
	require.NotNil(t, L())
	assert.False(t, L().Core().Enabled(zapcore.ErrorLevel))
}
