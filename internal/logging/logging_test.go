package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	l, err := New(Config{Level: "loud", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestInitializeWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "predictor.log")
	require.NoError(t, Initialize(Config{Level: "debug", Format: "json", Output: path}))
	t.Cleanup(func() { global.Store(zap.NewNop()) })

	L().Debug("computed odds", zap.Int("pulls", 200))
	Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"pulls":200`)
	assert.Contains(t, string(b), "computed odds")
}
