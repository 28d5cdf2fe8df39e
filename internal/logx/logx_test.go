package logx

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/hance08/teller/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesAndDebugGate(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, false)
	t.Cleanup(func() { _ = Close() })

	Info("ENGINE", "started ", 3, " consumers")
	Debug("ENGINE", "hidden")
	Warn("LEDGER", "truncated")

	out := buf.String()
	assert.Contains(t, out, "[INFO][ENGINE]: started 3 consumers")
	assert.Contains(t, out, "[WARN][LEDGER]: truncated")
	assert.NotContains(t, out, "hidden")

	SetOutput(&buf, true)
	Debug("ENGINE", "visible")
	assert.Contains(t, buf.String(), "[DEBUG][ENGINE]: visible")
}

func TestErrorfLogsAndReturns(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, false)
	t.Cleanup(func() { _ = Close() })

	err := Errorf("store %s failed", "history")
	require.EqualError(t, err, "store history failed")
	assert.Contains(t, buf.String(), "[ERROR][ERROR]: store history failed")
}

func TestSetupWritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "teller.log")
	require.NoError(t, Setup(config.LogConfig{File: path, MaxSizeMB: 1}))

	Info("TEST", "hello")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO][TEST]: hello")
}
