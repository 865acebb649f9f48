package logger

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *Logger {
	t.Helper()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(cwd) })
	require.NoError(t, os.Chdir(t.TempDir()))

	l, err := NewLogger("test-session")
	require.NoError(t, err)
	return l
}

func readLog(t *testing.T, l *Logger) string {
	t.Helper()
	data, err := os.ReadFile(l.GetLogPath())
	require.NoError(t, err)
	return string(data)
}

func TestLoggerWritesLeveledLines(t *testing.T) {
	l := newTestLogger(t)

	l.Info("capital %d", 10000)
	l.Warning("drawdown rising")
	l.Error("persist failed")
	l.Trade("fill settled")
	l.Status("session running")

	content := readLog(t, l)
	assert.Contains(t, content, "GOVERNOR SESSION STARTED")
	assert.Contains(t, content, "[INFO] capital 10000")
	assert.Contains(t, content, "[WARN] drawdown rising")
	assert.Contains(t, content, "[ERROR] persist failed")
	assert.Contains(t, content, "[TRADE] fill settled")
	assert.Contains(t, content, "[STATUS] session running")

	require.NoError(t, l.Close())
	assert.Contains(t, readLog(t, l), "GOVERNOR SESSION ENDED")
}

func TestLoggerVerdicts(t *testing.T) {
	l := newTestLogger(t)
	defer l.Close()

	l.LogVerdict("scalp", true, "", "", 1.5, 5)
	l.LogVerdict("session", false, "cooldown", "Cooldown active", 0, 0)

	content := readLog(t, l)
	assert.Contains(t, content, "Proposal approved - strategy=scalp risk=1.50% leverage=5.0x")
	assert.Contains(t, content, `Proposal rejected - strategy=session stage=cooldown reason="Cooldown active"`)
}

func TestLoggerRebalance(t *testing.T) {
	l := newTestLogger(t)
	defer l.Close()

	l.LogRebalance(map[string]float64{"scalp": 4500}, 1000)

	content := readLog(t, l)
	assert.Contains(t, content, "Capital rebalanced - reserve=$1000.00")
	assert.Contains(t, content, "scalp=$4500.00")
}

func TestLoggerLogError(t *testing.T) {
	l := newTestLogger(t)
	defer l.Close()

	l.LogError("state persist", fmt.Errorf("disk full"))
	assert.Contains(t, readLog(t, l), "[ERROR] state persist: disk full")
}

func TestLoggerAppendsAcrossSessions(t *testing.T) {
	l := newTestLogger(t)
	l.Info("first")
	require.NoError(t, l.Close())

	second, err := NewLogger("test-session")
	require.NoError(t, err)
	second.Info("second")
	require.NoError(t, second.Close())

	content := readLog(t, second)
	assert.Contains(t, content, "first")
	assert.Contains(t, content, "second")
	assert.Equal(t, 2, strings.Count(content, "GOVERNOR SESSION STARTED"))
}
