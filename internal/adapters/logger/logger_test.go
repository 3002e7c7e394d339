package logger_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bob-agent/internal/adapters/logger"
	"go.trai.ch/bob-agent/internal/core/domain"
)

// captureStderr captures output written to os.Stderr during the execution of fn.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()

	original := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w
	defer func() { os.Stderr = original }()

	done := make(chan string, 1)
	go func() {
		buf, _ := io.ReadAll(r)
		done <- string(buf)
	}()

	fn()

	require.NoError(t, w.Close())
	output := <-done
	require.NoError(t, r.Close())
	return output
}

func TestNew_WritesToStderr(t *testing.T) {
	output := captureStderr(t, func() {
		logger.New().Info("agent started")
	})

	assert.Contains(t, output, "agent started")
	assert.Contains(t, output, "INFO")
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf, domain.LogLevelInfo)

	lg.Info("preparing job")
	lg.Warn("material is stale")
	lg.Error(errors.New("permission denied"))

	out := buf.String()
	assert.Contains(t, out, "level=INFO msg=\"preparing job\"")
	assert.Contains(t, out, "level=WARN msg=\"material is stale\"")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "permission denied")
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf, domain.LogLevelWarn)

	lg.Info("hidden")
	lg.SetLevel(domain.LogLevelDebug)
	lg.Info("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

func TestLogger_SetOutput(t *testing.T) {
	var first, second bytes.Buffer
	lg := logger.NewWithWriter(&first, domain.LogLevelInfo)

	lg.Info("one")
	lg.SetOutput(&second)
	lg.Info("two")

	assert.Contains(t, first.String(), "one")
	assert.NotContains(t, first.String(), "two")
	assert.Contains(t, second.String(), "two")
}

func TestLogger_WithJob(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf, domain.LogLevelInfo)

	jobLogger := lg.WithJob(domain.JobIdentifier{Pipeline: "api", Counter: 3, Stage: "test", Job: "unit"})
	jobLogger.Info("running")
	lg.Info("idle")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "job=api/3/test/unit")
	assert.NotContains(t, lines[1], "job=")
}
