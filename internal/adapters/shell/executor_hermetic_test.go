package shell_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bob-agent/internal/core/domain"
)

func TestExecutor_Execute_ResolvesFromJobPath(t *testing.T) {
	toolsDir := t.TempDir()

	cmdName := "bob-test-tool"
	//nolint:gosec // Test requires executable file
	err := os.WriteFile(filepath.Join(toolsDir, cmdName), []byte("#!/bin/sh\necho success\n"), 0o700)
	require.NoError(t, err)

	task := &domain.Task{
		Name:    domain.NewInternedString("tool"),
		Command: []string{cmdName},
	}

	var stdout bytes.Buffer
	err = newExecutor(t).Execute(context.Background(), task, []string{"PATH=" + toolsDir}, &stdout, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "success\n", stdout.String())
}
