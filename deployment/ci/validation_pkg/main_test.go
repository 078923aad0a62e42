package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestValidate(t *testing.T) {
	t.Run("clean tree", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "internal", "tasks", "registry.go"), "package tasks\n")
		writeFile(t, filepath.Join(root, "internal", "tasks", "registry_test.go"), "package other\n")
		writeFile(t, filepath.Join(root, "cmd", "api", "main.go"), "package main\n")

		problems, err := validate(root)
		require.NoError(t, err)
		assert.Empty(t, problems)
	})

	t.Run("package and folder mismatch", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "pkg", "logs", "slog.go"), "package logger\n")

		problems, err := validate(root)
		require.NoError(t, err)
		require.Len(t, problems, 1)
		assert.Contains(t, problems[0], "package 'logger'")
	})

	t.Run("duplicated folder", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "internal", "cfg", "env.go"), "package cfg\n")
		writeFile(t, filepath.Join(root, "pkg", "cfg", "env.go"), "package cfg\n")

		problems, err := validate(root)
		require.NoError(t, err)
		require.Len(t, problems, 1)
		assert.Contains(t, problems[0], "folder 'cfg'")
	})
}
