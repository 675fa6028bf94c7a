package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "missing.toml")
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--config", cfg, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestRender_PlainOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	content := "[ 10:00:00 | 1 ]\tDUIN\t(main.cpp:4): Info: boot\n{\"level\":\"error\"}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	out, err := execute(t, "render", "--plain", path)
	require.NoError(t, err)
	assert.Equal(t, "[ 10:00:00 | 1 ]    DUIN    (main.cpp:4): Info: boot\n{\"level\":\"error\"}\n", out)
}

func TestRender_FormatJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	require.NoError(t, os.WriteFile(path, []byte("payload {\"a\":1}\n"), 0o644))

	out, err := execute(t, "render", "--plain", "--json", path)
	require.NoError(t, err)
	assert.Equal(t, "payload {\n  \"a\": 1\n}\n", out)
}

func TestRender_LastLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0o644))

	out, err := execute(t, "render", "--plain", "-n", "2", path)
	require.NoError(t, err)
	assert.Equal(t, "two\nthree\n", out)
}

func TestRender_MissingFile(t *testing.T) {
	_, err := execute(t, "render", filepath.Join(t.TempDir(), "gone.log"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFiles_ListsMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.log"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.txt"), []byte("xy"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o644))

	out, err := execute(t, "files", dir)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "a.log"))
	assert.Contains(t, out, filepath.Join(dir, "sub", "b.txt"))
	assert.NotContains(t, out, "notes.md")
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)
}

func TestFiles_PatternFlag(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.log"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("x"), 0o644))

	out, err := execute(t, "files", "--pattern", "*.txt", dir)
	require.NoError(t, err)
	assert.NotContains(t, out, "a.log")
	assert.Contains(t, out, "b.txt")
}

func TestRoot_RejectsArgs(t *testing.T) {
	_, err := execute(t, "stray")
	assert.Error(t, err)
}
