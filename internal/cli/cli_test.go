package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodKeymap = `
name = "editing"
scopes = ["editor"]

[[bindings]]
keys = "ctrl+s,cmd+s"
action = "log"
description = "Save"

[[bindings]]
keys = "arrowdown"
element = "list"
action = "element.focus"
`

const badKeymap = `
name = "broken"

[[bindings]]
keys = "ctrl+"
action = "log"

[[bindings]]
keys = "f5"
action = "does.not.exist"
scopes = ["*"]
`

func writeKeymap(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(BuildInfo{Version: "1.2.3", Commit: "abc123"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "hotkeys 1.2.3 (commit abc123, built unknown)\n", out)
}

func TestCheck_Valid(t *testing.T) {
	path := writeKeymap(t, "editing.toml", goodKeymap)

	out, err := execute(t, "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, `keymap "editing", 2 bindings`)
	assert.Contains(t, out, "ctrl+s,meta+s")
	assert.Contains(t, out, "[editor] @list")
	assert.Contains(t, out, "1 files, 2 bindings, 0 warnings, 0 errors")
}

func TestCheck_Warnings(t *testing.T) {
	path := writeKeymap(t, "broken.toml", badKeymap)

	out, err := execute(t, "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "can never match")
	assert.Contains(t, out, "no scopes declared")
	assert.Contains(t, out, `unknown action: "does.not.exist"`)
	assert.Contains(t, out, "3 warnings")

	_, err = execute(t, "check", "--strict", path)
	assert.ErrorIs(t, err, ErrCheckFailed)
}

func TestCheck_LoadError(t *testing.T) {
	good := writeKeymap(t, "editing.toml", goodKeymap)
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	out, err := execute(t, "check", good, missing)
	assert.ErrorIs(t, err, ErrCheckFailed)
	assert.Contains(t, out, missing+": error:")
	assert.Contains(t, out, "2 files, 2 bindings, 0 warnings, 1 errors")
}

func TestCheck_RequiresArgs(t *testing.T) {
	_, err := execute(t, "check")
	assert.Error(t, err)
}

func TestList_GroupsByCategory(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Application\n")
	assert.Contains(t, out, "Toggle sidebar")
	assert.Contains(t, out, "ctrl+q")
}

func TestList_FilesOnly(t *testing.T) {
	path := writeKeymap(t, "editing.toml", goodKeymap)

	out, err := execute(t, "list", "--no-default", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Other\n")
	assert.Contains(t, out, "Save")
	assert.NotContains(t, out, "Toggle sidebar")
}

func TestList_Directory(t *testing.T) {
	path := writeKeymap(t, "editing.toml", goodKeymap)
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "notes.txt"), []byte("ignored"), 0o644))

	out, err := execute(t, "list", "--no-default", filepath.Dir(path))
	require.NoError(t, err)
	assert.Contains(t, out, "Save")
	assert.Contains(t, out, "element.focus")
}

func TestList_DirectoryWithBrokenFile(t *testing.T) {
	path := writeKeymap(t, "broken.yaml", "bindings: [")

	_, err := execute(t, "list", filepath.Dir(path))
	assert.Error(t, err)
}

func TestList_Filter(t *testing.T) {
	out, err := execute(t, "list", "--filter", "sidebar")
	require.NoError(t, err)
	assert.Contains(t, out, "ctrl+b scope.toggle Toggle sidebar")
	assert.NotContains(t, out, "app.quit")

	out, err = execute(t, "list", "-f", "c", "-n", "1")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))

	out, err = execute(t, "list", "-f", "zzzz")
	require.NoError(t, err)
	assert.Contains(t, out, `no bindings match "zzzz"`)
}

func TestList_Highlight(t *testing.T) {
	out, err := execute(t, "list", "--filter", "quit", "--highlight")
	require.NoError(t, err)
	assert.Contains(t, out, ansiBold+"q"+ansiReset)
}

func TestList_BadFile(t *testing.T) {
	_, err := execute(t, "list", filepath.Join(t.TempDir(), "keys.ini"))
	assert.Error(t, err)
}
