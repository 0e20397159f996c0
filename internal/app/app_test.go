package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/hotkeys/internal/config"
	"github.com/dshills/hotkeys/internal/input"
	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/input/keymap"
)

const scriptKeymap = `
name = "scripts"
scopes = ["*"]

[[bindings]]
keys = "ctrl+m"
action = "lua"
description = "Open modal from Lua"
args = { script = "hotkeys.enable_scope('modal')" }

[[bindings]]
keys = "arrowdown"
element = "list"
action = "log"
args = { message = "next row" }

[[bindings]]
keys = "f2"
action = "element.focus"
args = { element = "list" }

[[bindings]]
keys = "f3"
action = "no.such.action"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestApp(t *testing.T, settings string, opts Options) *Application {
	t.Helper()
	opts.ConfigPath = writeFile(t, t.TempDir(), "hotkeys.toml", settings)
	opts.LogOutput = io.Discard

	app, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(app.Close)
	return app
}

// tap presses ids in order and releases everything.
func tap(app *Application, ids ...string) {
	keys := app.Session().Keys()
	for _, id := range ids {
		keys.Press(id, nil)
	}
	keys.ReleaseAll()
}

func TestNew_DefaultKeymap(t *testing.T) {
	app := newTestApp(t, "", Options{})

	assert.Greater(t, app.Session().Registry().Len(), 0)
	assert.False(t, app.Session().Scopes().IsActive(keymap.ScopeSidebar))

	tap(app, key.ControlLeft, "b")
	assert.True(t, app.Session().Scopes().IsActive(keymap.ScopeSidebar))

	history := app.History()
	require.Len(t, history, 1)
	assert.Equal(t, "scope.toggle", history[0].Action)
	assert.Equal(t, "default", history[0].Source)
}

func TestNew_SettingsApplied(t *testing.T) {
	app := newTestApp(t, `
[scopes]
initial = ["editor"]

[element]
fire_mode = "once"
`, Options{NoDefaultKeymap: true})

	assert.Equal(t, 0, app.Session().Registry().Len())
	assert.Equal(t, []string{"editor"}, app.Session().Scopes().Active())
	assert.Equal(t, input.FireOncePerKeyDown, app.Session().Element("x").FireMode())
	assert.Equal(t, "once", app.Settings().Element.FireMode)
}

func TestNew_InvalidSettings(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hotkeys.toml", "[lua]\ntimeout = \"-1s\"\n")

	_, err := New(Options{ConfigPath: path, LogOutput: io.Discard})
	require.Error(t, err)

	var initErr *InitError
	require.True(t, errors.As(err, &initErr))
	assert.Equal(t, "config", initErr.Component)
	assert.True(t, errors.Is(err, config.ErrInvalidSetting))
}

func TestApp_KeymapFileActions(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "scripts.toml", scriptKeymap)
	app := newTestApp(t, "", Options{NoDefaultKeymap: true, KeymapFiles: []string{path}})

	// three of four declarations register; the unknown action is skipped
	assert.Equal(t, 2, app.Session().Registry().Len())
	el, ok := app.Session().LookupElement("list")
	require.True(t, ok)
	assert.Equal(t, 1, el.Registry().Len())
	assert.Equal(t, []string{path}, app.KeymapFiles())

	tap(app, key.ControlLeft, "m")
	assert.True(t, app.Session().Scopes().IsActive("modal"))

	tap(app, "f2")
	assert.Equal(t, "list", app.Focused())

	keys := app.Session().Keys()
	keys.Press("arrowdown", nil)
	result := el.HandleKeyDown(input.KeyDown{Key: "arrowdown"})
	keys.ReleaseAll()
	require.Len(t, result.Fired, 1)

	history := app.History()
	require.Len(t, history, 3)
	assert.Equal(t, "lua", history[0].Action)
	assert.Equal(t, "element.focus", history[1].Action)
	assert.Equal(t, "list", history[2].Element)
}

func TestApp_ApplyKeymapReplacesSource(t *testing.T) {
	app := newTestApp(t, "", Options{NoDefaultKeymap: true})

	first := keymap.NewKeymap("mine").WithSource("user").WithScopes("*").
		Add("ctrl+a", "log").
		Add("ctrl+b", "log")
	n, err := app.ApplyKeymap(first)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	second := keymap.NewKeymap("mine").WithSource("user").WithScopes("*").
		Add("ctrl+c", "log")
	n, err = app.ApplyKeymap(second)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	bindings := app.Session().Registry().Bindings()
	require.Len(t, bindings, 1)
	assert.Equal(t, "ctrl+c", bindings[0].Spec)
	assert.Equal(t, "user", bindings[0].Source)
}

func TestApp_ApplyKeymapDefaultsSource(t *testing.T) {
	app := newTestApp(t, "", Options{NoDefaultKeymap: true})

	km := keymap.NewKeymap("scratch").WithScopes("*").Add("ctrl+a", "log")
	_, err := app.ApplyKeymap(km)
	require.NoError(t, err)
	assert.Equal(t, "keymap:scratch", km.Source)
}

func TestApp_ReloadKeymapFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "keys.yaml", "name: keys\nscopes: ['*']\nbindings:\n  - keys: ctrl+a\n    action: log\n")
	app := newTestApp(t, "", Options{NoDefaultKeymap: true, KeymapFiles: []string{path}})
	require.Equal(t, 1, app.Session().Registry().Len())

	writeFile(t, dir, "keys.yaml", "name: keys\nscopes: ['*']\nbindings:\n  - keys: ctrl+a\n    action: log\n  - keys: ctrl+b\n    action: log\n")
	require.NoError(t, app.LoadKeymapFile(path))
	assert.Equal(t, 2, app.Session().Registry().Len())

	// a broken file keeps the previous bindings
	writeFile(t, dir, "keys.yaml", "bindings: [")
	err := app.LoadKeymapFile(path)
	var kerr *KeymapError
	require.True(t, errors.As(err, &kerr))
	assert.Equal(t, path, kerr.Path)
	assert.Equal(t, 2, app.Session().Registry().Len())

	assert.Equal(t, 2, app.UnloadKeymapFile(path))
	assert.Equal(t, 0, app.Session().Registry().Len())
	assert.Empty(t, app.KeymapFiles())
	assert.Equal(t, 0, app.UnloadKeymapFile(path))
}

func TestApp_MissingKeymapFileIsNotFatal(t *testing.T) {
	app := newTestApp(t, "", Options{
		NoDefaultKeymap: true,
		KeymapFiles:     []string{filepath.Join(t.TempDir(), "absent.toml")},
	})
	assert.Empty(t, app.KeymapFiles())
}

func TestApp_ApplySettingsSyncsKeymapFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"name": "a", "scopes": ["*"], "bindings": [{"keys": "ctrl+a", "action": "log"}]}`)
	b := writeFile(t, dir, "b.json", `{"name": "b", "scopes": ["*"], "bindings": [{"keys": "ctrl+b", "action": "log"}, {"keys": "ctrl+c", "action": "log"}]}`)

	app := newTestApp(t, fmt.Sprintf("keymaps = [%q]\n", a), Options{NoDefaultKeymap: true})
	require.Equal(t, []string{a}, app.KeymapFiles())

	s := app.Settings()
	s.Keymaps = []string{b}
	app.applySettings(s)

	assert.Equal(t, []string{b}, app.KeymapFiles())
	assert.Equal(t, 2, app.Session().Registry().Len())
}

func TestApp_StatusLines(t *testing.T) {
	app := newTestApp(t, "", Options{})

	tap(app, key.ControlLeft, "b")
	app.Focus("list")

	lines := app.StatusLines()
	assert.Contains(t, lines, "focus:    list")
	assert.Contains(t, lines, "scopes:   * sidebar")
	assert.Contains(t, lines[len(lines)-1], "Toggle sidebar")
}

func TestHistory_Bounded(t *testing.T) {
	h := newHistory(2)
	h.add(Fire{Keys: "a"})
	h.add(Fire{Keys: "b"})
	h.add(Fire{Keys: "c"})

	got := h.list()
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Keys)
	assert.Equal(t, "c", got[1].Keys)
}

func runApp(t *testing.T, app *Application) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()
	return done
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func TestApp_RunQuitsOnCtrlQ(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	app := newTestApp(t, "", Options{Screen: screen})

	done := runApp(t, app)
	require.Eventually(t, func() bool {
		w, _ := screen.Size()
		return w > 0 && app.IsRunning()
	}, time.Second, 5*time.Millisecond)

	screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)
	require.NoError(t, waitDone(t, done))

	history := app.History()
	require.NotEmpty(t, history)
	assert.Equal(t, "app.quit", history[len(history)-1].Action)
}

func TestApp_RunAfterQuitReturnsImmediately(t *testing.T) {
	app := newTestApp(t, "", Options{Screen: tcell.NewSimulationScreen("UTF-8")})
	app.Quit()
	require.NoError(t, waitDone(t, runApp(t, app)))
}

func TestApp_RunAfterClose(t *testing.T) {
	app := newTestApp(t, "", Options{Screen: tcell.NewSimulationScreen("UTF-8")})
	app.Close()
	app.Close()
	assert.ErrorIs(t, app.Run(context.Background()), ErrClosed)

	_, err := app.ApplyKeymap(keymap.NewKeymap("late"))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestApp_WatchReloadsKeymap(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "live.toml", "scopes = [\"*\"]\n[[bindings]]\nkeys = \"ctrl+a\"\naction = \"log\"\n")
	screen := tcell.NewSimulationScreen("UTF-8")
	app := newTestApp(t, fmt.Sprintf("watch = true\nkeymaps = [%q]\n", path), Options{
		NoDefaultKeymap: true,
		Screen:          screen,
	})
	require.Equal(t, 1, app.Session().Registry().Len())

	done := runApp(t, app)
	require.Eventually(t, app.watcher.IsRunning, time.Second, 5*time.Millisecond)

	writeFile(t, dir, "live.toml", "scopes = [\"*\"]\n[[bindings]]\nkeys = \"ctrl+a\"\naction = \"log\"\n[[bindings]]\nkeys = \"ctrl+b\"\naction = \"log\"\n")
	require.Eventually(t, func() bool {
		return app.Session().Registry().Len() == 2
	}, 5*time.Second, 10*time.Millisecond)

	app.Quit()
	require.NoError(t, waitDone(t, done))
}
