// Package app wires the hotkeys components into a runnable terminal
// application and manages its lifecycle.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/hotkeys/internal/action"
	"github.com/dshills/hotkeys/internal/backend"
	"github.com/dshills/hotkeys/internal/config"
	"github.com/dshills/hotkeys/internal/config/watcher"
	"github.com/dshills/hotkeys/internal/input"
	"github.com/dshills/hotkeys/internal/input/keymap"
	"github.com/dshills/hotkeys/internal/logging"
	"github.com/dshills/hotkeys/internal/plugin/lua"
)

// ActionFocus moves terminal key-down delivery to the element named by
// the "element" argument. An empty name clears the focus.
const ActionFocus = "element.focus"

// Application is the central coordinator for all hotkeys components.
type Application struct {
	mu sync.RWMutex

	opts     Options
	config   *config.Manager
	settings config.Settings
	logger   zerolog.Logger
	logFile  *os.File

	session *input.Context
	actions *action.Registry
	scripts *lua.State
	loader  *keymap.Loader
	watcher *watcher.Watcher

	// files maps each loaded keymap file to the source its bindings were
	// registered under.
	files map[string]string

	terminal   *backend.Terminal
	focus      string
	lastStroke string
	history    *history

	cancel  context.CancelFunc
	running atomic.Bool
	quit    atomic.Bool
	closed  atomic.Bool
}

// Options configures the application.
type Options struct {
	// ConfigPath is the settings file. Empty searches the default
	// locations.
	ConfigPath string

	// KeymapFiles are loaded after the files named in the settings.
	KeymapFiles []string

	// NoDefaultKeymap skips the built-in keymap.
	NoDefaultKeymap bool

	// LogOutput overrides the log destination. When nil, log.file from the
	// settings is used, falling back to FallbackLogOutput.
	LogOutput io.Writer

	// FallbackLogOutput receives logs when neither LogOutput nor log.file
	// is set. Nil means stderr.
	FallbackLogOutput io.Writer

	// Screen is the terminal screen. When nil, Run opens the real terminal.
	Screen tcell.Screen

	// HistorySize bounds the recent-fire list. Zero means 10.
	HistorySize int
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		logger:  zerolog.Nop(),
		loader:  keymap.NewLoader(),
		files:   make(map[string]string),
		history: newHistory(opts.HistorySize),
	}

	if err := app.bootstrap(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Settings
	app.config = config.NewManager()
	if err := app.config.Load(app.opts.ConfigPath); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.settings = app.config.Settings()

	// 2. Logger
	if err := app.initLogger(); err != nil {
		return &InitError{Component: "logging", Err: err}
	}
	app.config.SetLogger(app.logger)

	// 3. Input session
	app.session = input.NewContext(app.settings.InputConfig(), input.WithLogger(app.logger))

	// 4. Scripts
	app.scripts = lua.NewState(lua.WithExecutionTimeout(app.settings.Lua.Timeout))
	app.scripts.OpenSession(lua.Session{
		Scopes: app.session.Scopes(),
		Keys:   app.session.Keys(),
		Logger: app.logger,
	})

	// 5. Actions
	app.actions = action.NewRegistry()
	action.RegisterBuiltins(app.actions, action.Env{
		Scopes:  app.session.Scopes(),
		Logger:  app.logger,
		Scripts: app.scripts,
		Quit:    app.Quit,
	})
	app.actions.Register(ActionFocus, func(args action.Args) (func(), error) {
		name, err := args.StringOr("element", "")
		if err != nil {
			return nil, err
		}
		return func() { app.Focus(name) }, nil
	})

	// 6. Keymaps
	if !app.opts.NoDefaultKeymap {
		if _, err := app.ApplyKeymap(keymap.DefaultKeymap()); err != nil {
			return &InitError{Component: "keymap", Err: err}
		}
	}
	for _, path := range app.keymapPaths(app.settings) {
		if err := app.LoadKeymapFile(path); err != nil {
			// Non-fatal: the file is retried when it changes
			app.logger.Warn().Err(err).Msg("skipping keymap file")
		}
	}

	// 7. Keymap watcher
	if app.settings.Watch {
		w, err := watcher.New(watcher.WithLogger(app.logger))
		if err != nil {
			return &InitError{Component: "watcher", Err: err}
		}
		app.watcher = w
		for _, path := range app.keymapPaths(app.settings) {
			if err := w.Watch(path); err != nil {
				app.logger.Warn().Err(err).Str("path", path).Msg("cannot watch keymap file")
			}
		}
		w.OnChange(app.onKeymapFileChange)
	}

	return nil
}

func (app *Application) initLogger() error {
	out := app.opts.LogOutput
	if out == nil && app.settings.Log.File != "" {
		f, err := logging.OpenFile(app.settings.Log.File)
		if err != nil {
			return err
		}
		app.logFile = f
		out = f
	}

	if out == nil {
		out = app.opts.FallbackLogOutput
	}

	cfg := app.settings.LoggingConfig()
	cfg.Output = out
	app.logger = logging.New(cfg)
	return nil
}

// Run draws the status screen and dispatches terminal key strokes until
// ctx is done or the app.quit action runs. Both end Run without error.
func (app *Application) Run(ctx context.Context) error {
	if app.closed.Load() {
		return ErrClosed
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	screen := app.opts.Screen
	if screen == nil {
		var err error
		if screen, err = backend.NewScreen(); err != nil {
			return &InitError{Component: "screen", Err: err}
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	term := backend.New(screen, app.session, backend.WithLogger(app.logger))
	app.mu.Lock()
	app.terminal = term
	app.cancel = cancel
	focus := app.focus
	app.mu.Unlock()
	term.Focus(focus)

	term.OnStroke(func(s backend.Stroke, repeat bool) {
		app.recordStroke(s, repeat)
		app.redraw()
	})
	term.OnResize(func(int, int) { app.redraw() })

	if app.quit.Load() {
		return nil
	}

	if app.watcher != nil {
		if err := app.watcher.Start(ctx); err != nil {
			app.logger.Warn().Err(err).Msg("keymap watcher not started")
		}
	}
	if app.Settings().Watch && app.config.ConfigFile() != "" {
		app.config.OnChange(app.applySettings)
		if err := app.config.Watch(); err != nil {
			app.logger.Warn().Err(err).Msg("settings watcher not started")
		}
	}

	app.logger.Info().Int("bindings", app.session.Registry().Len()).Msg("hotkeys running")
	err := term.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Quit ends Run. Calling Quit before Run makes Run return immediately.
func (app *Application) Quit() {
	app.quit.Store(true)
	app.mu.RLock()
	cancel := app.cancel
	app.mu.RUnlock()
	if cancel != nil {
		cancel()
	}
}

// Focus routes terminal key-downs to the named element; "" clears it.
func (app *Application) Focus(element string) {
	app.mu.Lock()
	app.focus = element
	term := app.terminal
	app.mu.Unlock()
	if term != nil {
		term.Focus(element)
	}
	app.logger.Debug().Str("element", element).Msg("focus changed")
}

// Focused returns the focused element name.
func (app *Application) Focused() string {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.focus
}

// Close releases every component in reverse initialization order. It is
// safe to call Close multiple times.
func (app *Application) Close() {
	if !app.closed.CompareAndSwap(false, true) {
		return
	}

	app.Quit()
	if app.watcher != nil {
		if err := app.watcher.Stop(); err != nil {
			app.logger.Warn().Err(err).Msg("stopping keymap watcher")
		}
	}
	if app.session != nil {
		app.session.Close()
	}
	if app.scripts != nil {
		_ = app.scripts.Close()
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
	}
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Session returns the input session.
func (app *Application) Session() *input.Context {
	return app.session
}

// Actions returns the action registry.
func (app *Application) Actions() *action.Registry {
	return app.actions
}

// Scripts returns the Lua state.
func (app *Application) Scripts() *lua.State {
	return app.scripts
}

// Settings returns the settings the application was started with, updated
// by live reloads.
func (app *Application) Settings() config.Settings {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.settings
}

// Logger returns the application logger.
func (app *Application) Logger() zerolog.Logger {
	return app.logger
}
