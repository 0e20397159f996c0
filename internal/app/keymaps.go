package app

import (
	"path/filepath"
	"slices"

	"github.com/dshills/hotkeys/internal/config"
	"github.com/dshills/hotkeys/internal/config/watcher"
	"github.com/dshills/hotkeys/internal/input/keymap"
)

// ApplyKeymap registers the keymap's bindings, replacing any bindings
// previously registered under the same source. Validation problems and
// unknown actions are logged and the affected declarations skipped. It
// returns the number of bindings registered.
func (app *Application) ApplyKeymap(km *keymap.Keymap) (int, error) {
	if app.closed.Load() {
		return 0, ErrClosed
	}
	if km.Source == "" {
		km.Source = "keymap:" + km.Name
	}
	log := app.logger.With().Str("keymap", km.Name).Str("source", km.Source).Logger()

	for _, problem := range km.Validate() {
		log.Warn().Err(problem).Msg("keymap problem")
	}

	type ready struct {
		decl keymap.Declaration
		cb   func()
	}
	bindings := make([]ready, 0, len(km.Bindings))
	for _, d := range km.Bindings {
		cb, err := app.actions.Callback(d)
		if err != nil {
			log.Warn().Err(err).Str("keys", d.Keys).Msg("skipping binding")
			continue
		}
		bindings = append(bindings, ready{decl: d, cb: app.track(km.Source, d, cb)})
	}

	// All callbacks are built before the old bindings are removed.
	app.session.UnregisterSource(km.Source)

	registered := 0
	for _, b := range bindings {
		opts := []keymap.BindingOption{
			keymap.WithSource(km.Source),
			keymap.WithDescription(b.decl.Description),
			keymap.WithCategory(b.decl.Category),
		}
		scopes := km.ScopesFor(b.decl)

		if b.decl.Element == "" {
			app.session.Register(b.decl.Keys, scopes, b.cb, opts...)
			registered++
			continue
		}
		el := app.session.Element(b.decl.Element)
		if el == nil {
			return registered, ErrClosed
		}
		el.Register(b.decl.Keys, scopes, b.cb, opts...)
		registered++
	}

	log.Info().
		Int("bindings", registered).
		Int("skipped", len(km.Bindings)-registered).
		Msg("keymap applied")
	return registered, nil
}

// LoadKeymapFile loads a keymap file and applies it. On error the bindings
// from the file's previous load stay in place.
func (app *Application) LoadKeymapFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return &KeymapError{Path: path, Err: err}
	}

	km, err := app.loader.LoadFile(abs)
	if err != nil {
		return &KeymapError{Path: abs, Err: err}
	}

	app.mu.Lock()
	prev, loaded := app.files[abs]
	app.files[abs] = km.Source
	app.mu.Unlock()

	if loaded && prev != km.Source {
		app.session.UnregisterSource(prev)
	}
	if _, err := app.ApplyKeymap(km); err != nil {
		return &KeymapError{Path: abs, Err: err}
	}
	return nil
}

// UnloadKeymapFile removes the bindings registered from a keymap file and
// returns how many were removed.
func (app *Application) UnloadKeymapFile(path string) int {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0
	}

	app.mu.Lock()
	source, loaded := app.files[abs]
	delete(app.files, abs)
	app.mu.Unlock()

	if !loaded {
		return 0
	}
	n := app.session.UnregisterSource(source)
	app.logger.Info().Str("path", abs).Int("bindings", n).Msg("keymap unloaded")
	return n
}

// KeymapFiles returns the loaded keymap files, sorted.
func (app *Application) KeymapFiles() []string {
	app.mu.RLock()
	defer app.mu.RUnlock()

	files := make([]string, 0, len(app.files))
	for path := range app.files {
		files = append(files, path)
	}
	slices.Sort(files)
	return files
}

// keymapPaths lists the keymap files named by the settings and the
// options, absolute and without duplicates.
func (app *Application) keymapPaths(s config.Settings) []string {
	var paths []string
	for _, p := range append(slices.Clone(s.Keymaps), app.opts.KeymapFiles...) {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		if !slices.Contains(paths, p) {
			paths = append(paths, p)
		}
	}
	return paths
}

// onKeymapFileChange reloads a keymap file after it changed on disk.
func (app *Application) onKeymapFileChange(ev watcher.Event) {
	log := app.logger.With().Str("path", ev.Path).Str("op", ev.Op.String()).Logger()

	switch ev.Op {
	case watcher.OpRemove, watcher.OpRename:
		app.UnloadKeymapFile(ev.Path)
	default:
		if err := app.LoadKeymapFile(ev.Path); err != nil {
			log.Warn().Err(err).Msg("reload failed, keeping previous bindings")
			return
		}
		log.Info().Msg("keymap reloaded")
	}
	app.redraw()
}

// applySettings follows a settings reload: keymap files no longer listed
// are unloaded and newly listed ones loaded and watched.
func (app *Application) applySettings(s config.Settings) {
	app.mu.Lock()
	app.settings = s
	app.mu.Unlock()

	want := app.keymapPaths(s)
	for _, path := range app.KeymapFiles() {
		if slices.Contains(want, path) {
			continue
		}
		app.UnloadKeymapFile(path)
		if app.watcher != nil {
			_ = app.watcher.Unwatch(path)
		}
	}

	loaded := app.KeymapFiles()
	for _, path := range want {
		if slices.Contains(loaded, path) {
			continue
		}
		if err := app.LoadKeymapFile(path); err != nil {
			app.logger.Warn().Err(err).Msg("skipping keymap file")
		}
		if app.watcher != nil {
			if err := app.watcher.Watch(path); err != nil {
				app.logger.Warn().Err(err).Str("path", path).Msg("cannot watch keymap file")
			}
		}
	}
	app.redraw()
}
