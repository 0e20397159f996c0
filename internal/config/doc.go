// Package config loads hotkeys application settings.
//
// Settings come from three places, highest priority first:
//
//	HOTKEYS_* environment variables   (HOTKEYS_LOG_LEVEL, HOTKEYS_WATCH, ...)
//	hotkeys.{toml,yaml,json}          (explicit path, ./ or $XDG_CONFIG_HOME/hotkeys)
//	built-in defaults                 (Default)
//
// A missing settings file is not an error; the defaults apply. Keymap files
// are not settings: the keymaps key only lists their paths, and their
// contents are loaded by keymap.Loader. Package watcher reloads those files
// when they change on disk.
//
// # Usage
//
//	m := config.NewManager()
//	if err := m.Load(""); err != nil {
//	    return err
//	}
//	s := m.Settings()
package config
