package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dshills/hotkeys/internal/input"
	"github.com/dshills/hotkeys/internal/input/scope"
	"github.com/dshills/hotkeys/internal/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, with dots in the
// key replaced by underscores: log.level is read from HOTKEYS_LOG_LEVEL.
const EnvPrefix = "HOTKEYS"

// FileName is the settings file name without extension.
const FileName = "hotkeys"

// Settings is the decoded application configuration.
type Settings struct {
	Log     LogSettings     `mapstructure:"log"`
	Keymaps []string        `mapstructure:"keymaps"`
	Scopes  ScopeSettings   `mapstructure:"scopes"`
	Element ElementSettings `mapstructure:"element"`
	Watch   bool            `mapstructure:"watch"`
	Lua     LuaSettings     `mapstructure:"lua"`
}

// LogSettings configures the process logger.
type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File, when set, receives log output instead of stderr.
	File string `mapstructure:"file"`
}

// ScopeSettings configures the scopes active at session start.
type ScopeSettings struct {
	Initial []string `mapstructure:"initial"`
}

// ElementSettings configures element-scoped evaluation.
type ElementSettings struct {
	FireMode string `mapstructure:"fire_mode"`
}

// LuaSettings configures scripted actions.
type LuaSettings struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Log: LogSettings{
			Level:  "info",
			Format: "console",
		},
		Keymaps: []string{},
		Scopes: ScopeSettings{
			Initial: []string{scope.Global},
		},
		Element: ElementSettings{
			FireMode: input.FireEveryKeyDown.String(),
		},
		Lua: LuaSettings{
			Timeout: 5 * time.Second,
		},
	}
}

// Validate reports every setting outside its domain, joined.
func (s Settings) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(s.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: log.level: %v", ErrInvalidSetting, err))
	}
	switch s.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("%w: log.format %q (want json or console)", ErrInvalidSetting, s.Log.Format))
	}
	if _, err := input.ParseFireMode(s.Element.FireMode); err != nil {
		errs = append(errs, fmt.Errorf("%w: element.fire_mode: %v", ErrInvalidSetting, err))
	}
	if s.Lua.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: lua.timeout must be positive, got %s", ErrInvalidSetting, s.Lua.Timeout))
	}
	return errors.Join(errs...)
}

// LoggingConfig converts the log settings for logging.New. Settings must
// have passed Validate.
func (s Settings) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	if level, err := logging.ParseLevel(s.Log.Level); err == nil {
		cfg.Level = level
	}
	cfg.Format = s.Log.Format
	return cfg
}

// InputConfig converts the session settings for input.NewContext.
// Settings must have passed Validate.
func (s Settings) InputConfig() input.Config {
	cfg := input.DefaultConfig()
	cfg.InitialScopes = append([]string(nil), s.Scopes.Initial...)
	if mode, err := input.ParseFireMode(s.Element.FireMode); err == nil {
		cfg.FireMode = mode
	}
	return cfg
}

// Manager loads settings and reloads them when the settings file changes.
type Manager struct {
	viper     *viper.Viper
	logger    zerolog.Logger
	mu        sync.RWMutex
	settings  Settings
	callbacks []func(Settings)
	watching  bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used to report reload failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// SetLogger replaces the logger used to report reload failures.
func (m *Manager) SetLogger(logger zerolog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = logger
}

// NewManager creates a Manager holding the defaults.
func NewManager(opts ...Option) *Manager {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	m := &Manager{
		viper:    v,
		logger:   zerolog.Nop(),
		settings: Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.setDefaults()
	return m
}

func (m *Manager) setDefaults() {
	d := Default()
	m.viper.SetDefault("log.level", d.Log.Level)
	m.viper.SetDefault("log.format", d.Log.Format)
	m.viper.SetDefault("log.file", d.Log.File)
	m.viper.SetDefault("keymaps", d.Keymaps)
	m.viper.SetDefault("scopes.initial", d.Scopes.Initial)
	m.viper.SetDefault("element.fire_mode", d.Element.FireMode)
	m.viper.SetDefault("watch", d.Watch)
	m.viper.SetDefault("lua.timeout", d.Lua.Timeout)
}

// Load reads settings from path, or searches the working directory and
// the user config directory for hotkeys.{toml,yaml,json} when path is
// empty. Only an explicit path must exist.
func (m *Manager) Load(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if path != "" {
		m.viper.SetConfigFile(path)
	} else {
		m.viper.SetConfigName(FileName)
		m.viper.AddConfigPath(".")
		if dir, err := ConfigDir(); err == nil {
			m.viper.AddConfigPath(dir)
		}
	}

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading settings: %w", err)
		}
	}

	settings, err := m.decode()
	if err != nil {
		return err
	}
	m.settings = settings
	return nil
}

func (m *Manager) decode() (Settings, error) {
	var s Settings
	if err := m.viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding settings from %s: %w", m.fileLabel(), err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("settings in %s: %w", m.fileLabel(), err)
	}
	return s, nil
}

func (m *Manager) fileLabel() string {
	if f := m.viper.ConfigFileUsed(); f != "" {
		return f
	}
	return "defaults"
}

// Settings returns the current settings.
func (m *Manager) Settings() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.settings
	s.Keymaps = append([]string(nil), s.Keymaps...)
	s.Scopes.Initial = append([]string(nil), s.Scopes.Initial...)
	return s
}

// ConfigFile returns the settings file in use, or "" when running on
// defaults.
func (m *Manager) ConfigFile() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.viper.ConfigFileUsed()
}

// OnChange registers fn to receive the new settings after every
// successful reload.
func (m *Manager) OnChange(fn func(Settings)) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// Watch reloads the settings file whenever it changes on disk. A reload
// that fails to decode or validate keeps the previous settings.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}
	if m.viper.ConfigFileUsed() == "" {
		return ErrNotLoaded
	}

	m.viper.OnConfigChange(func(e fsnotify.Event) {
		m.mu.RLock()
		logger := m.logger
		m.mu.RUnlock()
		logger.Debug().Str("op", e.Op.String()).Str("file", e.Name).Msg("settings file changed")
		m.reload(logger)
	})
	m.viper.WatchConfig()
	m.watching = true
	return nil
}

// reload re-decodes the settings viper already re-read and notifies
// callbacks outside the lock.
func (m *Manager) reload(logger zerolog.Logger) {
	m.mu.Lock()
	settings, err := m.decode()
	if err != nil {
		m.mu.Unlock()
		logger.Warn().Err(err).Msg("keeping previous settings")
		return
	}
	m.settings = settings
	callbacks := make([]func(Settings), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	for _, cb := range callbacks {
		cb(settings)
	}
}

// ConfigDir returns $XDG_CONFIG_HOME/hotkeys, falling back to
// ~/.config/hotkeys.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(home, ".config", FileName), nil
}
