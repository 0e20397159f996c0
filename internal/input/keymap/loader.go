package keymap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for keymap files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported keymap format")

// Format identifies a keymap file encoding.
type Format string

// Supported keymap formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath returns the format implied by a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// Loader loads keymaps from configuration files.
type Loader struct {
	// searchPaths are directories to search for keymap files.
	searchPaths []string
}

// NewLoader creates a new keymap loader.
func NewLoader() *Loader {
	return &Loader{
		searchPaths: make([]string, 0),
	}
}

// AddSearchPath adds a directory to search for keymap files.
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// LoadFile loads a keymap from a JSON, TOML or YAML file. A keymap without
// a source is given "keymap:<path>" so its bindings can be replaced as a
// group on reload.
func (l *Loader) LoadFile(path string) (*Keymap, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keymap file: %w", err)
	}
	defer f.Close()

	km, err := l.LoadReader(f, format)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	if km.Source == "" {
		km.Source = SourceForPath(path)
	}
	if km.Name == "" {
		km.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return km, nil
}

// SourceForPath returns the default source of a keymap loaded from path.
func SourceForPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return "keymap:" + path
}

// LoadReader loads a keymap in the given format from a reader.
func (l *Loader) LoadReader(r io.Reader, format Format) (*Keymap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading keymap: %w", err)
	}

	var config keymapConfig
	switch format {
	case FormatJSON:
		err = json.NewDecoder(bytes.NewReader(data)).Decode(&config)
	case FormatTOML:
		err = toml.Unmarshal(data, &config)
	case FormatYAML:
		err = yaml.Unmarshal(data, &config)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding keymap: %w", err)
	}

	return config.toKeymap(), nil
}

// LoadAll loads all keymaps from the search paths. Files that fail to load
// are skipped and their errors returned joined alongside the keymaps that
// did load.
func (l *Loader) LoadAll() ([]*Keymap, error) {
	keymaps := make([]*Keymap, 0)
	var errs []error

	for _, dir := range l.searchPaths {
		for _, pattern := range []string{"*.json", "*.toml", "*.yaml", "*.yml"} {
			matches, err := filepath.Glob(filepath.Join(dir, pattern))
			if err != nil {
				continue
			}

			for _, path := range matches {
				km, err := l.LoadFile(path)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				keymaps = append(keymaps, km)
			}
		}
	}

	return keymaps, errors.Join(errs...)
}

// keymapConfig is the on-disk structure shared by every format.
type keymapConfig struct {
	Name     string          `json:"name" toml:"name" yaml:"name"`
	Source   string          `json:"source,omitempty" toml:"source,omitempty" yaml:"source,omitempty"`
	Scopes   []string        `json:"scopes,omitempty" toml:"scopes,omitempty" yaml:"scopes,omitempty"`
	Bindings []bindingConfig `json:"bindings" toml:"bindings" yaml:"bindings"`
}

type bindingConfig struct {
	Keys        string         `json:"keys" toml:"keys" yaml:"keys"`
	Scopes      []string       `json:"scopes,omitempty" toml:"scopes,omitempty" yaml:"scopes,omitempty"`
	Action      string         `json:"action" toml:"action" yaml:"action"`
	Args        map[string]any `json:"args,omitempty" toml:"args,omitempty" yaml:"args,omitempty"`
	Description string         `json:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`
	Category    string         `json:"category,omitempty" toml:"category,omitempty" yaml:"category,omitempty"`
	Element     string         `json:"element,omitempty" toml:"element,omitempty" yaml:"element,omitempty"`
}

func (c keymapConfig) toKeymap() *Keymap {
	km := &Keymap{
		Name:     c.Name,
		Source:   c.Source,
		Scopes:   c.Scopes,
		Bindings: make([]Declaration, 0, len(c.Bindings)),
	}
	for _, bc := range c.Bindings {
		km.Bindings = append(km.Bindings, Declaration(bc))
	}
	return km
}

func fromKeymap(k *Keymap) keymapConfig {
	config := keymapConfig{
		Name:     k.Name,
		Source:   k.Source,
		Scopes:   k.Scopes,
		Bindings: make([]bindingConfig, 0, len(k.Bindings)),
	}
	for _, d := range k.Bindings {
		config.Bindings = append(config.Bindings, bindingConfig(d))
	}
	return config
}

// MarshalJSON converts a keymap to JSON.
func (k *Keymap) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(fromKeymap(k), "", "  ")
}

// UnmarshalJSON parses a keymap from JSON.
func (k *Keymap) UnmarshalJSON(data []byte) error {
	var config keymapConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return err
	}
	*k = *config.toKeymap()
	return nil
}

// SaveFile saves a keymap in the format implied by the path's extension.
func (k *Keymap) SaveFile(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case FormatJSON:
		data, err = k.MarshalJSON()
	case FormatTOML:
		data, err = toml.Marshal(fromKeymap(k))
	case FormatYAML:
		data, err = yaml.Marshal(fromKeymap(k))
	}
	if err != nil {
		return fmt.Errorf("marshaling keymap: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing keymap file: %w", err)
	}

	return nil
}
