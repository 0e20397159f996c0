package config

import "errors"

var (
	// ErrInvalidSetting indicates a setting holds a value outside its domain.
	ErrInvalidSetting = errors.New("invalid setting")

	// ErrNotLoaded indicates Watch was called before a file was loaded.
	ErrNotLoaded = errors.New("no settings file loaded")
)
