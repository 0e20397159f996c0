package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrAlreadyRunning indicates the application is already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrClosed indicates the application has been closed.
	ErrClosed = errors.New("application closed")
)

// InitError represents a component that failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// KeymapError describes a keymap file that could not be applied.
type KeymapError struct {
	Path string
	Err  error
}

func (e *KeymapError) Error() string {
	return fmt.Sprintf("keymap %s: %v", e.Path, e.Err)
}

func (e *KeymapError) Unwrap() error {
	return e.Err
}
