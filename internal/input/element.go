package input

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/hotkeys/internal/input/keymap"
)

// ErrUnknownFireMode is returned by ParseFireMode for unrecognized names.
var ErrUnknownFireMode = errors.New("unknown fire mode")

// FireMode controls how an element reacts to auto-repeated key-downs.
type FireMode int

const (
	// FireEveryKeyDown evaluates on every key-down delivered to the
	// element, including auto-repeats.
	FireEveryKeyDown FireMode = iota

	// FireOncePerKeyDown evaluates only on the initial key-down of a
	// physical press; auto-repeats are ignored.
	FireOncePerKeyDown
)

// String returns the configuration name of the mode.
func (m FireMode) String() string {
	switch m {
	case FireEveryKeyDown:
		return "every"
	case FireOncePerKeyDown:
		return "once"
	default:
		return "unknown"
	}
}

// ParseFireMode parses "every" or "once". The empty string is "every".
func ParseFireMode(s string) (FireMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "every":
		return FireEveryKeyDown, nil
	case "once":
		return FireOncePerKeyDown, nil
	default:
		return FireEveryKeyDown, fmt.Errorf("%w: %q", ErrUnknownFireMode, s)
	}
}

// KeyDown is a discrete key-down delivered to one element. The host
// records the press in the session key state before delivering it.
type KeyDown struct {
	// Key is the identifier of the pressed key.
	Key string

	// Repeat is true for auto-repeated key-downs of a held key.
	Repeat bool

	// Token is the raw host event, if any.
	Token any
}

// Element is a named UI element with its own bindings. Its bindings are
// evaluated only when the host delivers a key-down to it, never on
// session state changes.
type Element struct {
	name     string
	ctx      *Context
	registry *keymap.Registry
	logger   zerolog.Logger

	mu       sync.RWMutex
	fireMode FireMode
}

func newElement(name string, ctx *Context) *Element {
	return &Element{
		name:     name,
		ctx:      ctx,
		registry: keymap.NewRegistry(),
		logger:   ctx.logger.With().Str("element", name).Logger(),
		fireMode: ctx.config.FireMode,
	}
}

// Name returns the element name.
func (e *Element) Name() string {
	return e.name
}

// Registry returns the element's binding registry.
func (e *Element) Registry() *keymap.Registry {
	return e.registry
}

// FireMode returns the element's fire mode.
func (e *Element) FireMode() FireMode {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.fireMode
}

// SetFireMode changes the element's fire mode.
func (e *Element) SetFireMode(mode FireMode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fireMode = mode
}

// Register binds spec to cb on this element.
func (e *Element) Register(spec string, scopes []string, cb func(), opts ...keymap.BindingOption) keymap.Handle {
	return e.registry.Register(spec, scopes, cb, opts...)
}

// Unregister removes a binding from this element.
func (e *Element) Unregister(h keymap.Handle) bool {
	return e.registry.Unregister(h)
}

// HandleKeyDown runs exactly one pass over the element's bindings against
// freshly read key and scope snapshots. In FireOncePerKeyDown mode a
// repeated key-down runs no pass.
func (e *Element) HandleKeyDown(ev KeyDown) keymap.Result {
	if ev.Repeat && e.FireMode() == FireOncePerKeyDown {
		e.ctx.metrics.RecordSkippedRepeat()
		return keymap.Result{}
	}

	trigger := keymap.Trigger{Mode: keymap.ModeElement, Key: ev.Key, Element: e.name}
	start := time.Now()
	result := keymap.Evaluate(e.registry.Bindings(), keymap.Pass{
		Trigger: trigger,
		Pressed: e.ctx.keys.Snapshot(),
		Active:  e.ctx.scopes.Snapshot(),
		OnFire:  fireLogger(e.logger),
	})
	e.ctx.metrics.RecordPass(trigger.Mode, result, time.Since(start))
	return result
}
