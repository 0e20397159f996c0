package input

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/hotkeys/internal/input/keymap"
	"github.com/dshills/hotkeys/internal/input/keystate"
	"github.com/dshills/hotkeys/internal/input/scope"
	"github.com/dshills/hotkeys/internal/notify"
)

// Config configures an input session.
type Config struct {
	// InitialScopes are active when the session starts (default: ["*"]).
	InitialScopes []string

	// FireMode is the default fire mode of new elements
	// (default: FireEveryKeyDown).
	FireMode FireMode

	// EnableMetrics enables pass metrics collection (default: true).
	EnableMetrics bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		InitialScopes: []string{scope.Global},
		FireMode:      FireEveryKeyDown,
		EnableMetrics: true,
	}
}

// Handler is the global evaluation loop. It subscribes to the session's
// pressed-key state and scope set and runs one pass over the global
// registry synchronously inside each change notification.
//
// A notification raised while a pass is running does not start a nested
// pass. Changes are coalesced into a single follow-up pass that runs once
// the current one returns. A follow-up caused only by scope changes skips
// every binding that already fired since the keys last changed, so a
// callback that changes scopes never re-fires itself.
type Handler struct {
	keys     *keystate.State
	scopes   *scope.Set
	registry *keymap.Registry
	metrics  *Metrics
	logger   zerolog.Logger

	mu            sync.Mutex
	running       bool
	pending       bool
	pendingScopes bool
	trigger       keymap.Trigger
	closed        bool

	subs []*notify.Subscription
}

func newHandler(keys *keystate.State, scopes *scope.Set, registry *keymap.Registry, metrics *Metrics, logger zerolog.Logger) *Handler {
	h := &Handler{
		keys:     keys,
		scopes:   scopes,
		registry: registry,
		metrics:  metrics,
		logger:   logger,
	}
	h.subs = []*notify.Subscription{
		keys.Subscribe(h.onChange),
		scopes.Subscribe(h.onChange),
	}
	return h
}

// onChange is the observer registered on both collaborators.
func (h *Handler) onChange(change notify.Change) {
	trigger := keymap.Trigger{Mode: keymap.ModeGlobal, Key: change.Key}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	if h.running {
		if change.Source == scope.Source {
			h.pendingScopes = true
		} else {
			h.pending = true
			h.trigger = trigger
		}
		h.mu.Unlock()
		h.metrics.RecordCoalesced()
		return
	}
	h.running = true
	h.mu.Unlock()

	h.drain(trigger)
}

// Evaluate runs one global pass now, unless a pass is already running, in
// which case a follow-up pass is scheduled.
func (h *Handler) Evaluate() {
	h.onChange(notify.Change{})
}

// drain runs passes until no follow-up is pending.
// Caller must have set running.
func (h *Handler) drain(trigger keymap.Trigger) {
	fired := make(map[keymap.Handle]struct{})
	var skip func(*keymap.Binding) bool

	for {
		result := h.pass(trigger, skip)
		for _, f := range result.Fired {
			fired[f.Binding.Handle] = struct{}{}
		}

		h.mu.Lock()
		switch {
		case h.closed || (!h.pending && !h.pendingScopes):
			h.running = false
			h.pending = false
			h.pendingScopes = false
			h.mu.Unlock()
			return
		case h.pending:
			trigger = h.trigger
			clear(fired)
			skip = nil
		default:
			trigger = keymap.Trigger{Mode: keymap.ModeGlobal}
			skip = func(b *keymap.Binding) bool {
				_, ok := fired[b.Handle]
				return ok
			}
		}
		h.pending = false
		h.pendingScopes = false
		h.mu.Unlock()
	}
}

func (h *Handler) pass(trigger keymap.Trigger, skip func(*keymap.Binding) bool) keymap.Result {
	start := time.Now()
	result := keymap.Evaluate(h.registry.Bindings(), keymap.Pass{
		Trigger: trigger,
		Pressed: h.keys.Snapshot(),
		Active:  h.scopes.Snapshot(),
		OnFire:  fireLogger(h.logger),
		Skip:    skip,
	})
	h.metrics.RecordPass(trigger.Mode, result, time.Since(start))
	return result
}

// Close unsubscribes the handler. Passes already running complete.
func (h *Handler) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	subs := h.subs
	h.subs = nil
	h.mu.Unlock()

	for _, sub := range subs {
		sub.Unsubscribe()
	}
}

// fireLogger returns the OnFire hook that traces each fire at debug level.
func fireLogger(logger zerolog.Logger) func(keymap.Fired) {
	return func(f keymap.Fired) {
		ev := logger.Debug().
			Str("hotkey", f.Hotkey.String()).
			Str("handle", string(f.Binding.Handle)).
			Str("mode", f.Trigger.Mode.String())
		if f.Trigger.Element != "" {
			ev = ev.Str("element", f.Trigger.Element)
		}
		if f.Trigger.Key != "" {
			ev = ev.Str("key", f.Trigger.Key)
		}
		ev.Msg("firing hotkey")
	}
}
