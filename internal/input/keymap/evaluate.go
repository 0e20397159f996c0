package keymap

import (
	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/input/keystate"
	"github.com/dshills/hotkeys/internal/input/scope"
)

// Mode identifies what drove an evaluation pass.
type Mode int

const (
	// ModeGlobal passes run on every change to the shared key or scope state.
	ModeGlobal Mode = iota

	// ModeElement passes run once per key-down delivered to one element.
	ModeElement
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeGlobal:
		return "global"
	case ModeElement:
		return "element"
	default:
		return "unknown"
	}
}

// Trigger describes the source of an evaluation pass.
type Trigger struct {
	Mode Mode

	// Key is the identifier whose change or key-down caused the pass.
	// Empty for resets and scope changes.
	Key string

	// Element names the element for ModeElement passes.
	Element string
}

// Pass is the input of one evaluation pass.
type Pass struct {
	Trigger Trigger

	// Pressed and Active are read once by the caller and shared by every
	// binding in the pass.
	Pressed keystate.Snapshot
	Active  scope.Snapshot

	// OnFire, if set, is called for each firing binding before its callback.
	OnFire func(Fired)

	// Skip, if set, excludes bindings from the pass before the scope gate.
	Skip func(*Binding) bool
}

// Fired records one binding that fired during a pass.
type Fired struct {
	Binding *Binding
	Hotkey  key.Hotkey
	Trigger Trigger
}

// Result summarizes an evaluation pass.
type Result struct {
	// Evaluated counts bindings whose scope was active and were matched.
	Evaluated int

	// ScopeRejected counts bindings skipped because no scope was active.
	ScopeRejected int

	// Consumed counts key entries consumed by matches.
	Consumed int

	// Fired lists the bindings that fired, in order.
	Fired []Fired
}

// Evaluate runs one pass over bindings. Each live binding whose scopes
// intersect the active set is matched against the pressed keys, and its
// callback is invoked on the first matching alternative. A binding removed
// by an earlier callback of the same pass is skipped, as is one rejected by
// pass.Skip.
func Evaluate(bindings []*Binding, pass Pass) Result {
	var result Result

	for _, b := range bindings {
		if !b.Live() {
			continue
		}
		if pass.Skip != nil && pass.Skip(b) {
			continue
		}
		if !scope.Intersects(b.Scopes, pass.Active) {
			result.ScopeRejected++
			continue
		}

		result.Evaluated++
		h, ok := FirstMatch(b.Hotkeys, pass.Pressed)
		if !ok {
			continue
		}
		result.Consumed += len(h.Keys)

		fired := Fired{Binding: b, Hotkey: h, Trigger: pass.Trigger}
		result.Fired = append(result.Fired, fired)
		if pass.OnFire != nil {
			pass.OnFire(fired)
		}
		if b.Callback != nil {
			b.Callback()
		}
	}

	return result
}
