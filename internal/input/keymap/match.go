package keymap

import (
	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/input/keystate"
)

// ModifiersHeld reports whether every modifier in mods is held on at least
// one side. Modifiers outside mods are not checked.
func ModifiersHeld(mods key.Modifier, pressed keystate.Snapshot) bool {
	for _, mod := range key.AllModifiers {
		if !mods.Has(mod) {
			continue
		}
		left, right := mod.Variants()
		if !pressed.HasAny(left, right) {
			return false
		}
	}
	return true
}

// Matches reports whether h is satisfied by the pressed keys. On a match
// every literal key of h is consumed; a failed match consumes nothing.
func Matches(h key.Hotkey, pressed keystate.Snapshot) bool {
	if !ModifiersHeld(h.Modifiers, pressed) {
		return false
	}

	for _, k := range h.Keys {
		if !pressed.Has(k) {
			return false
		}
	}

	for _, k := range h.Keys {
		pressed.Consume(k)
	}
	return true
}

// FirstMatch tries alternatives in order and returns the first that
// matches. Only the returned alternative's keys are consumed.
func FirstMatch(alternatives []key.Hotkey, pressed keystate.Snapshot) (key.Hotkey, bool) {
	for _, h := range alternatives {
		if Matches(h, pressed) {
			return h, true
		}
	}
	return key.Hotkey{}, false
}
