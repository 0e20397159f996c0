package key

import (
	"strconv"
	"strings"
)

// Physical modifier identifiers as they appear in a pressed-key map.
// Hosts report left and right modifier keys separately.
const (
	ControlLeft  = "controlleft"
	ControlRight = "controlright"
	ShiftLeft    = "shiftleft"
	ShiftRight   = "shiftright"
	AltLeft      = "altleft"
	AltRight     = "altright"
	MetaLeft     = "metaleft"
	MetaRight    = "metaright"
)

// Identifiers for common non-character keys.
const (
	Escape      = "escape"
	Enter       = "enter"
	Tab         = "tab"
	Backspace   = "backspace"
	Delete      = "delete"
	Insert      = "insert"
	Home        = "home"
	End         = "end"
	PageUp      = "pageup"
	PageDown    = "pagedown"
	ArrowUp     = "arrowup"
	ArrowDown   = "arrowdown"
	ArrowLeft   = "arrowleft"
	ArrowRight  = "arrowright"
	Space       = "space"
	Pause       = "pause"
	PrintScreen = "printscreen"
	ScrollLock  = "scrolllock"
	NumLock     = "numlock"
	CapsLock    = "capslock"
)

// modifierIdentifiers maps physical modifier identifiers to their modifier.
var modifierIdentifiers = map[string]Modifier{
	ControlLeft:  ModCtrl,
	ControlRight: ModCtrl,
	ShiftLeft:    ModShift,
	ShiftRight:   ModShift,
	AltLeft:      ModAlt,
	AltRight:     ModAlt,
	MetaLeft:     ModMeta,
	MetaRight:    ModMeta,
}

// ModifierOf returns the modifier a physical identifier stands for.
func ModifierOf(id string) (Modifier, bool) {
	m, ok := modifierIdentifiers[id]
	return m, ok
}

// FunctionKey returns the identifier of function key n ("f1".."f24").
// Returns an empty string for n outside 1..24.
func FunctionKey(n int) string {
	if n < 1 || n > 24 {
		return ""
	}
	return "f" + strconv.Itoa(n)
}

// Normalize lower-cases and trims a raw identifier reported by a host.
func Normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// RuneIdentifier returns the identifier for a printable character key.
// Letters are lower-cased; the space bar maps to Space.
func RuneIdentifier(r rune) string {
	if r == ' ' {
		return Space
	}
	return strings.ToLower(string(r))
}
