package key

import "strings"

// Modifier represents keyboard modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Meta key (Cmd on macOS, Win on Windows).
	ModMeta
)

// AllModifiers lists every modifier in canonical order.
var AllModifiers = []Modifier{ModCtrl, ModShift, ModAlt, ModMeta}

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift returns true if Shift is required.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasCtrl returns true if Control is required.
func (m Modifier) HasCtrl() bool {
	return m.Has(ModCtrl)
}

// HasAlt returns true if Alt is required.
func (m Modifier) HasAlt() bool {
	return m.Has(ModAlt)
}

// HasMeta returns true if Meta is required.
func (m Modifier) HasMeta() bool {
	return m.Has(ModMeta)
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// Name returns the canonical lower-case token of a single modifier.
func (m Modifier) Name() string {
	switch m {
	case ModCtrl:
		return "ctrl"
	case ModShift:
		return "shift"
	case ModAlt:
		return "alt"
	case ModMeta:
		return "meta"
	default:
		return ""
	}
}

// String returns the canonical representation like "ctrl+alt".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	for _, mod := range AllModifiers {
		if m.Has(mod) {
			parts = append(parts, mod.Name())
		}
	}
	return strings.Join(parts, "+")
}

// Variants returns the left and right physical key identifiers that
// satisfy a single modifier. Returns empty strings for combined or
// unknown modifiers.
func (m Modifier) Variants() (left, right string) {
	switch m {
	case ModCtrl:
		return ControlLeft, ControlRight
	case ModShift:
		return ShiftLeft, ShiftRight
	case ModAlt:
		return AltLeft, AltRight
	case ModMeta:
		return MetaLeft, MetaRight
	default:
		return "", ""
	}
}

// modifierNameMap maps modifier tokens (lowercase) to Modifier values.
var modifierNameMap = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"shift":   ModShift,
	"alt":     ModAlt,
	"option":  ModAlt,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"command": ModMeta,
	"super":   ModMeta,
	"win":     ModMeta,
}

// ModifierFromName returns the Modifier for a given token (case-insensitive).
// Returns ModNone if the token is not a modifier name.
func ModifierFromName(name string) Modifier {
	if m, ok := modifierNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m
	}
	return ModNone
}

