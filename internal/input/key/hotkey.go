package key

import (
	"slices"
	"strings"
)

// Hotkey is one canonical key-combination alternative: a set of required
// modifiers plus a set of literal, non-modifier keys.
//
// A Hotkey is immutable once parsed. Keys are stored sorted and without
// duplicates, so two hotkeys parsed from equivalent specs are Equal and
// share the same ID.
type Hotkey struct {
	// Modifiers lists the required modifiers. Unlisted modifiers are not
	// constrained.
	Modifiers Modifier

	// Keys are the lower-cased literal key identifiers that must be held.
	Keys []string
}

// NewHotkey builds a Hotkey from modifiers and literal keys, normalizing
// the keys into sorted, lower-cased, de-duplicated form.
func NewHotkey(mods Modifier, keys ...string) Hotkey {
	normalized := make([]string, 0, len(keys))
	for _, k := range keys {
		normalized = append(normalized, Normalize(k))
	}
	slices.Sort(normalized)
	return Hotkey{
		Modifiers: mods,
		Keys:      slices.Compact(normalized),
	}
}

// Equal reports whether two hotkeys describe the same combination.
func (h Hotkey) Equal(other Hotkey) bool {
	return h.Modifiers == other.Modifiers && slices.Equal(h.Keys, other.Keys)
}

// ID returns a canonical string usable as a map key.
func (h Hotkey) ID() string {
	return h.String()
}

// String returns the canonical form, e.g. "ctrl+shift+k".
// Modifiers come first in ctrl, shift, alt, meta order.
func (h Hotkey) String() string {
	parts := make([]string, 0, len(AllModifiers)+len(h.Keys))
	if mods := h.Modifiers.String(); mods != "" {
		parts = append(parts, mods)
	}
	parts = append(parts, h.Keys...)
	return strings.Join(parts, "+")
}

// HasKey returns true if k is one of the literal keys.
func (h Hotkey) HasKey(k string) bool {
	_, found := slices.BinarySearch(h.Keys, k)
	return found
}

// Trivial returns true if the hotkey has no requirements at all and so
// matches any pressed-key state, including an empty one.
func (h Hotkey) Trivial() bool {
	return h.Modifiers.IsEmpty() && len(h.Keys) == 0
}

// Inert returns true if the hotkey can never match because it requires an
// empty key identifier (produced by specs like "ctrl+" or "a,,b").
func (h Hotkey) Inert() bool {
	return h.HasKey("")
}
