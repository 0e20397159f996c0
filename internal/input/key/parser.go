package key

import "strings"

// Separators used in key specifications.
const (
	// CombinationSeparator joins the tokens of one combination.
	CombinationSeparator = "+"

	// AlternativeSeparator joins alternative combinations.
	AlternativeSeparator = ","
)

// Parse parses a single key combination such as "ctrl+alt+delete".
//
// Tokens are split on "+", lower-cased and trimmed. Recognized modifier
// names set the matching modifier; every other token, including an empty
// one, becomes a literal key. Parse never fails: a literal no host reports
// leaves the hotkey permanently inert.
func Parse(spec string) Hotkey {
	var mods Modifier
	var keys []string

	for _, token := range strings.Split(spec, CombinationSeparator) {
		token = Normalize(token)
		if mod := ModifierFromName(token); mod != ModNone {
			mods = mods.With(mod)
			continue
		}
		keys = append(keys, token)
	}

	return NewHotkey(mods, keys...)
}

// ParseAlternatives parses a comma-separated list of combinations such as
// "ctrl+k,cmd+k". Duplicates are dropped; the remaining hotkeys keep the
// order in which they first appear, which is the order they are tried in
// at match time.
func ParseAlternatives(spec string) []Hotkey {
	parts := strings.Split(spec, AlternativeSeparator)
	result := make([]Hotkey, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))

	for _, part := range parts {
		h := Parse(part)
		id := h.ID()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, h)
	}

	return result
}

// FormatAlternatives renders hotkeys back into a canonical specification.
func FormatAlternatives(hotkeys []Hotkey) string {
	parts := make([]string, 0, len(hotkeys))
	for _, h := range hotkeys {
		parts = append(parts, h.String())
	}
	return strings.Join(parts, AlternativeSeparator)
}

// NormalizeSpec parses and re-formats a specification to its canonical form.
func NormalizeSpec(spec string) string {
	return FormatAlternatives(ParseAlternatives(spec))
}
