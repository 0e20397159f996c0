package backend

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/hotkeys/internal/input/key"
)

// Stroke is one terminal key event expressed as key identifiers.
// Terminals report no key-up events and no left/right distinction, so a
// stroke carries the side-agnostic modifiers and a single key.
type Stroke struct {
	Key       string
	Modifiers key.Modifier
}

// Identifiers returns the physical identifiers pressed for the stroke:
// the left variant of each modifier followed by the key.
func (s Stroke) Identifiers() []string {
	ids := make([]string, 0, 5)
	for _, mod := range key.AllModifiers {
		if s.Modifiers.Has(mod) {
			left, _ := mod.Variants()
			ids = append(ids, left)
		}
	}
	return append(ids, s.Key)
}

// String renders the stroke as a key specification, e.g. "ctrl+s".
func (s Stroke) String() string {
	return key.NewHotkey(s.Modifiers, s.Key).String()
}

// keyNames maps named tcell keys to identifiers.
var keyNames = map[tcell.Key]string{
	tcell.KeyEscape:     key.Escape,
	tcell.KeyEnter:      key.Enter,
	tcell.KeyTab:        key.Tab,
	tcell.KeyBackspace:  key.Backspace,
	tcell.KeyBackspace2: key.Backspace,
	tcell.KeyDelete:     key.Delete,
	tcell.KeyInsert:     key.Insert,
	tcell.KeyHome:       key.Home,
	tcell.KeyEnd:        key.End,
	tcell.KeyPgUp:       key.PageUp,
	tcell.KeyPgDn:       key.PageDown,
	tcell.KeyUp:         key.ArrowUp,
	tcell.KeyDown:       key.ArrowDown,
	tcell.KeyLeft:       key.ArrowLeft,
	tcell.KeyRight:      key.ArrowRight,
	tcell.KeyPause:      key.Pause,
	tcell.KeyPrint:      key.PrintScreen,
}

// Translate converts a tcell key event into a stroke.
// Returns false for events that carry no usable key.
func Translate(ev *tcell.EventKey) (Stroke, bool) {
	if ev == nil {
		return Stroke{}, false
	}
	mods := convertMod(ev.Modifiers())
	k := ev.Key()

	switch {
	case k == tcell.KeyRune:
		r := ev.Rune()
		if unicode.IsUpper(r) {
			mods = mods.With(key.ModShift)
		}
		return Stroke{Key: key.RuneIdentifier(r), Modifiers: mods}, true

	case k == tcell.KeyBacktab:
		return Stroke{Key: key.Tab, Modifiers: mods.With(key.ModShift)}, true

	case k == tcell.KeyCtrlSpace:
		return Stroke{Key: key.Space, Modifiers: mods.With(key.ModCtrl)}, true

	case k >= tcell.KeyF1 && k <= tcell.KeyF24:
		return Stroke{Key: key.FunctionKey(int(k-tcell.KeyF1) + 1), Modifiers: mods}, true
	}

	if name, ok := keyNames[k]; ok {
		return Stroke{Key: name, Modifiers: mods}, true
	}

	// Control characters not claimed above are ctrl+letter.
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		letter := rune('a' + (k - tcell.KeyCtrlA))
		return Stroke{Key: string(letter), Modifiers: mods.With(key.ModCtrl)}, true
	}

	return Stroke{}, false
}

// convertMod converts a tcell modifier mask.
func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result = result.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		result = result.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		result = result.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		result = result.With(key.ModMeta)
	}
	return result
}
