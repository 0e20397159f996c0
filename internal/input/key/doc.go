// Package key provides the canonical hotkey representation and its parser.
//
// This package defines the leaf types of the matching engine:
//
//   - Modifier: bit set of the four side-agnostic modifiers (Ctrl, Shift, Alt, Meta)
//   - Hotkey: one parsed key-combination alternative (modifiers plus literal keys)
//   - Identifier constants: the lower-cased key names hosts put in the pressed-key map
//
// # Key Specifications
//
// A specification is a "+"-separated list of tokens, case-insensitive, with
// surrounding whitespace ignored:
//
//	"ctrl+s"          - Ctrl and the literal key "s"
//	"Ctrl + Shift + K" - same as "ctrl+shift+k"
//	"cmd+enter"       - Meta and the literal key "enter"
//
// A caller-level specification may list comma-separated alternatives:
//
//	"ctrl+k,cmd+k"
//
// Parsing is lenient and never fails. Tokens that are not modifier names are
// taken literally; a literal no host ever reports simply never matches.
package key
