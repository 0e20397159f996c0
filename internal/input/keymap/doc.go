// Package keymap matches parsed hotkeys against the pressed-key state and
// manages binding registrations.
//
// # Key Concepts
//
// Binding: one registration of a key specification, its scopes and a
// callback. A specification may list comma-separated alternatives.
//
// Registry: the live bindings of one listener, in registration order.
// Register and Unregister are O(1) amortized.
//
// Keymap: a named, file-loadable collection of binding declarations that
// refer to actions by name.
//
// # Matching
//
// A hotkey matches when every required modifier is held on either side
// (ctrl accepts controlleft or controlright) and every literal key is held.
// Modifiers the hotkey does not require are never checked, so "k" still
// matches while an unrelated modifier is down. Alternatives are tried in
// order and the first match wins; only its literal keys are consumed.
//
// # Evaluation
//
// Evaluate runs one pass over a set of bindings against a single snapshot
// of pressed keys and active scopes:
//
//	result := keymap.Evaluate(registry.Bindings(), keymap.Pass{
//	    Trigger: keymap.Trigger{Mode: keymap.ModeGlobal},
//	    Pressed: keys.Snapshot(),
//	    Active:  scopes.Snapshot(),
//	})
//
// The same function serves the global listener and element-scoped
// listeners; only the Trigger differs.
package keymap
