// Package input runs hotkey bindings against the live keyboard state.
//
// A Context is one input session. It owns the pressed-key state, the set
// of active scopes and a global binding registry. The host feeds key
// presses and releases into Context.Keys and switches scopes through
// Context.Scopes; bindings never see raw events.
//
// # Activation Modes
//
// Global bindings, registered with Context.Register, are evaluated by the
// session Handler on every change to the pressed keys or the active scopes.
// There is no held state: every pass whose predicate holds fires the
// callback again, so a binding held through a key repeat fires once per
// repeat.
//
// Element bindings, registered on Context.Element(name), are evaluated
// only when the host delivers a key-down to that element with
// Element.HandleKeyDown. The element's FireMode decides whether
// auto-repeated key-downs are evaluated.
//
// Both modes share keymap.Evaluate: within one pass every binding sees the
// same key and scope snapshots, bindings are visited in registration order,
// and a binding fires at most once.
//
// # Usage
//
//	ctx := input.NewContext(input.DefaultConfig())
//	defer ctx.Close()
//
//	ctx.Register("ctrl+s,cmd+s", []string{"editor"}, save)
//	ctx.Scopes().Enable("editor")
//
//	ctx.Keys().Press("controlleft", ev)
//	ctx.Keys().Press("s", ev) // save runs here
package input
