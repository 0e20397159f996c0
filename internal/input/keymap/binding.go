package keymap

import (
	"sync/atomic"

	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/input/scope"
)

// Handle identifies a binding registration.
type Handle string

// Binding is one registered key specification with its scopes and callback.
// Everything except the live flag is fixed at registration.
type Binding struct {
	// Handle identifies this registration.
	Handle Handle

	// Spec is the specification as registered, e.g. "ctrl+k,cmd+k".
	Spec string

	// Hotkeys are the parsed alternatives in match order.
	Hotkeys []key.Hotkey

	// Scopes are the scopes this binding belongs to. At least one must be
	// active for the binding to fire.
	Scopes []string

	// Callback runs when the binding fires.
	Callback func()

	// Description provides documentation for the binding.
	Description string

	// Source indicates where this binding was declared.
	// Examples: "default", "user", "keymap:/path/to/file.toml"
	Source string

	// Category groups bindings for display purposes.
	Category string

	removed atomic.Bool
}

// BindingOption configures a Binding at registration.
type BindingOption func(*Binding)

// WithDescription sets the description for a binding.
func WithDescription(desc string) BindingOption {
	return func(b *Binding) {
		b.Description = desc
	}
}

// WithSource sets the source for a binding.
func WithSource(source string) BindingOption {
	return func(b *Binding) {
		b.Source = source
	}
}

// WithCategory sets the category for a binding.
func WithCategory(category string) BindingOption {
	return func(b *Binding) {
		b.Category = category
	}
}

func newBinding(handle Handle, spec string, scopes []string, cb func(), opts ...BindingOption) *Binding {
	b := &Binding{
		Handle:   handle,
		Spec:     spec,
		Hotkeys:  key.ParseAlternatives(spec),
		Scopes:   normalizeScopes(scopes),
		Callback: cb,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// normalizeScopes copies scopes in canonical form, dropping blank names.
func normalizeScopes(scopes []string) []string {
	out := make([]string, 0, len(scopes))
	for _, name := range scopes {
		if name = scope.Normalize(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// Live reports whether the binding is still registered.
func (b *Binding) Live() bool {
	return b != nil && !b.removed.Load()
}

// String returns the canonical specification of the binding.
func (b *Binding) String() string {
	return key.FormatAlternatives(b.Hotkeys)
}

// Inert reports whether the binding can never fire: it declares no scopes
// or every alternative requires an unpressable key.
func (b *Binding) Inert() bool {
	if len(b.Scopes) == 0 {
		return true
	}
	for _, h := range b.Hotkeys {
		if !h.Inert() {
			return false
		}
	}
	return true
}
