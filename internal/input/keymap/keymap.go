package keymap

import (
	"errors"
	"fmt"
	"maps"

	"github.com/dshills/hotkeys/internal/input/key"
)

// Validation problems reported by Keymap.Validate. None of them prevent
// loading; an affected binding is registered inert or skipped by the
// caller.
var (
	ErrEmptyKeys    = errors.New("empty keys")
	ErrEmptyAction  = errors.New("empty action")
	ErrNoScopes     = errors.New("no scopes declared, binding can never fire")
	ErrInertHotkey  = errors.New("alternative contains an empty key and can never match")
	ErrTrivialMatch = errors.New("alternative has no requirements and matches any key state")
)

// Keymap is a named collection of binding declarations, typically loaded
// from a file.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	// Source indicates where this keymap was defined.
	// Examples: "default", "user", "plugin:vim-surround"
	Source string

	// Scopes are applied to bindings that declare none.
	Scopes []string

	// Bindings are the declarations.
	Bindings []Declaration
}

// Declaration binds a key specification to a named action.
type Declaration struct {
	// Keys is the key specification, e.g. "ctrl+s,cmd+s".
	Keys string

	// Scopes the binding belongs to.
	Scopes []string

	// Action is the name of the action to run.
	// Examples: "scope.toggle", "log", "lua"
	Action string

	// Args are fixed arguments for the action.
	Args map[string]any

	// Description provides documentation for the binding.
	Description string

	// Category groups bindings for display purposes.
	Category string

	// Element, if set, attaches the binding to the named element instead of
	// the global listener.
	Element string
}

// NewKeymap creates a new keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		Name:     name,
		Bindings: make([]Declaration, 0),
	}
}

// WithSource sets the source for this keymap.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// WithScopes sets the default scopes for this keymap.
func (k *Keymap) WithScopes(scopes ...string) *Keymap {
	k.Scopes = scopes
	return k
}

// Add adds a declaration to this keymap.
func (k *Keymap) Add(keys, action string, scopes ...string) *Keymap {
	k.Bindings = append(k.Bindings, Declaration{
		Keys:   keys,
		Action: action,
		Scopes: scopes,
	})
	return k
}

// AddDeclaration adds a fully configured declaration to this keymap.
func (k *Keymap) AddDeclaration(d Declaration) *Keymap {
	k.Bindings = append(k.Bindings, d)
	return k
}

// ScopesFor returns the scopes a declaration binds under: its own, or the
// keymap defaults when it declares none.
func (k *Keymap) ScopesFor(d Declaration) []string {
	if len(d.Scopes) > 0 {
		return d.Scopes
	}
	return k.Scopes
}

// Validate reports problems with the declarations. Problems are wrapped
// errors carrying the binding index and keys; test them with errors.Is.
func (k *Keymap) Validate() []error {
	var problems []error
	report := func(i int, d Declaration, err error) {
		problems = append(problems, fmt.Errorf("binding %d (%s): %w", i, d.Keys, err))
	}

	for i, d := range k.Bindings {
		if d.Keys == "" {
			report(i, d, ErrEmptyKeys)
			continue
		}
		if d.Action == "" {
			report(i, d, ErrEmptyAction)
		}
		if len(k.ScopesFor(d)) == 0 {
			report(i, d, ErrNoScopes)
		}
		for _, h := range key.ParseAlternatives(d.Keys) {
			switch {
			case h.Inert():
				report(i, d, ErrInertHotkey)
			case h.Trivial():
				report(i, d, ErrTrivialMatch)
			}
		}
	}
	return problems
}

// Clone creates a deep copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	clone := &Keymap{
		Name:     k.Name,
		Source:   k.Source,
		Scopes:   append([]string(nil), k.Scopes...),
		Bindings: make([]Declaration, len(k.Bindings)),
	}
	for i, d := range k.Bindings {
		clone.Bindings[i] = d
		clone.Bindings[i].Scopes = append([]string(nil), d.Scopes...)
		if d.Args != nil {
			clone.Bindings[i].Args = maps.Clone(d.Args)
		}
	}
	return clone
}

// DeclarationCategory represents a category of declarations for display.
type DeclarationCategory struct {
	Name     string
	Bindings []Declaration
}

// GroupByCategory groups declarations by their category.
func GroupByCategory(decls []Declaration) []DeclarationCategory {
	categoryMap := make(map[string][]Declaration)
	order := make([]string, 0)

	for _, d := range decls {
		cat := d.Category
		if cat == "" {
			cat = "Other"
		}
		if _, exists := categoryMap[cat]; !exists {
			order = append(order, cat)
		}
		categoryMap[cat] = append(categoryMap[cat], d)
	}

	result := make([]DeclarationCategory, 0, len(order))
	for _, name := range order {
		result = append(result, DeclarationCategory{
			Name:     name,
			Bindings: categoryMap[name],
		})
	}
	return result
}
