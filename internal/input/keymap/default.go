package keymap

import "github.com/dshills/hotkeys/internal/input/scope"

// Scope names used by the default keymap.
const (
	ScopeEditor  = "editor"
	ScopeSidebar = "sidebar"
	ScopeModal   = "modal"
)

// DefaultKeymap returns the bindings the demo application starts with.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name:   "default",
		Source: "default",
		Scopes: []string{scope.Global},
		Bindings: []Declaration{
			// Application
			{Keys: "ctrl+q", Action: "app.quit", Description: "Quit", Category: "Application"},
			{Keys: "f1", Action: "log", Args: map[string]any{"message": "help requested"}, Description: "Help", Category: "Application"},

			// Scopes
			{Keys: "ctrl+b", Action: "scope.toggle", Args: map[string]any{"scope": ScopeSidebar}, Description: "Toggle sidebar", Category: "Scopes"},
			{Keys: "ctrl+e", Action: "scope.toggle", Args: map[string]any{"scope": ScopeEditor}, Description: "Toggle editor", Category: "Scopes"},
			{Keys: "escape", Scopes: []string{ScopeModal}, Action: "scope.disable", Args: map[string]any{"scope": ScopeModal}, Description: "Close modal", Category: "Scopes"},
			{Keys: "ctrl+p,cmd+p", Action: "scope.enable", Args: map[string]any{"scope": ScopeModal}, Description: "Open palette", Category: "Scopes"},

			// Editor
			{Keys: "ctrl+s,cmd+s", Scopes: []string{ScopeEditor}, Action: "log", Args: map[string]any{"message": "save"}, Description: "Save", Category: "Editor"},
			{Keys: "ctrl+shift+k", Scopes: []string{ScopeEditor}, Action: "log", Args: map[string]any{"message": "delete line"}, Description: "Delete line", Category: "Editor"},

			// Sidebar
			{Keys: "enter", Scopes: []string{ScopeSidebar}, Action: "log", Args: map[string]any{"message": "open entry"}, Description: "Open entry", Category: "Sidebar"},
		},
	}
}
