// Package action maps the named actions of keymap files to callbacks.
//
// A keymap declaration names an action and supplies fixed arguments:
//
//	[[bindings]]
//	keys = "ctrl+b"
//	action = "scope.toggle"
//	args = { scope = "sidebar" }
//
// The Registry resolves the name to a Factory, which validates the
// arguments once at load time and returns the callback that is registered
// with the binding. Built-in actions are installed by RegisterBuiltins.
package action
