// Package lua runs hotkey actions written in Lua.
//
// Scripts execute in a sandboxed gopher-lua state: only the base, table,
// string and math libraries are opened, and functions that load code from
// files or strings are removed. Each execution is bounded by a timeout.
//
// The hotkeys module exposes the input session to scripts:
//
//	hotkeys.enable_scope(name)   -- true if the scope was inactive
//	hotkeys.disable_scope(name)  -- true if the scope was active
//	hotkeys.toggle_scope(name)   -- true if the scope is now active
//	hotkeys.is_active(name)
//	hotkeys.active_scopes()      -- sorted array of scope names
//	hotkeys.is_pressed(key)      -- e.g. "controlleft", "s"
//	hotkeys.modifiers()          -- held modifiers, e.g. "ctrl+shift"
//	hotkeys.log(message [, fields])
//
// A State runs one script at a time. A script that triggers another Lua
// action while it is running, for example by enabling a scope that fires a
// Lua binding, gets ErrBusy for the nested call instead of deadlocking.
package lua
