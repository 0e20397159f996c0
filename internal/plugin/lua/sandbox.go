package lua

import (
	lua "github.com/yuin/gopher-lua"
)

// unsafeGlobals are base library functions that load code from files or
// strings.
var unsafeGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"require",
	"module",
}

// openSafeLibraries opens only safe Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	// Open base library (print, type, pairs, ipairs, etc.)
	lua.OpenBase(L)

	// Open safe libraries
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Not opened: io, os, debug, package, channel.
}

// installSandbox removes globals that would let a script escape the
// sandbox.
func installSandbox(L *lua.LState) {
	for _, name := range unsafeGlobals {
		L.SetGlobal(name, lua.LNil)
	}
}
