package lua

import (
	"fmt"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/hotkeys/internal/input/keystate"
	"github.com/dshills/hotkeys/internal/input/scope"
)

// ModuleName is the global name of the session module.
const ModuleName = "hotkeys"

// Session is the input state exposed to scripts.
type Session struct {
	Scopes *scope.Set
	Keys   *keystate.State
	Logger zerolog.Logger
}

// OpenSession registers the hotkeys module for a session.
func (s *State) OpenSession(sess Session) {
	logger := sess.Logger.With().Str("source", "lua").Logger()

	s.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"enable_scope": func(L *lua.LState) int {
			L.Push(lua.LBool(sess.Scopes.Enable(L.CheckString(1))))
			return 1
		},
		"disable_scope": func(L *lua.LState) int {
			L.Push(lua.LBool(sess.Scopes.Disable(L.CheckString(1))))
			return 1
		},
		"toggle_scope": func(L *lua.LState) int {
			L.Push(lua.LBool(sess.Scopes.Toggle(L.CheckString(1))))
			return 1
		},
		"is_active": func(L *lua.LState) int {
			L.Push(lua.LBool(sess.Scopes.IsActive(L.CheckString(1))))
			return 1
		},
		"active_scopes": func(L *lua.LState) int {
			t := L.NewTable()
			for _, name := range sess.Scopes.Active() {
				t.Append(lua.LString(name))
			}
			L.Push(t)
			return 1
		},
		"is_pressed": func(L *lua.LState) int {
			if sess.Keys == nil {
				L.Push(lua.LFalse)
				return 1
			}
			L.Push(lua.LBool(sess.Keys.IsPressed(L.CheckString(1))))
			return 1
		},
		"modifiers": func(L *lua.LState) int {
			if sess.Keys == nil {
				L.Push(lua.LString(""))
				return 1
			}
			L.Push(lua.LString(sess.Keys.Modifiers().String()))
			return 1
		},
		"log": func(L *lua.LState) int {
			msg := L.CheckString(1)
			ev := logger.Info()
			if t, ok := L.Get(2).(*lua.LTable); ok {
				ev = ev.Fields(tableFields(t))
			}
			ev.Msg(msg)
			return 0
		},
	})
}

// tableFields converts the string-keyed entries of a table to log fields.
// Nested tables are rendered with their Lua string form.
func tableFields(t *lua.LTable) map[string]any {
	fields := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		ks, ok := k.(lua.LString)
		if !ok {
			return
		}
		fields[string(ks)] = toGoValue(v)
	})
	return fields
}

func toGoValue(lv lua.LValue) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LNilType:
		return nil
	default:
		return fmt.Sprint(lv)
	}
}
