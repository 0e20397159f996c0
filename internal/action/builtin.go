package action

import (
	"github.com/rs/zerolog"

	"github.com/dshills/hotkeys/internal/input/scope"
)

// Built-in action names.
const (
	ScopeEnable  = "scope.enable"
	ScopeDisable = "scope.disable"
	ScopeToggle  = "scope.toggle"
	Log          = "log"
	Lua          = "lua"
	Quit         = "app.quit"
)

// ScriptRunner executes a script source, e.g. a Lua state.
type ScriptRunner interface {
	DoString(source string) error
}

// Env holds the collaborators of the built-in actions.
type Env struct {
	// Scopes is the session scope set controlled by the scope actions.
	Scopes *scope.Set

	// Logger receives log action output and script errors.
	Logger zerolog.Logger

	// Scripts runs the lua action. Optional.
	Scripts ScriptRunner

	// Quit is called by app.quit. Optional.
	Quit func()
}

// RegisterBuiltins installs the built-in actions.
func RegisterBuiltins(r *Registry, env Env) {
	r.Register(ScopeEnable, scopeAction(env.Scopes, func(s *scope.Set, name string) { s.Enable(name) }))
	r.Register(ScopeDisable, scopeAction(env.Scopes, func(s *scope.Set, name string) { s.Disable(name) }))
	r.Register(ScopeToggle, scopeAction(env.Scopes, func(s *scope.Set, name string) { s.Toggle(name) }))
	r.Register(Log, logAction(env.Logger))
	r.Register(Lua, luaAction(env.Scripts, env.Logger))
	if env.Quit != nil {
		r.RegisterFunc(Quit, env.Quit)
	}
}

func scopeAction(scopes *scope.Set, apply func(*scope.Set, string)) Factory {
	return func(args Args) (func(), error) {
		name, err := args.String("scope")
		if err != nil {
			return nil, err
		}
		return func() {
			apply(scopes, name)
		}, nil
	}
}

func logAction(logger zerolog.Logger) Factory {
	return func(args Args) (func(), error) {
		msg, err := args.StringOr("message", "hotkey fired")
		if err != nil {
			return nil, err
		}
		return func() {
			logger.Info().Str("action", Log).Msg(msg)
		}, nil
	}
}

func luaAction(runner ScriptRunner, logger zerolog.Logger) Factory {
	return func(args Args) (func(), error) {
		if runner == nil {
			return nil, ErrNoScriptRunner
		}
		script, err := args.String("script")
		if err != nil {
			return nil, err
		}
		return func() {
			if err := runner.DoString(script); err != nil {
				logger.Error().Err(err).Str("action", Lua).Msg("script failed")
			}
		}, nil
	}
}
