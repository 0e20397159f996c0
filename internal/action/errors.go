package action

import "errors"

// Action errors.
var (
	// ErrUnknownAction indicates no factory is registered for an action.
	ErrUnknownAction = errors.New("action: unknown action")

	// ErrMissingArg indicates a required argument is absent.
	ErrMissingArg = errors.New("action: missing argument")

	// ErrInvalidArg indicates an argument has the wrong type.
	ErrInvalidArg = errors.New("action: invalid argument")

	// ErrNoScriptRunner indicates the lua action was used without a
	// script runner.
	ErrNoScriptRunner = errors.New("action: no script runner configured")
)
