package action

import "fmt"

// Args are the fixed arguments of a declaration.
type Args map[string]any

// String returns a required string argument.
func (a Args) String(name string) (string, error) {
	v, ok := a[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingArg, name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q must be a string, got %T", ErrInvalidArg, name, v)
	}
	if s == "" {
		return "", fmt.Errorf("%w: %q", ErrMissingArg, name)
	}
	return s, nil
}

// StringOr returns a string argument, or def when it is absent.
func (a Args) StringOr(name, def string) (string, error) {
	if _, ok := a[name]; !ok {
		return def, nil
	}
	return a.String(name)
}
