package action

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/hotkeys/internal/input/keymap"
)

// Factory builds the callback of one declaration from its arguments.
// It is called once per binding at load time.
type Factory func(args Args) (func(), error)

// Registry manages action factories by name.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty action registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds or replaces the factory for an action name.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// RegisterFunc registers an action that ignores its arguments.
func (r *Registry) RegisterFunc(name string, fn func()) {
	r.Register(name, func(Args) (func(), error) {
		return fn, nil
	})
}

// Unregister removes an action name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.factories, name)
}

// Has returns true if a factory is registered for the action.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// List returns all registered action names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build resolves an action and builds its callback.
func (r *Registry) Build(name string, args Args) (func(), error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}

	cb, err := f(args)
	if err != nil {
		return nil, fmt.Errorf("action %q: %w", name, err)
	}
	return cb, nil
}

// Callback builds the callback for a keymap declaration.
func (r *Registry) Callback(d keymap.Declaration) (func(), error) {
	return r.Build(d.Action, Args(d.Args))
}
