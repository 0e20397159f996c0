package input

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dshills/hotkeys/internal/input/keymap"
	"github.com/dshills/hotkeys/internal/input/keystate"
	"github.com/dshills/hotkeys/internal/input/scope"
)

// Context is one input session: the pressed-key state, the active scopes,
// the global binding registry and its evaluation loop, and any elements.
// It is created once per session and torn down with Close.
type Context struct {
	config Config
	logger zerolog.Logger

	keys     *keystate.State
	scopes   *scope.Set
	registry *keymap.Registry
	metrics  *Metrics
	handler  *Handler

	mu       sync.RWMutex
	elements map[string]*Element
	closed   bool
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the session logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Context) {
		c.logger = logger
	}
}

// WithKeyState uses an existing pressed-key state instead of a new one.
func WithKeyState(keys *keystate.State) Option {
	return func(c *Context) {
		c.keys = keys
	}
}

// NewContext creates a session and starts its global evaluation loop.
func NewContext(config Config, opts ...Option) *Context {
	c := &Context{
		config:   config,
		logger:   zerolog.Nop(),
		registry: keymap.NewRegistry(),
		metrics:  NewMetrics(),
		elements: make(map[string]*Element),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.keys == nil {
		c.keys = keystate.New()
	}
	c.scopes = scope.NewSet(config.InitialScopes...)
	c.metrics.SetEnabled(config.EnableMetrics)
	c.handler = newHandler(c.keys, c.scopes, c.registry, c.metrics, c.logger)
	return c
}

// Keys returns the session's pressed-key state.
func (c *Context) Keys() *keystate.State {
	return c.keys
}

// Scopes returns the session's active scope set.
func (c *Context) Scopes() *scope.Set {
	return c.scopes
}

// Registry returns the global binding registry.
func (c *Context) Registry() *keymap.Registry {
	return c.registry
}

// Metrics returns the session metrics.
func (c *Context) Metrics() *Metrics {
	return c.metrics
}

// Handler returns the global evaluation loop.
func (c *Context) Handler() *Handler {
	return c.handler
}

// Logger returns the session logger.
func (c *Context) Logger() zerolog.Logger {
	return c.logger
}

// Register adds a global binding that is evaluated on every key or scope
// change while one of scopes is active.
func (c *Context) Register(spec string, scopes []string, cb func(), opts ...keymap.BindingOption) keymap.Handle {
	return c.registry.Register(spec, scopes, cb, opts...)
}

// RegisterGlobal adds a global binding in the scope.Global scope.
func (c *Context) RegisterGlobal(spec string, cb func(), opts ...keymap.BindingOption) keymap.Handle {
	return c.Register(spec, []string{scope.Global}, cb, opts...)
}

// Unregister removes a global binding.
func (c *Context) Unregister(h keymap.Handle) bool {
	return c.registry.Unregister(h)
}

// Element returns the named element, creating it on first use.
// Returns nil after Close.
func (c *Context) Element(name string) *Element {
	c.mu.RLock()
	e, ok := c.elements[name]
	closed := c.closed
	c.mu.RUnlock()
	if ok {
		return e
	}
	if closed {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	if e, ok := c.elements[name]; ok {
		return e
	}
	e = newElement(name, c)
	c.elements[name] = e
	return e
}

// LookupElement returns the named element if it exists.
func (c *Context) LookupElement(name string) (*Element, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.elements[name]
	return e, ok
}

// Elements returns the element names in sorted order.
func (c *Context) Elements() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.elements))
	for name := range c.elements {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnregisterSource removes every binding with the given source from the
// global registry and every element, returning how many were removed.
func (c *Context) UnregisterSource(source string) int {
	n := c.registry.UnregisterSource(source)

	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.elements {
		n += e.registry.UnregisterSource(source)
	}
	return n
}

// Close stops the evaluation loop and drops every binding and observer.
// It is safe to call Close multiple times.
func (c *Context) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	elements := c.elements
	c.elements = make(map[string]*Element)
	c.mu.Unlock()

	c.handler.Close()
	c.registry.Clear()
	for _, e := range elements {
		e.registry.Clear()
	}
	c.keys.Close()
	c.scopes.Close()
}
