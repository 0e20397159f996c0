package keymap

import (
	"sync"

	"github.com/google/uuid"
)

// Registry holds the live bindings of one listener in registration order.
type Registry struct {
	mu sync.RWMutex

	// byHandle indexes live bindings.
	byHandle map[Handle]*Binding

	// order holds bindings in registration order, including removed ones
	// until the next compaction.
	order []*Binding

	// dead counts removed bindings still present in order.
	dead int

	newHandle func() Handle
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// withHandleGenerator overrides how handles are generated.
func withHandleGenerator(gen func() Handle) RegistryOption {
	return func(r *Registry) {
		r.newHandle = gen
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		byHandle: make(map[Handle]*Binding),
		newHandle: func() Handle {
			return Handle(uuid.New().String())
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register parses spec and adds a binding. Parsing is lenient: a spec that
// can never match still registers and simply never fires.
func (r *Registry) Register(spec string, scopes []string, cb func(), opts ...BindingOption) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := newBinding(r.newHandle(), spec, scopes, cb, opts...)
	r.byHandle[b.Handle] = b
	r.order = append(r.order, b)
	return b.Handle
}

// Unregister removes a binding. It takes effect immediately, including for
// an evaluation pass already in progress. Returns false if the handle is
// unknown.
func (r *Registry) Unregister(h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.unregisterLocked(h)
}

// UnregisterSource removes every binding declared by source and returns
// how many were removed.
func (r *Registry) UnregisterSource(source string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var handles []Handle
	for h, b := range r.byHandle {
		if b.Source == source {
			handles = append(handles, h)
		}
	}
	for _, h := range handles {
		r.unregisterLocked(h)
	}
	return len(handles)
}

// unregisterLocked removes a binding without acquiring the lock.
// Caller must hold the write lock.
func (r *Registry) unregisterLocked(h Handle) bool {
	b, ok := r.byHandle[h]
	if !ok {
		return false
	}
	b.removed.Store(true)
	delete(r.byHandle, h)
	r.dead++

	if r.dead > len(r.order)/2 {
		r.compactLocked()
	}
	return true
}

// compactLocked drops removed bindings from the order slice.
func (r *Registry) compactLocked() {
	live := make([]*Binding, 0, len(r.byHandle))
	for _, b := range r.order {
		if b.Live() {
			live = append(live, b)
		}
	}
	r.order = live
	r.dead = 0
}

// Get returns the live binding for a handle, or nil.
func (r *Registry) Get(h Handle) *Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byHandle[h]
}

// Bindings returns the live bindings in registration order.
func (r *Registry) Bindings() []*Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Binding, 0, len(r.byHandle))
	for _, b := range r.order {
		if b.Live() {
			result = append(result, b)
		}
	}
	return result
}

// Len returns the number of live bindings.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byHandle)
}

// Clear removes every binding.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.byHandle {
		b.removed.Store(true)
	}
	r.byHandle = make(map[Handle]*Binding)
	r.order = nil
	r.dead = 0
}
