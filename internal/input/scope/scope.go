// Package scope tracks which named UI regions are active and gates
// bindings on them.
//
// A binding declares the scopes it belongs to; it is evaluated only while
// at least one of them is active. A binding that declares no scopes never
// fires. The wildcard scope Global is an ordinary scope name that sessions
// enable by default, so bindings registered under it behave as global
// shortcuts until it is disabled.
package scope

import (
	"sort"
	"strings"
	"sync"

	"github.com/dshills/hotkeys/internal/notify"
)

// Global is the conventional scope for application-wide bindings.
const Global = "*"

// Source is the notify.Change source for scope changes.
const Source = "scopes"

// Snapshot is a point-in-time view of the active scopes.
// A nil Snapshot is the empty set.
type Snapshot map[string]struct{}

// SnapshotOf builds a Snapshot from scope names.
func SnapshotOf(names ...string) Snapshot {
	s := make(Snapshot, len(names))
	for _, n := range names {
		if n = Normalize(n); n != "" {
			s[n] = struct{}{}
		}
	}
	return s
}

// Contains returns true if name is active.
func (s Snapshot) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the active scope names in sorted order.
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Intersects reports whether any declared scope is active.
// Zero declared scopes never intersect.
func Intersects(declared []string, active Snapshot) bool {
	for _, name := range declared {
		if active.Contains(name) {
			return true
		}
	}
	return false
}

// Set is the live set of active scopes.
type Set struct {
	mu     sync.RWMutex
	active map[string]struct{}

	notifier *notify.Notifier
}

// NewSet creates a scope set with the given scopes initially active.
func NewSet(initial ...string) *Set {
	s := &Set{
		active:   make(map[string]struct{}),
		notifier: notify.New(),
	}
	for _, name := range initial {
		if name = Normalize(name); name != "" {
			s.active[name] = struct{}{}
		}
	}
	return s
}

// Enable activates a scope. Returns false if it was already active.
func (s *Set) Enable(name string) bool {
	name = Normalize(name)
	if name == "" {
		return false
	}

	s.mu.Lock()
	if _, ok := s.active[name]; ok {
		s.mu.Unlock()
		return false
	}
	s.active[name] = struct{}{}
	s.mu.Unlock()

	s.notifier.Notify(notify.Change{Key: name, Type: notify.ChangeAdd, Source: Source})
	return true
}

// Disable deactivates a scope. Returns false if it was not active.
func (s *Set) Disable(name string) bool {
	name = Normalize(name)

	s.mu.Lock()
	if _, ok := s.active[name]; !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.active, name)
	s.mu.Unlock()

	s.notifier.Notify(notify.Change{Key: name, Type: notify.ChangeRemove, Source: Source})
	return true
}

// Toggle flips a scope and returns whether it is now active.
func (s *Set) Toggle(name string) bool {
	name = Normalize(name)
	if name == "" {
		return false
	}

	s.mu.Lock()
	_, wasActive := s.active[name]
	change := notify.Change{Key: name, Source: Source}
	if wasActive {
		delete(s.active, name)
		change.Type = notify.ChangeRemove
	} else {
		s.active[name] = struct{}{}
		change.Type = notify.ChangeAdd
	}
	s.mu.Unlock()

	s.notifier.Notify(change)
	return !wasActive
}

// Replace makes exactly the given scopes active, with a single
// notification.
func (s *Set) Replace(names ...string) {
	next := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name = Normalize(name); name != "" {
			next[name] = struct{}{}
		}
	}

	s.mu.Lock()
	s.active = next
	s.mu.Unlock()

	s.notifier.Notify(notify.Change{Type: notify.ChangeReset, Source: Source})
}

// IsActive returns true if name is active.
func (s *Set) IsActive(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.active[Normalize(name)]
	return ok
}

// Active returns the active scope names in sorted order.
func (s *Set) Active() []string {
	return s.Snapshot().Names()
}

// Snapshot returns a copy of the active scopes.
func (s *Set) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(Snapshot, len(s.active))
	for n := range s.active {
		snap[n] = struct{}{}
	}
	return snap
}

// Subscribe registers an observer for scope changes.
func (s *Set) Subscribe(observer notify.Observer) *notify.Subscription {
	return s.notifier.Subscribe(observer)
}

// Close drops all observers.
func (s *Set) Close() {
	s.notifier.Close()
}

// Normalize returns the canonical form of a scope name.
func Normalize(name string) string {
	return strings.TrimSpace(name)
}
