package keystate

import (
	"sync"
	"time"

	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/notify"
)

// Source is the notify.Change source for key state changes.
const Source = "keys"

// State is the live pressed-key map.
type State struct {
	mu      sync.RWMutex
	entries map[string]*Entry

	notifier *notify.Notifier
	now      func() time.Time
}

// Option configures a State.
type Option func(*State)

// WithClock sets the time source used for Entry.PressedAt.
func WithClock(now func() time.Time) Option {
	return func(s *State) {
		s.now = now
	}
}

// New creates an empty pressed-key state.
func New(opts ...Option) *State {
	s := &State{
		entries:  make(map[string]*Entry),
		notifier: notify.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Press records id as held with the raw token of its event.
// Identifiers are normalized; empty identifiers are ignored.
// Returns true if the key was already held (auto-repeat), in which case
// the stored token is replaced and the press time kept.
func (s *State) Press(id string, token any) (repeat bool) {
	id = key.Normalize(id)
	if id == "" {
		return false
	}

	s.mu.Lock()
	if e, ok := s.entries[id]; ok {
		e.setToken(token)
		s.mu.Unlock()
		s.notifier.Notify(notify.Change{Key: id, Type: notify.ChangeUpdate, Source: Source})
		return true
	}
	s.entries[id] = newEntry(id, token, s.now())
	s.mu.Unlock()

	s.notifier.Notify(notify.Change{Key: id, Type: notify.ChangeAdd, Source: Source})
	return false
}

// Release removes id. Returns false if it was not held.
func (s *State) Release(id string) bool {
	id = key.Normalize(id)

	s.mu.Lock()
	if _, ok := s.entries[id]; !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.entries, id)
	s.mu.Unlock()

	s.notifier.Notify(notify.Change{Key: id, Type: notify.ChangeRemove, Source: Source})
	return true
}

// ReleaseAll clears every held key, e.g. when the host window loses focus.
func (s *State) ReleaseAll() {
	s.mu.Lock()
	if len(s.entries) == 0 {
		s.mu.Unlock()
		return
	}
	s.entries = make(map[string]*Entry)
	s.mu.Unlock()

	s.notifier.Notify(notify.Change{Type: notify.ChangeReset, Source: Source})
}

// IsPressed returns true if id is held.
func (s *State) IsPressed(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[key.Normalize(id)]
	return ok
}

// Get returns the entry for id, or nil.
func (s *State) Get(id string) *Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[key.Normalize(id)]
}

// Len returns the number of held keys.
func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Snapshot returns a consistent view of the held keys. Entries are shared
// with the live state, so consuming through the snapshot marks the live
// entry.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(Snapshot, len(s.entries))
	for k, e := range s.entries {
		snap[k] = e
	}
	return snap
}

// Modifiers returns the side-agnostic modifiers currently held.
func (s *State) Modifiers() key.Modifier {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var mods key.Modifier
	for id := range s.entries {
		if m, ok := key.ModifierOf(id); ok {
			mods = mods.With(m)
		}
	}
	return mods
}

// Subscribe registers an observer for every press, repeat and release.
func (s *State) Subscribe(observer notify.Observer) *notify.Subscription {
	return s.notifier.Subscribe(observer)
}

// Close drops all observers.
func (s *State) Close() {
	s.notifier.Close()
}
