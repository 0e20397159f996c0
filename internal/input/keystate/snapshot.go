package keystate

import "sort"

// Snapshot is a point-in-time view of the pressed keys.
// Membership never changes; the only permitted mutation is consuming an
// entry. A nil Snapshot behaves as an empty one.
type Snapshot map[string]*Entry

// SnapshotOf builds a Snapshot from bare identifiers, with no tokens.
// It is intended for hosts that do not track raw events, and for tests.
func SnapshotOf(keys ...string) Snapshot {
	s := make(Snapshot, len(keys))
	for _, k := range keys {
		if k == "" {
			continue
		}
		s[k] = &Entry{Key: k}
	}
	return s
}

// Has returns true if key is held.
func (s Snapshot) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// HasAny returns true if any of the keys is held.
func (s Snapshot) HasAny(keys ...string) bool {
	for _, k := range keys {
		if s.Has(k) {
			return true
		}
	}
	return false
}

// Get returns the entry for key, or nil.
func (s Snapshot) Get(key string) *Entry {
	return s[key]
}

// Consume consumes the entry for key if it is held.
func (s Snapshot) Consume(key string) bool {
	e, ok := s[key]
	if !ok {
		return false
	}
	e.Consume()
	return true
}

// Keys returns the held identifiers in sorted order.
func (s Snapshot) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of held keys.
func (s Snapshot) Len() int {
	return len(s)
}
