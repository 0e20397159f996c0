// Package notify provides synchronous change notification for the live
// input state.
//
// Observers are called in subscription order on the goroutine that made
// the change, after the notifier's lock has been released, so an observer
// may subscribe, unsubscribe or trigger further changes.
package notify

import (
	"sync"
)

// ChangeType represents the type of state change.
type ChangeType int

const (
	// ChangeAdd indicates a key was pressed or a scope enabled.
	ChangeAdd ChangeType = iota

	// ChangeRemove indicates a key was released or a scope disabled.
	ChangeRemove

	// ChangeUpdate indicates an existing entry was refreshed, e.g. by
	// key auto-repeat.
	ChangeUpdate

	// ChangeReset indicates the whole state was replaced.
	ChangeReset
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeAdd:
		return "add"
	case ChangeRemove:
		return "remove"
	case ChangeUpdate:
		return "update"
	case ChangeReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Change represents a state change event.
type Change struct {
	// Key is the key identifier or scope name that changed.
	// Empty for reset events.
	Key string

	// Type is the type of change.
	Type ChangeType

	// Source identifies which state changed, e.g. "keys" or "scopes".
	Source string
}

// Observer is called when a change occurs.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
	once     sync.Once
}

// Unsubscribe removes this subscription. It is safe to call more than
// once and on a nil subscription.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.notifier == nil {
		return
	}
	s.once.Do(func() {
		s.notifier.unsubscribe(s.id)
	})
}

type registration struct {
	id       uint64
	observer Observer
}

// Notifier manages change subscriptions.
type Notifier struct {
	mu sync.RWMutex

	// observers in subscription order
	observers []registration

	// Next subscription ID
	nextID uint64

	// Closed flag for idempotent Close
	closed bool
}

// New creates a new Notifier.
func New() *Notifier {
	return &Notifier{}
}

// Subscribe registers an observer for all changes. Subscribing to a closed
// notifier returns a subscription that never fires.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	sub := &Subscription{id: n.nextID, notifier: n}
	if n.closed || observer == nil {
		return sub
	}
	n.observers = append(n.observers, registration{id: sub.id, observer: observer})
	return sub
}

// Notify delivers a change to every observer, in subscription order.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	if n.closed || len(n.observers) == 0 {
		n.mu.RUnlock()
		return
	}
	observers := make([]Observer, len(n.observers))
	for i, r := range n.observers {
		observers[i] = r.observer
	}
	n.mu.RUnlock()

	for _, observer := range observers {
		observer(change)
	}
}

// Len returns the number of active subscriptions.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.observers)
}

// Close drops every observer. It is safe to call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.closed = true
	n.observers = nil
}

// unsubscribe removes an observer by ID.
func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, r := range n.observers {
		if r.id == id {
			n.observers = append(n.observers[:i:i], n.observers[i+1:]...)
			return
		}
	}
}
