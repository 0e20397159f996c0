package keystate

import (
	"sync/atomic"
	"time"
)

// Suppressor is implemented by host event tokens whose default action can
// be cancelled, e.g. a browser KeyboardEvent wrapper.
type Suppressor interface {
	PreventDefault()
}

// Entry is one held key.
type Entry struct {
	// Key is the canonical identifier.
	Key string

	// PressedAt is when the key went down.
	PressedAt time.Time

	token    atomic.Value
	consumed atomic.Bool
}

type tokenBox struct {
	v any
}

func newEntry(key string, token any, now time.Time) *Entry {
	e := &Entry{Key: key, PressedAt: now}
	e.setToken(token)
	return e
}

// Token returns the raw host token of the most recent press event.
func (e *Entry) Token() any {
	if b, ok := e.token.Load().(tokenBox); ok {
		return b.v
	}
	return nil
}

func (e *Entry) setToken(token any) {
	e.token.Store(tokenBox{v: token})
}

// Consume marks the entry as consumed and, if the token supports it,
// suppresses the host default action for the key event.
func (e *Entry) Consume() {
	e.consumed.Store(true)
	if s, ok := e.Token().(Suppressor); ok {
		s.PreventDefault()
	}
}

// Consumed reports whether a match has consumed this entry.
func (e *Entry) Consumed() bool {
	return e.consumed.Load()
}
