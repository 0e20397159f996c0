// Package backend connects a tcell terminal screen to an input session.
//
// Terminals deliver key strokes, not physical key transitions: there are
// no key-up events and left/right modifiers are indistinguishable. The
// Terminal therefore replays each stroke as a tap on the session key
// state: it presses the left variant of every reported modifier and the
// key, delivers a key-down to the focused element, then releases
// everything. A stroke identical to the previous one arriving within the
// repeat window is reported to elements as an auto-repeat.
package backend
