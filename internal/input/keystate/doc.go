// Package keystate tracks the set of currently held keys.
//
// State is the pressed-key map shared by every binding of a session. Hosts
// feed it through Press and Release with lower-cased identifiers, reporting
// left and right modifier keys separately ("controlleft", "shiftright").
// Each entry keeps the raw token of the event that pressed it so a matched
// key can be consumed, suppressing the host's default action.
//
// Matching never reads State directly. It reads a Snapshot, so that every
// binding evaluated for one change sees the same key set.
package keystate
