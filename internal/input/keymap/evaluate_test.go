package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/input/keystate"
	"github.com/dshills/hotkeys/internal/input/scope"
)

func globalPass(pressed keystate.Snapshot, active ...string) Pass {
	return Pass{
		Trigger: Trigger{Mode: ModeGlobal},
		Pressed: pressed,
		Active:  scope.SnapshotOf(active...),
	}
}

func TestEvaluate_FiresMatchingBinding(t *testing.T) {
	r := NewRegistry()
	var fired int
	r.Register("ctrl+s", []string{"editor"}, func() { fired++ })

	res := Evaluate(r.Bindings(), globalPass(keystate.SnapshotOf(key.ControlLeft, "s"), "editor"))

	assert.Equal(t, 1, fired)
	assert.Equal(t, 1, res.Evaluated)
	assert.Equal(t, 1, res.Consumed)
	require.Len(t, res.Fired, 1)
	assert.Equal(t, "ctrl+s", res.Fired[0].Hotkey.String())
}

func TestEvaluate_ScopeGate(t *testing.T) {
	r := NewRegistry()
	var fired int
	r.Register("ctrl+s", []string{"editor"}, func() { fired++ })
	pressed := keystate.SnapshotOf(key.ControlLeft, "s")

	res := Evaluate(r.Bindings(), globalPass(pressed, "sidebar"))
	assert.Equal(t, 0, fired)
	assert.Equal(t, 1, res.ScopeRejected)
	assert.Equal(t, 0, res.Evaluated)

	Evaluate(r.Bindings(), globalPass(pressed, "sidebar", "editor"))
	assert.Equal(t, 1, fired)
}

func TestEvaluate_NoScopesNeverFires(t *testing.T) {
	r := NewRegistry()
	var fired int
	r.Register("k", nil, func() { fired++ })
	r.Register("k", []string{}, func() { fired++ })

	res := Evaluate(r.Bindings(), globalPass(keystate.SnapshotOf("k"), scope.Global, "editor"))
	assert.Equal(t, 0, fired)
	assert.Equal(t, 2, res.ScopeRejected)
}

func TestEvaluate_Alternatives(t *testing.T) {
	r := NewRegistry()
	var fired int
	r.Register("ctrl+k,cmd+k", []string{scope.Global}, func() { fired++ })

	Evaluate(r.Bindings(), globalPass(keystate.SnapshotOf(key.MetaLeft, "k"), scope.Global))
	Evaluate(r.Bindings(), globalPass(keystate.SnapshotOf(key.ControlRight, "k"), scope.Global))
	Evaluate(r.Bindings(), globalPass(keystate.SnapshotOf("k"), scope.Global))

	assert.Equal(t, 2, fired)
}

func TestEvaluate_AtMostOnceInvocationPerPass(t *testing.T) {
	r := NewRegistry()
	var fired int
	r.Register("ctrl+k,cmd+k", []string{"a", "b"}, func() { fired++ })

	res := Evaluate(r.Bindings(), globalPass(keystate.SnapshotOf(key.ControlLeft, key.MetaLeft, "k"), "a", "b"))
	assert.Equal(t, 1, fired)
	assert.Len(t, res.Fired, 1)
}

func TestEvaluate_RegistrationOrder(t *testing.T) {
	r := NewRegistry()
	var order []string
	r.Register("k", []string{"s"}, func() { order = append(order, "first") })
	r.Register("shift+k", []string{"s"}, func() { order = append(order, "second") })
	r.Register("x", []string{"s"}, func() { order = append(order, "never") })
	r.Register("k", []string{"s"}, func() { order = append(order, "third") })

	Evaluate(r.Bindings(), globalPass(keystate.SnapshotOf(key.ShiftLeft, "k"), "s"))
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestEvaluate_UnregisterDuringPass(t *testing.T) {
	r := NewRegistry()
	var fired []string
	var second Handle
	r.Register("k", []string{"s"}, func() {
		fired = append(fired, "first")
		r.Unregister(second)
	})
	second = r.Register("k", []string{"s"}, func() { fired = append(fired, "second") })

	Evaluate(r.Bindings(), globalPass(keystate.SnapshotOf("k"), "s"))
	assert.Equal(t, []string{"first"}, fired)
}

func TestEvaluate_SharedSnapshotWithinPass(t *testing.T) {
	r := NewRegistry()
	active := scope.NewSet("a")
	var fired []string
	r.Register("k", []string{"a"}, func() {
		fired = append(fired, "first")
		active.Disable("a")
	})
	r.Register("k", []string{"a"}, func() { fired = append(fired, "second") })

	pass := globalPass(keystate.SnapshotOf("k"))
	pass.Active = active.Snapshot()
	Evaluate(r.Bindings(), pass)

	assert.Equal(t, []string{"first", "second"}, fired)
}

func TestEvaluate_OnFireBeforeCallback(t *testing.T) {
	r := NewRegistry()
	var events []string
	h := r.Register("f1", []string{"s"}, func() { events = append(events, "callback") })

	pass := globalPass(keystate.SnapshotOf("f1"), "s")
	pass.Trigger = Trigger{Mode: ModeElement, Key: "f1", Element: "search"}
	pass.OnFire = func(f Fired) {
		assert.Equal(t, h, f.Binding.Handle)
		assert.Equal(t, ModeElement, f.Trigger.Mode)
		assert.Equal(t, "search", f.Trigger.Element)
		events = append(events, "onfire")
	}

	Evaluate(r.Bindings(), pass)
	assert.Equal(t, []string{"onfire", "callback"}, events)
}

func TestEvaluate_NilCallback(t *testing.T) {
	r := NewRegistry()
	r.Register("k", []string{"s"}, nil)

	res := Evaluate(r.Bindings(), globalPass(keystate.SnapshotOf("k"), "s"))
	assert.Len(t, res.Fired, 1)
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "global", ModeGlobal.String())
	assert.Equal(t, "element", ModeElement.String())
	assert.Equal(t, "unknown", Mode(9).String())
}

func TestEvaluate_Skip(t *testing.T) {
	r := NewRegistry()
	var first, second int
	h := r.Register("k", []string{"s"}, func() { first++ })
	r.Register("k", []string{"s"}, func() { second++ })

	pass := globalPass(keystate.SnapshotOf("k"), "s")
	pass.Skip = func(b *Binding) bool { return b.Handle == h }
	res := Evaluate(r.Bindings(), pass)

	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, 1, res.Evaluated)
	assert.Zero(t, res.ScopeRejected)
}
