package action

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/hotkeys/internal/input/keymap"
)

func TestRegistry_RegisterAndBuild(t *testing.T) {
	r := NewRegistry()
	var calls int
	r.RegisterFunc("count", func() { calls++ })

	assert.True(t, r.Has("count"))
	assert.Equal(t, []string{"count"}, r.List())

	cb, err := r.Build("count", nil)
	require.NoError(t, err)
	cb()
	assert.Equal(t, 1, calls)
}

func TestRegistry_UnknownAction(t *testing.T) {
	r := NewRegistry()
	_, err := r.Build("missing", nil)
	assert.True(t, errors.Is(err, ErrUnknownAction))
}

func TestRegistry_FactoryError(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	r.Register("bad", func(Args) (func(), error) { return nil, boom })

	_, err := r.Build("bad", nil)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), `action "bad"`)
}

func TestRegistry_Unregister(t *testing.T) {
	r := NewRegistry()
	r.RegisterFunc("a", func() {})
	r.Unregister("a")
	assert.False(t, r.Has("a"))
	assert.Empty(t, r.List())
}

func TestRegistry_Callback(t *testing.T) {
	r := NewRegistry()
	var got Args
	r.Register("capture", func(args Args) (func(), error) {
		got = args
		return func() {}, nil
	})

	_, err := r.Callback(keymap.Declaration{Action: "capture", Args: map[string]any{"x": "y"}})
	require.NoError(t, err)
	assert.Equal(t, "y", got["x"])
}

func TestArgs(t *testing.T) {
	args := Args{"name": "editor", "count": 3, "empty": ""}

	s, err := args.String("name")
	require.NoError(t, err)
	assert.Equal(t, "editor", s)

	_, err = args.String("missing")
	assert.True(t, errors.Is(err, ErrMissingArg))

	_, err = args.String("empty")
	assert.True(t, errors.Is(err, ErrMissingArg))

	_, err = args.String("count")
	assert.True(t, errors.Is(err, ErrInvalidArg))

	s, err = args.StringOr("missing", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", s)

	var nilArgs Args
	s, err = nilArgs.StringOr("x", "d")
	require.NoError(t, err)
	assert.Equal(t, "d", s)
}
