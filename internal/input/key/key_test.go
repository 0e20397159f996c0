package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModifierOf(t *testing.T) {
	tests := []struct {
		id     string
		want   Modifier
		wantOK bool
	}{
		{ControlLeft, ModCtrl, true},
		{ControlRight, ModCtrl, true},
		{ShiftLeft, ModShift, true},
		{AltRight, ModAlt, true},
		{MetaLeft, ModMeta, true},
		{"k", ModNone, false},
		{"ctrl", ModNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := ModifierOf(tt.id)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFunctionKey(t *testing.T) {
	assert.Equal(t, "f1", FunctionKey(1))
	assert.Equal(t, "f12", FunctionKey(12))
	assert.Equal(t, "", FunctionKey(0))
	assert.Equal(t, "", FunctionKey(25))
}

func TestRuneIdentifier(t *testing.T) {
	tests := []struct {
		r    rune
		want string
	}{
		{'a', "a"},
		{'K', "k"},
		{'1', "1"},
		{' ', Space},
		{'/', "/"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RuneIdentifier(tt.r))
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "enter", Normalize("  Enter "))
	assert.Equal(t, "controlleft", Normalize("ControlLeft"))
}
