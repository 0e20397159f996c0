package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec     string
		wantMods Modifier
		wantKeys []string
	}{
		{"k", ModNone, []string{"k"}},
		{"ctrl+s", ModCtrl, []string{"s"}},
		{"Ctrl+Shift+K", ModCtrl | ModShift, []string{"k"}},
		{"control+alt+delete", ModCtrl | ModAlt, []string{"delete"}},
		{"option+enter", ModAlt, []string{"enter"}},
		{"cmd+k", ModMeta, []string{"k"}},
		{"command+k", ModMeta, []string{"k"}},
		{"super+k", ModMeta, []string{"k"}},
		{"win+k", ModMeta, []string{"k"}},
		{"meta+shift", ModMeta | ModShift, []string{}},
		{"k+l", ModNone, []string{"k", "l"}},
		{"l+k+k", ModNone, []string{"k", "l"}},
		{"ctrl+ctrl+s", ModCtrl, []string{"s"}},
		{"ctrl+notakey", ModCtrl, []string{"notakey"}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			h := Parse(tt.spec)
			assert.Equal(t, tt.wantMods, h.Modifiers)
			assert.Equal(t, tt.wantKeys, h.Keys)
		})
	}
}

func TestParseIdempotent(t *testing.T) {
	specs := []string{"ctrl+s", "Ctrl+Shift+K", "alt+f4", "k+l", "", "ctrl+"}
	for _, spec := range specs {
		assert.True(t, Parse(spec).Equal(Parse(spec)), "Parse(%q) should be deterministic", spec)
	}
}

func TestParseCaseAndWhitespaceInsensitive(t *testing.T) {
	want := Parse("ctrl+shift+k")
	variants := []string{
		"CTRL+SHIFT+K",
		"Ctrl + Shift + K",
		"  ctrl+shift +k  ",
		"shift+ctrl+k",
		"\tctrl+\tshift+k",
	}
	for _, spec := range variants {
		assert.True(t, want.Equal(Parse(spec)), "Parse(%q) = %v, want %v", spec, Parse(spec), want)
	}
}

func TestParseEmptyTokensAreInert(t *testing.T) {
	tests := []string{"", "ctrl+", "+k", "   "}
	for _, spec := range tests {
		h := Parse(spec)
		assert.True(t, h.Inert(), "Parse(%q) should be inert", spec)
		assert.False(t, h.Trivial(), "Parse(%q) must not match everything", spec)
	}
}

func TestParseAlternatives(t *testing.T) {
	alts := ParseAlternatives("ctrl+k,cmd+k")
	require.Len(t, alts, 2)
	assert.True(t, alts[0].Equal(NewHotkey(ModCtrl, "k")))
	assert.True(t, alts[1].Equal(NewHotkey(ModMeta, "k")))
}

func TestParseAlternativesDeduplicates(t *testing.T) {
	alts := ParseAlternatives("ctrl+k, K+Control ,cmd+k,ctrl+k")
	require.Len(t, alts, 2)
	assert.Equal(t, "ctrl+k", alts[0].String())
	assert.Equal(t, "meta+k", alts[1].String())
}

func TestParseAlternativesSingle(t *testing.T) {
	alts := ParseAlternatives("alt+f4")
	require.Len(t, alts, 1)
	assert.Equal(t, "alt+f4", alts[0].String())
}

func TestNormalizeSpec(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"Ctrl+S", "ctrl+s"},
		{"K + Shift + Control", "ctrl+shift+k"},
		{"cmd+k,ctrl+k", "meta+k,ctrl+k"},
		{"command+k,cmd+k", "meta+k"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeSpec(tt.spec))
	}
}
