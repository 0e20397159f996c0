package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/hotkeys/internal/input/keymap"
)

func testDecls() []keymap.Declaration {
	return []keymap.Declaration{
		{Keys: "ctrl+s,cmd+s", Action: "log", Description: "Save", Category: "Editor"},
		{Keys: "ctrl+b", Action: "scope.toggle", Description: "Toggle sidebar", Category: "Scopes"},
		{Keys: "ctrl+q", Action: "app.quit", Description: "Quit", Category: "Application"},
		{Keys: "escape", Action: "scope.disable", Description: "Close modal", Category: "Scopes"},
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		decl keymap.Declaration
		want string
	}{
		{keymap.Declaration{Keys: "ctrl+s", Action: "log", Description: "Save", Category: "Editor"}, "ctrl+s log Save Editor"},
		{keymap.Declaration{Keys: "f1", Action: "log"}, "f1 log"},
		{keymap.Declaration{Keys: " f2 ", Description: "  "}, "f2"},
		{keymap.Declaration{}, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Text(tt.decl))
	}
}

func TestMatch_EmptyQueryKeepsOrder(t *testing.T) {
	decls := testDecls()

	results := Match("  ", decls, 0)
	require.Len(t, results, len(decls))
	for i, r := range results {
		assert.Equal(t, decls[i].Keys, r.Declaration.Keys)
		assert.Zero(t, r.Score)
	}

	assert.Len(t, Match("", decls, 2), 2)
}

func TestMatch_RequiresEveryRuneInOrder(t *testing.T) {
	results := Match("quit", testDecls(), 0)
	require.Len(t, results, 1)
	assert.Equal(t, "ctrl+q", results[0].Declaration.Keys)

	assert.Empty(t, Match("zzz", testDecls(), 0))
	assert.Empty(t, Match("tiuq", testDecls(), 0))
}

func TestMatch_CaseInsensitive(t *testing.T) {
	results := Match("SIDEBAR", testDecls(), 0)
	require.Len(t, results, 1)
	assert.Equal(t, "ctrl+b", results[0].Declaration.Keys)
}

func TestMatch_RanksBetterMatchFirst(t *testing.T) {
	results := Match("scope", testDecls(), 0)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, "Scopes", r.Declaration.Category)
	}
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)

	// a key spec prefix beats a scattered match
	results = Match("ctrl+s", testDecls(), 0)
	require.NotEmpty(t, results)
	assert.Equal(t, "ctrl+s,cmd+s", results[0].Declaration.Keys)
}

func TestMatch_Limit(t *testing.T) {
	results := Match("c", testDecls(), 2)
	assert.Len(t, results, 2)
}

func TestMatch_MatchIndices(t *testing.T) {
	results := Match("cq", testDecls(), 0)
	require.NotEmpty(t, results)

	r := results[0]
	require.Len(t, r.Matches, 2)
	assert.Equal(t, byte('c'), r.Text[r.Matches[0]])
	assert.Equal(t, byte('q'), r.Text[r.Matches[1]])
}

func TestHighlight(t *testing.T) {
	assert.Equal(t, "[c]trl+[s]", Highlight("ctrl+s", []int{0, 5}, "[", "]"))
	assert.Equal(t, "plain", Highlight("plain", nil, "[", "]"))
	// offsets are bytes, so multi-byte runes before a match are skipped
	assert.Equal(t, "é[x]", Highlight("éx", []int{2}, "[", "]"))
}
