package fuzzy

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/dshills/hotkeys/internal/input/keymap"
)

// Result is a declaration that matched a query.
type Result struct {
	// Declaration is the matched declaration.
	Declaration keymap.Declaration

	// Text is the line the query was matched against.
	Text string

	// Score is the match score (higher is better).
	Score int

	// Matches contains the byte offsets of matched characters in Text.
	Matches []int
}

// declarations adapts a declaration slice to fuzzy.Source.
type declarations []keymap.Declaration

func (d declarations) String(i int) string { return Text(d[i]) }
func (d declarations) Len() int            { return len(d) }

// Text returns the line a declaration is matched through.
func Text(d keymap.Declaration) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{d.Keys, d.Action, d.Description, d.Category} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Match returns the declarations matching query, best first, at most limit
// of them when limit is positive. Equal scores keep declaration order. An
// empty query keeps every declaration in its original order.
func Match(query string, decls []keymap.Declaration, limit int) []Result {
	query = strings.TrimSpace(query)
	if query == "" {
		results := make([]Result, 0, len(decls))
		for _, d := range decls {
			results = append(results, Result{Declaration: d, Text: Text(d)})
		}
		return applyLimit(results, limit)
	}

	matches := fuzzy.FindFrom(query, declarations(decls))
	results := make([]Result, 0, len(matches))
	for _, m := range matches {
		results = append(results, Result{
			Declaration: decls[m.Index],
			Text:        m.Str,
			Score:       m.Score,
			Matches:     m.MatchedIndexes,
		})
	}
	return applyLimit(results, limit)
}

func applyLimit(results []Result, limit int) []Result {
	if limit <= 0 || limit >= len(results) {
		return results
	}
	return results[:limit]
}

// Highlight wraps each matched character of text in open and close.
// matches holds byte offsets as returned in Result.Matches.
func Highlight(text string, matches []int, open, close string) string {
	if len(matches) == 0 {
		return text
	}

	marked := make(map[int]bool, len(matches))
	for _, idx := range matches {
		marked[idx] = true
	}

	var b strings.Builder
	for i, r := range text {
		if marked[i] {
			b.WriteString(open)
			b.WriteRune(r)
			b.WriteString(close)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
