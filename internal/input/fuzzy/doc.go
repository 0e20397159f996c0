// Package fuzzy ranks keymap declarations against a typed query.
//
// A declaration is matched through one line of text built from its key
// specification, action, description and category. Ranking is done by
// github.com/sahilm/fuzzy: every query rune must appear in that text in
// order, case-insensitively, and adjacent runs, matches after a separator
// and matches near the start score higher.
//
//	for _, r := range fuzzy.Match("toggle side", km.Bindings, 5) {
//	    fmt.Println(r.Text, r.Score)
//	}
package fuzzy
