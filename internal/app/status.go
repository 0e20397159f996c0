package app

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/hotkeys/internal/backend"
	"github.com/dshills/hotkeys/internal/input/keymap"
)

// Fire records one binding invocation for the status screen.
type Fire struct {
	Time        time.Time
	Keys        string
	Action      string
	Description string
	Element     string
	Source      string
}

type history struct {
	mu      sync.Mutex
	entries []Fire
	limit   int
}

func newHistory(limit int) *history {
	if limit <= 0 {
		limit = 10
	}
	return &history{limit: limit}
}

func (h *history) add(f Fire) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, f)
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = append(h.entries[:0], h.entries[over:]...)
	}
}

func (h *history) list() []Fire {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Fire(nil), h.entries...)
}

// track wraps cb so each invocation is recorded before cb runs.
func (app *Application) track(source string, d keymap.Declaration, cb func()) func() {
	return func() {
		app.history.add(Fire{
			Time:        time.Now(),
			Keys:        d.Keys,
			Action:      d.Action,
			Description: d.Description,
			Element:     d.Element,
			Source:      source,
		})
		cb()
	}
}

// History returns the most recent fires, oldest first.
func (app *Application) History() []Fire {
	return app.history.list()
}

func (app *Application) recordStroke(s backend.Stroke, repeat bool) {
	label := s.String()
	if repeat {
		label += " (repeat)"
	}
	app.mu.Lock()
	app.lastStroke = label
	app.mu.Unlock()
}

// StatusLines renders the status screen.
func (app *Application) StatusLines() []string {
	app.mu.RLock()
	focus, last := app.focus, app.lastStroke
	app.mu.RUnlock()

	if focus == "" {
		focus = "(none)"
	}
	if last == "" {
		last = "(none)"
	}
	m := app.session.Metrics().Snapshot()

	lines := []string{
		"hotkeys: press a bound key, ctrl+q quits",
		"",
		"scopes:   " + strings.Join(app.session.Scopes().Active(), " "),
		"focus:    " + focus,
		"last key: " + last,
		fmt.Sprintf("bindings: %d  passes: %d  fires: %d  rejected: %d",
			app.session.Registry().Len(), m.Passes(), m.Fires, m.ScopeRejections),
		"",
		"recent:",
	}

	fires := app.History()
	for i := len(fires) - 1; i >= 0; i-- {
		f := fires[i]
		label := f.Description
		if label == "" {
			label = f.Action
		}
		line := fmt.Sprintf("  %s  %-16s %s", f.Time.Format("15:04:05"), f.Keys, label)
		if f.Element != "" {
			line += " [" + f.Element + "]"
		}
		lines = append(lines, line)
	}
	return lines
}

func (app *Application) redraw() {
	app.mu.RLock()
	term := app.terminal
	app.mu.RUnlock()
	if term == nil {
		return
	}
	term.DrawLines(app.StatusLines(), tcell.StyleDefault)
}
