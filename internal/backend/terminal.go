package backend

import (
	"context"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/hotkeys/internal/input"
)

// DefaultRepeatWindow is the longest gap between identical strokes that
// still counts as auto-repeat.
const DefaultRepeatWindow = 150 * time.Millisecond

// Terminal feeds tcell key events into an input session.
type Terminal struct {
	screen  tcell.Screen
	session *input.Context
	logger  zerolog.Logger

	repeatWindow time.Duration
	now          func() time.Time

	mu       sync.Mutex
	focus    string
	last     Stroke
	lastAt   time.Time
	onStroke func(Stroke, bool)
	onResize func(width, height int)

	finiOnce sync.Once
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithLogger sets the terminal logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(t *Terminal) {
		t.logger = logger
	}
}

// WithRepeatWindow sets the auto-repeat detection window.
func WithRepeatWindow(d time.Duration) Option {
	return func(t *Terminal) {
		t.repeatWindow = d
	}
}

// WithClock sets the time source used for repeat detection.
func WithClock(now func() time.Time) Option {
	return func(t *Terminal) {
		t.now = now
	}
}

// NewScreen creates the default tcell screen for the controlling terminal.
func NewScreen() (tcell.Screen, error) {
	return tcell.NewScreen()
}

// New creates a terminal adapter for screen and session.
func New(screen tcell.Screen, session *input.Context, opts ...Option) *Terminal {
	t := &Terminal{
		screen:       screen,
		session:      session,
		logger:       zerolog.Nop(),
		repeatWindow: DefaultRepeatWindow,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Screen returns the underlying screen.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// Focus sets the element that receives key-downs. An empty name means
// no element has focus and only global bindings are evaluated.
func (t *Terminal) Focus(element string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.focus = element
}

// Focused returns the name of the focused element.
func (t *Terminal) Focused() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.focus
}

// OnStroke registers a callback invoked after each stroke is dispatched.
// The flag reports whether the stroke was treated as a repeat.
func (t *Terminal) OnStroke(fn func(s Stroke, repeat bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onStroke = fn
}

// OnResize registers a callback for terminal resize events.
func (t *Terminal) OnResize(fn func(width, height int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onResize = fn
}

// HandleEvent processes one tcell event.
func (t *Terminal) HandleEvent(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		s, ok := Translate(e)
		if !ok {
			t.logger.Debug().Int("key", int(e.Key())).Msg("untranslatable key event")
			return
		}
		t.Dispatch(s, e)

	case *tcell.EventResize:
		t.mu.Lock()
		fn := t.onResize
		t.mu.Unlock()
		if fn != nil {
			fn(e.Size())
		}

	case *tcell.EventFocus:
		if !e.Focused {
			t.session.Keys().ReleaseAll()
		}
	}
}

// Dispatch replays a stroke as a tap on the session key state.
func (t *Terminal) Dispatch(s Stroke, token any) {
	now := t.now()

	t.mu.Lock()
	repeat := s == t.last && !t.lastAt.IsZero() && now.Sub(t.lastAt) <= t.repeatWindow
	t.last = s
	t.lastAt = now
	focus := t.focus
	onStroke := t.onStroke
	t.mu.Unlock()

	keys := t.session.Keys()
	for _, id := range s.Identifiers() {
		keys.Press(id, token)
	}

	if focus != "" {
		if el, ok := t.session.LookupElement(focus); ok {
			el.HandleKeyDown(input.KeyDown{Key: s.Key, Repeat: repeat, Token: token})
		}
	}

	keys.ReleaseAll()

	if onStroke != nil {
		onStroke(s, repeat)
	}
}

// Run initializes the screen and processes events until ctx is done or
// Close is called.
func (t *Terminal) Run(ctx context.Context) error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	defer t.Close()

	stop := context.AfterFunc(ctx, t.Close)
	defer stop()

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return ctx.Err()
		}
		t.HandleEvent(ev)
	}
}

// Close finalizes the screen, which makes Run return. It is safe to call
// Close multiple times.
func (t *Terminal) Close() {
	t.finiOnce.Do(t.screen.Fini)
}

// DrawLines clears the screen and draws one string per row.
func (t *Terminal) DrawLines(lines []string, style tcell.Style) {
	t.screen.Clear()
	for y, line := range lines {
		x := 0
		for _, r := range line {
			t.screen.SetContent(x, y, r, nil, style)
			x++
		}
	}
	t.screen.Show()
}
