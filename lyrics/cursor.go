package lyrics

import "time"

// State is the display state of the lyric cursor.
type State int

const (
	// Idle: no line is current (nothing shown yet, or playback is before
	// the first line).
	Idle State = iota
	// Showing: the current line is on screen.
	Showing
	// FadingOut: the previous text is leaving, either because a new line
	// is about to be revealed or because the hold time ran out.
	FadingOut
)

func (s State) String() string {
	switch s {
	case Showing:
		return "Showing"
	case FadingOut:
		return "FadingOut"
	default:
		return "Idle"
	}
}

// EventKind is a display effect requested by the cursor.
type EventKind int

const (
	EventFadeOut EventKind = iota // start fading the visible text out
	EventShow                     // set the text and fade it in
	EventHide                     // fade the text out and leave it hidden
)

func (k EventKind) String() string {
	switch k {
	case EventShow:
		return "show"
	case EventHide:
		return "hide"
	default:
		return "fade-out"
	}
}

// Event is one effect for the lyric display. Index is -1 when no line applies.
type Event struct {
	Kind  EventKind
	Index int
	Text  string
}

// CursorConfig holds the cursor timings.
type CursorConfig struct {
	Debounce time.Duration // fade-out to reveal delay
	Hold     time.Duration // auto-hide delay after a transition
}

// DefaultCursorConfig returns a 40ms crossfade and a 7s hold.
func DefaultCursorConfig() CursorConfig {
	return CursorConfig{Debounce: 40 * time.Millisecond, Hold: 7 * time.Second}
}

// deferred is a pending effect. It only fires while its token matches the
// cursor's current token.
type deferred struct {
	due   time.Time
	token uint64
	armed bool
}

func (d *deferred) arm(due time.Time, token uint64) {
	*d = deferred{due: due, token: token, armed: true}
}

func (d *deferred) ready(now time.Time, token uint64) bool {
	return d.armed && d.token == token && !now.Before(d.due)
}

// Cursor follows playback time through a sorted lyric list. It holds no
// goroutines or timers: the host feeds it the playback position and the
// wall clock, and applies the returned events.
type Cursor struct {
	lines []Line
	cfg   CursorConfig

	last  int
	state State

	token  uint64
	reveal deferred
	hide   deferred
}

// NewCursor creates a cursor over lines, which must be sorted by time.
// Negative timings count as zero and Hold is raised to at least Debounce,
// so a revealed line is always hidden again.
func NewCursor(lines []Line, cfg CursorConfig) *Cursor {
	cfg.Debounce = max(0, cfg.Debounce)
	cfg.Hold = max(cfg.Hold, cfg.Debounce)
	return &Cursor{lines: lines, cfg: cfg, last: -1}
}

// Len returns the number of lyric lines.
func (c *Cursor) Len() int { return len(c.lines) }

// State returns the display state.
func (c *Cursor) State() State { return c.state }

// Index returns the current line index, or -1.
func (c *Cursor) Index() int { return c.last }

// Current returns the line the cursor is on. It stays current through the
// fade-in delay and after the hold time hides it.
func (c *Cursor) Current() (Line, bool) {
	if c.last < 0 || c.last >= len(c.lines) {
		return Line{}, false
	}
	return c.lines[c.last], true
}

// Visible reports whether the current line's text is on screen.
func (c *Cursor) Visible() bool { return c.state == Showing }

// Find returns the greatest index whose time is <= t, or -1. The scan stops
// at the first later line, which is only correct for a sorted list.
func (c *Cursor) Find(t float64) int {
	idx := -1
	for i, l := range c.lines {
		if l.Time > t || t != t {
			break
		}
		idx = i
	}
	return idx
}

// Update moves the cursor to playback time t (seconds) at wall time now and
// returns the effects to apply, including any deferred effects now due.
func (c *Cursor) Update(t float64, now time.Time) []Event {
	if len(c.lines) == 0 {
		return nil
	}
	events := c.Poll(now)

	idx := c.Find(t)
	switch {
	case idx == c.last:
		// Nothing changed. This also covers idx == -1 while Idle.
	case idx == -1:
		// Seeked back before the first line.
		c.cancel()
		events = append(events, Event{Kind: EventHide, Index: -1})
		c.last = -1
		c.state = Idle
	default:
		c.cancel()
		events = append(events, Event{Kind: EventFadeOut, Index: c.last})
		c.last = idx
		c.state = FadingOut
		c.reveal.arm(now.Add(c.cfg.Debounce), c.token)
		c.hide.arm(now.Add(c.cfg.Hold), c.token)
		events = append(events, c.Poll(now)...)
	}
	return events
}

// Poll fires deferred effects that are due at now.
func (c *Cursor) Poll(now time.Time) []Event {
	var events []Event
	for {
		slot := c.next(now)
		if slot == nil {
			return events
		}
		slot.armed = false
		line := c.lines[c.last]
		if slot == &c.reveal {
			c.state = Showing
			events = append(events, Event{Kind: EventShow, Index: c.last, Text: line.Text})
		} else {
			c.state = FadingOut
			events = append(events, Event{Kind: EventHide, Index: c.last, Text: line.Text})
		}
	}
}

// next returns the earliest due slot, or nil.
func (c *Cursor) next(now time.Time) *deferred {
	r := c.reveal.ready(now, c.token)
	h := c.hide.ready(now, c.token)
	switch {
	case r && h:
		if c.hide.due.Before(c.reveal.due) {
			return &c.hide
		}
		return &c.reveal
	case r:
		return &c.reveal
	case h:
		return &c.hide
	}
	return nil
}

// cancel invalidates every pending effect.
func (c *Cursor) cancel() {
	c.token++
	c.reveal.armed = false
	c.hide.armed = false
}
