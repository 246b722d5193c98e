// Package countdown holds the quiz timer: the catalog of durations, the
// selected duration and the armed countdown that ticks it down to zero.
package countdown

import (
	"log"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// TickFunc schedules fn after d and delivers its message to the program.
// tea.Tick satisfies it.
type TickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Config contains runtime options for a Countdown.
type Config struct {
	Selected int
	Interval time.Duration
	Tick     TickFunc
}

// TickMsg is delivered once per interval while a countdown is armed.
type TickMsg struct {
	ID  int
	Tag int
}

// ExpiredMsg is sent when an armed countdown reaches zero and disarms itself.
type ExpiredMsg struct {
	ID int
}

// Countdown is the Idle/Counting state machine. It is not safe for
// concurrent use; the bubbletea update loop owns it.
type Countdown struct {
	id        int
	tag       int
	selected  int
	remaining int
	armed     bool
	interval  time.Duration
	tick      TickFunc
}

// New creates an idle countdown.
func New(config Config) Countdown {
	if config.Selected <= 0 {
		config.Selected = DefaultSeconds
	}
	if config.Interval <= 0 {
		config.Interval = time.Second
	}
	if config.Tick == nil {
		config.Tick = tea.Tick
	}
	return Countdown{
		id:        nextID(),
		selected:  config.Selected,
		remaining: config.Selected,
		interval:  config.Interval,
		tick:      config.Tick,
	}
}

func (c Countdown) ID() int        { return c.id }
func (c Countdown) Armed() bool    { return c.armed }
func (c Countdown) Selected() int  { return c.selected }
func (c Countdown) Remaining() int { return c.remaining }

// Display is the number of seconds the dial shows.
func (c Countdown) Display() int {
	if c.armed {
		return c.remaining
	}
	return c.selected
}

// Progress reports the elapsed fraction of the armed countdown.
func (c Countdown) Progress() float64 {
	if !c.armed || c.selected <= 0 {
		return 0
	}
	return float64(c.selected-c.remaining) / float64(c.selected)
}

// Select changes the duration for the next countdown. It is ignored while
// armed and reports whether the selection took effect.
func (c *Countdown) Select(seconds int) bool {
	if c.armed || seconds <= 0 {
		return false
	}
	c.selected = seconds
	c.remaining = seconds
	return true
}

// Start arms the countdown from the selected duration and schedules the
// first tick. Any tick still in flight is cancelled.
func (c *Countdown) Start() tea.Cmd {
	c.cancel()
	c.remaining = c.selected
	c.armed = true
	log.Println("countdown", c.id, "armed for", c.selected, "seconds")
	return c.schedule()
}

// Stop disarms the countdown and resets it to the selected duration.
// Elapsed time is not kept.
func (c *Countdown) Stop() {
	c.cancel()
	c.armed = false
	c.remaining = c.selected
	log.Println("countdown", c.id, "stopped")
}

// Update handles a tick. Ticks belonging to another countdown or to a
// cancelled schedule are dropped.
func (c *Countdown) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(TickMsg)
	if !ok || tick.ID != c.id || tick.Tag != c.tag || !c.armed {
		return nil
	}

	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining > 0 {
		return c.schedule()
	}

	c.cancel()
	c.armed = false
	log.Println("countdown", c.id, "expired")
	id := c.id
	return func() tea.Msg {
		return ExpiredMsg{ID: id}
	}
}

func (c *Countdown) cancel() {
	c.tag++
}

func (c *Countdown) schedule() tea.Cmd {
	msg := TickMsg{ID: c.id, Tag: c.tag}
	return c.tick(c.interval, func(time.Time) tea.Msg {
		return msg
	})
}
