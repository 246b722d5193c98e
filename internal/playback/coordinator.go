// Package playback keeps background music in step with the countdown: it
// fades the player in and out as the countdown is armed and disarmed and
// walks the playlist as tracks finish.
package playback

import (
	"log"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// epsilon absorbs float drift when a ramp compares against its target.
const epsilon = 1e-9

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Player is the audio output the coordinator drives. Load replaces the
// source and leaves the player paused. Playing reports whether playback
// was started and not paused since; a track ending does not clear it.
type Player interface {
	Load(track string) error
	Play() error
	Pause()
	Playing() bool
	Volume() float64
	SetVolume(volume float64)
	Close() error
}

// TickFunc schedules fn after d. tea.Tick satisfies it.
type TickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Fade describes the volume ramp used on start and stop.
type Fade struct {
	Target   float64
	Duration time.Duration
	Steps    int
	Tick     TickFunc
}

// DefaultFade ramps to half volume over one second in 50 steps.
func DefaultFade() Fade {
	return Fade{
		Target:   0.5,
		Duration: time.Second,
		Steps:    50,
	}
}

func (f Fade) interval() time.Duration {
	return f.Duration / time.Duration(f.Steps)
}

// Direction tags the ramp in flight.
type Direction int

const (
	None Direction = iota
	FadeIn
	FadeOut
)

func (d Direction) String() string {
	switch d {
	case FadeIn:
		return "fade-in"
	case FadeOut:
		return "fade-out"
	default:
		return "none"
	}
}

// FadeStepMsg advances the active ramp by one step.
type FadeStepMsg struct {
	ID  int
	Tag int
}

// FadeOutDoneMsg is sent once a fade-out has reached silence and the player
// is paused.
type FadeOutDoneMsg struct {
	ID int
}

type ramp struct {
	direction Direction
	step      float64
}

// Coordinator owns the player. It is driven from the bubbletea update loop
// and is not safe for concurrent use.
type Coordinator struct {
	id       int
	tag      int
	player   Player
	playlist Playlist
	index    int
	fade     Fade
	ramp     ramp
	closed   bool
}

// New takes ownership of player and loads the first track. A track that
// fails to load is logged; the session carries on without sound.
func New(player Player, playlist Playlist, fade Fade) *Coordinator {
	defaults := DefaultFade()
	if fade.Target <= 0 || fade.Target > 1 {
		fade.Target = defaults.Target
	}
	if fade.Duration <= 0 {
		fade.Duration = defaults.Duration
	}
	if fade.Steps <= 0 {
		fade.Steps = defaults.Steps
	}
	if fade.Tick == nil {
		fade.Tick = tea.Tick
	}

	c := &Coordinator{
		id:       nextID(),
		player:   player,
		playlist: playlist,
		fade:     fade,
	}
	c.load()
	return c
}

func (c *Coordinator) ID() int            { return c.id }
func (c *Coordinator) Index() int         { return c.index }
func (c *Coordinator) Track() string      { return c.playlist.Track(c.index) }
func (c *Coordinator) Playlist() Playlist { return c.playlist }
func (c *Coordinator) Fading() Direction  { return c.ramp.direction }
func (c *Coordinator) Volume() float64    { return c.player.Volume() }
func (c *Coordinator) Playing() bool      { return !c.closed && c.player.Playing() }

// Activate starts playback and fades in to the target volume. Starting from
// silence begins at zero; interrupting a fade-out ramps up from wherever
// the volume was.
func (c *Coordinator) Activate() tea.Cmd {
	if c.closed {
		return nil
	}
	interrupted := c.ramp.direction == FadeOut
	c.cancel()

	if !interrupted || !c.player.Playing() {
		c.player.SetVolume(0)
	}
	if err := c.player.Play(); err != nil {
		log.Println("failed to start playback of", c.Track(), ":", err)
		return nil
	}
	return c.startRamp(FadeIn)
}

// Deactivate fades playback out and pauses it. The returned command
// eventually yields FadeOutDoneMsg; nothing is returned when the player is
// not playing.
func (c *Coordinator) Deactivate() tea.Cmd {
	if c.closed {
		return nil
	}
	c.cancel()
	if !c.player.Playing() {
		return nil
	}
	if c.player.Volume() <= epsilon {
		return c.finishFadeOut()
	}
	return c.startRamp(FadeOut)
}

// Step handles a ramp tick. Steps from a cancelled ramp are dropped.
func (c *Coordinator) Step(msg FadeStepMsg) tea.Cmd {
	if c.closed || msg.ID != c.id || msg.Tag != c.tag || c.ramp.direction == None {
		return nil
	}

	volume := c.player.Volume()
	switch c.ramp.direction {
	case FadeIn:
		volume += c.ramp.step
		if volume >= c.fade.Target-epsilon {
			c.player.SetVolume(c.fade.Target)
			c.cancel()
			log.Println("fade-in complete at", c.fade.Target)
			return nil
		}
	case FadeOut:
		volume -= c.ramp.step
		if volume <= epsilon {
			return c.finishFadeOut()
		}
	}
	c.player.SetVolume(volume)
	return c.scheduleStep()
}

// TrackEnded advances the playlist when the loaded track finishes. It runs
// whether or not the countdown is armed. Ends reported for a track that has
// since been replaced are ignored.
func (c *Coordinator) TrackEnded(track string) tea.Cmd {
	if c.closed || track != c.Track() {
		return nil
	}
	log.Println("track finished:", track)
	return c.advance()
}

// Skip moves to the next track exactly like a natural track end. It does
// not start or stop playback.
func (c *Coordinator) Skip() tea.Cmd {
	if c.closed {
		return nil
	}
	log.Println("skipping", c.Track())
	return c.advance()
}

// Close cancels any ramp, pauses and releases the player. Further calls
// are no-ops.
func (c *Coordinator) Close() error {
	if c.closed {
		return nil
	}
	c.cancel()
	c.closed = true
	c.player.Pause()
	return c.player.Close()
}

func (c *Coordinator) advance() tea.Cmd {
	if c.playlist.Len() == 0 {
		return nil
	}
	c.index = c.playlist.Next(c.index)
	return c.trackChanged()
}

func (c *Coordinator) trackChanged() tea.Cmd {
	fadingOut := c.ramp.direction == FadeOut
	wasPlaying := c.player.Playing() && !fadingOut

	c.load()

	if fadingOut {
		return c.finishFadeOut()
	}
	if !wasPlaying {
		return nil
	}

	c.cancel()
	c.player.SetVolume(0)
	if err := c.player.Play(); err != nil {
		log.Println("failed to resume playback of", c.Track(), ":", err)
		return nil
	}
	return c.startRamp(FadeIn)
}

func (c *Coordinator) load() {
	track := c.Track()
	if track == "" {
		return
	}
	if err := c.player.Load(track); err != nil {
		log.Println("failed to load", track, ":", err)
		return
	}
	log.Println("loaded track", c.index, track)
}

func (c *Coordinator) startRamp(direction Direction) tea.Cmd {
	c.cancel()

	var step float64
	switch direction {
	case FadeIn:
		step = c.fade.Target / float64(c.fade.Steps)
	case FadeOut:
		step = c.player.Volume() / float64(c.fade.Steps)
	}
	c.ramp = ramp{direction: direction, step: step}
	log.Println("starting", direction, "from", c.player.Volume())
	return c.scheduleStep()
}

func (c *Coordinator) finishFadeOut() tea.Cmd {
	c.cancel()
	c.player.SetVolume(0)
	c.player.Pause()
	log.Println("fade-out complete, playback paused")

	id := c.id
	return func() tea.Msg {
		return FadeOutDoneMsg{ID: id}
	}
}

// cancel drops the active ramp; steps already scheduled carry the old tag.
func (c *Coordinator) cancel() {
	c.tag++
	c.ramp = ramp{}
}

func (c *Coordinator) scheduleStep() tea.Cmd {
	msg := FadeStepMsg{ID: c.id, Tag: c.tag}
	return c.fade.Tick(c.fade.interval(), func(time.Time) tea.Msg {
		return msg
	})
}
