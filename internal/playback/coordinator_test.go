package playback

import (
	"errors"
	"math"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type fakePlayer struct {
	loaded  []string
	playing bool
	volume  float64
	playErr error
	loadErr error
	plays   int
	closed  bool
}

func (p *fakePlayer) Load(track string) error {
	if p.loadErr != nil {
		return p.loadErr
	}
	p.loaded = append(p.loaded, track)
	p.playing = false
	return nil
}

func (p *fakePlayer) Play() error {
	if p.playErr != nil {
		return p.playErr
	}
	p.plays++
	p.playing = true
	return nil
}

func (p *fakePlayer) Pause()                   { p.playing = false }
func (p *fakePlayer) Playing() bool            { return p.playing }
func (p *fakePlayer) Volume() float64          { return p.volume }
func (p *fakePlayer) SetVolume(volume float64) { p.volume = volume }

func (p *fakePlayer) Close() error {
	p.closed = true
	return nil
}

func instantTick(_ time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return fn(time.Time{})
	}
}

func newTestCoordinator(p *fakePlayer) *Coordinator {
	fade := DefaultFade()
	fade.Tick = instantTick
	return New(p, NewPlaylist("assets", []string{"a.mp3", "b.mp3", "c.mp3"}), fade)
}

// runRamp feeds step messages back until the ramp stops scheduling and
// returns the number of steps taken and the final message, if any.
func runRamp(t *testing.T, c *Coordinator, cmd tea.Cmd) (int, tea.Msg) {
	t.Helper()
	steps := 0
	for cmd != nil {
		msg := cmd()
		step, ok := msg.(FadeStepMsg)
		if !ok {
			return steps, msg
		}
		steps++
		if steps > 1000 {
			t.Fatal("ramp did not terminate")
		}
		cmd = c.Step(step)
	}
	return steps, nil
}

func TestNewLoadsFirstTrack(t *testing.T) {
	p := &fakePlayer{}
	c := newTestCoordinator(p)

	if len(p.loaded) != 1 || p.loaded[0] != "assets/a.mp3" {
		t.Fatalf("loaded = %v", p.loaded)
	}
	if c.Index() != 0 || c.Track() != "assets/a.mp3" {
		t.Fatalf("index/track = %d/%s", c.Index(), c.Track())
	}
}

func TestNewSurvivesLoadFailure(t *testing.T) {
	p := &fakePlayer{loadErr: errors.New("missing")}
	c := newTestCoordinator(p)
	if c.Track() != "assets/a.mp3" {
		t.Fatalf("track = %q", c.Track())
	}
}

func TestActivateFadesInToTarget(t *testing.T) {
	p := &fakePlayer{volume: 0.5}
	c := newTestCoordinator(p)

	cmd := c.Activate()
	if !p.playing {
		t.Fatal("expected playback to start")
	}
	if p.volume != 0 {
		t.Fatalf("expected playback to start silent, got %v", p.volume)
	}
	if c.Fading() != FadeIn {
		t.Fatalf("fading = %v, want fade-in", c.Fading())
	}

	steps, last := runRamp(t, c, cmd)
	if steps != 50 {
		t.Fatalf("fade-in took %d steps, want 50", steps)
	}
	if last != nil {
		t.Fatalf("unexpected message %#v", last)
	}
	if p.volume != 0.5 {
		t.Fatalf("volume = %v, want 0.5", p.volume)
	}
	if c.Fading() != None {
		t.Fatalf("fading = %v after completion", c.Fading())
	}
}

func TestFadeInSnapsOnOvershoot(t *testing.T) {
	p := &fakePlayer{}
	fade := Fade{Target: 0.5, Duration: time.Second, Steps: 3, Tick: instantTick}
	c := New(p, NewPlaylist("", []string{"a.mp3"}), fade)

	cmd := c.Activate()
	p.volume = 0.45
	if next := c.Step(cmd().(FadeStepMsg)); next != nil {
		t.Fatal("ramp should stop once it would overshoot")
	}
	if p.volume != 0.5 {
		t.Fatalf("volume = %v, want snapped 0.5", p.volume)
	}
}

func TestDeactivateFadesOutAndPauses(t *testing.T) {
	p := &fakePlayer{}
	c := newTestCoordinator(p)
	runRamp(t, c, c.Activate())

	cmd := c.Deactivate()
	if c.Fading() != FadeOut {
		t.Fatalf("fading = %v, want fade-out", c.Fading())
	}

	steps, last := runRamp(t, c, cmd)
	if steps != 50 {
		t.Fatalf("fade-out took %d steps, want 50", steps)
	}
	done, ok := last.(FadeOutDoneMsg)
	if !ok || done.ID != c.ID() {
		t.Fatalf("expected FadeOutDoneMsg, got %#v", last)
	}
	if p.playing {
		t.Fatal("expected playback paused")
	}
	if p.volume != 0 {
		t.Fatalf("volume = %v, want 0", p.volume)
	}
}

func TestFadeOutStepIsProportionalToStartVolume(t *testing.T) {
	p := &fakePlayer{}
	c := newTestCoordinator(p)
	c.Activate()
	p.volume = 0.2

	cmd := c.Deactivate()
	c.Step(cmd().(FadeStepMsg))
	if math.Abs(p.volume-(0.2-0.2/50)) > 1e-12 {
		t.Fatalf("volume after one step = %v", p.volume)
	}
}

func TestDeactivateWhenNotPlaying(t *testing.T) {
	p := &fakePlayer{}
	c := newTestCoordinator(p)
	if cmd := c.Deactivate(); cmd != nil {
		t.Fatal("expected no fade when not playing")
	}
}

func TestDeactivateImmediatelyAfterActivate(t *testing.T) {
	p := &fakePlayer{}
	c := newTestCoordinator(p)
	pending := c.Activate()

	cmd := c.Deactivate()
	if _, ok := cmd().(FadeOutDoneMsg); !ok {
		t.Fatal("silent fade-out should complete at once")
	}
	if p.playing {
		t.Fatal("expected paused")
	}
	if c.Step(pending().(FadeStepMsg)) != nil {
		t.Fatal("cancelled fade-in step should be ignored")
	}
	if p.volume != 0 {
		t.Fatalf("volume moved to %v", p.volume)
	}
}

func TestFadeInDuringFadeOutCancelsFadeOut(t *testing.T) {
	p := &fakePlayer{}
	c := newTestCoordinator(p)
	runRamp(t, c, c.Activate())

	out := c.Deactivate()
	for i := 0; i < 10; i++ {
		out = c.Step(out().(FadeStepMsg))
	}
	stale := out().(FadeStepMsg)
	before := p.volume

	in := c.Activate()
	if c.Fading() != FadeIn {
		t.Fatalf("fading = %v, want fade-in", c.Fading())
	}
	if p.volume != before {
		t.Fatalf("interrupting a fade-out should keep volume %v, got %v", before, p.volume)
	}

	if c.Step(stale) != nil {
		t.Fatal("fade-out step should be cancelled")
	}
	if p.volume != before {
		t.Fatal("cancelled fade-out moved the volume")
	}

	previous := p.volume
	for in != nil {
		msg := in()
		in = c.Step(msg.(FadeStepMsg))
		if p.volume < previous {
			t.Fatalf("volume fell from %v to %v during fade-in", previous, p.volume)
		}
		previous = p.volume
	}
	if p.volume != 0.5 || !p.playing {
		t.Fatalf("volume/playing = %v/%v", p.volume, p.playing)
	}
}

func TestPlayFailureIsNotFatal(t *testing.T) {
	p := &fakePlayer{playErr: errors.New("blocked")}
	c := newTestCoordinator(p)

	if cmd := c.Activate(); cmd != nil {
		t.Fatal("no ramp expected when playback fails")
	}
	if c.Fading() != None {
		t.Fatalf("fading = %v", c.Fading())
	}
}

func TestTrackEndCyclesPlaylist(t *testing.T) {
	p := &fakePlayer{}
	c := newTestCoordinator(p)

	start := c.Index()
	for i := 0; i < c.Playlist().Len(); i++ {
		if i == 1 {
			c.Activate()
		}
		if i == 2 {
			c.Deactivate()
		}
		c.TrackEnded(c.Track())
	}
	if c.Index() != start {
		t.Fatalf("index = %d after a full cycle, want %d", c.Index(), start)
	}
}

func TestStaleTrackEndIsIgnored(t *testing.T) {
	p := &fakePlayer{}
	c := newTestCoordinator(p)
	c.Skip()

	c.TrackEnded("assets/a.mp3")
	if c.Index() != 1 {
		t.Fatalf("index = %d, want 1", c.Index())
	}
}

func TestSkipWhileIdleDoesNotPlay(t *testing.T) {
	p := &fakePlayer{}
	c := newTestCoordinator(p)

	if cmd := c.Skip(); cmd != nil {
		t.Fatal("skip while idle should not schedule a fade")
	}
	if c.Index() != 1 {
		t.Fatalf("index = %d, want 1", c.Index())
	}
	if p.playing || p.plays != 0 {
		t.Fatal("skip started playback")
	}
	if p.loaded[len(p.loaded)-1] != "assets/b.mp3" {
		t.Fatalf("loaded = %v", p.loaded)
	}
}

func TestTrackChangeWhilePlayingResumesWithFadeIn(t *testing.T) {
	p := &fakePlayer{}
	c := newTestCoordinator(p)
	runRamp(t, c, c.Activate())

	cmd := c.TrackEnded("assets/a.mp3")
	if p.loaded[len(p.loaded)-1] != "assets/b.mp3" {
		t.Fatalf("loaded = %v", p.loaded)
	}
	if !p.playing || p.plays != 2 {
		t.Fatalf("playing/plays = %v/%d", p.playing, p.plays)
	}
	if p.volume != 0 || c.Fading() != FadeIn {
		t.Fatalf("expected fresh fade-in from 0, got %v/%v", p.volume, c.Fading())
	}
	if steps, _ := runRamp(t, c, cmd); steps != 50 {
		t.Fatalf("fade-in took %d steps", steps)
	}
}

func TestTrackChangeDuringFadeOutCompletesFadeOut(t *testing.T) {
	p := &fakePlayer{}
	c := newTestCoordinator(p)
	runRamp(t, c, c.Activate())
	c.Deactivate()

	cmd := c.Skip()
	if _, ok := cmd().(FadeOutDoneMsg); !ok {
		t.Fatal("expected fade-out to complete")
	}
	if p.playing || p.volume != 0 || c.Fading() != None {
		t.Fatalf("playing/volume/fading = %v/%v/%v", p.playing, p.volume, c.Fading())
	}
}

func TestCloseTearsDown(t *testing.T) {
	p := &fakePlayer{}
	c := newTestCoordinator(p)
	pending := c.Activate()

	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !p.closed || p.playing {
		t.Fatal("expected player paused and closed")
	}
	if c.Step(pending().(FadeStepMsg)) != nil {
		t.Fatal("step after close should be ignored")
	}
	if c.Activate() != nil || c.Skip() != nil || c.TrackEnded(c.Track()) != nil {
		t.Fatal("operations after close should be no-ops")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestPlaylist(t *testing.T) {
	p := DefaultPlaylist("music")
	if p.Len() != len(DefaultTracks) {
		t.Fatalf("len = %d", p.Len())
	}
	if p.Next(p.Len()-1) != 0 {
		t.Fatal("expected wrap to 0")
	}
	if p.Track(-1) != "" || p.Track(p.Len()) != "" {
		t.Fatal("out of range track should be empty")
	}
	if got := Name("music/Это не музыка..mp3"); got != "Это не музыка." {
		t.Fatalf("Name = %q", got)
	}
	if (Playlist{}).Next(3) != 0 {
		t.Fatal("empty playlist Next should be 0")
	}
}
