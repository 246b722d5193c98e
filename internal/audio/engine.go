// Package audio plays the background tracks through the system speaker.
package audio

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dhowden/tag"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"

	"github.com/pes18fan/quiztimer/termimg"
)

const RESAMPLE_QUALITY_FACTOR = 4

var (
	ErrNoTrack           = errors.New("no track loaded")
	ErrUnsupportedFormat = errors.New("only mp3, flac, wav and ogg formats are supported")
	ErrClosed            = errors.New("audio engine closed")
)

// Options tune what the engine reports about loaded tracks.
type Options struct {
	// Artwork enables decoding of embedded cover art into TrackInfo.
	Artwork bool
}

// Engine is a single-track player on top of the beep speaker. Its methods
// are meant to be called from one goroutine; the speaker goroutine only
// touches the stream under speaker.Lock.
type Engine struct {
	status  chan<- Status
	options Options

	initialized       bool
	speakerSampleRate beep.SampleRate

	track    string
	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	gain     *effects.Gain

	volume  float64
	playing bool
	closed  atomic.Bool
}

// NewEngine creates an engine that reports to status. The speaker is
// initialized lazily with the sample rate of the first loaded track.
func NewEngine(status chan<- Status, options Options) *Engine {
	return &Engine{
		status:            status,
		options:           options,
		speakerSampleRate: beep.SampleRate(-1),
		volume:            1,
	}
}

// Load replaces the current source with track and leaves the engine
// paused. The old stream is dropped from the speaker first so its end is
// never reported.
func (e *Engine) Load(track string) error {
	if e.closed.Load() {
		return ErrClosed
	}
	e.unload()

	f, err := os.Open(track)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	// Closing the streamer later will close the file itself, so don't defer close it here
	log.Println("opened", track)

	info := e.readInfo(track, f)

	// Seek the file back to the start before creating the streamer
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return fmt.Errorf("failed to seek back to start of file: %w", err)
	}

	streamer, format, err := decode(track, f)
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to decode audio file: %w", err)
	}

	// Careful not to double-initialize the speaker!
	if !e.initialized {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			streamer.Close()
			return fmt.Errorf("failed to initialize speaker: %w", err)
		}
		e.speakerSampleRate = format.SampleRate
		e.initialized = true
	}

	// If the chosen file has a different sample rate than that of the
	// initialized speaker, we need to resample it to make it sound right
	var source beep.Streamer = streamer
	if e.speakerSampleRate != format.SampleRate {
		source = beep.Resample(
			RESAMPLE_QUALITY_FACTOR,
			format.SampleRate,
			e.speakerSampleRate,
			streamer,
		)
	}

	ctrl := &beep.Ctrl{Streamer: source, Paused: true}
	gain := &effects.Gain{Streamer: ctrl, Gain: e.volume - 1}

	speaker.Lock()
	e.track = track
	e.streamer = streamer
	e.ctrl = ctrl
	e.gain = gain
	e.playing = false
	speaker.Unlock()

	speaker.Play(beep.Seq(gain, beep.Callback(func() {
		// Runs on the speaker goroutine with the speaker locked.
		if err := streamer.Err(); err != nil {
			e.send(ErrorUpdate{Err: fmt.Errorf("%s: %w", filepath.Base(track), err)})
		}
		e.send(TrackEnded{Track: track})
	})))
	log.Println("set up streamer for", track)

	e.send(info)
	return nil
}

// Play unpauses the loaded track.
func (e *Engine) Play() error {
	if e.closed.Load() {
		return ErrClosed
	}
	if e.ctrl == nil {
		return ErrNoTrack
	}
	speaker.Lock()
	e.ctrl.Paused = false
	speaker.Unlock()
	e.playing = true
	log.Println("playing", e.track)
	return nil
}

// Pause pauses the loaded track, if any.
func (e *Engine) Pause() {
	if e.ctrl != nil {
		speaker.Lock()
		e.ctrl.Paused = true
		speaker.Unlock()
	}
	e.playing = false
}

func (e *Engine) Playing() bool {
	return e.playing
}

func (e *Engine) Volume() float64 {
	return e.volume
}

// SetVolume sets a linear volume between 0 (silent) and 1 (unchanged).
func (e *Engine) SetVolume(volume float64) {
	volume = min(max(volume, 0), 1)
	e.volume = volume
	if e.gain != nil {
		speaker.Lock()
		e.gain.Gain = volume - 1
		speaker.Unlock()
	}
}

// Close stops playback and releases the current stream. No status is sent
// afterwards.
func (e *Engine) Close() error {
	if e.closed.Swap(true) {
		return nil
	}
	err := e.unload()
	e.playing = false
	log.Println("audio engine closed")
	return err
}

func (e *Engine) unload() error {
	if e.streamer == nil {
		return nil
	}
	// don't lock the speaker before clearing
	// this is cuz speaker.Clear() already tries to lock it
	speaker.Clear()

	speaker.Lock()
	err := e.streamer.Close()
	e.streamer = nil
	e.ctrl = nil
	e.gain = nil
	e.track = ""
	speaker.Unlock()

	if err != nil {
		return fmt.Errorf("failed to close streamer: %w", err)
	}
	return nil
}

func (e *Engine) send(status Status) {
	if e.closed.Load() {
		return
	}
	select {
	case e.status <- status:
	default:
		log.Printf("status channel full, dropped %T", status)
	}
}

// readInfo grabs tags and, when enabled, cover art. Failures only lose
// metadata.
func (e *Engine) readInfo(track string, f io.ReadSeeker) TrackInfo {
	info := TrackInfo{Track: track}

	m, err := tag.ReadFrom(f)
	if err != nil {
		log.Println("failed to read tags from", track, ":", err)
		return info
	}
	info.Title = m.Title()
	info.Artist = m.Artist()
	info.Album = m.Album()

	if !e.options.Artwork {
		return info
	}
	pic := m.Picture()
	if pic == nil {
		log.Println("no artwork found")
		return info
	}
	info.Art, err = termimg.Encode(pic.Data)
	if err != nil {
		log.Println("failed to read artwork:", err)
	}
	return info
}

// decode creates a streamer for the file if it's in a supported format.
func decode(track string, f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(track)) {
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	case ".ogg":
		return vorbis.Decode(f)
	case ".wav":
		return wav.Decode(f)
	default:
		return nil, beep.Format{}, ErrUnsupportedFormat
	}
}
