package audio

import "github.com/pes18fan/quiztimer/termimg"

// A status message sent out by the audio engine to the bubbletea UI.
// Status structs, alongside acting as a notifier for changes, also provide
// information about the change.
type Status interface {
	isStatus()
}

// Status update sent when the loaded track has played to its end.
type TrackEnded struct {
	Track string
}

func (TrackEnded) isStatus() {}

// Status update sent when a track is loaded.
// Title is empty when the file has no tags.
type TrackInfo struct {
	Track  string
	Title  string
	Artist string
	Album  string
	Art    termimg.Image
}

func (TrackInfo) isStatus() {}

type ErrorUpdate struct {
	Err error
}

func (ErrorUpdate) isStatus() {}
