package playback

import (
	"path/filepath"
	"strings"
)

// DefaultTracks are the background tracks shipped next to the binary.
var DefaultTracks = []string{
	"Если мир — это игра, то где кнопка выход.mp3",
	"Если мир — это игра, то где кнопка выход (1).mp3",
	"Мне врали в школе, врали в новостях,.mp3",
	"Мне врали в школе, врали в новостях, (1).mp3",
	"Это не музыка..mp3",
	"Я любил тебя так наивно,.mp3",
}

// Playlist is a fixed, ordered list of track paths.
type Playlist struct {
	tracks []string
}

// NewPlaylist resolves track names against dir.
func NewPlaylist(dir string, names []string) Playlist {
	tracks := make([]string, len(names))
	for i, name := range names {
		tracks[i] = filepath.Join(dir, name)
	}
	return Playlist{tracks: tracks}
}

// DefaultPlaylist is DefaultTracks resolved against dir.
func DefaultPlaylist(dir string) Playlist {
	return NewPlaylist(dir, DefaultTracks)
}

func (p Playlist) Len() int {
	return len(p.tracks)
}

// Track returns the path at index i, or "" when out of range.
func (p Playlist) Track(i int) string {
	if i < 0 || i >= len(p.tracks) {
		return ""
	}
	return p.tracks[i]
}

// Next is the index after i, wrapping to the start.
func (p Playlist) Next(i int) int {
	if len(p.tracks) == 0 {
		return 0
	}
	return (i + 1) % len(p.tracks)
}

// Name is the file name of a track without its extension, used when the
// file carries no title tag.
func Name(track string) string {
	base := filepath.Base(track)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
