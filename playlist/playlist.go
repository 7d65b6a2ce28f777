// Package playlist manages an ordered track list with shuffle and repeat
// support. Each track carries the lyric file that belongs to it, if any.
package playlist

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// lyricExts are tried in order when looking for a track's lyrics.
var lyricExts = []string{".json", ".lrc"}

// RepeatMode controls playlist repeat behavior.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatAll
	RepeatOne
)

func (r RepeatMode) String() string {
	switch r {
	case RepeatAll:
		return "All"
	case RepeatOne:
		return "One"
	default:
		return "Off"
	}
}

// Track is one audio file and the lyrics found for it.
type Track struct {
	Path       string
	Title      string
	Artist     string
	LyricsPath string // empty when no lyric file was found
}

// TrackFromPath builds a Track from a file name of the form
// "Artist - Title.ext" or just "Title.ext", and looks up its lyrics next to
// the audio file and then in lyricsDir.
func TrackFromPath(path, lyricsDir string) Track {
	name := stem(path)
	t := Track{Path: path, Title: name, LyricsPath: FindLyrics(path, lyricsDir)}
	if artist, title, ok := strings.Cut(name, " - "); ok {
		t.Artist = strings.TrimSpace(artist)
		t.Title = strings.TrimSpace(title)
	}
	return t
}

// FindLyrics returns the first existing "<name>.json" or "<name>.lrc",
// searching the audio file's directory and then dir. It returns "" if
// none exists.
func FindLyrics(audioPath, dir string) string {
	name := stem(audioPath)
	dirs := []string{filepath.Dir(audioPath)}
	if dir != "" {
		dirs = append(dirs, dir)
	}
	for _, d := range dirs {
		for _, ext := range lyricExts {
			candidate := filepath.Join(d, name+ext)
			if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
				return candidate
			}
		}
	}
	return ""
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DisplayName returns "Artist - Title", or the title alone.
func (t Track) DisplayName() string {
	if t.Artist != "" {
		return t.Artist + " - " + t.Title
	}
	return t.Title
}

// Playlist is the play queue. order holds indices into tracks; it is the
// identity permutation unless shuffle is on.
type Playlist struct {
	tracks  []Track
	order   []int
	pos     int
	shuffle bool
	repeat  RepeatMode
}

// New creates an empty Playlist.
func New() *Playlist {
	return &Playlist{}
}

// Add appends tracks. New tracks go to the end of the play order.
func (p *Playlist) Add(tracks ...Track) {
	for range tracks {
		p.order = append(p.order, len(p.order))
	}
	p.tracks = append(p.tracks, tracks...)
}

// Len returns the number of tracks.
func (p *Playlist) Len() int { return len(p.tracks) }

// Current returns the selected track and its index, or -1 when empty.
func (p *Playlist) Current() (Track, int) {
	if len(p.tracks) == 0 {
		return Track{}, -1
	}
	idx := p.order[p.pos]
	return p.tracks[idx], idx
}

// Next advances to the following track. It returns false at the end of the
// queue when repeat is off. RepeatOne keeps the current track.
func (p *Playlist) Next() (Track, bool) {
	if len(p.tracks) == 0 {
		return Track{}, false
	}
	switch {
	case p.repeat == RepeatOne:
	case p.pos+1 < len(p.order):
		p.pos++
	case p.repeat == RepeatAll:
		p.pos = 0
		if p.shuffle {
			// A new round: nothing is pinned to the front.
			rand.Shuffle(len(p.order), p.swap)
		}
	default:
		return Track{}, false
	}
	t, _ := p.Current()
	return t, true
}

// Prev steps back one track. At the start it wraps with RepeatAll and
// otherwise stays put.
func (p *Playlist) Prev() (Track, bool) {
	if len(p.tracks) == 0 {
		return Track{}, false
	}
	switch {
	case p.pos > 0:
		p.pos--
	case p.repeat == RepeatAll:
		p.pos = len(p.order) - 1
	}
	t, _ := p.Current()
	return t, true
}

// ToggleShuffle turns shuffle on or off. The current track stays current:
// shuffling moves it to the front of a new random order, unshuffling
// restores file order at its position.
func (p *Playlist) ToggleShuffle() {
	p.shuffle = !p.shuffle
	if len(p.tracks) == 0 {
		return
	}
	if p.shuffle {
		p.reshuffle()
		return
	}
	cur := p.order[p.pos]
	slices.Sort(p.order)
	p.pos = cur
}

// reshuffle puts the current track first and randomizes the rest.
func (p *Playlist) reshuffle() {
	p.swap(0, p.pos)
	p.pos = 0
	rand.Shuffle(len(p.order)-1, func(i, j int) { p.swap(i+1, j+1) })
}

func (p *Playlist) swap(i, j int) {
	p.order[i], p.order[j] = p.order[j], p.order[i]
}

// CycleRepeat cycles through Off -> All -> One.
func (p *Playlist) CycleRepeat() {
	p.repeat = (p.repeat + 1) % 3
}

// Shuffled reports whether shuffle is on.
func (p *Playlist) Shuffled() bool { return p.shuffle }

// Repeat returns the current repeat mode.
func (p *Playlist) Repeat() RepeatMode { return p.repeat }
