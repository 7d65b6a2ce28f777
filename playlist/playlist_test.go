package playlist

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestTrackFromPath(t *testing.T) {
	tests := []struct {
		path          string
		artist, title string
		display       string
	}{
		{"/music/Band - Song.mp3", "Band", "Song", "Band - Song"},
		{"/music/plain.wav", "", "plain", "plain"},
		{"rel/A - B - C.mp3", "A", "B - C", "A - B - C"},
	}
	for _, tt := range tests {
		tr := TrackFromPath(tt.path, "")
		if tr.Artist != tt.artist || tr.Title != tt.title {
			t.Errorf("TrackFromPath(%q) = %q/%q, want %q/%q", tt.path, tr.Artist, tr.Title, tt.artist, tt.title)
		}
		if tr.DisplayName() != tt.display {
			t.Errorf("DisplayName() = %q, want %q", tr.DisplayName(), tt.display)
		}
		if tr.LyricsPath != "" {
			t.Errorf("LyricsPath = %q, want none", tr.LyricsPath)
		}
	}
}

func TestFindLyrics(t *testing.T) {
	root := t.TempDir()
	music := filepath.Join(root, "music")
	extra := filepath.Join(root, "lyrics")

	touch(t, filepath.Join(music, "sibling.lrc"))
	touch(t, filepath.Join(music, "both.json"))
	touch(t, filepath.Join(music, "both.lrc"))
	touch(t, filepath.Join(extra, "elsewhere.json"))
	touch(t, filepath.Join(extra, "sibling.json"))
	if err := os.MkdirAll(filepath.Join(music, "dir.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		audio string
		want  string
	}{
		{"sibling.mp3", filepath.Join(music, "sibling.lrc")},
		{"both.mp3", filepath.Join(music, "both.json")},
		{"elsewhere.wav", filepath.Join(extra, "elsewhere.json")},
		{"missing.mp3", ""},
		{"dir.mp3", ""},
	}
	for _, tt := range tests {
		if got := FindLyrics(filepath.Join(music, tt.audio), extra); got != tt.want {
			t.Errorf("FindLyrics(%s) = %q, want %q", tt.audio, got, tt.want)
		}
	}

	tr := TrackFromPath(filepath.Join(music, "sibling.mp3"), "")
	if tr.LyricsPath != filepath.Join(music, "sibling.lrc") {
		t.Errorf("TrackFromPath LyricsPath = %q", tr.LyricsPath)
	}
}

func newList(names ...string) *Playlist {
	p := New()
	for _, n := range names {
		p.Add(Track{Path: n, Title: n})
	}
	return p
}

func TestNextPrevRepeatOff(t *testing.T) {
	p := newList("a", "b", "c")
	if tr, idx := p.Current(); tr.Title != "a" || idx != 0 {
		t.Fatalf("Current() = %q, %d", tr.Title, idx)
	}
	for _, want := range []string{"b", "c"} {
		tr, ok := p.Next()
		if !ok || tr.Title != want {
			t.Errorf("Next() = %q, %v; want %q", tr.Title, ok, want)
		}
	}
	if _, ok := p.Next(); ok {
		t.Error("Next() past the end should fail with repeat off")
	}
	if tr, _ := p.Prev(); tr.Title != "b" {
		t.Errorf("Prev() = %q, want b", tr.Title)
	}
}

func TestRepeatModes(t *testing.T) {
	p := newList("a", "b")
	p.CycleRepeat()
	if p.Repeat() != RepeatAll {
		t.Fatalf("Repeat() = %v, want All", p.Repeat())
	}
	p.Next()
	if tr, ok := p.Next(); !ok || tr.Title != "a" {
		t.Errorf("Next() with RepeatAll = %q, %v; want wrap to a", tr.Title, ok)
	}
	if tr, _ := p.Prev(); tr.Title != "b" {
		t.Errorf("Prev() with RepeatAll = %q, want wrap to b", tr.Title)
	}

	p.CycleRepeat()
	if tr, ok := p.Next(); !ok || tr.Title != "b" {
		t.Errorf("Next() with RepeatOne = %q, %v; want b again", tr.Title, ok)
	}
	p.CycleRepeat()
	if p.Repeat() != RepeatOff || p.Repeat().String() != "Off" {
		t.Errorf("Repeat() = %v, want Off", p.Repeat())
	}
}

func TestShuffleKeepsCurrentTrack(t *testing.T) {
	p := newList("a", "b", "c", "d", "e")
	p.Next()
	p.Next()
	p.ToggleShuffle()
	if !p.Shuffled() {
		t.Fatal("Shuffled() = false after toggle")
	}
	if tr, _ := p.Current(); tr.Title != "c" {
		t.Errorf("Current() after shuffle = %q, want c", tr.Title)
	}
	seen := map[string]bool{"c": true}
	for {
		tr, ok := p.Next()
		if !ok {
			break
		}
		seen[tr.Title] = true
	}
	if len(seen) != 5 {
		t.Errorf("shuffled order visited %d tracks, want 5", len(seen))
	}

	last, idx := p.Current()
	p.ToggleShuffle()
	if tr, i := p.Current(); tr.Title != last.Title || i != idx {
		t.Errorf("Current() after unshuffle = %q, want %q", tr.Title, last.Title)
	}
	if _, ok := p.Next(); ok != (idx < 4) {
		t.Errorf("Next() after unshuffle = %v, want file order from %q", ok, last.Title)
	}
}

func TestEmptyPlaylist(t *testing.T) {
	p := New()
	if _, idx := p.Current(); idx != -1 {
		t.Errorf("Current() index = %d, want -1", idx)
	}
	if _, ok := p.Next(); ok {
		t.Error("Next() on empty playlist should fail")
	}
	if _, ok := p.Prev(); ok {
		t.Error("Prev() on empty playlist should fail")
	}
	p.ToggleShuffle()
	p.ToggleShuffle()
	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
}
