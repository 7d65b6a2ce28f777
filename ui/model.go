// Package ui implements the Bubbletea TUI for lyricflow: the audio-reactive
// canvas, the synced lyric line and the transport status.
package ui

import (
	"log"
	"math/rand/v2"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"

	"lyricflow/config"
	"lyricflow/lyrics"
	"lyricflow/playlist"
	"lyricflow/visual"
)

// Engine is the audio engine the UI drives. *player.Player satisfies it.
type Engine interface {
	Play(path string) error
	Stop()
	TogglePause()
	Seek(d time.Duration) error
	Position() time.Duration
	Duration() time.Duration
	SetSpeed(speed float64)
	Speed() float64
	SetVolume(db float64)
	Volume() float64
	IsPlaying() bool
	IsPaused() bool
	TrackDone() bool
	Samples(n int) []float64
}

// Rows taken by everything except the canvas.
const chromeRows = 8

type tickMsg time.Time

// Model is the Bubbletea model for the lyricflow TUI.
type Model struct {
	player   Engine
	playlist *playlist.Playlist
	cfg      config.Config

	canvas   *visual.Canvas
	pipeline *visual.Pipeline
	cursor   *lyrics.Cursor
	frame    visual.Frame

	lyric   lyricLine
	spring  harmonica.Spring
	lastPos time.Duration

	titleOff int // scroll offset for long track titles
	err      error
	quitting bool
	width    int
	height   int
}

// lyricLine is the text on screen and its animated opacity.
type lyricLine struct {
	text    string
	target  float64
	opacity float64
	vel     float64
}

// NewModel creates a Model wired to the given engine and playlist. rng seeds
// the particle field; nil uses a random seed.
func NewModel(p Engine, pl *playlist.Playlist, cfg config.Config, rng *rand.Rand) Model {
	canvas := visual.NewCanvas(0, 0)
	pipeline := visual.NewPipeline(
		visual.NewSampler(p, cfg.Spectrum()),
		visual.DefaultExtractor(),
		visual.NewField(cfg.Field(), rng),
		visual.DefaultPulse(),
		visual.DefaultBackground(),
		canvas,
	)
	fps := cfg.FPS
	if fps <= 0 {
		fps = 30
	}
	return Model{
		player:   p,
		playlist: pl,
		cfg:      cfg,
		canvas:   canvas,
		pipeline: pipeline,
		cursor:   lyrics.NewCursor(nil, cfg.Cursor()),
		spring:   harmonica.NewSpring(harmonica.FPS(fps), 8.0, 1.0),
		lastPos:  -1,
	}
}

// Init starts the tick timer and requests the terminal size.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), tea.WindowSize())
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.cfg.TickInterval(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages: key presses, ticks, and window resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		if m.quitting {
			return m, tea.Quit
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.canvas.ResizeCells(m.width, max(0, m.height-chromeRows))

	case tickMsg:
		m.tick(time.Time(msg))
		return m, m.tickCmd()
	}

	return m, nil
}

// tick runs one frame: track end, lyric cursor, animation, lyric fade.
func (m *Model) tick(now time.Time) {
	if m.player.IsPlaying() && !m.player.IsPaused() && m.player.TrackDone() {
		m.nextTrack()
	}

	// The cursor only moves when playback time does, like a media
	// element's timeupdate; in between only its deferred effects fire.
	pos := m.player.Position()
	var events []lyrics.Event
	if pos != m.lastPos {
		m.lastPos = pos
		events = m.cursor.Update(pos.Seconds(), now)
	} else {
		events = m.cursor.Poll(now)
	}
	m.applyLyric(events)

	m.frame = m.pipeline.Tick(now)

	m.lyric.opacity, m.lyric.vel = m.spring.Update(m.lyric.opacity, m.lyric.vel, m.lyric.target)
	m.lyric.opacity = visual.Clamp01(m.lyric.opacity)
	m.titleOff++
}

func (m *Model) applyLyric(events []lyrics.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case lyrics.EventShow:
			m.lyric.text = ev.Text
			m.lyric.target = 1
		case lyrics.EventFadeOut, lyrics.EventHide:
			m.lyric.target = 0
		}
	}
}

// StartPlayback plays the playlist's current track.
func (m *Model) StartPlayback() {
	m.playCurrentTrack()
}

// loadTrack starts playback of t and loads its lyrics. Missing or broken
// lyrics leave the cursor empty.
func (m *Model) loadTrack(t playlist.Track) {
	m.titleOff = 0
	m.lastPos = -1
	m.lyric = lyricLine{}
	m.pipeline.Field().Reset()

	var lines []lyrics.Line
	if t.LyricsPath != "" {
		var err error
		lines, err = lyrics.Load(t.LyricsPath)
		if err != nil {
			log.Printf("lyrics unavailable for %s: %v", t.DisplayName(), err)
			lines = nil
		}
	}
	m.cursor = lyrics.NewCursor(lines, m.cfg.Cursor())

	if err := m.player.Play(t.Path); err != nil {
		m.err = err
		return
	}
	m.err = nil
}

// nextTrack advances to the next playlist track and starts playing it.
func (m *Model) nextTrack() {
	track, ok := m.playlist.Next()
	if !ok {
		m.player.Stop()
		return
	}
	m.loadTrack(track)
}

// prevTrack goes to the previous track, or restarts if >3s into the current one.
func (m *Model) prevTrack() {
	if m.player.Position() > 3*time.Second {
		if err := m.player.Seek(-m.player.Position()); err != nil {
			m.err = err
		}
		return
	}
	track, ok := m.playlist.Prev()
	if !ok {
		return
	}
	m.loadTrack(track)
}

// playCurrentTrack starts playing whatever track the playlist points to.
func (m *Model) playCurrentTrack() {
	track, idx := m.playlist.Current()
	if idx < 0 {
		return
	}
	m.loadTrack(track)
}
