package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"lyricflow/playlist"
)

// minWidth keeps the status rows legible on very narrow terminals.
const minWidth = 32

// View renders the full TUI frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.canvas.Render(),
		"",
		m.renderLyric(),
		"",
		m.renderStatus(),
		m.renderSeekBar(),
		m.renderHelp(),
	}
	if m.err != nil {
		sections = append(sections, errorStyle.Render(fmt.Sprintf("ERR: %s", m.err)))
	}
	return strings.Join(sections, "\n")
}

func (m Model) pw() int {
	return max(m.width, minWidth)
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("L Y R I C F L O W") + "  "
	track, _ := m.playlist.Current()
	name := track.DisplayName()
	if name == "" {
		name = "No track loaded"
	}

	maxW := m.pw() - lipgloss.Width(title) - 2
	runes := []rune(name)
	if maxW <= 0 {
		return title
	}
	if len(runes) <= maxW {
		return title + trackStyle.Render("♫ "+name)
	}

	// Cyclic scrolling for long titles
	padded := append(runes, []rune("  ♫  ")...)
	off := m.titleOff % len(padded)
	display := make([]rune, maxW)
	for i := range maxW {
		display[i] = padded[(off+i)%len(padded)]
	}
	return title + trackStyle.Render("♫ "+string(display))
}

// renderLyric draws the current line with its colour blended toward the
// background by the fade opacity.
func (m Model) renderLyric() string {
	if m.lyric.text == "" {
		return ""
	}
	from, _ := colorful.Hex(lyricHidden)
	to, _ := colorful.Hex(lyricShown)
	col := from.BlendRgb(to, m.lyric.opacity).Clamped()

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(col.Hex())).
		Bold(true)
	return lipgloss.PlaceHorizontal(m.pw(), lipgloss.Center, style.Render(m.lyric.text))
}

func (m Model) renderStatus() string {
	pos := m.player.Position()
	dur := m.player.Duration()
	timeStr := timeStyle.Render(fmt.Sprintf("%s / %s", clock(pos), clock(dur)))

	var status string
	switch {
	case m.player.IsPlaying() && m.player.IsPaused():
		status = statusStyle.Render("Paused")
	case m.player.IsPlaying():
		status = statusStyle.Render("Playing")
	default:
		status = dimStyle.Render("Stopped")
	}

	const meterW = 10
	filled := int(m.frame.Intensity * meterW)
	meter := levelStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", meterW-filled))

	left := timeStr + "  " + status + m.renderModes()
	right := labelStyle.Render("BASS ") + meter +
		dimStyle.Render(fmt.Sprintf(" %3d✦  %.2fx  %+.0fdB",
			m.frame.Particles, m.player.Speed(), m.player.Volume()))

	gap := max(1, m.pw()-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right
}

// renderModes shows the shuffle and repeat flags when they are on.
func (m Model) renderModes() string {
	var flags []string
	if m.playlist.Shuffled() {
		flags = append(flags, "⤮")
	}
	if r := m.playlist.Repeat(); r != playlist.RepeatOff {
		flags = append(flags, "⟳ "+r.String())
	}
	if len(flags) == 0 {
		return ""
	}
	return "  " + labelStyle.Render(strings.Join(flags, " "))
}

func (m Model) renderSeekBar() string {
	pos := m.player.Position()
	dur := m.player.Duration()

	var progress float64
	if dur > 0 {
		progress = float64(pos) / float64(dur)
	}
	progress = max(0, min(1, progress))

	pw := m.pw()
	filled := int(progress * float64(pw-1))

	return seekFillStyle.Render(strings.Repeat("━", filled)) +
		seekFillStyle.Render("●") +
		dimStyle.Render(strings.Repeat("━", max(0, pw-filled-1)))
}

func (m Model) renderHelp() string {
	return helpStyle.Render("[Spc]Pause [←→]Seek [[]]Speed [+-]Vol [n/p]Trk [s]Shuffle [r]Repeat [q]Quit")
}

func clock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
