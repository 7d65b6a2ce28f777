package ui

import "github.com/charmbracelet/lipgloss"

// Colour palette using standard ANSI terminal colors (0-15) for the chrome;
// the canvas and lyric fade use true colour.
var (
	colorTitle   = lipgloss.ANSIColor(13) // bright magenta
	colorText    = lipgloss.ANSIColor(7)  // white (light gray)
	colorDim     = lipgloss.ANSIColor(8)  // bright black (dark gray)
	colorAccent  = lipgloss.ANSIColor(14) // bright cyan
	colorPlaying = lipgloss.ANSIColor(10) // bright green
	colorSeekBar = lipgloss.ANSIColor(13) // bright magenta
	colorLevel   = lipgloss.ANSIColor(12) // bright blue
)

// Lyric text fades between these two colours.
const (
	lyricHidden = "#1b1530"
	lyricShown  = "#fff6fb"
)

// Lip Gloss styles
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorTitle).
			Bold(true)

	trackStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	timeStyle = lipgloss.NewStyle().
			Foreground(colorText)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorPlaying).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	levelStyle = lipgloss.NewStyle().
			Foreground(colorLevel)

	seekFillStyle = lipgloss.NewStyle().
			Foreground(colorSeekBar)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.ANSIColor(9)) // bright red
)
