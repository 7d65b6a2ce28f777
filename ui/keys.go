package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	seekStep   = 5 * time.Second
	speedStep  = 0.25
	volumeStep = 1.0 // dB
)

// handleKey applies a key press to the player and playlist.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		m.player.Stop()

	case " ":
		m.player.TogglePause()

	case "left":
		if err := m.player.Seek(-seekStep); err != nil {
			m.err = err
		}
	case "right":
		if err := m.player.Seek(seekStep); err != nil {
			m.err = err
		}

	case "[":
		m.player.SetSpeed(m.player.Speed() - speedStep)
	case "]":
		m.player.SetSpeed(m.player.Speed() + speedStep)

	case "+", "=":
		m.player.SetVolume(m.player.Volume() + volumeStep)
	case "-":
		m.player.SetVolume(m.player.Volume() - volumeStep)

	case "n", ">":
		m.nextTrack()
	case "p", "<":
		m.prevTrack()

	case "s":
		m.playlist.ToggleShuffle()
	case "r":
		m.playlist.CycleRepeat()
	}
	return nil
}
