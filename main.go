// Package main is the entry point for lyricflow, a terminal player that
// animates a pulse and particle field from the music's bass and shows the
// synced lyrics.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gopxl/beep/v2"

	"lyricflow/config"
	"lyricflow/player"
	"lyricflow/playlist"
	"lyricflow/ui"
)

func run() error {
	if len(os.Args) < 2 {
		return errors.New("usage: lyricflow <file.mp3|file.wav> [more files ...]")
	}
	cfg := config.Load()

	// The TUI owns the terminal, so logs go to a file or nowhere.
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "lyricflow")
		if err != nil {
			return fmt.Errorf("log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	// Expand shell globs that may not have been expanded by the shell
	var files []string
	for _, arg := range os.Args[1:] {
		matches, err := filepath.Glob(arg)
		if err != nil || len(matches) == 0 {
			files = append(files, arg)
		} else {
			files = append(files, matches...)
		}
	}

	pl := playlist.New()
	for _, f := range files {
		t := playlist.TrackFromPath(f, cfg.LyricsDir)
		if t.LyricsPath == "" {
			log.Printf("no lyrics found for %s", f)
		}
		pl.Add(t)
	}

	if pl.Len() == 0 {
		return errors.New("no audio files to play")
	}

	p, err := player.New(beep.SampleRate(cfg.SampleRate))
	if err != nil {
		return err
	}
	defer p.Close()
	p.SetVolume(cfg.Volume)
	p.SetSpeed(cfg.Speed)

	m := ui.NewModel(p, pl, cfg, nil)
	m.StartPlayback()
	prog := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
