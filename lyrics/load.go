// Package lyrics loads timestamped lyric lines and tracks which one is
// current as playback advances.
package lyrics

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var (
	// ErrUnsorted is returned when line times are not ascending.
	ErrUnsorted = errors.New("lyric times are not sorted ascending")
	// ErrEmpty is returned when a file yields no lines.
	ErrEmpty = errors.New("no lyric lines")
)

// Line is one lyric line and the playback second it starts at.
type Line struct {
	Time float64 `json:"time"`
	Text string  `json:"line"`
}

// jsonLine accepts both "line" and "text" for the lyric body.
type jsonLine struct {
	Time *float64 `json:"time"`
	Line string   `json:"line"`
	Text string   `json:"text"`
}

// Load reads a lyric file. ".lrc" files are parsed as LRC, anything else as
// a JSON array of {"time": seconds, "line": text}.
func Load(path string) ([]Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lyrics: %w", err)
	}
	defer f.Close()

	var lines []Line
	if strings.EqualFold(filepath.Ext(path), ".lrc") {
		lines, err = ParseLRC(f)
	} else {
		lines, err = ParseJSON(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return lines, nil
}

// ParseJSON decodes a JSON lyric array. The entries must already be sorted.
func ParseJSON(r io.Reader) ([]Line, error) {
	var raw []jsonLine
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	lines := make([]Line, 0, len(raw))
	for i, e := range raw {
		if e.Time == nil {
			return nil, fmt.Errorf("entry %d: missing time", i)
		}
		text := e.Line
		if text == "" {
			text = e.Text
		}
		lines = append(lines, Line{Time: *e.Time, Text: text})
	}
	if err := Validate(lines); err != nil {
		return nil, err
	}
	return lines, nil
}

var (
	lrcTag  = regexp.MustCompile(`^\[(\d+):(\d{1,2}(?:[.:]\d{1,3})?)\]`)
	lrcMeta = regexp.MustCompile(`^\[[a-zA-Z#]+:[^\]]*\]\s*$`)
)

// ParseLRC reads "[mm:ss.xx] text" lines. A line may carry several time
// tags; metadata tags such as [ar:...] are skipped. The result is sorted
// with a stable sort so equal times keep file order.
func ParseLRC(r io.Reader) ([]Line, error) {
	var lines []Line
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		raw := strings.TrimSpace(sc.Text())
		if raw == "" || lrcMeta.MatchString(raw) {
			continue
		}
		var times []float64
		for {
			m := lrcTag.FindStringSubmatch(raw)
			if m == nil {
				break
			}
			t, err := lrcSeconds(m[1], m[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", n, err)
			}
			times = append(times, t)
			raw = raw[len(m[0]):]
		}
		text := strings.TrimSpace(raw)
		for _, t := range times {
			lines = append(lines, Line{Time: t, Text: text})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmpty
	}
	slices.SortStableFunc(lines, func(a, b Line) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		}
		return 0
	})
	return lines, nil
}

func lrcSeconds(mm, sec string) (float64, error) {
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("minutes %q: %w", mm, err)
	}
	// Some writers use a colon before the fraction: [01:02:50].
	if i := strings.LastIndex(sec, ":"); i >= 0 {
		sec = sec[:i] + "." + sec[i+1:]
	}
	s, err := strconv.ParseFloat(sec, 64)
	if err != nil {
		return 0, fmt.Errorf("seconds %q: %w", sec, err)
	}
	return float64(m)*60 + s, nil
}

// Validate reports ErrUnsorted if any line starts before its predecessor,
// and rejects negative or non-finite times.
func Validate(lines []Line) error {
	for i, l := range lines {
		if l.Time != l.Time || l.Time < 0 || l.Time > 1e9 {
			return fmt.Errorf("entry %d: invalid time %v", i, l.Time)
		}
		if i > 0 && l.Time < lines[i-1].Time {
			return fmt.Errorf("entry %d at %.2fs: %w", i, l.Time, ErrUnsorted)
		}
	}
	return nil
}
