package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Read returns at most maxLines from the end of the file at path.
// maxLines <= 0 returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count, idx := 0, 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Level extracts the level=... attribute of a slog text line.
// ok is false when the line carries no recognizable level.
func Level(line string) (level slog.Level, ok bool) {
	for _, field := range strings.Fields(line) {
		value, found := strings.CutPrefix(field, "level=")
		if !found {
			continue
		}
		if err := level.UnmarshalText([]byte(value)); err != nil {
			return 0, false
		}
		return level, true
	}
	return 0, false
}

// FilterLevel keeps lines at or above minLevel. Lines without a level are
// continuation output and are kept.
func FilterLevel(lines []string, minLevel slog.Level) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if lvl, ok := Level(line); ok && lvl < minLevel {
			continue
		}
		out = append(out, line)
	}
	return out
}

// Palette holds the styles used by Colorize.
type Palette struct {
	Debug lipgloss.Style
	Info  lipgloss.Style
	Warn  lipgloss.Style
	Error lipgloss.Style
	Key   lipgloss.Style
}

// DefaultPalette suits dark terminal backgrounds.
func DefaultPalette() Palette {
	return Palette{
		Debug: lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7")),
		Info:  lipgloss.NewStyle().Foreground(lipgloss.Color("#81b29a")).Bold(true),
		Warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#dbc074")).Bold(true),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("#c94f6d")).Bold(true),
		Key:   lipgloss.NewStyle().Faint(true),
	}
}

// Colorize styles the level value and dims attribute keys.
// Malformed lines are returned unchanged.
func Colorize(line string, p Palette) string {
	lvl, ok := Level(line)
	if !ok {
		return line
	}
	levelStyle := p.Info
	switch {
	case lvl >= slog.LevelError:
		levelStyle = p.Error
	case lvl >= slog.LevelWarn:
		levelStyle = p.Warn
	case lvl < slog.LevelInfo:
		levelStyle = p.Debug
	}

	fields := strings.Split(line, " ")
	quoted := false
	for i, field := range fields {
		wasQuoted := quoted
		if strings.Count(field, `"`)%2 == 1 {
			quoted = !quoted
		}
		if wasQuoted {
			continue
		}
		key, value, found := strings.Cut(field, "=")
		if !found || key == "" || strings.ContainsAny(key, `"`) {
			continue
		}
		if key == "level" {
			fields[i] = p.Key.Render(key+"=") + levelStyle.Render(value)
			continue
		}
		fields[i] = p.Key.Render(key+"=") + value
	}
	return strings.Join(fields, " ")
}

// ColorizeLines applies Colorize to every line.
func ColorizeLines(lines []string, p Palette) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Colorize(line, p)
	}
	return out
}
