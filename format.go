package logplugin

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Line is one log entry ready to be rendered.
type Line struct {
	Time    time.Time
	Level   Level
	App     string
	Message string
}

// Color tones: timestamp, app name and message each get their own, the
// level is colored by severity.
type palette struct {
	timestamp lipgloss.Style
	app       lipgloss.Style
	message   lipgloss.Style
	debug     lipgloss.Style
	info      lipgloss.Style
	warn      lipgloss.Style
	danger    lipgloss.Style
}

// The renderer is pinned to the 16-color ANSI profile so decorated lines are
// identical whether they end up on a terminal, in a pipe or in a file.
var colors = newPalette()

func newPalette() palette {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)

	fg := func(c string) lipgloss.Style {
		return r.NewStyle().
			Foreground(lipgloss.Color(c)).
			TabWidth(lipgloss.NoTabConversion)
	}

	return palette{
		timestamp: fg("9"), // bright red
		app:       fg("6"), // cyan
		message:   fg("7"), // white
		debug:     fg("4"), // blue
		info:      fg("2"), // green
		warn:      fg("3"), // yellow
		danger:    fg("1"), // red
	}
}

func (p palette) level(l Level) lipgloss.Style {
	switch l {
	case LevelDebug:
		return p.debug
	case LevelWarn:
		return p.warn
	case LevelError:
		return p.danger
	default:
		return p.info
	}
}

func (l Line) timestamp() string {
	return l.Time.UTC().Format(time.RFC3339Nano)
}

// Plain renders "[<ts>] [<LEVEL>] <app>: <message>" without escape codes.
func (l Line) Plain() string {
	return fmt.Sprintf("[%s] [%s] %s: %s", l.timestamp(), l.Level, l.App, l.Message)
}

// Decorated renders the same fields as Plain, wrapped in ANSI color codes.
func (l Line) Decorated() string {
	return fmt.Sprintf("[%s] [%s] %s: %s",
		paint(colors.timestamp, l.timestamp()),
		paint(colors.level(l.Level), l.Level.String()),
		paint(colors.app, l.App),
		paint(colors.message, l.Message),
	)
}

// paint styles each line of text separately; lipgloss pads multi-line blocks
// to a common width, which would alter the message.
func paint(style lipgloss.Style, text string) string {
	if text == emptyString {
		return text
	}
	if !strings.Contains(text, "\n") {
		return style.Render(text)
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != emptyString {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
