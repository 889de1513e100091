package errors

import (
	"strings"
	"sync/atomic"
)

type style string

const (
	styleRed   style = "31"
	styleCyan  style = "36"
	styleWhite style = "37"
	styleBold  style = "1"
)

var plain atomic.Bool

// DisableColors turns off ANSI styling in Format.
func DisableColors() { plain.Store(true) }

// EnableColors turns ANSI styling in Format back on.
func EnableColors() { plain.Store(false) }

func paint(text string, styles ...style) string {
	if plain.Load() || len(styles) == 0 {
		return text
	}
	codes := make([]string, len(styles))
	for i, s := range styles {
		codes[i] = string(s)
	}
	return "\033[" + strings.Join(codes, ";") + "m" + text + "\033[0m"
}

// Format renders the error over several lines for a terminal.
func (e *Error) Format() string {
	var b strings.Builder

	head := "ERROR: "
	if e.Code != "" {
		head = "ERROR " + e.Code + ": "
	}
	b.WriteString("\n" + paint(head, styleRed, styleBold) + paint(e.Message, styleWhite) + "\n\n")

	if lines := wrapText(e.Detail, 70); len(lines) > 0 {
		for _, line := range lines {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("\n")
	}
	if e.Wrapped != nil {
		b.WriteString("  caused by: " + e.Wrapped.Error() + "\n\n")
	}
	if e.Suggestion != "" {
		b.WriteString("  " + paint("Hint: ", styleCyan) + e.Suggestion + "\n")
	}
	return b.String()
}

// FormatCompact renders the error on one line: "CODE: message (detail)".
func (e *Error) FormatCompact() string {
	s := e.Message
	if e.Code != "" {
		s = e.Code + ": " + s
	}
	if e.Detail != "" {
		s += " (" + e.Detail + ")"
	}
	return s
}

// wrapText breaks text into lines of at most width bytes at word
// boundaries. Words longer than width get a line of their own.
func wrapText(text string, width int) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
