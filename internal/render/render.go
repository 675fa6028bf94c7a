// Package render turns an annotated buffer into terminal output.
package render

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/five82/loupe/internal/highlight"
)

const tabWidth = 4

// Palette maps each category to the style it is drawn with. A nil Palette
// renders plain text.
type Palette map[highlight.Category]lipgloss.Style

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Layer resolves overlapping spans into one category per byte of a buffer
// of length n. Later spans win.
func Layer(n int, spans []highlight.Span) []highlight.Category {
	cats := make([]highlight.Category, n)
	for _, sp := range spans {
		start := max(sp.Start, 0)
		end := min(sp.End(), n)
		for i := start; i < end; i++ {
			cats[i] = sp.Category
		}
	}
	return cats
}

// Lines renders text line by line. Tabs are expanded for display.
func Lines(text string, spans []highlight.Span, p Palette) []string {
	cats := Layer(len(text), spans)

	var lines []string
	var b strings.Builder
	lineStart := 0
	for lineStart <= len(text) {
		lineEnd := strings.IndexByte(text[lineStart:], '\n')
		if lineEnd < 0 {
			lineEnd = len(text)
		} else {
			lineEnd += lineStart
		}

		b.Reset()
		runStart := lineStart
		for i := lineStart; i <= lineEnd; i++ {
			if i < lineEnd && cats[i] == cats[runStart] {
				continue
			}
			if i > runStart {
				b.WriteString(styleRun(text[runStart:i], cats[runStart], p))
			}
			runStart = i
		}
		lines = append(lines, b.String())

		if lineEnd == len(text) {
			break
		}
		lineStart = lineEnd + 1
	}
	return lines
}

// String renders text with newlines preserved.
func String(text string, spans []highlight.Span, p Palette) string {
	return strings.Join(Lines(text, spans, p), "\n")
}

func styleRun(run string, cat highlight.Category, p Palette) string {
	run = strings.ReplaceAll(run, "\t", strings.Repeat(" ", tabWidth))
	run = strings.TrimSuffix(run, "\r")
	if p == nil || cat == "" {
		return run
	}
	style, ok := p[cat]
	if !ok {
		return run
	}
	return style.Render(run)
}
