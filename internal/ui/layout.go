package ui

import "time"

// Pane geometry.
const (
	// FileListMaxWidth caps the file list pane, borders included.
	FileListMaxWidth = 42

	// FileListMinWidth is the narrowest the file list pane gets.
	FileListMinWidth = 20

	// chromeHeight is the header and footer lines around the panes.
	chromeHeight = 2

	// borderSize is the rounded border on each side of a pane.
	borderSize = 2
)

// DefaultUIInterval is the default refresh interval for the file list and
// follow mode.
const DefaultUIInterval = 500 * time.Millisecond

// fileListWidth returns the outer width of the file list pane for a terminal
// of the given width.
func fileListWidth(total int) int {
	w := total / 3
	if w > FileListMaxWidth {
		w = FileListMaxWidth
	}
	if w < FileListMinWidth {
		w = FileListMinWidth
	}
	if w > total {
		w = total
	}
	return w
}

// paneHeight returns the inner height of both panes.
func paneHeight(total int) int {
	return max(total-chromeHeight-borderSize, 1)
}
