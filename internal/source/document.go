package source

import (
	"github.com/five82/loupe/internal/highlight"
	"github.com/five82/loupe/internal/logtail"
)

// Document is a loaded log file and its annotation.
type Document struct {
	Path    string
	Session *highlight.Session
	Offset  int64
	Clipped bool
}

// Refresh picks up text appended since the last read. A truncated or
// replaced file is loaded again from the start. It reports whether the
// buffer changed.
func (d *Document) Refresh() (bool, error) {
	chunk, err := logtail.ReadFrom(d.Path, d.Offset)
	if err != nil {
		return false, err
	}
	if chunk.Reset {
		d.Session.Load(chunk.Text)
		d.Offset = chunk.Offset
		d.Clipped = false
		return true, nil
	}
	if chunk.Text == "" {
		d.Offset = chunk.Offset
		return false, nil
	}
	d.Session.Append(chunk.Text)
	d.Offset = chunk.Offset
	return true, nil
}
