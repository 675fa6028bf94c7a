// Package logtail reads log files for display.
//
// # Overview
//
// Log files handed to the viewer may be large and are usually still being
// written to. This package offers three reads:
//
//  1. ReadAll: the whole file, or only its tail when a byte cap is set
//  2. ReadFrom: bytes appended after a known offset (follow mode)
//  3. Read: the last N lines, used by the render command
//
// # Offsets
//
// Every Chunk carries the file offset just past the bytes that produced its
// text. Callers keep that offset and pass it to ReadFrom on the next refresh.
// A trailing partial UTF-8 sequence is never consumed, so a writer caught in
// the middle of a multi-byte rune does not corrupt the display; the bytes are
// picked up by the next read. Other invalid bytes are dropped.
//
// When the file is now shorter than the caller's offset it was truncated or
// replaced. ReadFrom then reads it again from the start and sets Reset so the
// caller can reload instead of appending.
//
// # Clipping
//
// ReadAll with a positive maxBytes keeps the last maxBytes of the file and
// drops everything up to the first newline inside that window, so the text
// always starts on a full line. Clipped is set in that case.
//
// # Ring Buffer
//
// Read keeps a circular buffer of maxLines entries while scanning the file
// once, so memory stays O(maxLines) whatever the file size:
//
//	1. Allocate ring buffer of size maxLines
//	2. For each line: store at idx, advance idx modulo maxLines
//	3. If fewer than maxLines were seen, return them in order
//	4. Otherwise return the buffer starting at idx (the oldest line)
//
// A non-positive maxLines returns every line.
//
// # Error Handling
//
// All errors are wrapped with the failing step ("open log", "stat log",
// "seek log", "read log"). A missing file is an error here: the caller is
// loading a file the user picked, and the message is shown to them.
package logtail
