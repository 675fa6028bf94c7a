// Package watch keeps an up to date listing of log files under one or more
// directory roots.
//
// Start adds an fsnotify watch to every directory below each root and
// publishes the initial listing. A single worker goroutine then turns
// filesystem events into full rescans, rate limited to one per debounce
// interval. A rescan is published only when the set of paths changed.
//
// Snapshots are handed over on an unbuffered channel. While the consumer is
// busy, a newer listing replaces the one waiting to be sent, so the
// consumer always sees the latest state in order. Stop joins the worker;
// once it returns nothing else is sent and the channel is closed.
package watch
