// Package state provides the thread-safe hand-off between the directory
// watcher and the UI.
//
// # Overview
//
// The watch session publishes file snapshots from its own goroutine. The
// source selector forwards each one into a Store, and the UI reads the Store
// on its tick:
//
//	Watch worker            Selector forwarder        UI (Bubble Tea)
//	┌─────────────┐        ┌───────────────────┐     ┌────────────────┐
//	│ scan roots  │──chan─→│ store.Update(snap) │     │ store.Snapshot()│
//	│ publish     │        └─────────┬─────────┘     │ render list    │
//	└─────────────┘                  └──(mutex)─────→└────────────────┘
//
// # Session Boundaries
//
// Reset is called by the selector after the previous watch session has been
// stopped and before the next one starts. It clears the file listing, so a
// listing from a root that is no longer watched can never be displayed.
//
// # Copying
//
// Update clones the incoming snapshot and Snapshot clones again on the way
// out. Neither side can observe the other's mutations. Errors are re-wrapped
// so the returned error is a distinct value that still matches errors.Is.
//
// # Zero Value
//
// A zero Store is ready to use; Snapshot returns an empty Snapshot with
// HasFiles false until the first Update.
package state
