// Package ui provides the Bubble Tea terminal interface for loupe.
//
// # Layout
//
// The screen is a one-line header, two panes, and a one-line footer:
//
//   - Header: active project, file count, the latest root warning and the
//     error/warning totals of the open file
//   - File list: every matching file under the active roots, newest first
//   - Viewer: the open file, annotated and styled through internal/render
//   - Footer: path of the open file, active modes, status messages
//
// # Data Flow
//
// The model never talks to the watcher directly. A tick command reads the
// latest state.Snapshot that the source selector forwards into the store,
// and applySnapshot rebuilds the file list from it. Files are loaded by a
// command that calls source.Selector.Load off the update loop; a result for
// a file the user has already moved away from is dropped.
//
// In follow mode every tick calls Document.Refresh, which appends new text
// to the highlight session so only the unfinished tail is re-classified.
//
// # Key Bindings
//
// Bindings are declared once in keys.go with bubbles/key and drive both the
// update logic and the help overlay:
//
//   - tab: switch focus between the file list and the viewer
//   - j/k, g/G, enter: move through and open files
//   - J: toggle pretty-printed JSON
//   - f or space: toggle follow mode
//   - p/P: next/previous project
//   - T: cycle theme
//   - h/?: help, q: quit
//
// Theme, last project and the JSON toggle persist through internal/prefs.
package ui
