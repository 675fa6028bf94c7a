// Package app is the composition root of the loupe TUI.
//
// Run wires the pieces together in order:
//
//  1. Load config.toml (defaults when missing) and prefs.toml
//  2. Open the zerolog file logger; the terminal belongs to the UI
//  3. Build the source selector, which owns the watch session and forwards
//     its snapshots into a state.Store
//  4. Select the initial root: --dir, then --project, then the last used
//     project, then the first configured one
//  5. Start the poller that restarts the watch when a missing root appears
//  6. Run the Bubble Tea program until the user quits or ctx is cancelled
//
// Errors during the initial selection are not fatal. The UI starts anyway
// and the header shows what went wrong, so the user can switch projects.
//
// The poller backs off exponentially, capped at 30 seconds, while restarts
// keep failing.
package app
