package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding

	// Projects
	NextProject key.Binding
	PrevProject key.Binding

	// File list
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Open   key.Binding

	// Viewer
	ToggleJSON   key.Binding
	ToggleFollow key.Binding
	Reload       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "h"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Switch pane"),
		),

		NextProject: key.NewBinding(
			key.WithKeys("p", "]"),
			key.WithHelp("p", "Next project"),
		),
		PrevProject: key.NewBinding(
			key.WithKeys("P", "["),
			key.WithHelp("P", "Previous project"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k", "Up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j", "Down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Bottom"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "l"),
			key.WithHelp("enter", "Open file"),
		),

		ToggleJSON: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "Format JSON"),
		),
		ToggleFollow: key.NewBinding(
			key.WithKeys("f", " "),
			key.WithHelp("f", "Follow"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload file"),
		),
	}
}

// helpSections groups bindings for the help overlay.
func (k keyMap) helpSections() []helpSection {
	return []helpSection{
		{title: "Files", bindings: []key.Binding{k.Up, k.Down, k.Top, k.Bottom, k.Open}},
		{title: "Viewer", bindings: []key.Binding{k.ToggleJSON, k.ToggleFollow, k.Reload}},
		{title: "Projects", bindings: []key.Binding{k.NextProject, k.PrevProject}},
		{title: "General", bindings: []key.Binding{k.Tab, k.CycleTheme, k.Help, k.Quit}},
	}
}
