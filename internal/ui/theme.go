package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/loupe/internal/highlight"
	"github.com/five82/loupe/internal/render"
)

// Theme defines the chrome colors and the log annotation colors.
type Theme struct {
	Name string

	// Chrome
	Background    string
	Surface       string
	SelectionBg   string
	SelectionText string
	Border        string
	BorderFocus   string
	Text          string
	Muted         string
	Faint         string
	Accent        string

	// Log annotation
	Error     string
	Warning   string
	Info      string
	Debug     string
	Timestamp string
	Frame     string
	Core      string
	App       string
	Location  string
	JSON      string
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Header     lipgloss.Style
	Footer     lipgloss.Style
	Text       lipgloss.Style
	MutedText  lipgloss.Style
	FaintText  lipgloss.Style
	AccentText lipgloss.Style
	DangerText lipgloss.Style
	WarnText   lipgloss.Style
	Selected   lipgloss.Style
	Pane       lipgloss.Style
	PaneFocus  lipgloss.Style
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.Border))

	return Styles{
		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Text:       lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		DangerText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Error)).Bold(true),
		WarnText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Pane:      pane,
		PaneFocus: pane.BorderForeground(lipgloss.Color(t.BorderFocus)),
	}
}

// Palette maps every annotation category to a style. Severities are bold
// for error and warning only.
func (t Theme) Palette() render.Palette {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return render.Palette{
		highlight.CategoryError:         fg(t.Error).Bold(true),
		highlight.CategoryWarning:       fg(t.Warning).Bold(true),
		highlight.CategoryInfo:          fg(t.Info),
		highlight.CategoryDebug:         fg(t.Debug),
		highlight.CategoryTimestamp:     fg(t.Timestamp),
		highlight.CategoryFrame:         fg(t.Frame),
		highlight.CategorySubsystemCore: fg(t.Core).Bold(true),
		highlight.CategorySubsystemApp:  fg(t.App).Bold(true),
		highlight.CategoryLocation:      fg(t.Location).Italic(true),
		highlight.CategoryJSON:          fg(t.JSON),
	}
}

// Theme definitions

var themes = map[string]Theme{
	"Dracula": draculaTheme(),
	"Slate":   slateTheme(),
	"Classic": classicTheme(),
}

var themeOrder = []string{"Dracula", "Slate", "Classic"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return draculaTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}

func draculaTheme() Theme {
	// Official Dracula palette: https://draculatheme.com/spec
	return Theme{
		Name: "Dracula",

		Background:    "#191A21", // BGDarker
		Surface:       "#282A36", // Background
		SelectionBg:   "#44475A", // Selection
		SelectionText: "#F8F8F2", // Foreground
		Border:        "#44475A",
		BorderFocus:   "#BD93F9", // Purple
		Text:          "#F8F8F2",
		Muted:         "#6272A4", // Comment
		Faint:         "#44475A",
		Accent:        "#BD93F9",

		Error:     "#FF5555", // Red
		Warning:   "#FFB86C", // Orange
		Info:      "#8BE9FD", // Cyan
		Debug:     "#50FA7B", // Green
		Timestamp: "#6272A4",
		Frame:     "#6272A4",
		Core:      "#FF79C6", // Pink
		App:       "#BD93F9",
		Location:  "#F1FA8C", // Yellow
		JSON:      "#F8F8F2",
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background:    "#020617", // slate-950
		Surface:       "#0f172a", // slate-900
		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50
		Border:        "#334155", // slate-700
		BorderFocus:   "#38bdf8", // sky-400
		Text:          "#f1f5f9", // slate-100
		Muted:         "#94a3b8", // slate-400
		Faint:         "#64748b", // slate-500
		Accent:        "#38bdf8",

		Error:     "#ef4444", // red-500
		Warning:   "#f59e0b", // amber-500
		Info:      "#0ea5e9", // sky-500
		Debug:     "#22c55e", // green-500
		Timestamp: "#64748b",
		Frame:     "#475569", // slate-600
		Core:      "#06b6d4", // cyan-500
		App:       "#14b8a6", // teal-500
		Location:  "#a78bfa", // violet-400
		JSON:      "#cbd5e1", // slate-300
	}
}

// classicTheme uses the named web colors of the Duin editor log panel.
func classicTheme() Theme {
	return Theme{
		Name: "Classic",

		Background:    "#000000",
		Surface:       "#1c1c1c",
		SelectionBg:   "#4169E1",
		SelectionText: "#FFFFFF",
		Border:        "#808080",
		BorderFocus:   "#4169E1",
		Text:          "#FFFFFF",
		Muted:         "#A9A9A9",
		Faint:         "#696969",
		Accent:        "#4169E1",

		Error:     "#FF0000", // red
		Warning:   "#FFA500", // orange
		Info:      "#4169E1", // royalblue
		Debug:     "#008000", // green
		Timestamp: "#808080", // gray
		Frame:     "#808080",
		Core:      "#FFFFFF",
		App:       "#FFFFFF",
		Location:  "#A9A9A9",
		JSON:      "#FFFFFF",
	}
}
