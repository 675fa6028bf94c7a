package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/five82/loupe/internal/highlight"
	"github.com/five82/loupe/internal/render"
)

func (m Model) viewerWidth() int {
	return max(m.width-fileListWidth(m.width)-borderSize, 1)
}

// viewerText returns the buffer and spans currently on display.
func (m Model) viewerText() (string, []highlight.Span) {
	if m.doc == nil {
		return "", nil
	}
	if m.formatJSON {
		return m.doc.Session.Formatted()
	}
	return m.doc.Session.Raw(), m.doc.Session.Spans()
}

// refreshViewport re-renders the open document into the viewport.
func (m *Model) refreshViewport(toBottom bool) {
	if m.doc == nil {
		m.viewport.SetContent(m.placeholder())
		m.viewport.GotoTop()
		return
	}

	text, spans := m.viewerText()
	m.viewport.SetContent(render.String(text, spans, m.palette))
	if toBottom || m.follow {
		m.viewport.GotoBottom()
	}
}

func (m Model) placeholder() string {
	styles := m.theme.Styles()
	switch {
	case m.loading != "":
		return styles.FaintText.Render("loading " + filepath.Base(m.loading) + "…")
	case m.status != "" && m.statusErr:
		return styles.DangerText.Render(m.status)
	default:
		return styles.FaintText.Render("select a log file")
	}
}

func (m Model) renderViewer() string {
	styles := m.theme.Styles()
	style := styles.Pane
	if m.focus == paneViewer {
		style = styles.PaneFocus
	}
	return style.Render(m.viewport.View())
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	project := m.snapshot.Project
	if project == "" {
		project = "no project"
	}

	parts := []string{
		bg.Render("loupe", styles.AccentText.Bold(true)),
		bg.Render(project, styles.Text.Bold(true)),
	}
	if m.snapshot.HasFiles {
		parts = append(parts, bg.Render(fmt.Sprintf("%d files", len(m.files)), styles.MutedText))
	}
	if n := len(m.snapshot.Warnings); n > 0 {
		parts = append(parts, bg.Render(m.snapshot.Warnings[n-1], styles.WarnText))
	}
	if m.doc != nil {
		counts := m.doc.Session.Severities()
		if n := counts[highlight.CategoryError]; n > 0 {
			parts = append(parts, bg.Render(fmt.Sprintf("%d errors", n), styles.DangerText))
		}
		if n := counts[highlight.CategoryWarning]; n > 0 {
			parts = append(parts, bg.Render(fmt.Sprintf("%d warnings", n), styles.WarnText))
		}
	}

	return bg.FillLine(" "+bg.Join(parts, " │ "), m.width)
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	var parts []string
	if m.doc != nil {
		parts = append(parts, bg.Render(truncateMiddle(m.doc.Path, m.width/2), styles.MutedText))
	}
	var flags []string
	if m.formatJSON {
		flags = append(flags, "json")
	}
	if m.follow {
		flags = append(flags, "follow")
	}
	if len(flags) > 0 {
		parts = append(parts, bg.Render("["+strings.Join(flags, " ")+"]", styles.AccentText))
	}
	if m.status != "" {
		style := styles.MutedText
		if m.statusErr {
			style = styles.DangerText
		}
		parts = append(parts, bg.Render(m.status, style))
	}
	parts = append(parts, bg.Render("? help", styles.FaintText))

	return bg.FillLine(" "+bg.Join(parts, "  "), m.width)
}
