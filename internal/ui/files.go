package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/loupe/internal/state"
)

// applySnapshot replaces the file list, keeping the selection on the same
// path when it survives. When nothing is open yet the newest file is
// opened.
func (m *Model) applySnapshot(snap state.Snapshot) tea.Cmd {
	var selectedPath string
	if m.selected >= 0 && m.selected < len(m.files) {
		selectedPath = m.files[m.selected].Path
	}

	m.snapshot = snap
	m.files = snap.Files.ByRecency()
	m.selected = 0
	for i, f := range m.files {
		if f.Path == selectedPath {
			m.selected = i
			break
		}
	}

	if snap.LastError != nil && m.status == "" {
		m.setStatus(snap.LastError.Error(), true)
	}

	if m.doc == nil && m.loading == "" && len(m.files) > 0 {
		return m.open(m.files[0].Path)
	}
	return nil
}

func (m Model) handleFilesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.files)
	if count == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selected < count-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = count - 1
	case key.Matches(msg, m.keys.Open):
		cmd := m.open(m.files[m.selected].Path)
		return m, cmd
	}
	return m, nil
}

// renderFiles renders the file list pane, newest first.
func (m Model) renderFiles() string {
	styles := m.theme.Styles()
	width := fileListWidth(m.width) - borderSize
	height := paneHeight(m.height)

	var rows []string
	switch {
	case !m.snapshot.HasFiles:
		rows = append(rows, styles.FaintText.Render("scanning…"))
	case len(m.files) == 0:
		rows = append(rows, styles.FaintText.Render("no log files"))
	default:
		offset := max(m.selected-height+1, 0)
		end := min(offset+height, len(m.files))
		now := time.Now()
		nameWidth := max(width-5, 1)
		for i := offset; i < end; i++ {
			f := m.files[i]
			name := truncateMiddle(displayPath(m.snapshot.Roots, f.Path), nameWidth)
			row := padRight(name, nameWidth) + fmt.Sprintf(" %4s", humanizeAge(now, f.ModTime))

			switch {
			case i == m.selected && m.focus == paneFiles:
				row = styles.Selected.Width(width).Render(row)
			case i == m.selected:
				row = styles.AccentText.Render(row)
			case m.doc != nil && f.Path == m.doc.Path:
				row = styles.Text.Bold(true).Render(row)
			default:
				row = styles.Text.Render(row)
			}
			rows = append(rows, row)
		}
	}

	style := styles.Pane
	if m.focus == paneFiles {
		style = styles.PaneFocus
	}
	return style.Width(width).Height(height).MaxHeight(height + borderSize).Render(strings.Join(rows, "\n"))
}
