package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shnupta/sessioner/internal/domain"
)

const (
	waitingText = "Waiting for permissions..."
	emptyText   = "No sessions found."
	title       = "Sessioner"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.mode == ModeWaiting {
		return m.renderWaiting()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderBody(),
		m.renderHelp(),
	)
}

func (m Model) renderWaiting() string {
	line := m.spinner.View() + " " + styleWaiting.Render(waitingText)
	return domain.TruncateLines(line, m.width)
}

func (m Model) renderHeader() string {
	header := styleRibbon.Render(title)
	if m.err != nil {
		header += styleError.Render("error: " + m.err.Error())
	}
	return domain.TruncateLines(header, m.width)
}

func (m Model) renderBody() string {
	rows := m.bodyRows()
	if rows == 0 {
		return ""
	}

	var b strings.Builder
	if len(m.entries) == 0 {
		b.WriteString(styleSub.Render(emptyText))
	} else {
		for i, r := range domain.BuildRows(m.lines, m.entries, m.snap) {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(domain.TruncateLines(renderRow(r), m.width))
		}
	}

	return lipgloss.NewStyle().Height(rows).MaxHeight(rows).Render(b.String())
}

// renderRow styles one list row. The name and status suffix of a header
// get separate styles; sub rows are indented.
func renderRow(r domain.Row) string {
	if r.Kind == domain.LineSub {
		st := styleSub
		if r.Selected {
			st = styleSubSelected
		}
		return strings.Repeat("  ", r.Indent()) + st.Render(r.Text)
	}

	name := styleName
	switch {
	case r.Selected:
		name = styleNameSelected
	case r.Entry == domain.KindNewSession:
		name = styleNewSession
	}
	out := name.Render(r.Name)
	if r.Suffix != "" {
		out += suffixStyle(r.Suffix, r.Selected).Render(r.Suffix)
	}
	return out
}

func (m Model) renderHelp() string {
	return domain.TruncateLines(m.help.View(keys), m.width)
}
