package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/shnupta/sessioner/internal/domain"
)

var (
	// Colours
	colAccent   = lipgloss.Color("#7C3AED") // purple
	colAttached = lipgloss.Color("#10B981") // emerald
	colExited   = lipgloss.Color("#F59E0B") // amber
	colError    = lipgloss.Color("#EF4444") // red
	colText     = lipgloss.Color("#E5E7EB")
	colSubtext  = lipgloss.Color("#6B7280")
	colSelected = lipgloss.Color("#1F2937")

	styleRibbon = lipgloss.NewStyle().
			Background(colAccent).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	styleError = lipgloss.NewStyle().
			Foreground(colError).
			PaddingLeft(1)

	styleName = lipgloss.NewStyle().
			Foreground(colText)

	styleNameSelected = lipgloss.NewStyle().
				Foreground(colText).
				Background(colSelected).
				Bold(true)

	styleSuffix = lipgloss.NewStyle().
			Foreground(colSubtext)

	styleSub = lipgloss.NewStyle().
			Foreground(colSubtext)

	styleSubSelected = lipgloss.NewStyle().
				Foreground(colText).
				Background(colSelected)

	styleNewSession = lipgloss.NewStyle().
			Foreground(colAccent)

	styleWaiting = lipgloss.NewStyle().
			Foreground(colSubtext)

	styleHelpKey = lipgloss.NewStyle().
			Foreground(colAccent).
			Bold(true)

	styleHelpDesc = lipgloss.NewStyle().
			Foreground(colSubtext)
)

// suffixStyle colours a status suffix by what it says.
func suffixStyle(suffix string, selected bool) lipgloss.Style {
	st := styleSuffix
	switch suffix {
	case domain.SuffixAttached:
		st = st.Foreground(colAttached)
	case domain.SuffixExited:
		st = st.Foreground(colExited)
	}
	if selected {
		st = st.Background(colSelected)
	}
	return st
}
