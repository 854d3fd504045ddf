package viz

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ffff"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)
	runningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	pausedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
	recStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4444"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688")).Italic(true)
)

func metric(label, value string) string {
	return labelStyle.Render(label+" ") + valueStyle.Render(value)
}
