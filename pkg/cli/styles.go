package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Theme defines the color scheme for rendered output.
type Theme struct {
	Primary lipgloss.Color // Main accent color
	Agent   lipgloss.Color // Assistant/agent speech color
	Warn    lipgloss.Color // Attention color
	Dim     lipgloss.Color // Dimmed/help text color
}

// DefaultTheme is the default theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00b8d4"),
	Agent:   lipgloss.Color("#00c853"),
	Warn:    lipgloss.Color("#ffd600"),
	Dim:     lipgloss.Color("#6e7681"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Title  lipgloss.Style
	Label  lipgloss.Style
	Agent  lipgloss.Style
	Warn   lipgloss.Style
	Dim    lipgloss.Style
	Border lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Label:  lipgloss.NewStyle().Bold(true),
		Agent:  lipgloss.NewStyle().Foreground(t.Agent),
		Warn:   lipgloss.NewStyle().Foreground(t.Warn),
		Dim:    lipgloss.NewStyle().Foreground(t.Dim),
		Border: lipgloss.NewStyle().Foreground(t.Primary),
	}
}

// DefaultStyles are the styles for the default theme.
var DefaultStyles = NewStyles(DefaultTheme)

// RenderPanel renders content inside a titled, rounded border.
func RenderPanel(title, content string) string {
	s := DefaultStyles
	body := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(DefaultTheme.Primary).
		Padding(0, 1).
		Render(content)
	if title == "" {
		return body
	}
	return s.Title.Render(title) + "\n" + body
}

// RenderTable renders headers and rows as a bordered table.
func RenderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(DefaultStyles.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return DefaultStyles.Label.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...)
	return t.Render()
}
