package status

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	runtime    lipgloss.Style
	detail     lipgloss.Style
	label      lipgloss.Style
	warning    lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	running    lipgloss.Style
	paused     lipgloss.Style
	stopped    lipgloss.Style
	surplus    lipgloss.Style
	deficit    lipgloss.Style
	marker     lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		runtime:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		label:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		running:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
		paused:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		stopped:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		surplus:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		deficit:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		marker:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
