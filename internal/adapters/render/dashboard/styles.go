package dashboard

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title        lipgloss.Style
	header       lipgloss.Style
	groupHeader  lipgloss.Style
	slug         lipgloss.Style
	stateActive  lipgloss.Style
	stateWaiting lipgloss.Style
	stateOther   lipgloss.Style
	detail       lipgloss.Style
	meta         lipgloss.Style
	gastown      lipgloss.Style
	note         lipgloss.Style
	warning      lipgloss.Style
	section      lipgloss.Style
	empty        lipgloss.Style
	barBracket   lipgloss.Style
	barFill      lipgloss.Style
	barEmpty     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:        lipgloss.NewStyle().Bold(true),
		header:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		groupHeader:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		slug:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		stateActive:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("77")),
		stateWaiting: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		stateOther:   lipgloss.NewStyle().Faint(true),
		detail:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		meta:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		gastown:      lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		note:         lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("183")),
		warning:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:      lipgloss.NewStyle().MarginTop(1),
		empty:        lipgloss.NewStyle().Faint(true),
		barBracket:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:      lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
