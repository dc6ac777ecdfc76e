package watch

import (
	"fmt"
	"strings"

	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const helpLine = "j/k move · / search · f focus · g gastown · m group · c cards · z collapse · x kill · r refresh · q quit"

func (m Model) View() string {
	lines := []string{m.headerView()}

	if m.searching {
		lines = append(lines, m.search.View())
	}

	if len(m.snapshot.Sessions) == 0 {
		if m.err != nil {
			lines = append(lines, m.renderer.Warning("backend unreachable, retrying"))
		} else if !m.fetching {
			lines = append(lines, m.renderer.Faint("No sessions running."))
		}
	}

	for _, group := range m.snapshot.Groups {
		lines = append(lines, "", m.renderer.GroupHeader(group))
		if group.Collapsed {
			continue
		}
		for _, view := range group.Sessions {
			card := m.cards[view.Session.ID]
			if card == "" {
				card = m.renderer.Card(view, m.renderOptions())
			}
			lines = append(lines, m.markSelected(view.Session.ID, card))
		}
	}

	lines = append(lines, "", m.footerView())

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) headerView() string {
	active, waiting := 0, 0
	for _, view := range m.snapshot.Sessions {
		switch view.Session.State {
		case domain.StateActive:
			active++
		case domain.StateWaiting:
			waiting++
		}
	}

	header := m.renderer.Title("Claude Sessions") + " " +
		m.renderer.Header(fmt.Sprintf("%d sessions · %d active · %d waiting · poll %s",
			len(m.snapshot.Sessions), active, waiting, m.interval))

	if m.fetching {
		header += " " + m.spinner.View()
	}

	return header
}

func (m Model) footerView() string {
	footer := m.renderer.Faint(helpLine)
	if m.toast != "" {
		footer = m.renderer.Warning(m.toast) + "\n" + footer
	}
	return footer
}

// markSelected puts the cursor on the first line of the selected card.
func (m Model) markSelected(id domain.SessionID, card string) string {
	cardLines := strings.Split(card, "\n")
	for i, line := range cardLines {
		prefix := "  "
		if i == 0 && id == m.selected {
			prefix = "> "
		}
		cardLines[i] = prefix + line
	}
	return strings.Join(cardLines, "\n")
}
