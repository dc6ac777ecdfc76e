package dashboard

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/NathanNorman/claude-session-visualizer/internal/application"
	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type RenderOptions struct {
	Now        time.Time
	StaleAfter time.Duration
	CardMode   string
	Width      int
}

const defaultCardWidth = 72

func renderView(snapshot application.Snapshot, opts RenderOptions, s styles) string {
	active, waiting := 0, 0
	for _, view := range snapshot.Sessions {
		switch view.Session.State {
		case domain.StateActive:
			active++
		case domain.StateWaiting:
			waiting++
		}
	}

	lines := []string{
		s.title.Render("Claude Sessions"),
		s.header.Render(fmt.Sprintf("sessions: %d (%d active, %d waiting)", len(snapshot.Sessions), active, waiting)),
	}

	if len(snapshot.Sessions) == 0 {
		lines = append(lines, s.empty.Render("No sessions running."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, group := range snapshot.Groups {
		lines = append(lines, s.section.Render(renderGroup(group, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderGroup(group application.Group, opts RenderOptions, s styles) string {
	header := s.groupHeader.Render(groupTitle(group))
	if group.Collapsed {
		return header + " " + s.meta.Render("(collapsed)")
	}

	parts := []string{header}
	for _, view := range group.Sessions {
		parts = append(parts, renderCard(view, opts, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func groupTitle(group application.Group) string {
	return fmt.Sprintf("%s (%d active, %d waiting)", group.Key, group.Active, group.Waiting)
}

func renderCard(view application.SessionView, opts RenderOptions, s styles) string {
	session := view.Session
	width := opts.Width
	if width <= 0 {
		width = defaultCardWidth
	}

	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.slug.Render(truncate(session.Slug, width/2)),
		" ",
		stateStyle(session.State, s).Render(strings.ToUpper(string(session.State))),
		" ",
		s.meta.Render(stateSourceLabel(session.StateSource)),
	)

	if session.IsGastown {
		header += " " + s.gastown.Render(session.RoleLabel())
	}
	if stale(session.LastActivity, opts) {
		header += " " + s.warning.Render("[stale]")
	}

	parts := []string{header}

	tokens := lipgloss.JoinHorizontal(
		lipgloss.Top,
		renderTokenBar(session.TokenPercent(), 24, s),
		" ",
		s.detail.Render(fmt.Sprintf("%s tokens (%.0f%%)", domain.CompactNumber(session.ContextTokens), session.TokenPercent())),
		" ",
		s.meta.Render(fmt.Sprintf("cpu %.1f%%", session.CPUPercent)),
	)
	parts = append(parts, "  "+tokens)

	if opts.CardMode != "compact" {
		meta := session.Cwd
		if session.GitBranch != "" {
			meta += " @ " + session.GitBranch
		}
		parts = append(parts, "  "+s.meta.Render(truncate(meta, width)))

		if session.CurrentActivity != nil {
			activity := session.CurrentActivity.Description
			if session.CurrentActivity.Tool != "" {
				activity += fmt.Sprintf(" [%s]", session.CurrentActivity.Tool)
			}
			parts = append(parts, "  "+s.detail.Render(truncate(activity, width)))
		}

		for _, entry := range tail(session.RecentActivity, 3) {
			parts = append(parts, "    "+s.meta.Render(truncate(entry, width)))
		}

		if view.Note != "" {
			parts = append(parts, "  "+s.note.Render(truncate("note: "+view.Note, width)))
		}
	}

	if !session.LastActivity.IsZero() {
		parts = append(parts, "  "+s.meta.Render(formatLastActivity(session.LastActivity, opts.Now)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func stateStyle(state domain.SessionState, s styles) lipgloss.Style {
	switch state {
	case domain.StateActive:
		return s.stateActive
	case domain.StateWaiting:
		return s.stateWaiting
	default:
		return s.stateOther
	}
}

func stateSourceLabel(source domain.StateSource) string {
	if source == "" {
		return ""
	}
	return "via " + string(source)
}

func stale(lastActivity time.Time, opts RenderOptions) bool {
	if opts.Now.IsZero() || opts.StaleAfter <= 0 || lastActivity.IsZero() {
		return false
	}
	return opts.Now.Sub(lastActivity) > opts.StaleAfter
}

func renderTokenBar(usedPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	used := clampPercent(usedPercent)
	filled := int(math.Round(float64(width) * used / 100.0))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	empty := width - filled
	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", empty))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatLastActivity(lastActivity, now time.Time) string {
	if now.IsZero() {
		return "last activity " + lastActivity.Format("15:04:05")
	}

	elapsed := now.Sub(lastActivity)
	switch {
	case elapsed < time.Minute:
		return "last activity just now"
	case elapsed < time.Hour:
		minutes := int(elapsed.Minutes())
		return fmt.Sprintf("last activity %dm ago", minutes)
	case elapsed < 24*time.Hour:
		hours := int(elapsed.Hours())
		return fmt.Sprintf("last activity %dh ago", hours)
	default:
		return "last activity " + lastActivity.Format("02 Jan 15:04")
	}
}

func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func tail(entries []string, n int) []string {
	if len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}
