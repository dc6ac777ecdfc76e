package application

import (
	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
)

// SessionDiff partitions a poll result against the previously rendered
// list: Added are new ids, Removed are ids that disappeared, Updated are
// sessions present in both whose render-visible fields changed.
type SessionDiff struct {
	Added   []domain.Session
	Updated []domain.Session
	Removed []domain.SessionID
}

func (d SessionDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Updated) == 0 && len(d.Removed) == 0
}

// ComputeSessionDiff is O(n) over both lists; output ordering follows
// the new list for Added/Updated and the old list for Removed.
func ComputeSessionDiff(old, updated []domain.Session) SessionDiff {
	previous := make(map[domain.SessionID]domain.Session, len(old))
	for _, session := range old {
		previous[session.ID] = session
	}

	current := make(map[domain.SessionID]struct{}, len(updated))

	var diff SessionDiff
	for _, session := range updated {
		current[session.ID] = struct{}{}

		before, ok := previous[session.ID]
		if !ok {
			diff.Added = append(diff.Added, session)
			continue
		}
		if !renderEqual(before, session) {
			diff.Updated = append(diff.Updated, session)
		}
	}

	for _, session := range old {
		if _, ok := current[session.ID]; !ok {
			diff.Removed = append(diff.Removed, session.ID)
		}
	}

	return diff
}

// renderEqual is the single change predicate for incremental redraws.
// Two sessions are render-equal iff every field a card displays is
// equal; fields the card never shows (pid, tty, timestamps of record
// creation) do not trigger a redraw.
func renderEqual(a, b domain.Session) bool {
	if a.State != b.State ||
		a.StateSource != b.StateSource ||
		a.ContextTokens != b.ContextTokens ||
		a.CPUPercent != b.CPUPercent ||
		a.Summary != b.Summary ||
		a.AISummary != b.AISummary ||
		!a.LastActivity.Equal(b.LastActivity) {
		return false
	}

	if !activityEqual(a.RecentActivity, b.RecentActivity) {
		return false
	}

	return currentActivityEqual(a.CurrentActivity, b.CurrentActivity)
}

func activityEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func currentActivityEqual(a, b *domain.CurrentActivity) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Description == b.Description && a.Tool == b.Tool
}
