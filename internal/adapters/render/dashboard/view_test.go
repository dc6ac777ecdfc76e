package dashboard

import (
	"testing"
	"time"

	"github.com/NathanNorman/claude-session-visualizer/internal/application"
	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEmptyDashboard(t *testing.T) {
	output, err := Render(application.Snapshot{}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "sessions: 0")
	assert.Contains(t, output, "No sessions running.")
}

func TestRenderGroupedSessions(t *testing.T) {
	now := time.Date(2026, 8, 24, 11, 0, 0, 0, time.UTC)

	active := application.SessionView{
		Session: domain.Session{
			ID:            "sess-1",
			Slug:          "midnight-otter",
			Cwd:           "/code/visualizer",
			GitBranch:     "main",
			State:         domain.StateActive,
			StateSource:   domain.StateSourceHooks,
			ContextTokens: 100_000,
			CPUPercent:    12.5,
			CurrentActivity: &domain.CurrentActivity{
				Description: "running tests",
				Tool:        "Bash",
			},
			LastActivity: now.Add(-5 * time.Minute),
		},
		Note: "watch the migration",
	}
	waiting := application.SessionView{
		Session: domain.Session{
			ID:           "sess-2",
			Slug:         "quiet-finch",
			Cwd:          "/code/api",
			State:        domain.StateWaiting,
			LastActivity: now.Add(-40 * time.Minute),
		},
	}

	output, err := Render(application.Snapshot{
		Sessions: []application.SessionView{active, waiting},
		Groups: []application.Group{
			{Key: "visualizer", Sessions: []application.SessionView{active}, Active: 1},
			{Key: "api", Sessions: []application.SessionView{waiting}, Waiting: 1},
		},
		Timestamp: now,
	}, RenderOptions{Now: now, StaleAfter: time.Hour})

	require.NoError(t, err)
	assert.Contains(t, output, "sessions: 2 (1 active, 1 waiting)")
	assert.Contains(t, output, "visualizer (1 active, 0 waiting)")
	assert.Contains(t, output, "api (0 active, 1 waiting)")
	assert.Contains(t, output, "midnight-otter")
	assert.Contains(t, output, "ACTIVE")
	assert.Contains(t, output, "via hooks")
	assert.Contains(t, output, "100.0k tokens (50%)")
	assert.Contains(t, output, "cpu 12.5%")
	assert.Contains(t, output, "running tests [Bash]")
	assert.Contains(t, output, "note: watch the migration")
	assert.Contains(t, output, "last activity 5m ago")
	assert.Contains(t, output, "last activity 40m ago")
	assert.NotContains(t, output, "[stale]")
}

func TestRenderMarksStaleSessions(t *testing.T) {
	now := time.Date(2026, 8, 24, 11, 0, 0, 0, time.UTC)

	view := application.SessionView{
		Session: domain.Session{
			ID:           "sess-1",
			Slug:         "midnight-otter",
			State:        domain.StateWaiting,
			LastActivity: now.Add(-3 * time.Hour),
		},
	}

	output, err := Render(application.Snapshot{
		Sessions: []application.SessionView{view},
		Groups:   []application.Group{{Key: "visualizer", Sessions: []application.SessionView{view}, Waiting: 1}},
	}, RenderOptions{Now: now, StaleAfter: time.Hour})

	require.NoError(t, err)
	assert.Contains(t, output, "[stale]")
	assert.Contains(t, output, "last activity 3h ago")
}

func TestRenderCollapsedGroupHidesCards(t *testing.T) {
	view := application.SessionView{
		Session: domain.Session{ID: "sess-1", Slug: "midnight-otter", State: domain.StateActive},
	}

	output, err := Render(application.Snapshot{
		Sessions: []application.SessionView{view},
		Groups:   []application.Group{{Key: "visualizer", Sessions: []application.SessionView{view}, Active: 1, Collapsed: true}},
	}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "(collapsed)")
	assert.NotContains(t, output, "midnight-otter")
}

func TestRenderCompactModeOmitsDetails(t *testing.T) {
	view := application.SessionView{
		Session: domain.Session{
			ID:              "sess-1",
			Slug:            "midnight-otter",
			Cwd:             "/code/visualizer",
			State:           domain.StateActive,
			CurrentActivity: &domain.CurrentActivity{Description: "running tests"},
		},
		Note: "hidden in compact",
	}

	output, err := Render(application.Snapshot{
		Sessions: []application.SessionView{view},
		Groups:   []application.Group{{Key: "visualizer", Sessions: []application.SessionView{view}, Active: 1}},
	}, RenderOptions{CardMode: "compact"})

	require.NoError(t, err)
	assert.Contains(t, output, "midnight-otter")
	assert.NotContains(t, output, "/code/visualizer")
	assert.NotContains(t, output, "running tests")
	assert.NotContains(t, output, "hidden in compact")
}

func TestRenderTokenBarProportions(t *testing.T) {
	s := newStyles()

	full := renderTokenBar(100, 10, s)
	assert.Contains(t, full, "==========")
	assert.NotContains(t, full, "-")

	empty := renderTokenBar(0, 10, s)
	assert.Contains(t, empty, "----------")
	assert.NotContains(t, empty, "=")

	half := renderTokenBar(50, 10, s)
	assert.Contains(t, half, "=====")
	assert.Contains(t, half, "-----")
}
