package application

import (
	"testing"
	"time"

	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSessionDiffIdempotent(t *testing.T) {
	sessions := []domain.Session{
		{ID: "s-1", State: domain.StateWaiting, ContextTokens: 10_000},
		{ID: "s-2", State: domain.StateActive, RecentActivity: []string{"Read main.go"}},
	}

	diff := ComputeSessionDiff(sessions, sessions)

	assert.True(t, diff.Empty())
}

func TestComputeSessionDiffAddUpdateRemove(t *testing.T) {
	old := []domain.Session{
		{ID: "s-1", State: domain.StateWaiting},
		{ID: "s-3", State: domain.StateWaiting},
	}
	updated := []domain.Session{
		{ID: "s-1", State: domain.StateActive},
		{ID: "s-2", State: domain.StateWaiting},
	}

	diff := ComputeSessionDiff(old, updated)

	require.Len(t, diff.Added, 1)
	assert.Equal(t, domain.SessionID("s-2"), diff.Added[0].ID)

	require.Len(t, diff.Updated, 1)
	assert.Equal(t, domain.SessionID("s-1"), diff.Updated[0].ID)
	assert.Equal(t, domain.StateActive, diff.Updated[0].State)

	assert.Equal(t, []domain.SessionID{"s-3"}, diff.Removed)
}

func TestComputeSessionDiffTrackedFields(t *testing.T) {
	base := domain.Session{
		ID:             "s-1",
		State:          domain.StateWaiting,
		StateSource:    domain.StateSourceCPU,
		ContextTokens:  42_000,
		CPUPercent:     0.2,
		Summary:        "refactoring the parser",
		LastActivity:   time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		RecentActivity: []string{"Edit parser.go"},
	}

	tests := []struct {
		name    string
		mutate  func(s *domain.Session)
		changed bool
	}{
		{name: "state change", mutate: func(s *domain.Session) { s.State = domain.StateActive }, changed: true},
		{name: "state source change", mutate: func(s *domain.Session) { s.StateSource = domain.StateSourceHooks }, changed: true},
		{name: "token change", mutate: func(s *domain.Session) { s.ContextTokens = 43_000 }, changed: true},
		{name: "cpu change", mutate: func(s *domain.Session) { s.CPUPercent = 7.5 }, changed: true},
		{name: "summary change", mutate: func(s *domain.Session) { s.Summary = "writing tests" }, changed: true},
		{name: "last activity change", mutate: func(s *domain.Session) { s.LastActivity = s.LastActivity.Add(time.Second) }, changed: true},
		{name: "activity log appended", mutate: func(s *domain.Session) { s.RecentActivity = append(s.RecentActivity, "Bash go test") }, changed: true},
		{name: "activity log rewritten", mutate: func(s *domain.Session) { s.RecentActivity = []string{"Write parser.go"} }, changed: true},
		{
			name:    "current activity appears",
			mutate:  func(s *domain.Session) { s.CurrentActivity = &domain.CurrentActivity{Description: "running tests", Tool: "Bash"} },
			changed: true,
		},
		{name: "pid change is not render-visible", mutate: func(s *domain.Session) { s.PID = 4242 }, changed: false},
		{name: "tty change is not render-visible", mutate: func(s *domain.Session) { s.TTY = "ttys009" }, changed: false},
		{name: "start time change is not render-visible", mutate: func(s *domain.Session) { s.StartedAt = s.StartedAt.Add(time.Hour) }, changed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mutated := base
			mutated.RecentActivity = append([]string(nil), base.RecentActivity...)
			tt.mutate(&mutated)

			diff := ComputeSessionDiff([]domain.Session{base}, []domain.Session{mutated})

			assert.Empty(t, diff.Added)
			assert.Empty(t, diff.Removed)
			if tt.changed {
				require.Len(t, diff.Updated, 1)
			} else {
				assert.Empty(t, diff.Updated)
			}
		})
	}
}

func TestComputeSessionDiffCurrentActivityToolChange(t *testing.T) {
	old := []domain.Session{{
		ID:              "s-1",
		CurrentActivity: &domain.CurrentActivity{Description: "editing", Tool: "Edit"},
	}}
	updated := []domain.Session{{
		ID:              "s-1",
		CurrentActivity: &domain.CurrentActivity{Description: "editing", Tool: "Write"},
	}}

	diff := ComputeSessionDiff(old, updated)

	require.Len(t, diff.Updated, 1)
}

func TestComputeSessionDiffEmptyInputs(t *testing.T) {
	assert.True(t, ComputeSessionDiff(nil, nil).Empty())

	added := ComputeSessionDiff(nil, []domain.Session{{ID: "s-1"}})
	require.Len(t, added.Added, 1)

	removed := ComputeSessionDiff([]domain.Session{{ID: "s-1"}}, nil)
	assert.Equal(t, []domain.SessionID{"s-1"}, removed.Removed)
}
