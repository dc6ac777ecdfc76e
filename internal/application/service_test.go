package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
	"github.com/NathanNorman/claude-session-visualizer/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDashboardServiceRefreshJoinsNotes(t *testing.T) {
	source := &mockSessionSource{}
	notes := &mockNoteRepository{}
	settings := &mockSettingsRepository{}
	service := NewDashboardService(source, notes, settings, nil)

	batch := domain.SessionBatch{
		Sessions: []domain.Session{
			{ID: "s-1", Cwd: "/code/visualizer", State: domain.StateActive},
			{ID: "s-2", Cwd: "/code/visualizer", State: domain.StateWaiting},
		},
		Timestamp: time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC),
	}
	source.On("Fetch", mock.Anything).Return(batch, nil)
	notes.On("List", mock.Anything).Return([]domain.Note{
		{SessionID: "s-2", Body: "waiting on review"},
	}, nil)
	settings.On("Load", mock.Anything).Return(ports.DefaultSettings(), nil)

	snapshot, got, err := service.Refresh(context.Background(), FilterOptions{GroupBy: GroupByProject})
	require.NoError(t, err)

	assert.Equal(t, batch.Timestamp, got.Timestamp)
	require.Len(t, snapshot.Sessions, 2)
	assert.Equal(t, "", snapshot.Sessions[0].Note)
	assert.Equal(t, "waiting on review", snapshot.Sessions[1].Note)

	require.Len(t, snapshot.Groups, 1)
	assert.Equal(t, "visualizer", snapshot.Groups[0].Key)
	assert.Equal(t, 1, snapshot.Groups[0].Active)
	assert.Equal(t, 1, snapshot.Groups[0].Waiting)
}

func TestDashboardServiceRefreshWrapsFetchError(t *testing.T) {
	source := &mockSessionSource{}
	service := NewDashboardService(source, &mockNoteRepository{}, &mockSettingsRepository{}, nil)

	fetchErr := errors.New("connection refused")
	source.On("Fetch", mock.Anything).Return(domain.SessionBatch{}, fetchErr)

	_, _, err := service.Refresh(context.Background(), FilterOptions{})
	require.ErrorIs(t, err, fetchErr)
}

func TestDashboardServiceAssembleSurvivesNoteStoreFailure(t *testing.T) {
	notes := &mockNoteRepository{}
	settings := &mockSettingsRepository{}
	service := NewDashboardService(&mockSessionSource{}, notes, settings, nil)

	notes.On("List", mock.Anything).Return(nil, errors.New("corrupt notes file"))
	settings.On("Load", mock.Anything).Return(ports.DefaultSettings(), nil)

	batch := domain.SessionBatch{Sessions: []domain.Session{{ID: "s-1", State: domain.StateActive}}}
	snapshot := service.Assemble(context.Background(), batch, FilterOptions{})

	require.Len(t, snapshot.Sessions, 1)
	assert.Equal(t, "", snapshot.Sessions[0].Note)
}

type detectingSource struct {
	changed bool
	cursor  float64
	err     error
}

func (s *detectingSource) Fetch(context.Context) (domain.SessionBatch, error) {
	return domain.SessionBatch{}, nil
}

func (s *detectingSource) ChangedSince(context.Context, float64) (bool, float64, error) {
	return s.changed, s.cursor, s.err
}

func TestDashboardServiceChangedSinceDelegatesToDetector(t *testing.T) {
	source := &detectingSource{changed: false, cursor: 1724490000.5}
	service := NewDashboardService(source, &mockNoteRepository{}, &mockSettingsRepository{}, nil)

	changed, cursor := service.ChangedSince(context.Background(), 0)
	assert.False(t, changed)
	assert.Equal(t, 1724490000.5, cursor)
}

func TestDashboardServiceChangedSinceWithoutDetectorReportsChanged(t *testing.T) {
	service := NewDashboardService(&mockSessionSource{}, &mockNoteRepository{}, &mockSettingsRepository{}, nil)

	changed, cursor := service.ChangedSince(context.Background(), 3.5)
	assert.True(t, changed, "sources without a dirty check always warrant a fetch")
	assert.Equal(t, 3.5, cursor)
}

func TestDashboardServiceChangedSinceErrorFallsThroughToFetch(t *testing.T) {
	source := &detectingSource{err: errors.New("connection refused")}
	service := NewDashboardService(source, &mockNoteRepository{}, &mockSettingsRepository{}, nil)

	changed, cursor := service.ChangedSince(context.Background(), 3.5)
	assert.True(t, changed)
	assert.Equal(t, 3.5, cursor, "a failed check must not advance the cursor")
}

func TestDashboardServiceSaveNoteCreatesWhenMissing(t *testing.T) {
	notes := &mockNoteRepository{}
	now := time.Date(2026, 8, 24, 12, 30, 0, 0, time.UTC)
	service := NewDashboardService(&mockSessionSource{}, notes, &mockSettingsRepository{}, fixedClock{now: now})

	notes.On("GetBySession", mock.Anything, domain.SessionID("s-1")).Return(domain.Note{}, domain.ErrNoteNotFound)
	notes.On("Save", mock.Anything, mock.MatchedBy(func(note domain.Note) bool {
		return note.SessionID == "s-1" && note.Body == "rebase before merging" && note.UpdatedAt.Equal(now)
	})).Return(nil)

	note, err := service.SaveNote(context.Background(), "s-1", "rebase before merging")
	require.NoError(t, err)
	assert.Equal(t, now, note.UpdatedAt)
	assert.NotEmpty(t, note.ID, "a fresh note gets a generated id")
}

func TestDashboardServiceToggleGroupCollapsed(t *testing.T) {
	settings := &mockSettingsRepository{}
	service := NewDashboardService(&mockSessionSource{}, &mockNoteRepository{}, settings, nil)

	stored := ports.DefaultSettings()
	stored.CollapsedGroups = []string{"visualizer"}
	settings.On("Load", mock.Anything).Return(stored, nil)

	expanded := stored
	expanded.CollapsedGroups = []string{}
	settings.On("Save", mock.Anything, expanded).Return(nil)

	collapsed, err := service.ToggleGroupCollapsed(context.Background(), "visualizer")
	require.NoError(t, err)
	assert.False(t, collapsed)
}

func TestFilterSessions(t *testing.T) {
	sessions := []domain.Session{
		{ID: "s-1", Slug: "parser-work", Cwd: "/code/parser", State: domain.StateActive},
		{ID: "s-2", Slug: "docs", Cwd: "/code/docs", State: domain.StateWaiting, RecentActivity: []string{"Edit README.md"}},
		{ID: "s-3", Slug: "mayor", State: domain.StateWaiting, IsGastown: true, GastownRole: "mayor"},
	}

	tests := []struct {
		name string
		opts FilterOptions
		want []domain.SessionID
	}{
		{name: "no filters", opts: FilterOptions{}, want: []domain.SessionID{"s-1", "s-2", "s-3"}},
		{name: "state filter", opts: FilterOptions{State: domain.StateWaiting}, want: []domain.SessionID{"s-2", "s-3"}},
		{name: "focus mode keeps active only", opts: FilterOptions{FocusMode: true}, want: []domain.SessionID{"s-1"}},
		{name: "gastown only", opts: FilterOptions{GastownOnly: true}, want: []domain.SessionID{"s-3"}},
		{name: "search matches slug", opts: FilterOptions{Search: "parser"}, want: []domain.SessionID{"s-1"}},
		{name: "search matches activity log", opts: FilterOptions{Search: "readme"}, want: []domain.SessionID{"s-2"}},
		{name: "search matches gastown role", opts: FilterOptions{Search: "mayor"}, want: []domain.SessionID{"s-3"}},
		{name: "search misses", opts: FilterOptions{Search: "nonexistent"}, want: []domain.SessionID{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterSessions(sessions, tt.opts)
			ids := make([]domain.SessionID, 0, len(got))
			for _, session := range got {
				ids = append(ids, session.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestGroupViewsByMachineKeepsLocalFirst(t *testing.T) {
	views := []SessionView{
		{Session: domain.Session{ID: "s-1", Machine: "alpha", State: domain.StateWaiting}},
		{Session: domain.Session{ID: "s-2", State: domain.StateActive}},
		{Session: domain.Session{ID: "s-3", Machine: "alpha", State: domain.StateActive}},
	}

	groups := GroupViews(views, GroupByMachine, map[string]bool{"alpha": true})

	require.Len(t, groups, 2)
	assert.Equal(t, "local", groups[0].Key)
	assert.Equal(t, 1, groups[0].Active)

	assert.Equal(t, "alpha", groups[1].Key)
	assert.True(t, groups[1].Collapsed)
	assert.Equal(t, 1, groups[1].Active)
	assert.Equal(t, 1, groups[1].Waiting)
}
