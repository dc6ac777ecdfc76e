package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
	"github.com/NathanNorman/claude-session-visualizer/internal/ports"
	"github.com/google/uuid"
)

// DashboardService assembles poll results into renderable snapshots and
// owns the client-side state (notes, settings) around them. It is the
// only writer of the settings file.
type DashboardService struct {
	source   ports.SessionSource
	notes    ports.NoteRepository
	settings ports.SettingsRepository
	clock    ports.Clock
}

func NewDashboardService(source ports.SessionSource, notes ports.NoteRepository, settings ports.SettingsRepository, clock ports.Clock) *DashboardService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &DashboardService{
		source:   source,
		notes:    notes,
		settings: settings,
		clock:    clock,
	}
}

// Refresh fetches the current session list and joins local notes onto
// it. Note-store failures degrade to note-less views rather than
// failing the poll.
func (s *DashboardService) Refresh(ctx context.Context, opts FilterOptions) (Snapshot, domain.SessionBatch, error) {
	batch, err := s.source.Fetch(ctx)
	if err != nil {
		return Snapshot{}, domain.SessionBatch{}, fmt.Errorf("fetch sessions: %w", err)
	}

	snapshot := s.Assemble(ctx, batch, opts)
	return snapshot, batch, nil
}

// ChangedSince consults the source's dirty check so the poll loop can
// skip full fetches. Sources without one, and failed checks, report
// changed; the caller then falls through to a full fetch, which is
// where errors get surfaced.
func (s *DashboardService) ChangedSince(ctx context.Context, cursor float64) (bool, float64) {
	detector, ok := s.source.(ports.ChangeDetector)
	if !ok {
		return true, cursor
	}

	changed, next, err := detector.ChangedSince(ctx, cursor)
	if err != nil {
		return true, cursor
	}
	return changed, next
}

// Assemble applies filters and grouping to an already-fetched batch.
func (s *DashboardService) Assemble(ctx context.Context, batch domain.SessionBatch, opts FilterOptions) Snapshot {
	noteBodies := s.noteBodies(ctx)

	filtered := FilterSessions(batch.Sessions, opts)
	views := make([]SessionView, 0, len(filtered))
	for _, session := range filtered {
		views = append(views, SessionView{
			Session: session,
			Note:    noteBodies[session.ID],
		})
	}

	collapsed := map[string]bool{}
	if settings, err := s.settings.Load(ctx); err == nil {
		for _, key := range settings.CollapsedGroups {
			collapsed[key] = true
		}
	}

	return Snapshot{
		Sessions:  views,
		Groups:    GroupViews(views, opts.GroupBy, collapsed),
		Timestamp: batch.Timestamp,
	}
}

func (s *DashboardService) noteBodies(ctx context.Context) map[domain.SessionID]string {
	bodies := map[domain.SessionID]string{}
	if s.notes == nil {
		return bodies
	}

	notes, err := s.notes.List(ctx)
	if err != nil {
		return bodies
	}
	for _, note := range notes {
		bodies[note.SessionID] = note.Body
	}
	return bodies
}

func (s *DashboardService) NoteFor(ctx context.Context, id domain.SessionID) (domain.Note, error) {
	return s.notes.GetBySession(ctx, id)
}

func (s *DashboardService) SaveNote(ctx context.Context, id domain.SessionID, body string) (domain.Note, error) {
	note, err := s.notes.GetBySession(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNoteNotFound) {
		return domain.Note{}, fmt.Errorf("load note: %w", err)
	}

	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	note.SessionID = id
	note.Body = body
	note.UpdatedAt = s.clock.Now()

	if err := s.notes.Save(ctx, note); err != nil {
		return domain.Note{}, fmt.Errorf("save note: %w", err)
	}

	return note, nil
}

func (s *DashboardService) DeleteNote(ctx context.Context, id domain.SessionID) error {
	if err := s.notes.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

func (s *DashboardService) Settings(ctx context.Context) (ports.Settings, error) {
	return s.settings.Load(ctx)
}

func (s *DashboardService) SaveSettings(ctx context.Context, settings ports.Settings) error {
	if err := s.settings.Save(ctx, settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// ToggleGroupCollapsed flips one group's collapse flag and persists the
// result, returning the new collapsed state.
func (s *DashboardService) ToggleGroupCollapsed(ctx context.Context, key string) (bool, error) {
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load settings: %w", err)
	}

	kept := settings.CollapsedGroups[:0]
	collapsed := true
	for _, existing := range settings.CollapsedGroups {
		if existing == key {
			collapsed = false
			continue
		}
		kept = append(kept, existing)
	}
	if collapsed {
		kept = append(kept, key)
	}
	settings.CollapsedGroups = kept

	if err := s.settings.Save(ctx, settings); err != nil {
		return false, fmt.Errorf("save settings: %w", err)
	}

	return collapsed, nil
}

// FilterSessions applies search, status, focus and gastown filters.
func FilterSessions(sessions []domain.Session, opts FilterOptions) []domain.Session {
	result := make([]domain.Session, 0, len(sessions))
	query := strings.ToLower(strings.TrimSpace(opts.Search))

	for _, session := range sessions {
		if opts.State != "" && session.State != opts.State {
			continue
		}
		if opts.FocusMode && !session.Active() {
			continue
		}
		if opts.GastownOnly && !session.IsGastown {
			continue
		}
		if query != "" && !matchesQuery(session, query) {
			continue
		}
		result = append(result, session)
	}

	return result
}

func matchesQuery(session domain.Session, query string) bool {
	haystacks := []string{
		session.Slug,
		session.Cwd,
		session.GitBranch,
		session.Summary,
		session.AISummary,
		session.GastownRole,
	}
	haystacks = append(haystacks, session.RecentActivity...)

	for _, h := range haystacks {
		if h != "" && strings.Contains(strings.ToLower(h), query) {
			return true
		}
	}
	return false
}

// GroupViews buckets session views by project or machine. Header counts
// are always recomputed from the full list, never patched.
func GroupViews(views []SessionView, by GroupKind, collapsed map[string]bool) []Group {
	buckets := map[string]*Group{}
	order := []string{}

	for _, view := range views {
		key := groupKey(view.Session, by)
		group, ok := buckets[key]
		if !ok {
			group = &Group{Key: key, Collapsed: collapsed[key]}
			buckets[key] = group
			order = append(order, key)
		}

		group.Sessions = append(group.Sessions, view)
		if view.Session.Active() {
			group.Active++
		} else {
			group.Waiting++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return groupLess(order[i], order[j])
	})

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, *buckets[key])
	}
	return groups
}

func groupKey(session domain.Session, by GroupKind) string {
	if by == GroupByMachine {
		return session.MachineLabel()
	}
	return session.Project()
}

// groupLess keeps "local" first in machine grouping, everything else
// alphabetical.
func groupLess(a, b string) bool {
	if a == "local" && b != "local" {
		return true
	}
	if b == "local" && a != "local" {
		return false
	}
	return a < b
}
