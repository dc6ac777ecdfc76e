package watch

import (
	"context"
	"os"
	"time"

	"github.com/NathanNorman/claude-session-visualizer/internal/adapters/render/dashboard"
	"github.com/NathanNorman/claude-session-visualizer/internal/application"
	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fetchTimeout  = 10 * time.Second
	toastDuration = 4 * time.Second
)

// Killer terminates a session process through the backend.
type Killer interface {
	Kill(ctx context.Context, pid int) error
}

type Config struct {
	Service    *application.DashboardService
	Killer     Killer
	Planner    application.PollPlanner
	Filters    application.FilterOptions
	Bell       bool
	StaleAfter time.Duration
}

type tickMsg struct {
	generation int
}

type dirtyCheckMsg struct {
	generation int
	changed    bool
	cursor     float64
}

type refreshMsg struct {
	generation int
	snapshot   application.Snapshot
	batch      domain.SessionBatch
	err        error
}

type killedMsg struct {
	id  domain.SessionID
	err error
}

type toastExpiredMsg struct {
	seq int
}

// Model is the live dashboard. Each poll result is diffed against the
// previous one and only changed cards are re-rendered; filter, width
// and card-mode changes invalidate the whole card cache instead.
type Model struct {
	service  *application.DashboardService
	killer   Killer
	planner  application.PollPlanner
	renderer dashboard.Renderer
	spinner  spinner.Model
	search   textinput.Model

	filters    application.FilterOptions
	bell       bool
	staleAfter time.Duration

	snapshot application.Snapshot
	batch    domain.SessionBatch
	prev     []domain.Session
	cards    map[domain.SessionID]string

	selected   domain.SessionID
	searching  bool
	fetching   bool
	generation int
	interval   time.Duration
	cursor     float64
	width      int

	toast    string
	toastSeq int

	err error
}

func New(cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	search := textinput.New()
	search.Placeholder = "search sessions"
	search.CharLimit = 120

	planner := cfg.Planner
	if planner.Active <= 0 || planner.Idle <= 0 {
		planner = application.NewPollPlanner()
	}

	return Model{
		service:    cfg.Service,
		killer:     cfg.Killer,
		planner:    planner,
		renderer:   dashboard.NewRenderer(),
		spinner:    sp,
		search:     search,
		filters:    cfg.Filters,
		bell:       cfg.Bell,
		staleAfter: cfg.StaleAfter,
		cards:      map[domain.SessionID]string{},
		interval:   planner.Idle,
		fetching:   true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refreshCmd())
}

func (m Model) refreshCmd() tea.Cmd {
	generation := m.generation
	service := m.service
	filters := m.filters

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		snapshot, batch, err := service.Refresh(ctx, filters)
		return refreshMsg{generation: generation, snapshot: snapshot, batch: batch, err: err}
	}
}

// dirtyCheckCmd asks the backend whether anything changed since the
// last check, so unchanged ticks skip the full session fetch.
func (m Model) dirtyCheckCmd() tea.Cmd {
	generation := m.generation
	service := m.service
	cursor := m.cursor

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		changed, next := service.ChangedSince(ctx, cursor)
		return dirtyCheckMsg{generation: generation, changed: changed, cursor: next}
	}
}

func (m Model) scheduleTick() tea.Cmd {
	generation := m.generation
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{generation: generation}
	})
}

func (m Model) killCmd(id domain.SessionID, pid int) tea.Cmd {
	killer := m.killer
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		return killedMsg{id: id, err: killer.Kill(ctx, pid)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.invalidateCards()
		return m, nil

	case spinner.TickMsg:
		if !m.fetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		return m, m.dirtyCheckCmd()

	case dirtyCheckMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.cursor = msg.cursor
		if !msg.changed {
			return m, m.scheduleTick()
		}
		m.fetching = true
		return m, tea.Batch(m.spinner.Tick, m.refreshCmd())

	case refreshMsg:
		return m.onRefresh(msg)

	case killedMsg:
		if msg.err != nil {
			return m.showToast("kill failed: " + msg.err.Error())
		}
		m, toastCmd := m.showToast("kill signal sent")
		refreshCmd := m.forceRefresh()
		return m, tea.Batch(toastCmd, refreshCmd)

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.onKey(msg)
	}

	return m, nil
}

func (m Model) onRefresh(msg refreshMsg) (tea.Model, tea.Cmd) {
	if msg.generation != m.generation {
		return m, nil
	}

	m.fetching = false
	m.interval = m.planner.Next(msg.batch, msg.err)

	if msg.err != nil {
		m.err = msg.err
		m, toastCmd := m.showToast(msg.err.Error())
		return m, tea.Batch(toastCmd, m.scheduleTick())
	}

	m.err = nil
	diff := application.ComputeSessionDiff(m.prev, msg.batch.Sessions)
	m.applyDiff(msg.snapshot, diff)
	m.prev = msg.batch.Sessions
	m.batch = msg.batch
	m.snapshot = msg.snapshot

	cmds := []tea.Cmd{m.scheduleTick()}
	if m.bell && needsAttention(diff) {
		// Terminal bell stands in for the browser notification.
		cmds = append(cmds, ringBell)
	}

	return m, tea.Batch(cmds...)
}

// applyDiff re-renders only the cards the diff marks as added or
// updated, drops removed ones, and clears the selection if its session
// vanished.
func (m *Model) applyDiff(snapshot application.Snapshot, diff application.SessionDiff) {
	changed := map[domain.SessionID]bool{}
	for _, session := range diff.Added {
		changed[session.ID] = true
	}
	for _, session := range diff.Updated {
		changed[session.ID] = true
	}
	for _, id := range diff.Removed {
		delete(m.cards, id)
		if m.selected == id {
			m.selected = ""
		}
	}

	opts := m.renderOptions()
	for _, view := range snapshot.Sessions {
		id := view.Session.ID
		if _, ok := m.cards[id]; ok && !changed[id] {
			continue
		}
		m.cards[id] = m.renderer.Card(view, opts)
	}
}

func (m *Model) invalidateCards() {
	m.cards = map[domain.SessionID]string{}
	opts := m.renderOptions()
	for _, view := range m.snapshot.Sessions {
		m.cards[view.Session.ID] = m.renderer.Card(view, opts)
	}
}

func (m Model) renderOptions() dashboard.RenderOptions {
	return dashboard.RenderOptions{
		Now:        time.Now(),
		StaleAfter: m.staleAfter,
		CardMode:   m.filters.CardMode,
		Width:      m.width,
	}
}

// reassemble rebuilds the snapshot from the last batch after a filter
// change. Filter changes always force a full card re-render.
func (m *Model) reassemble() {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	m.snapshot = m.service.Assemble(ctx, m.batch, m.filters)
	m.invalidateCards()
	if m.selected != "" && !m.visible(m.selected) {
		m.selected = ""
	}
}

func (m Model) visible(id domain.SessionID) bool {
	for _, view := range m.snapshot.Sessions {
		if view.Session.ID == id {
			return true
		}
	}
	return false
}

// forceRefresh bumps the generation so in-flight ticks and fetches are
// discarded, then fetches immediately.
func (m *Model) forceRefresh() tea.Cmd {
	m.generation++
	m.fetching = true
	return tea.Batch(m.spinner.Tick, m.refreshCmd())
}

func (m Model) showToast(text string) (Model, tea.Cmd) {
	m.toast = text
	m.toastSeq++
	seq := m.toastSeq
	return m, tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

func (m Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.Type {
		case tea.KeyEsc:
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			m.filters.Search = ""
			m.reassemble()
			return m, nil
		case tea.KeyEnter:
			m.searching = false
			m.search.Blur()
			return m, nil
		}

		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.filters.Search != m.search.Value() {
			m.filters.Search = m.search.Value()
			m.reassemble()
		}
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case "r":
		cmd := m.forceRefresh()
		return m, cmd
	case "f":
		m.filters.FocusMode = !m.filters.FocusMode
		m.reassemble()
		return m, nil
	case "g":
		m.filters.GastownOnly = !m.filters.GastownOnly
		m.reassemble()
		return m, nil
	case "m":
		if m.filters.GroupBy == application.GroupByMachine {
			m.filters.GroupBy = application.GroupByProject
		} else {
			m.filters.GroupBy = application.GroupByMachine
		}
		m.reassemble()
		return m, nil
	case "c":
		if m.filters.CardMode == "compact" {
			m.filters.CardMode = "full"
		} else {
			m.filters.CardMode = "compact"
		}
		m.reassemble()
		return m, nil
	case "j", "down":
		m.moveSelection(1)
		return m, nil
	case "k", "up":
		m.moveSelection(-1)
		return m, nil
	case "x":
		return m.killSelected()
	case "z":
		return m.toggleSelectedGroup()
	}

	return m, nil
}

func (m *Model) moveSelection(delta int) {
	ids := m.visibleIDs()
	if len(ids) == 0 {
		m.selected = ""
		return
	}

	current := -1
	for i, id := range ids {
		if id == m.selected {
			current = i
			break
		}
	}

	next := current + delta
	if current == -1 {
		next = 0
		if delta < 0 {
			next = len(ids) - 1
		}
	}
	if next < 0 {
		next = 0
	}
	if next >= len(ids) {
		next = len(ids) - 1
	}
	m.selected = ids[next]
}

func (m Model) visibleIDs() []domain.SessionID {
	ids := make([]domain.SessionID, 0, len(m.snapshot.Sessions))
	for _, group := range m.snapshot.Groups {
		if group.Collapsed {
			continue
		}
		for _, view := range group.Sessions {
			ids = append(ids, view.Session.ID)
		}
	}
	return ids
}

func (m Model) killSelected() (tea.Model, tea.Cmd) {
	if m.killer == nil || m.selected == "" {
		return m, nil
	}

	for _, view := range m.snapshot.Sessions {
		if view.Session.ID != m.selected {
			continue
		}
		if view.Session.PID == 0 {
			return m.showToast("session has no pid")
		}
		return m, m.killCmd(view.Session.ID, view.Session.PID)
	}
	return m, nil
}

func (m Model) toggleSelectedGroup() (tea.Model, tea.Cmd) {
	key := m.selectedGroupKey()
	if key == "" {
		return m, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	if _, err := m.service.ToggleGroupCollapsed(ctx, key); err != nil {
		return m.showToast("toggle group: " + err.Error())
	}
	m.reassemble()
	return m, nil
}

func (m Model) selectedGroupKey() string {
	if len(m.snapshot.Groups) == 0 {
		return ""
	}
	if m.selected == "" {
		return m.snapshot.Groups[0].Key
	}
	for _, group := range m.snapshot.Groups {
		for _, view := range group.Sessions {
			if view.Session.ID == m.selected {
				return group.Key
			}
		}
	}
	return m.snapshot.Groups[0].Key
}

// ringBell writes the bell character straight to the terminal. The alt
// screen swallows tea.Printf output, stderr does not.
func ringBell() tea.Msg {
	_, _ = os.Stderr.WriteString("\a")
	return nil
}

// needsAttention reports whether any session newly entered the waiting
// state, which is when the user is wanted at the keyboard.
func needsAttention(diff application.SessionDiff) bool {
	for _, session := range diff.Added {
		if session.State == domain.StateWaiting {
			return true
		}
	}
	for _, session := range diff.Updated {
		if session.State == domain.StateWaiting {
			return true
		}
	}
	return false
}

// Run starts the interactive dashboard and blocks until it quits.
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
