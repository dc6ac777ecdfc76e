package application

import (
	"time"

	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
)

type GroupKind string

const (
	GroupByProject GroupKind = "project"
	GroupByMachine GroupKind = "machine"
)

func (k GroupKind) Valid() bool {
	switch k {
	case GroupByProject, GroupByMachine:
		return true
	default:
		return false
	}
}

// SessionView joins a session with its local annotation for rendering.
type SessionView struct {
	Session domain.Session
	Note    string
}

type Group struct {
	Key       string
	Sessions  []SessionView
	Active    int
	Waiting   int
	Collapsed bool
}

// FilterOptions is the full filter/grouping state of the dashboard. Any
// change to it forces a full re-render instead of an incremental patch.
type FilterOptions struct {
	Search      string
	State       domain.SessionState
	FocusMode   bool
	GastownOnly bool
	GroupBy     GroupKind
	CardMode    string
}

type Snapshot struct {
	Sessions  []SessionView
	Groups    []Group
	Timestamp time.Time
}
