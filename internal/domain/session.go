package domain

import (
	"fmt"
	"strings"
	"time"
)

type SessionID string

type SessionState string

const (
	StateActive  SessionState = "active"
	StateWaiting SessionState = "waiting"
	StatePaused  SessionState = "paused"
	StateDead    SessionState = "dead"
)

// StateSource records how the backend decided the session state.
type StateSource string

const (
	StateSourceHooks  StateSource = "hooks"
	StateSourceCPU    StateSource = "cpu"
	StateSourceRecent StateSource = "recent"
)

// MaxContextTokens is the context window the backend reports token
// percentages against.
const MaxContextTokens = 200_000

type CurrentActivity struct {
	Description string
	Tool        string
}

type Session struct {
	ID              SessionID
	Slug            string
	Cwd             string
	GitBranch       string
	Summary         string
	AISummary       string
	ContextTokens   int64
	State           SessionState
	StateSource     StateSource
	PID             int
	TTY             string
	CPUPercent      float64
	StartedAt       time.Time
	LastActivity    time.Time
	RecentActivity  []string
	CurrentActivity *CurrentActivity
	Usage           TokenUsage
	IsGastown       bool
	GastownRole     string
	Machine         string
	MachineHostname string
}

func (s Session) Active() bool {
	return s.State == StateActive
}

// TokenPercent returns context usage as a percentage of the model's
// context window, capped at 100.
func (s Session) TokenPercent() float64 {
	percent := float64(s.ContextTokens) / MaxContextTokens * 100
	if percent > 100 {
		return 100
	}
	return percent
}

// Project derives the display group for a session from its working
// directory, falling back to the slug when cwd is empty.
func (s Session) Project() string {
	cwd := strings.TrimSpace(s.Cwd)
	if cwd == "" {
		if s.Slug != "" {
			return s.Slug
		}
		return "unknown"
	}

	cwd = strings.TrimRight(cwd, "/")
	if idx := strings.LastIndex(cwd, "/"); idx >= 0 {
		return cwd[idx+1:]
	}
	return cwd
}

// MachineLabel returns the machine name for grouped display; local
// sessions carry no machine tag.
func (s Session) MachineLabel() string {
	if s.Machine == "" || s.Machine == "local" {
		if s.MachineHostname != "" {
			return s.MachineHostname
		}
		return "local"
	}
	return s.Machine
}

func (s Session) RoleLabel() string {
	if !s.IsGastown {
		return ""
	}
	if s.GastownRole == "" {
		return "gastown"
	}
	return fmt.Sprintf("gastown/%s", s.GastownRole)
}

// SessionBatch is one poll's worth of sessions plus the backend's
// capture timestamp.
type SessionBatch struct {
	Sessions  []Session
	Timestamp time.Time
}

func (b SessionBatch) AnyActive() bool {
	for _, session := range b.Sessions {
		if session.Active() {
			return true
		}
	}
	return false
}
