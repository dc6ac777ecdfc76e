package application

import (
	"time"

	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
)

// Poll intervals mirror the dashboard defaults: tight while anything is
// running, relaxed when every session is waiting.
const (
	DefaultActivePollInterval = 2 * time.Second
	DefaultIdlePollInterval   = 5 * time.Second
)

// PollPlanner decides how long to wait before the next fetch. It never
// declines to schedule: a failed poll falls back to the idle interval.
type PollPlanner struct {
	Active time.Duration
	Idle   time.Duration
}

func NewPollPlanner() PollPlanner {
	return PollPlanner{
		Active: DefaultActivePollInterval,
		Idle:   DefaultIdlePollInterval,
	}
}

func (p PollPlanner) Next(batch domain.SessionBatch, err error) time.Duration {
	if err != nil {
		return p.Idle
	}
	if batch.AnyActive() {
		return p.Active
	}
	return p.Idle
}
