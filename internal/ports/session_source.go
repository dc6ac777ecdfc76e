package ports

import (
	"context"

	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
)

// SessionSource fetches the current session list. Implementations choose
// between the single-host endpoint and the aggregated multi-machine
// endpoint; callers never swap fetch behavior after construction.
type SessionSource interface {
	Fetch(ctx context.Context) (domain.SessionBatch, error)
}

// ChangeDetector is implemented by sources backed by a cheap dirty-check
// endpoint. ChangedSince reports whether a full fetch would return
// anything new, along with the backend cursor for the next check.
type ChangeDetector interface {
	ChangedSince(ctx context.Context, cursor float64) (bool, float64, error)
}
