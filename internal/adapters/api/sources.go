package api

import (
	"context"

	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
	"github.com/NathanNorman/claude-session-visualizer/internal/ports"
)

// SingleHostSource polls the local backend only.
type SingleHostSource struct {
	client           *Client
	includeSummaries bool
}

var (
	_ ports.SessionSource  = (*SingleHostSource)(nil)
	_ ports.ChangeDetector = (*SingleHostSource)(nil)
)

func NewSingleHostSource(client *Client, includeSummaries bool) *SingleHostSource {
	return &SingleHostSource{client: client, includeSummaries: includeSummaries}
}

func (s *SingleHostSource) Fetch(ctx context.Context) (domain.SessionBatch, error) {
	return s.client.Sessions(ctx, s.includeSummaries)
}

func (s *SingleHostSource) ChangedSince(ctx context.Context, cursor float64) (bool, float64, error) {
	return s.client.SessionsChanged(ctx, cursor)
}

// MultiHostSource polls the aggregated endpoint covering every
// registered machine. Unreachable machines are skipped, not fatal.
type MultiHostSource struct {
	client *Client
}

var _ ports.SessionSource = (*MultiHostSource)(nil)

func NewMultiHostSource(client *Client) *MultiHostSource {
	return &MultiHostSource{client: client}
}

// MultiHostSource deliberately skips the dirty check: the changed
// endpoint tracks local activity state only, so relying on it would
// hide remote updates. Aggregate polls always fetch.
func (s *MultiHostSource) Fetch(ctx context.Context) (domain.SessionBatch, error) {
	batch, _, err := s.client.AllSessions(ctx)
	return batch, err
}
