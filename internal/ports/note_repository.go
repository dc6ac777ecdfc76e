package ports

import (
	"context"

	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
)

type NoteRepository interface {
	GetBySession(ctx context.Context, id domain.SessionID) (domain.Note, error)
	List(ctx context.Context) ([]domain.Note, error)
	Save(ctx context.Context, note domain.Note) error
	Delete(ctx context.Context, id domain.SessionID) error
}
