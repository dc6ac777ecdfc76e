package application

import (
	"context"
	"time"

	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
	"github.com/NathanNorman/claude-session-visualizer/internal/ports"
	"github.com/stretchr/testify/mock"
)

type mockSessionSource struct {
	mock.Mock
}

func (m *mockSessionSource) Fetch(ctx context.Context) (domain.SessionBatch, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.SessionBatch), args.Error(1)
}

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) GetBySession(ctx context.Context, id domain.SessionID) (domain.Note, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Note), args.Error(1)
}

func (m *mockNoteRepository) List(ctx context.Context) ([]domain.Note, error) {
	args := m.Called(ctx)
	notes, _ := args.Get(0).([]domain.Note)
	return notes, args.Error(1)
}

func (m *mockNoteRepository) Save(ctx context.Context, note domain.Note) error {
	return m.Called(ctx, note).Error(0)
}

func (m *mockNoteRepository) Delete(ctx context.Context, id domain.SessionID) error {
	return m.Called(ctx, id).Error(0)
}

type mockSettingsRepository struct {
	mock.Mock
}

func (m *mockSettingsRepository) Load(ctx context.Context) (ports.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(ports.Settings), args.Error(1)
}

func (m *mockSettingsRepository) Save(ctx context.Context, settings ports.Settings) error {
	return m.Called(ctx, settings).Error(0)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}
