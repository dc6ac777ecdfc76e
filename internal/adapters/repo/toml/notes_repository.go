package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
	"github.com/NathanNorman/claude-session-visualizer/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// NoteRepository persists session notes in a TOML file. Notes are local
// to this machine and keyed by session id.
type NoteRepository struct {
	notesPath string
	mu        *sync.RWMutex
}

var _ ports.NoteRepository = (*NoteRepository)(nil)

func NewNoteRepository(cfg *viper.Viper) (*NoteRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, storeConfigDir, notesFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, storeConfigDir))
	cfg.SetDefault(notesPathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	notesPath := cfg.GetString(notesPathKey)
	if notesPath == "" {
		return nil, errors.New("notes path is empty")
	}
	notesPath, err = normalizeStorePath(notesPath)
	if err != nil {
		return nil, err
	}

	return &NoteRepository{notesPath: notesPath, mu: lockForPath(notesPath)}, nil
}

func (r *NoteRepository) GetBySession(ctx context.Context, id domain.SessionID) (domain.Note, error) {
	if err := ctx.Err(); err != nil {
		return domain.Note{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Note{}, err
	}

	for _, entry := range file.Notes {
		if entry.SessionID == string(id) {
			return noteFromSchema(entry), nil
		}
	}

	return domain.Note{}, domain.ErrNoteNotFound
}

func (r *NoteRepository) List(ctx context.Context) ([]domain.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	notes := make([]domain.Note, 0, len(file.Notes))
	for _, entry := range file.Notes {
		notes = append(notes, noteFromSchema(entry))
	}

	return notes, nil
}

func (r *NoteRepository) Save(ctx context.Context, note domain.Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	file.applyDefaults()

	encoded := noteToSchema(note)
	updated := false
	for i := range file.Notes {
		if file.Notes[i].SessionID == encoded.SessionID {
			file.Notes[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Notes = append(file.Notes, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return atomicWrite(r.notesPath, file)
}

func (r *NoteRepository) Delete(ctx context.Context, id domain.SessionID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}
	file.applyDefaults()

	kept := file.Notes[:0]
	found := false
	for _, entry := range file.Notes {
		if entry.SessionID == string(id) {
			found = true
			continue
		}
		kept = append(kept, entry)
	}
	if !found {
		return domain.ErrNoteNotFound
	}
	file.Notes = kept

	return atomicWrite(r.notesPath, file)
}

func (r *NoteRepository) readSchema() (notesFileSchema, error) {
	data, err := os.ReadFile(r.notesPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return notesFileSchema{}, nil
		}
		return notesFileSchema{}, fmt.Errorf("read notes file: %w", err)
	}

	var file notesFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return notesFileSchema{}, fmt.Errorf("decode notes file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return notesFileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func noteToSchema(note domain.Note) noteSchema {
	return noteSchema{
		ID:        note.ID,
		SessionID: string(note.SessionID),
		Body:      note.Body,
		UpdatedAt: formatTime(note.UpdatedAt),
	}
}

func noteFromSchema(note noteSchema) domain.Note {
	return domain.Note{
		ID:        note.ID,
		SessionID: domain.SessionID(note.SessionID),
		Body:      note.Body,
		UpdatedAt: parseTime(note.UpdatedAt),
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
