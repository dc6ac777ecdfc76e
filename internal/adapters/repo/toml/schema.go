package toml

import "fmt"

const currentSchemaVersion = 1

type notesFileSchema struct {
	Version int          `toml:"version"`
	Notes   []noteSchema `toml:"notes"`
}

func (s *notesFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s notesFileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported notes schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type noteSchema struct {
	ID        string `toml:"id"`
	SessionID string `toml:"session_id"`
	Body      string `toml:"body"`
	UpdatedAt string `toml:"updated_at"`
}

type settingsFileSchema struct {
	Version              int      `toml:"version"`
	NotificationsEnabled *bool    `toml:"notifications_enabled,omitempty"`
	SoundEnabled         *bool    `toml:"sound_enabled,omitempty"`
	CardMode             string   `toml:"card_mode,omitempty"`
	FocusMode            bool     `toml:"focus_mode,omitempty"`
	MultiMachine         bool     `toml:"multi_machine,omitempty"`
	CollapsedGroups      []string `toml:"collapsed_groups,omitempty"`
}

func (s *settingsFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}
