package ports

import "context"

// Settings is the client-side persisted UI state. Loading always
// succeeds: corrupt or missing stored values come back as defaults.
type Settings struct {
	NotificationsEnabled bool
	SoundEnabled         bool
	CardMode             string
	FocusMode            bool
	MultiMachine         bool
	CollapsedGroups      []string
}

func DefaultSettings() Settings {
	return Settings{
		NotificationsEnabled: true,
		SoundEnabled:         false,
		CardMode:             "full",
	}
}

type SettingsRepository interface {
	Load(ctx context.Context) (Settings, error)
	Save(ctx context.Context, settings Settings) error
}
