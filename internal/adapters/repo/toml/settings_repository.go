package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/NathanNorman/claude-session-visualizer/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// SettingsRepository persists dashboard settings in a TOML file.
// Load never fails on bad content: a missing, corrupt, or
// future-versioned file comes back as the documented defaults, so a
// damaged settings file can never keep the dashboard from starting.
type SettingsRepository struct {
	settingsPath string
	mu           *sync.RWMutex
}

var _ ports.SettingsRepository = (*SettingsRepository)(nil)

func NewSettingsRepository(cfg *viper.Viper) (*SettingsRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, storeConfigDir, settingsFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, storeConfigDir))
	cfg.SetDefault(settingsPathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	settingsPath := cfg.GetString(settingsPathKey)
	if settingsPath == "" {
		return nil, errors.New("settings path is empty")
	}
	settingsPath, err = normalizeStorePath(settingsPath)
	if err != nil {
		return nil, err
	}

	return &SettingsRepository{settingsPath: settingsPath, mu: lockForPath(settingsPath)}, nil
}

func (r *SettingsRepository) Load(ctx context.Context) (ports.Settings, error) {
	if err := ctx.Err(); err != nil {
		return ports.Settings{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	defaults := ports.DefaultSettings()

	data, err := os.ReadFile(r.settingsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaults, nil
		}
		return ports.Settings{}, fmt.Errorf("read settings file: %w", err)
	}

	var file settingsFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return defaults, nil
	}
	if file.Version > currentSchemaVersion {
		return defaults, nil
	}

	settings := defaults
	if file.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *file.NotificationsEnabled
	}
	if file.SoundEnabled != nil {
		settings.SoundEnabled = *file.SoundEnabled
	}
	if file.CardMode != "" {
		settings.CardMode = file.CardMode
	}
	settings.FocusMode = file.FocusMode
	settings.MultiMachine = file.MultiMachine
	settings.CollapsedGroups = file.CollapsedGroups

	return settings, nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings ports.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file := settingsFileSchema{
		NotificationsEnabled: &settings.NotificationsEnabled,
		SoundEnabled:         &settings.SoundEnabled,
		CardMode:             settings.CardMode,
		FocusMode:            settings.FocusMode,
		MultiMachine:         settings.MultiMachine,
		CollapsedGroups:      settings.CollapsedGroups,
	}
	file.applyDefaults()

	return atomicWrite(r.settingsPath, file)
}

// Path reports where settings live on disk, mostly for diagnostics.
func (r *SettingsRepository) Path() string {
	return filepath.Clean(r.settingsPath)
}
