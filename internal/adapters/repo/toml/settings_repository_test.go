package toml

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/NathanNorman/claude-session-visualizer/internal/ports"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettingsRepo(t *testing.T, settingsPath string) *SettingsRepository {
	t.Helper()

	config := viper.New()
	config.Set("settings.path", settingsPath)

	repo, err := NewSettingsRepository(config)
	require.NoError(t, err)
	return repo
}

func TestSettingsRepositoryMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	repo := newSettingsRepo(t, filepath.Join(t.TempDir(), "missing", "settings.toml"))

	settings, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ports.DefaultSettings(), settings)
}

func TestSettingsRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newSettingsRepo(t, filepath.Join(t.TempDir(), "settings.toml"))

	want := ports.Settings{
		NotificationsEnabled: false,
		SoundEnabled:         true,
		CardMode:             "compact",
		FocusMode:            true,
		MultiMachine:         true,
		CollapsedGroups:      []string{"project:archived", "machine:buildbox"},
	}

	require.NoError(t, repo.Save(context.Background(), want))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSettingsRepositoryCorruptFileFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	settingsPath := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(settingsPath, []byte("card_mode = {{{"), 0o600))

	repo := newSettingsRepo(t, settingsPath)

	settings, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ports.DefaultSettings(), settings)
}

func TestSettingsRepositoryFutureVersionFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	settingsPath := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(settingsPath, []byte(strings.Join([]string{
		"version = 999",
		"card_mode = \"compact\"",
		"",
	}, "\n")), 0o600))

	repo := newSettingsRepo(t, settingsPath)

	settings, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ports.DefaultSettings(), settings)
}

func TestSettingsRepositoryPartialFileKeepsDefaultsForMissingKeys(t *testing.T) {
	t.Parallel()

	settingsPath := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(settingsPath, []byte(strings.Join([]string{
		"version = 1",
		"card_mode = \"compact\"",
		"",
	}, "\n")), 0o600))

	repo := newSettingsRepo(t, settingsPath)

	settings, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "compact", settings.CardMode)
	assert.True(t, settings.NotificationsEnabled)
	assert.False(t, settings.SoundEnabled)
}

func TestSettingsRepositorySaveSerializedTOMLIncludesVersion(t *testing.T) {
	t.Parallel()

	settingsPath := filepath.Join(t.TempDir(), "settings.toml")
	repo := newSettingsRepo(t, settingsPath)

	require.NoError(t, repo.Save(context.Background(), ports.DefaultSettings()))

	data, err := os.ReadFile(settingsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")

	info, err := os.Stat(settingsPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSettingsRepositorySaveExplicitFalseSurvivesReload(t *testing.T) {
	t.Parallel()

	repo := newSettingsRepo(t, filepath.Join(t.TempDir(), "settings.toml"))

	settings := ports.DefaultSettings()
	settings.NotificationsEnabled = false
	require.NoError(t, repo.Save(context.Background(), settings))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, got.NotificationsEnabled)
}
