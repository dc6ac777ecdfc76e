package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/NathanNorman/claude-session-visualizer/internal/adapters/api"
	dashboardadapter "github.com/NathanNorman/claude-session-visualizer/internal/adapters/render/dashboard"
	tomlrepo "github.com/NathanNorman/claude-session-visualizer/internal/adapters/repo/toml"
	"github.com/NathanNorman/claude-session-visualizer/internal/adapters/snapshots"
	"github.com/NathanNorman/claude-session-visualizer/internal/application"
	"github.com/NathanNorman/claude-session-visualizer/internal/ports"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	defaultBaseURL = "http://127.0.0.1:8765"
	apiBaseURLKey  = "api.base_url"
)

type app struct {
	client            *api.Client
	notes             ports.NoteRepository
	settings          ports.SettingsRepository
	snapshots         ports.SnapshotStore
	dashboardRenderer func(application.Snapshot, dashboardadapter.RenderOptions) (string, error)
	logger            zerolog.Logger
	httpClient        *http.Client
	now               func() time.Time
}

func wireApp() (*app, error) {
	notes, err := tomlrepo.NewNoteRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire note repository: %w", err)
	}

	settings, err := tomlrepo.NewSettingsRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire settings repository: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	configDir := filepath.Join(homeDir, ".config", "svz")

	baseURL, err := resolveBaseURL(configDir)
	if err != nil {
		return nil, err
	}

	logger := newLogger(configDir)
	httpClient := &http.Client{Timeout: 15 * time.Second}
	client := api.NewClient(baseURL, httpClient, logger)

	return &app{
		client:            client,
		notes:             notes,
		settings:          settings,
		snapshots:         snapshots.NewStore(filepath.Join(configDir, "snapshots")),
		dashboardRenderer: dashboardadapter.Render,
		logger:            logger,
		httpClient:        httpClient,
		now:               time.Now,
	}, nil
}

// dashboardService builds the service around the right session source:
// the aggregated multi-machine endpoint or the local one.
func (a *app) dashboardService(multiMachine bool) *application.DashboardService {
	var source ports.SessionSource
	if multiMachine {
		source = api.NewMultiHostSource(a.client)
	} else {
		source = api.NewSingleHostSource(a.client, true)
	}

	return application.NewDashboardService(source, a.notes, a.settings, ports.SystemClock{})
}

// resolveBaseURL reads the backend address from config.toml, with the
// SVZ_API_BASE_URL environment variable taking precedence.
func resolveBaseURL(configDir string) (string, error) {
	cfg := viper.New()
	cfg.SetConfigName("config")
	cfg.SetConfigType("toml")
	cfg.AddConfigPath(configDir)
	cfg.SetDefault(apiBaseURLKey, defaultBaseURL)

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return "", fmt.Errorf("read config file: %w", err)
		}
	}

	return envOrDefault("SVZ_API_BASE_URL", cfg.GetString(apiBaseURLKey)), nil
}

func newLogger(configDir string) zerolog.Logger {
	level, err := zerolog.ParseLevel(envOrDefault("SVZ_LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return zerolog.Nop()
	}
	logFile, err := os.OpenFile(filepath.Join(configDir, "svz.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Nop()
	}

	return zerolog.New(logFile).Level(level).With().Timestamp().Logger()
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
