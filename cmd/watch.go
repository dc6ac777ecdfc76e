package cmd

import (
	"time"

	"github.com/NathanNorman/claude-session-visualizer/internal/adapters/render/watch"
	"github.com/NathanNorman/claude-session-visualizer/internal/application"
	"github.com/NathanNorman/claude-session-visualizer/internal/ports"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *app) *cobra.Command {
	var (
		allMachines bool
		focusMode   bool
		gastownOnly bool
		groupBy     string
		compact     bool
		search      string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live session dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := app.settings.Load(cmd.Context())
			if err != nil {
				return err
			}

			multi := allMachines || settings.MultiMachine
			service := app.dashboardService(multi)

			filters := application.FilterOptions{
				Search:      search,
				FocusMode:   focusMode || settings.FocusMode,
				GastownOnly: gastownOnly,
				GroupBy:     resolveGroupBy(groupBy, multi),
				CardMode:    settings.CardMode,
			}
			if compact {
				filters.CardMode = "compact"
			}

			app.logger.Info().Bool("multi_machine", multi).Msg("starting watch")

			cfg := watchConfig(settings, filters)
			cfg.Service = service
			cfg.Killer = app.client
			return watch.Run(cfg)
		},
	}

	cmd.Flags().BoolVar(&allMachines, "all", false, "Aggregate sessions from all registered machines")
	cmd.Flags().BoolVar(&focusMode, "focus", false, "Show active sessions only")
	cmd.Flags().BoolVar(&gastownOnly, "gastown", false, "Show gastown agent sessions only")
	cmd.Flags().StringVar(&groupBy, "group", "", "Group sessions by \"project\" or \"machine\"")
	cmd.Flags().BoolVar(&compact, "compact", false, "Compact cards")
	cmd.Flags().StringVar(&search, "search", "", "Initial search filter")

	return cmd
}

// watchConfig maps persisted preferences onto the dashboard config. The
// bell follows the sound preference; toasts cover notifications.
func watchConfig(settings ports.Settings, filters application.FilterOptions) watch.Config {
	return watch.Config{
		Filters:    filters,
		Bell:       settings.SoundEnabled,
		StaleAfter: 10 * time.Minute,
	}
}

func resolveGroupBy(flag string, multi bool) application.GroupKind {
	kind := application.GroupKind(flag)
	if kind.Valid() {
		return kind
	}
	if multi {
		return application.GroupByMachine
	}
	return application.GroupByProject
}
