package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	dashboardadapter "github.com/NathanNorman/claude-session-visualizer/internal/adapters/render/dashboard"
	"github.com/NathanNorman/claude-session-visualizer/internal/application"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	var (
		allMachines bool
		groupBy     string
		asJSON      bool
		search      string
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "One-shot session listing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := app.settings.Load(cmd.Context())
			if err != nil {
				return err
			}

			multi := allMachines || settings.MultiMachine
			service := app.dashboardService(multi)
			filters := application.FilterOptions{
				Search:   search,
				GroupBy:  resolveGroupBy(groupBy, multi),
				CardMode: settings.CardMode,
			}

			var snapshot application.Snapshot
			err = runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), "Fetching sessions...", func(ctx context.Context) error {
				var fetchErr error
				snapshot, _, fetchErr = service.Refresh(ctx, filters)
				return fetchErr
			})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(snapshot)
			}

			rendered, err := app.dashboardRenderer(snapshot, dashboardadapter.RenderOptions{
				Now:        app.now(),
				StaleAfter: 10 * time.Minute,
				CardMode:   filters.CardMode,
			})
			if err != nil {
				return fmt.Errorf("render dashboard: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&allMachines, "all", false, "Aggregate sessions from all registered machines")
	cmd.Flags().StringVar(&groupBy, "group", "", "Group sessions by \"project\" or \"machine\"")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the snapshot as JSON")
	cmd.Flags().StringVar(&search, "search", "", "Filter sessions by search term")

	return cmd
}
