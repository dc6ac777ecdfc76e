package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
	"github.com/spf13/cobra"
)

func newAnalyticsCmd(app *app) *cobra.Command {
	var (
		period string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Historical usage analytics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind := domain.AnalyticsPeriod(period)
			if !kind.Valid() {
				return fmt.Errorf("invalid period %q (day, week or month)", period)
			}

			report, err := app.client.Analytics(cmd.Context(), kind)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "period: %s\n", report.Period)
			_, _ = fmt.Fprintf(out, "sessions: %d (%+.1f%%)\n", report.TotalSessions, report.TotalSessionsChange)
			_, _ = fmt.Fprintf(out, "tokens: %s (%+.1f%%)\n", domain.CompactNumber(report.TotalTokens), report.TotalTokensChange)
			_, _ = fmt.Fprintf(out, "estimated cost: $%.2f (%+.1f%%)\n", report.EstimatedCost, report.EstimatedCostChange)
			_, _ = fmt.Fprintf(out, "active time: %.1fh (%+.1f%%)\n", report.ActiveTimeHours, report.ActiveTimeChange)
			_, _ = fmt.Fprintf(out, "peak hour: %02d:00\n", report.PeakHour)

			if len(report.TopRepos) > 0 {
				_, _ = fmt.Fprintln(out, "top repos:")
				for _, repo := range report.TopRepos {
					_, _ = fmt.Fprintf(out, "  %s\t%d sessions (%.0f%%)\n", sanitizeForTerminal(repo.Name), repo.Count, repo.Percentage)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "week", "Aggregation period: day, week or month")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the report as JSON")

	return cmd
}
