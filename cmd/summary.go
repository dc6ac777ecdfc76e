package cmd

import (
	"fmt"

	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
	"github.com/spf13/cobra"
)

func newSummaryCmd(app *app) *cobra.Command {
	var (
		sessionID string
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Fetch or regenerate the AI summary for a session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			summary, err := app.client.RefreshSummary(cmd.Context(), domain.SessionID(sessionID), force)
			if err != nil {
				return err
			}

			if summary == "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no summary available")
				return nil
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), sanitizeMultiline(summary))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session id")
	cmd.Flags().BoolVar(&force, "force", false, "Regenerate even when a cached summary exists")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}
