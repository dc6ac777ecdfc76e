package cmd

import (
	"fmt"

	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
	"github.com/spf13/cobra"
)

func newShareCmd(app *app) *cobra.Command {
	var (
		sessionID   string
		expiresDays int
		markdown    bool
	)

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Create a share link or markdown export for a session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id := domain.SessionID(sessionID)

			if markdown {
				content, err := app.client.ExportMarkdown(cmd.Context(), id)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), content)
				return err
			}

			link, err := app.client.Share(cmd.Context(), id, expiresDays)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), link.URL)
			if link.ExpiresAt != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "expires: %s\n", link.ExpiresAt)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session id")
	cmd.Flags().IntVar(&expiresDays, "expires-days", 7, "Share link lifetime in days")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Export the session transcript as markdown instead")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}
