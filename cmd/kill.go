package cmd

import (
	"fmt"

	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
	"github.com/spf13/cobra"
)

func newKillCmd(app *app) *cobra.Command {
	var (
		pid       int
		sessionID string
	)

	cmd := &cobra.Command{
		Use:   "kill",
		Short: "Terminate a session process via the backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := pid
			if target == 0 {
				if sessionID == "" {
					return fmt.Errorf("either --pid or --session is required")
				}

				session, err := findSession(cmd, app, domain.SessionID(sessionID))
				if err != nil {
					return err
				}
				if session.PID == 0 {
					return fmt.Errorf("session %s has no pid", sessionID)
				}
				target = session.PID
			}

			if err := app.client.Kill(cmd.Context(), target); err != nil {
				return err
			}

			app.logger.Info().Int("pid", target).Msg("kill signal sent")
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Kill signal sent to pid %d\n", target)
			return nil
		},
	}

	cmd.Flags().IntVar(&pid, "pid", 0, "Process id to terminate")
	cmd.Flags().StringVar(&sessionID, "session", "", "Session id to terminate")

	return cmd
}

func findSession(cmd *cobra.Command, app *app, id domain.SessionID) (domain.Session, error) {
	batch, err := app.client.Sessions(cmd.Context(), false)
	if err != nil {
		return domain.Session{}, err
	}

	for _, session := range batch.Sessions {
		if session.ID == id {
			return session, nil
		}
	}

	return domain.Session{}, domain.ErrSessionNotFound
}
