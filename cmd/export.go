package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/NathanNorman/claude-session-visualizer/internal/adapters/render/htmlexport"
	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
	"github.com/spf13/cobra"
)

func newExportCmd(app *app) *cobra.Command {
	var (
		sessionID string
		outKey    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a standalone HTML snapshot of a session card",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id := domain.SessionID(sessionID)

			session, err := findSession(cmd, app, id)
			if err != nil {
				return err
			}

			noteBody := ""
			if note, noteErr := app.notes.GetBySession(cmd.Context(), id); noteErr == nil {
				noteBody = note.Body
			} else if !errors.Is(noteErr, domain.ErrNoteNotFound) {
				return noteErr
			}

			html := htmlexport.RenderCard(htmlexport.Snapshot{
				Session:     session,
				Note:        noteBody,
				GeneratedAt: app.now(),
			})

			key := outKey
			if key == "" {
				key = filepath.Join("sessions", string(id), "card.html")
			}

			path, err := app.snapshots.Put(cmd.Context(), key, html)
			if err != nil {
				return err
			}

			app.logger.Info().Str("session", string(id)).Str("path", path).Msg("exported session snapshot")
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session id")
	cmd.Flags().StringVar(&outKey, "out", "", "Snapshot key relative to the snapshot store root")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}
