package cmd

import (
	"errors"
	"fmt"

	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
	"github.com/spf13/cobra"
)

func newNotesCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Manage local session notes",
	}

	cmd.AddCommand(
		newNotesListCmd(app),
		newNotesShowCmd(app),
		newNotesSetCmd(app),
		newNotesRemoveCmd(app),
	)

	return cmd
}

func newNotesListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all notes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			notes, err := app.notes.List(cmd.Context())
			if err != nil {
				return err
			}

			if len(notes) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "notes: none")
				return nil
			}

			for _, note := range notes {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", note.SessionID, sanitizeForTerminal(note.Body))
			}
			return nil
		},
	}
}

func newNotesShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show the note for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := app.notes.GetBySession(cmd.Context(), domain.SessionID(args[0]))
			if err != nil {
				if errors.Is(err, domain.ErrNoteNotFound) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no note")
					return nil
				}
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), note.Body)
			return nil
		},
	}
}

func newNotesSetCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <session-id> <body>",
		Short: "Create or replace the note for a session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := app.dashboardService(false)
			note, err := service.SaveNote(cmd.Context(), domain.SessionID(args[0]), args[1])
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved note for %s\n", note.SessionID)
			return nil
		},
	}

	return cmd
}

func newNotesRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <session-id>",
		Short: "Delete the note for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.notes.Delete(cmd.Context(), domain.SessionID(args[0])); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted note for %s\n", args[0])
			return nil
		},
	}
}
