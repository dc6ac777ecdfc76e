package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
	"github.com/spf13/cobra"
)

func newTimelineCmd(app *app) *cobra.Command {
	var (
		sessionID     string
		bucketMinutes int
	)

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Bucketed activity timeline for a session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			periods, err := app.client.Timeline(cmd.Context(), domain.SessionID(sessionID), bucketMinutes)
			if err != nil {
				return err
			}

			if len(periods) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no timeline data")
				return nil
			}

			for _, period := range periods {
				marker := "·"
				if period.State == domain.PeriodActive {
					marker = "█"
				}
				line := fmt.Sprintf("%s %s-%s %s",
					marker,
					period.Start.Local().Format("15:04"),
					period.End.Local().Format("15:04"),
					period.State,
				)
				if tools := topTools(period.Tools, 3); tools != "" {
					line += "  " + tools
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session id")
	cmd.Flags().IntVar(&bucketMinutes, "bucket-minutes", 30, "Bucket size in minutes")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

func topTools(tools map[string]int, n int) string {
	if len(tools) == 0 {
		return ""
	}

	names := make([]string, 0, len(tools))
	for name := range tools {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if tools[names[i]] != tools[names[j]] {
			return tools[names[i]] > tools[names[j]]
		}
		return names[i] < names[j]
	})

	if len(names) > n {
		names = names[:n]
	}
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s×%d", name, tools[name]))
	}
	return strings.Join(parts, " ")
}
