package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
	"github.com/spf13/cobra"
)

func newPeekCmd(app *app) *cobra.Command {
	var (
		sessionID   string
		limit       int
		showMetrics bool
		showGit     bool
	)

	cmd := &cobra.Command{
		Use:   "peek",
		Short: "Peek at the tail of a session's conversation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id := domain.SessionID(sessionID)
			out := cmd.OutOrStdout()

			messages, hasContinuation, err := app.client.Conversation(cmd.Context(), id, limit)
			if err != nil {
				return err
			}

			if len(messages) == 0 {
				_, _ = fmt.Fprintln(out, "no conversation data")
			}

			for _, message := range messages {
				header := string(message.Role)
				if !message.Timestamp.IsZero() {
					header += " " + message.Timestamp.Local().Format("15:04:05")
				}
				if message.IsContinuation {
					header += " (continued)"
				}
				_, _ = fmt.Fprintf(out, "--- %s ---\n", header)
				_, _ = fmt.Fprintln(out, sanitizeMultiline(message.Text))
				if len(message.Tools) > 0 {
					_, _ = fmt.Fprintf(out, "tools: %s\n", strings.Join(message.Tools, ", "))
				}
			}

			if hasContinuation {
				_, _ = fmt.Fprintln(out, "... earlier messages omitted")
			}

			if showMetrics {
				if err := printSessionMetrics(cmd, app, id); err != nil {
					return err
				}
			}
			if showGit {
				if err := printSessionGitInfo(cmd, app, id); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session id")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of messages")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "Append turn and tool-call metrics")
	cmd.Flags().BoolVar(&showGit, "git", false, "Append git status, diff stats and recent commits")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

func printSessionMetrics(cmd *cobra.Command, app *app, id domain.SessionID) error {
	metrics, err := app.client.Metrics(cmd.Context(), id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "\nmetrics:")
	_, _ = fmt.Fprintf(out, "  turns: %d, tool calls: %d (%.1f/h)\n", metrics.Turns, metrics.TotalToolCalls, metrics.ToolsPerHour)
	_, _ = fmt.Fprintf(out, "  response time: avg %.1fs, median %.1fs, max %.1fs\n",
		metrics.ResponseTime.Avg, metrics.ResponseTime.Median, metrics.ResponseTime.Max)
	_, _ = fmt.Fprintf(out, "  duration: %s, avg tokens/turn: %d\n",
		(time.Duration(metrics.DurationSeconds) * time.Second).String(), metrics.AvgTokensPerTurn)
	if tools := topTools(metrics.ToolCalls, 5); tools != "" {
		_, _ = fmt.Fprintf(out, "  top tools: %s\n", tools)
	}
	return nil
}

func printSessionGitInfo(cmd *cobra.Command, app *app, id domain.SessionID) error {
	info, err := app.client.SessionGitInfo(cmd.Context(), id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "\ngit:")
	if info.Status != nil {
		line := fmt.Sprintf("  branch: %s", sanitizeForTerminal(info.Status.Branch))
		if info.Status.Ahead > 0 || info.Status.Behind > 0 {
			line += fmt.Sprintf(" (ahead %d, behind %d)", info.Status.Ahead, info.Status.Behind)
		}
		if info.Status.HasUncommitted {
			line += " [uncommitted changes]"
		}
		_, _ = fmt.Fprintln(out, line)
	}
	if info.DiffStats != nil {
		_, _ = fmt.Fprintf(out, "  diff: %d files, +%d -%d\n",
			info.DiffStats.FilesChanged, info.DiffStats.Insertions, info.DiffStats.Deletions)
	}
	for i, commit := range info.Commits {
		if i == 3 {
			break
		}
		sha := commit.SHA
		if len(sha) > 7 {
			sha = sha[:7]
		}
		_, _ = fmt.Fprintf(out, "  %s %s\n", sha, sanitizeForTerminal(commit.Message))
	}
	if info.PR != "" {
		_, _ = fmt.Fprintf(out, "  pr: %s\n", sanitizeForTerminal(info.PR))
	}
	return nil
}

// sanitizeMultiline strips control characters but keeps newlines so
// message bodies stay readable.
func sanitizeMultiline(value string) string {
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		lines[i] = sanitizeForTerminal(line)
	}
	return strings.Join(lines, "\n")
}
