package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "svz",
		Short:         "Claude Session Visualizer (svz): watch coding-agent sessions from the terminal",
		Long:          "svz polls a session-visualizer backend and renders running Claude Code sessions as live-updating cards, grouped by project or machine, with notes, templates, analytics and session sharing.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newWatchCmd(app),
		newStatusCmd(app),
		newKillCmd(app),
		newMachinesCmd(app),
		newTemplatesCmd(app),
		newNotesCmd(app),
		newAnalyticsCmd(app),
		newTimelineCmd(app),
		newPeekCmd(app),
		newSummaryCmd(app),
		newShareCmd(app),
		newExportCmd(app),
	)

	return rootCmd
}
