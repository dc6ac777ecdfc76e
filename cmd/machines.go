package cmd

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/NathanNorman/claude-session-visualizer/internal/adapters/api"
	"github.com/spf13/cobra"
)

func newMachinesCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "machines",
		Short: "Manage remote machines",
	}

	cmd.AddCommand(
		newMachinesListCmd(app),
		newMachinesAddCmd(app),
		newMachinesRemoveCmd(app),
		newMachinesReconnectCmd(app),
		newMachinesTestCmd(app),
	)

	return cmd
}

func newMachinesListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered machines",
		RunE: func(cmd *cobra.Command, _ []string) error {
			machines, err := app.client.Machines(cmd.Context())
			if err != nil {
				return err
			}

			if len(machines) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "machines: none")
				return nil
			}

			for _, machine := range machines {
				line := fmt.Sprintf("%s\t%s\t%s", sanitizeForTerminal(machine.Name), sanitizeForTerminal(machine.Host), machine.Status)
				if machine.LastError != "" {
					line += "\t" + sanitizeForTerminal(machine.LastError)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

func newMachinesAddCmd(app *app) *cobra.Command {
	var (
		name   string
		host   string
		sshKey string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a machine for multi-machine aggregation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.client.AddMachine(cmd.Context(), api.MachineRequest{
				Name:   name,
				Host:   host,
				SSHKey: sshKey,
			}); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added machine %s (%s)\n", name, host)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&host, "host", "", "SSH host (user@host)")
	cmd.Flags().StringVar(&sshKey, "ssh-key", "", "SSH private key path")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("host")

	return cmd
}

func newMachinesRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a registered machine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.client.RemoveMachine(cmd.Context(), args[0]); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed machine %s\n", args[0])
			return nil
		},
	}
}

func newMachinesReconnectCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reconnect <name>",
		Short: "Reconnect a machine's session tunnel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.client.ReconnectMachine(cmd.Context(), args[0]); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reconnect requested for %s\n", args[0])
			return nil
		},
	}
}

func newMachinesTestCmd(app *app) *cobra.Command {
	var sshKey string

	cmd := &cobra.Command{
		Use:   "test <host>",
		Short: "Test SSH connectivity to a host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, message, err := app.client.TestMachine(cmd.Context(), args[0], sshKey)
			if err != nil {
				return err
			}

			if !ok {
				return fmt.Errorf("connection test failed: %s", sanitizeForTerminal(message))
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Connection OK: %s\n", sanitizeForTerminal(message))
			return nil
		},
	}

	cmd.Flags().StringVar(&sshKey, "ssh-key", "", "SSH private key path")

	return cmd
}

func sanitizeForTerminal(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
}
