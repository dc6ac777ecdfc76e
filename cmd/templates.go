package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/NathanNorman/claude-session-visualizer/internal/adapters/api"
	"github.com/NathanNorman/claude-session-visualizer/internal/domain"
	"github.com/spf13/cobra"
)

func newTemplatesCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage session launch templates",
	}

	cmd.AddCommand(
		newTemplatesListCmd(app),
		newTemplatesCreateCmd(app),
		newTemplatesDeleteCmd(app),
		newTemplatesUseCmd(app),
	)

	return cmd
}

func newTemplatesListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			templates, err := app.client.Templates(cmd.Context())
			if err != nil {
				return err
			}

			if len(templates) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "templates: none")
				return nil
			}

			for _, template := range templates {
				line := fmt.Sprintf("%s\t%s", template.ID, sanitizeForTerminal(template.Name))
				if template.Description != "" {
					line += "\t" + sanitizeForTerminal(template.Description)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

func newTemplatesCreateCmd(app *app) *cobra.Command {
	var (
		name        string
		description string
		icon        string
		configJSON  string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a template",
		RunE: func(cmd *cobra.Command, _ []string) error {
			config := map[string]any{}
			if configJSON != "" {
				if err := json.Unmarshal([]byte(configJSON), &config); err != nil {
					return fmt.Errorf("parse --config: %w", err)
				}
			}

			template, err := app.client.CreateTemplate(cmd.Context(), api.TemplateRequest{
				Name:        name,
				Description: description,
				Icon:        icon,
				Config:      config,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created template %s (%s)\n", sanitizeForTerminal(template.Name), template.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Template name")
	cmd.Flags().StringVar(&description, "description", "", "Template description")
	cmd.Flags().StringVar(&icon, "icon", "", "Template icon")
	cmd.Flags().StringVar(&configJSON, "config", "", "Template config as JSON")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTemplatesDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.client.DeleteTemplate(cmd.Context(), args[0]); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted template %s\n", args[0])
			return nil
		},
	}
}

func newTemplatesUseCmd(app *app) *cobra.Command {
	var selector string

	cmd := &cobra.Command{
		Use:   "use",
		Short: "Mark a template as used and print its config",
		RunE: func(cmd *cobra.Command, _ []string) error {
			templates, err := app.client.Templates(cmd.Context())
			if err != nil {
				return err
			}
			if len(templates) == 0 {
				return errors.New("no templates available")
			}

			target, err := resolveTemplate(cmd, templates, selector)
			if err != nil {
				return err
			}

			used, err := app.client.UseTemplate(cmd.Context(), target.ID)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(used.Config)
		},
	}

	cmd.Flags().StringVar(&selector, "template", "", "Template ID or name")

	return cmd
}

func resolveTemplate(cmd *cobra.Command, templates []domain.Template, selector string) (domain.Template, error) {
	trimmed := strings.TrimSpace(selector)
	if trimmed != "" {
		for _, template := range templates {
			if template.ID == trimmed || strings.EqualFold(template.Name, trimmed) {
				return template, nil
			}
		}
		return domain.Template{}, fmt.Errorf("template %q not found", selector)
	}

	for i, template := range templates {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d) %s\n", i+1, sanitizeForTerminal(template.Name))
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Select template [1-%d]: ", len(templates))

	reader := bufio.NewReader(cmd.InOrStdin())
	input, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return domain.Template{}, fmt.Errorf("read template selection: %w", err)
	}

	choice, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return domain.Template{}, fmt.Errorf("invalid selection %q", strings.TrimSpace(input))
	}
	if choice < 1 || choice > len(templates) {
		return domain.Template{}, fmt.Errorf("selection out of range: %d", choice)
	}

	return templates[choice-1], nil
}
