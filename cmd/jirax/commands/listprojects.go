package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"jirax/internal/config"
	"jirax/internal/jira"
	"jirax/internal/preview"
)

var listProjectsCmd = &cobra.Command{
	Use:   "list-projects",
	Short: "List all projects visible to your credential",
	RunE:  runListProjects,
}

func init() {
	rootCmd.AddCommand(listProjectsCmd)
	addConnectionFlags(listProjectsCmd)
}

func runListProjects(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyConnectionFlags(cmd, cfg)

	if cfg.Jira.Server == "" {
		return errors.New("Jira server URL is required, provide --server or run jirax configure")
	}
	if cfg.Jira.Token == "" {
		return errors.New("Jira token is required, provide --token or run jirax configure")
	}

	client := jira.NewClient(cfg.Jira.ClientConfig())
	projects, err := client.ListProjects(cmd.Context())
	if err != nil {
		if errors.Is(err, jira.ErrAuth) {
			return fmt.Errorf("authentication failed: %w", err)
		}
		return fmt.Errorf("project listing failed: %w", err)
	}

	if len(projects) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No projects visible to this credential.")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), preview.Projects(projects))
	fmt.Fprintf(cmd.OutOrStdout(), "Total projects: %d\n", len(projects))
	return nil
}
