package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"jirax/internal/config"
	"jirax/internal/jira"
)

var configureGlobal bool

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure Jira connection settings interactively",
	RunE:  runConfigure,
}

func init() {
	rootCmd.AddCommand(configureCmd)
	configureCmd.Flags().BoolVarP(&configureGlobal, "global", "g", false,
		"save to the global ~/.jirax config instead of ./config.toml")
}

func runConfigure(cmd *cobra.Command, args []string) error {
	path := config.LocalPath
	if configureGlobal {
		globalPath, err := config.GlobalPath()
		if err != nil {
			return err
		}
		path = globalPath
	}

	// Prefill from the existing file so re-running keeps prior answers.
	cfg := config.Default()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Ignoring unreadable existing config")
		}
	}

	maxResults := strconv.Itoa(cfg.Extraction.MaxResults)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Jira server URL").
				Placeholder("https://your-instance.atlassian.net").
				Value(&cfg.Jira.Server),
			huh.NewSelect[string]().
				Title("Authentication type").
				Options(
					huh.NewOption("basic (email + API token)", string(jira.AuthBasic)),
					huh.NewOption("bearer (personal access token)", string(jira.AuthBearer)),
				).
				Value(&cfg.Jira.AuthType),
			huh.NewInput().
				Title("Token").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.Jira.Token),
			huh.NewInput().
				Title("Email (basic auth)").
				Value(&cfg.Jira.Email),
			huh.NewInput().
				Title("Login (bearer auth, leave empty if not required)").
				Value(&cfg.Jira.Login),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Default project (optional)").
				Value(&cfg.Extraction.DefaultProject),
			huh.NewInput().
				Title("Default max results").
				Value(&maxResults).
				Validate(func(s string) error {
					if _, err := strconv.Atoi(s); err != nil {
						return fmt.Errorf("must be a number")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	if n, err := strconv.Atoi(maxResults); err == nil {
		cfg.Extraction.MaxResults = n
	}

	if err := config.Save(cfg, path); err != nil {
		return err
	}

	location := "local"
	if configureGlobal {
		location = "global"
	}
	log.Info().Str("path", path).Msgf("Configuration saved to %s config file", location)
	return nil
}
