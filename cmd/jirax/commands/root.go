package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"jirax/internal/logging"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "jirax",
	Short: "Jirax extracts Jira issues to CSV",
	Long: `Jirax pulls issues from a Jira instance by project key or JQL query,
normalizes sprint and epic custom fields, and writes the result as CSV.

Examples:
  # Configure the connection interactively
  jirax configure

  # Extract issues from a project
  jirax extract --project PROJ

  # Extract using a custom JQL query
  jirax extract --query "project = PROJ AND type = Story"

  # Extract to a specific file
  jirax extract --project PROJ --output-path ./exports/issues.csv`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		log.Debug().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("jirax starting")
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")
	rootCmd.Version = Version
}
