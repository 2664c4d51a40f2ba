package commands

import (
	"github.com/spf13/cobra"

	"jirax/internal/config"
)

// addConnectionFlags registers the Jira connection flags shared by the
// commands that talk to the server.
func addConnectionFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("server", "s", "", "Jira server URL")
	flags.StringP("token", "t", "", "Jira API token or bearer token")
	flags.StringP("email", "e", "", "email address for basic authentication")
	flags.StringP("auth-type", "a", "", `authentication type: "basic" or "bearer"`)
	flags.StringP("login", "l", "", "username for bearer authentication (if required)")
	flags.Bool("verify-ssl", true, "verify TLS certificates (disable for self-signed instances)")
	flags.Int("timeout", 0, "request timeout in seconds")
}

// applyConnectionFlags overlays explicitly set connection flags onto
// the loaded configuration. Flags always win over config files.
func applyConnectionFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("server") {
		cfg.Jira.Server, _ = flags.GetString("server")
	}
	if flags.Changed("token") {
		cfg.Jira.Token, _ = flags.GetString("token")
	}
	if flags.Changed("email") {
		cfg.Jira.Email, _ = flags.GetString("email")
	}
	if flags.Changed("auth-type") {
		cfg.Jira.AuthType, _ = flags.GetString("auth-type")
	}
	if flags.Changed("login") {
		cfg.Jira.Login, _ = flags.GetString("login")
	}
	if flags.Changed("verify-ssl") {
		cfg.Jira.VerifySSL, _ = flags.GetBool("verify-ssl")
	}
	if flags.Changed("timeout") {
		cfg.Jira.TimeoutSeconds, _ = flags.GetInt("timeout")
	}
}
