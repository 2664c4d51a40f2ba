package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"jirax/internal/config"
	"jirax/internal/export"
	"jirax/internal/extract"
	"jirax/internal/jira"
	"jirax/internal/preview"
)

// extractTimeFormat renders the run's shared Extract_Date value.
const extractTimeFormat = "2006-01-02 15:04:05"

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract Jira issues based on project or custom query",
	Long: `Extract Jira issues based on project or custom query.

Examples:
  # Extract issues from a project
  jirax extract --project PROJ

  # Extract using a custom JQL query
  jirax extract --query "project = PROJ AND issuetype = Epic"

  # Extract recent issues to a specific file
  jirax extract --query "project = PROJ AND updated >= -7d" --output-path ./exports/recent.csv`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	addConnectionFlags(extractCmd)

	flags := extractCmd.Flags()
	flags.StringP("project", "p", "", "Jira project key")
	flags.StringP("query", "q", "", "custom JQL query (overrides --project)")
	flags.IntP("max-results", "m", 0, "maximum number of issues to extract")
	flags.StringP("output-path", "o", "", "output file path (with .csv extension)")
	flags.Bool("preview", true, "preview results before export")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyConnectionFlags(cmd, cfg)

	flags := cmd.Flags()
	project, _ := flags.GetString("project")
	query, _ := flags.GetString("query")
	outputPath, _ := flags.GetString("output-path")

	maxResults := cfg.Extraction.MaxResults
	if flags.Changed("max-results") {
		maxResults, _ = flags.GetInt("max-results")
	}
	showPreview := cfg.Display.Preview
	if flags.Changed("preview") {
		showPreview, _ = flags.GetBool("preview")
	}

	if maxResults <= 0 {
		return errors.New("max results must be positive")
	}
	if cfg.Jira.Server == "" {
		return errors.New("Jira server URL is required, provide --server or run jirax configure")
	}
	if cfg.Jira.Token == "" {
		return errors.New("Jira token is required, provide --token or run jirax configure")
	}
	if project == "" && query == "" {
		project = cfg.Extraction.DefaultProject
	}

	jql, err := extract.BuildJQL(project, query)
	if err != nil {
		return fmt.Errorf("query construction failed: %w", err)
	}
	log.Info().Str("jql", jql).Msg("Using JQL query")

	ctx := cmd.Context()
	client := jira.NewClient(cfg.Jira.ClientConfig())

	// Field discovery failure degrades to an empty mapping inside
	// ResolveFields, it never aborts the run.
	mapping := extract.ResolveFields(ctx, client)
	fetcher := extract.NewFetcher(client, mapping)

	var issues []jira.Issue
	fetchOnce := func() error {
		var fetchErr error
		issues, fetchErr = fetcher.Fetch(ctx, jql, maxResults)
		if fetchErr != nil && !errors.Is(fetchErr, jira.ErrTransient) {
			return backoff.Permanent(fetchErr)
		}
		return fetchErr
	}
	if err := backoff.Retry(fetchOnce, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2)); err != nil {
		if errors.Is(err, jira.ErrAuth) {
			return fmt.Errorf("authentication failed: %w", err)
		}
		return fmt.Errorf("fetch failed: %w", err)
	}

	if len(issues) == 0 {
		// Still produce a header-only file so downstream consumers can
		// tell "ran and found nothing" from "never ran".
		log.Info().Msg("No issues found with the given query")
	} else {
		log.Info().Int("count", len(issues)).Msg("Found issues")
	}

	extractedAt := time.Now().Format(extractTimeFormat)
	records := make([]export.Record, 0, len(issues))
	for _, issue := range issues {
		records = append(records, extract.Normalize(issue, mapping, extractedAt))
	}

	if showPreview && len(records) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), preview.Records(records, cfg.Display.PreviewRows))
		fmt.Fprintf(cmd.OutOrStdout(), "Total records: %d\n", len(records))

		proceed := true
		confirm := huh.NewConfirm().
			Title("Continue with export?").
			Value(&proceed)
		if err := confirm.Run(); err != nil {
			return err
		}
		if !proceed {
			log.Info().Msg("Export cancelled")
			return nil
		}
	}

	if outputPath == "" {
		filename := fmt.Sprintf("jira_extract_%s.csv", time.Now().Format("20060102_150405"))
		outputPath = filepath.Join(cfg.Extraction.OutputDirectory, filename)
	}

	rows, err := export.WriteCSV(outputPath, records)
	if err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	log.Info().Int("rows", rows).Str("path", outputPath).Msg("Export completed")
	return nil
}
