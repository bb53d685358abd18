package main

import (
	"fmt"
	"time"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	"github.com/aihawk/pitchprofile"
)

func newSchemaCommand(_ *globalOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for profile documents",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := pitchprofile.MarshalSchema()
			if err != nil {
				return fmt.Errorf("error encoding schema: %w", err)
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := renameio.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write schema: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the schema to this file instead of stdout")
	return cmd
}

type auditOptions struct {
	format       string
	github       bool
	githubAPIURL string
	concurrency  int
	timeout      time.Duration
}

func newAuditCommand(global *globalOptions) *cobra.Command {
	opts := &auditOptions{}
	cmd := &cobra.Command{
		Use:   "audit <file>",
		Short: "Check that the links in a profile resolve",
		Long: `Audit sends a HEAD request to every URL in the profile (website, repository,
team LinkedIn and GitHub links). With --github it also confirms through the
GitHub API that referenced users and repositories exist. GITHUB_TOKEN is used
when set.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			config, err := loadConfig(global)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("format") {
				config.OutputFormat = opts.format
			}
			if flags.Changed("concurrency") {
				config.AuditConcurrency = opts.concurrency
			}
			if flags.Changed("timeout") {
				config.AuditTimeout = opts.timeout
			}
			if err := checkFormat(config.OutputFormat, "text", "json", "yaml"); err != nil {
				return err
			}

			profile, err := loadProfile(ctx, args[0], false)
			if err != nil {
				return err
			}

			auditOpts := pitchprofile.AuditOptionsFromConfig(config)
			if opts.github {
				client, err := pitchprofile.NewGitHubClient(config.GitHubToken, opts.githubAPIURL, auditOpts.HTTPClient)
				if err != nil {
					return usageError(err)
				}
				auditOpts.GitHub = client
			}

			result := pitchprofile.AuditProfile(ctx, profile, auditOpts)
			if err := render(cmd.OutOrStdout(), config.OutputFormat, result, func() string {
				return pitchprofile.FormatAuditResult(result)
			}); err != nil {
				return err
			}
			if result.FailCount > 0 {
				return errFailed
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.format, "format", "", "Output format: text, json, yaml")
	flags.BoolVar(&opts.github, "github", false, "Verify GitHub users and repositories through the API")
	flags.StringVar(&opts.githubAPIURL, "github-api-url", "", "GitHub API base URL (GitHub Enterprise)")
	flags.IntVar(&opts.concurrency, "concurrency", 0, "Maximum concurrent checks")
	flags.DurationVar(&opts.timeout, "timeout", 0, "Per-request timeout")
	return cmd
}

func newStalenessCommand(global *globalOptions) *cobra.Command {
	var (
		format    string
		graceDays int
	)
	cmd := &cobra.Command{
		Use:   "staleness <files...>",
		Short: "Report profiles whose roadmap milestones are in the past",
		Args:  minimumArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(global)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				config.OutputFormat = format
			}
			if err := checkFormat(config.OutputFormat, "text", "json", "yaml"); err != nil {
				return err
			}
			if graceDays < 0 {
				return usageErrorf("--grace-days must not be negative")
			}

			now := time.Now()
			var results []pitchprofile.StalenessResult
			stale := false
			for _, path := range args {
				profile, err := loadProfile(cmd.Context(), path, false)
				if err != nil {
					return err
				}
				r := pitchprofile.CheckStaleness(profile, now, graceDays)
				stale = stale || r.IsStale
				results = append(results, r)
			}

			if err := render(cmd.OutOrStdout(), config.OutputFormat, results, func() string {
				return pitchprofile.FormatStalenessResults(results)
			}); err != nil {
				return err
			}
			if stale {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Output format: text, json, yaml")
	cmd.Flags().IntVar(&graceDays, "grace-days", 30, "Days after a period ends before its milestone counts as overdue")
	return cmd
}
