package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/aihawk/pitchprofile"
)

type bootstrapOptions struct {
	name         string
	github       string // owner/repo
	githubAPIURL string
	outputDir    string
	force        bool
}

func newBootstrapCommand(global *globalOptions) *cobra.Command {
	opts := &bootstrapOptions{}
	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Create a profile scaffold",
		Long: `Bootstrap writes profile.yaml with every required key and TODO placeholders.
With --github owner/repo, basic_info is prefilled from the repository.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log := klog.FromContext(ctx)

			if opts.name == "" && opts.github == "" {
				return usageErrorf("one of --name or --github is required")
			}

			var result *pitchprofile.BootstrapResult
			if opts.github != "" {
				owner, repo, ok := strings.Cut(opts.github, "/")
				if !ok || owner == "" || repo == "" {
					return usageErrorf("--github must be owner/repo, got %q", opts.github)
				}
				config, err := loadConfig(global)
				if err != nil {
					return err
				}
				client, err := pitchprofile.NewGitHubClient(config.GitHubToken, opts.githubAPIURL, &http.Client{Timeout: 30 * time.Second})
				if err != nil {
					return usageError(err)
				}
				result, err = pitchprofile.BootstrapFromGitHub(ctx, client, owner, repo)
				if err != nil {
					return err
				}
				if opts.name != "" {
					result.Profile.BasicInfo.ProjectName = opts.name
					result.Sources["basic_info.project_name"] = "user"
				}
			} else {
				result = pitchprofile.ScaffoldProfile(opts.name)
			}

			path, err := pitchprofile.WriteScaffold(opts.outputDir, result, opts.force)
			if errors.Is(err, pitchprofile.ErrScaffoldExists) {
				return &exitError{code: exitInvalid, err: err}
			}
			if err != nil {
				return err
			}
			log.Info("wrote scaffold", "path", path, "sources", len(result.Sources))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.name, "name", "", "Project name")
	flags.StringVar(&opts.github, "github", "", "Prefill from a GitHub repository (owner/repo)")
	flags.StringVar(&opts.githubAPIURL, "github-api-url", "", "GitHub API base URL (GitHub Enterprise)")
	flags.StringVarP(&opts.outputDir, "output", "o", ".", "Directory to write profile.yaml into")
	flags.BoolVar(&opts.force, "force", false, "Overwrite an existing profile.yaml")
	return cmd
}
