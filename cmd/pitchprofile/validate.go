package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/aihawk/pitchprofile"
)

type validateOptions struct {
	list     string
	cacheDir string
	format   string
	strict   bool
	watch    bool
	debounce time.Duration
}

func newValidateCommand(global *globalOptions) *cobra.Command {
	opts := &validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate profile documents",
		Long: `Validate parses each profile strictly and checks its content. Profiles come
from the arguments or from a profile list (--list, or profile_list_url in the
config). Results are cached by content hash so changed profiles are reported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, global, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.list, "list", "", "Path or URL of a profile list file")
	flags.StringVar(&opts.cacheDir, "cache", "", "Directory to store cached validation results")
	flags.StringVar(&opts.format, "format", "", "Output format: text, json, yaml")
	flags.BoolVar(&opts.strict, "strict", false, "Treat warnings as errors")
	flags.BoolVar(&opts.watch, "watch", false, "Re-validate files when they change")
	flags.DurationVar(&opts.debounce, "debounce", 300*time.Millisecond, "Quiet period before re-validating in watch mode")
	return cmd
}

func runValidate(cmd *cobra.Command, global *globalOptions, opts *validateOptions, files []string) error {
	ctx := cmd.Context()
	log := klog.FromContext(ctx)

	config, err := loadConfig(global)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("cache") {
		config.CacheDir = opts.cacheDir
	}
	if flags.Changed("format") {
		config.OutputFormat = opts.format
	}
	if flags.Changed("strict") {
		config.Strict = opts.strict
	}
	if err := checkFormat(config.OutputFormat, "text", "json", "yaml"); err != nil {
		return err
	}

	if len(files) > 0 && opts.list != "" {
		return usageErrorf("give either files or --list, not both")
	}
	if opts.watch && len(files) == 0 {
		return usageErrorf("--watch needs at least one file argument")
	}
	if len(files) == 0 && opts.list == "" && config.ProfileListURL == "" {
		return usageErrorf("no profiles to validate: pass files, --list, or set profile_list_url")
	}

	if opts.watch {
		// Watch reports absolute paths; keep cache keys consistent with them
		for i, f := range files {
			abs, err := filepath.Abs(f)
			if err != nil {
				return fmt.Errorf("resolve %s: %w", f, err)
			}
			files[i] = abs
		}
	}

	validator, err := pitchprofile.NewProfileValidator(config)
	if err != nil {
		return err
	}

	var results []pitchprofile.ValidationResult
	if len(files) > 0 {
		results, err = validator.ValidateFiles(ctx, files)
	} else {
		results, err = validator.ValidateAll(ctx, opts.list)
	}
	if err != nil {
		return err
	}

	output, err := pitchprofile.FormatResults(results, config.OutputFormat)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), output)

	if opts.watch {
		log.Info("watching for changes", "files", len(files))
		return pitchprofile.Watch(ctx, files, opts.debounce, func(path string) {
			results, err := validator.ValidateFiles(ctx, []string{path})
			if err != nil {
				log.Error(err, "re-validating profile", "path", path)
				return
			}
			output, err := pitchprofile.FormatResults(results, config.OutputFormat)
			if err != nil {
				log.Error(err, "formatting results")
				return
			}
			fmt.Fprint(cmd.OutOrStdout(), output)
		})
	}

	if !pitchprofile.AllValid(results) {
		return errFailed
	}
	return nil
}
