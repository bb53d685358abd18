package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/aihawk/pitchprofile"
)

func newShowCommand(_ *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <file>",
		Short: "Print a short summary of a profile",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := loadProfile(cmd.Context(), args[0], true)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), profile.Summary())
			return nil
		},
	}
}

func newFmtCommand(_ *globalOptions) *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "fmt <files...>",
		Short: "Rewrite profiles in canonical form",
		Long: `Fmt rewrites each profile with canonical key order and indentation. With
--check nothing is written and the command fails if any file would change.`,
		Args: minimumArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			failed := false
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return &exitError{code: exitInvalid, err: fmt.Errorf("failed to read %s: %w", path, err)}
				}
				profile, err := pitchprofile.Parse(data)
				if err != nil {
					return &exitError{code: exitInvalid, err: fmt.Errorf("%s: %w", path, err)}
				}
				canonical, err := pitchprofile.Marshal(profile)
				if err != nil {
					return err
				}
				if string(canonical) == string(data) {
					klog.FromContext(ctx).V(1).Info("already canonical", "path", path)
					continue
				}
				if check {
					fmt.Fprintf(out, "%s: not in canonical form\n", path)
					failed = true
					continue
				}
				if err := pitchprofile.WriteFile(ctx, path, profile); err != nil {
					return err
				}
				fmt.Fprintf(out, "formatted %s\n", path)
			}
			if failed {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "Report files that are not canonical instead of rewriting them")
	return cmd
}

func newExportCommand(_ *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a profile as JSON or canonical YAML",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "json", "yaml"); err != nil {
				return err
			}
			profile, err := loadProfile(cmd.Context(), args[0], false)
			if err != nil {
				return err
			}
			var data []byte
			if format == "json" {
				data, err = pitchprofile.ExportJSON(profile)
			} else {
				data, err = pitchprofile.Marshal(profile)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, yaml")
	return cmd
}

func newDiffCommand(_ *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Show field-level changes between two profiles",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "text", "json", "yaml"); err != nil {
				return err
			}
			ctx := cmd.Context()
			before, err := loadProfile(ctx, args[0], false)
			if err != nil {
				return err
			}
			after, err := loadProfile(ctx, args[1], false)
			if err != nil {
				return err
			}
			diff, err := pitchprofile.CompareProfiles(before, after)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), format, diff, func() string {
				return pitchprofile.FormatProfileDiff(diff)
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json, yaml")
	return cmd
}
