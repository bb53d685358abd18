package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"

	"github.com/aihawk/pitchprofile"
)

// Exit codes
const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

// exitError carries the process exit code for an error. A nil err means the
// command already reported the failure on stdout.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error {
	return &exitError{code: exitUsage, err: err}
}

func usageErrorf(format string, a ...any) error {
	return usageError(fmt.Errorf(format, a...))
}

// errFailed reports that the command printed a failing result.
var errFailed = &exitError{code: exitInvalid}

// globalOptions are the flags shared by every subcommand.
type globalOptions struct {
	configPath string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line argv and returns the exit code.
func run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	ctx = klog.NewContext(ctx, klog.Background())
	defer klog.Flush()

	cmd := newRootCommand()
	cmd.SetArgs(argv)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", ee.err)
		}
		if ee.code == exitUsage {
			fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.Name())
		}
		return ee.code
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitInvalid
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "pitchprofile",
		Short:         "Validate, format and inspect startup pitch profile documents",
		Long:          "pitchprofile works with pitch profile YAML documents: strict parsing with key-path errors,\ncontent validation, canonical formatting, export, link audits and roadmap staleness checks.",
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to configuration file (optional)")

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	flags.AddGoFlagSet(klogFlags)

	cmd.AddCommand(
		newValidateCommand(opts),
		newShowCommand(opts),
		newFmtCommand(opts),
		newExportCommand(opts),
		newSchemaCommand(opts),
		newAuditCommand(opts),
		newStalenessCommand(opts),
		newDiffCommand(opts),
		newBootstrapCommand(opts),
	)
	return cmd
}

func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return usageError(err)
	}
	return nil
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

func minimumArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// loadConfig loads the config file named by --config. Invalid configuration
// is a usage error.
func loadConfig(opts *globalOptions) (*pitchprofile.Config, error) {
	config, err := pitchprofile.LoadConfig(opts.configPath)
	if err != nil {
		return nil, usageErrorf("loading config: %w", err)
	}
	return config, nil
}

func checkFormat(format string, allowed ...string) error {
	for _, f := range allowed {
		if format == f {
			return nil
		}
	}
	return usageErrorf("unsupported format %q (supported: %v)", format, allowed)
}

// render writes v as JSON or YAML, or the text produced by text().
func render(w io.Writer, format string, v any, text func() string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML output: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		_, err := io.WriteString(w, text())
		return err
	}
}

// loadProfile parses path, turning malformed documents into exit code 1.
func loadProfile(ctx context.Context, path string, validate bool) (pitchprofile.Profile, error) {
	load := pitchprofile.LoadFile
	if validate {
		load = pitchprofile.Load
	}
	profile, err := load(ctx, path)
	if err != nil {
		return pitchprofile.Profile{}, &exitError{code: exitInvalid, err: err}
	}
	return profile, nil
}
