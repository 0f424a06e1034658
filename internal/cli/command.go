// Package cli holds the command line plumbing shared by csvcut, csvgrep and csvsed.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/csvgears"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RunFunc performs one tool invocation.
type RunFunc func(a *Action) error

// NewCommand returns a root command for a tool reading stdin and writing
// stdout. The common flags are registered; callers add their own.
func NewCommand(name, short string, stdin io.Reader, stdout, stderr io.Writer, run RunFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:           name,
		Short:         short,
		Args:          noArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newAction(cmd, stdin, stdout, stderr)
			if err != nil {
				return err
			}
			return run(a)
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", csvgears.ErrConfiguration, err)
	})
	addCommonFlags(cmd.Flags())
	return cmd
}

func addCommonFlags(flags *pflag.FlagSet) {
	flags.StringP("delimiter", "d", ",", "input field delimiter (a single character or 'tab')")
	flags.StringP("output-delimiter", "D", ",", "output field delimiter (a single character or 'tab')")
	flags.String("compress", "none", "compress output: none, gz, xz or zst")
	flags.Bool("no-decompress", false, "read input as plain text even when it starts with a gzip, bzip2, xz or zstd signature")
	flags.String("config", csvgears.DefaultConfigFile, "config file")
	flags.String("profile", csvgears.DefaultConfigProfile, "config profile")
	flags.String("log-level", DefaultLogLevel, "log level: debug, info, warn or error")
	flags.String("log-format", DefaultLogFormat, "log format: text or json")
}

func noArgs(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", csvgears.ErrConfiguration, args[0])
	}
	return nil
}

// Execute runs cmd and returns the process exit status. A failure is reported
// on the command's error stream as "<tool>: error: <message>".
func Execute(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: error: %s\n", cmd.Name(), strings.TrimRight(err.Error(), "\r\n"))
	return ExitCode(err)
}
