package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/nao1215/csvgears"
	"github.com/spf13/cobra"
)

// Action is the state used when processing one tool invocation.
type Action struct {
	cmd     *cobra.Command
	stdin   io.Reader
	stdout  io.Writer
	profile csvgears.Profile
	logger  *slog.Logger
	start   time.Time
}

func newAction(cmd *cobra.Command, stdin io.Reader, stdout, stderr io.Writer) (*Action, error) {
	a := &Action{cmd: cmd, stdin: stdin, stdout: stdout, start: time.Now()}

	profile, err := a.loadProfile()
	if err != nil {
		return nil, err
	}
	a.profile = profile

	logger, err := NewLogger(stderr,
		a.stringOr("log-level", profile.LogLevel),
		a.stringOr("log-format", profile.LogFormat))
	if err != nil {
		return nil, err
	}
	a.logger = logger
	return a, nil
}

// Context returns the command context.
func (a *Action) Context() context.Context {
	return a.cmd.Context()
}

// Logger returns the logger configured from flags and profile.
func (a *Action) Logger() *slog.Logger {
	return a.logger
}

func (a *Action) changed(name string) bool {
	return a.cmd.Flags().Changed(name)
}

// GetBool returns the value of a boolean flag.
func (a *Action) GetBool(name string) bool {
	result, _ := a.cmd.Flags().GetBool(name)
	return result
}

// GetString returns the value of a string flag.
func (a *Action) GetString(name string) string {
	result, _ := a.cmd.Flags().GetString(name)
	return result
}

// OptionalString returns nil unless the flag was given on the command line.
func (a *Action) OptionalString(name string) *string {
	if !a.changed(name) {
		return nil
	}
	result := a.GetString(name)
	return &result
}

// stringOr returns the flag value when given, else fallback when non-empty,
// else the flag default.
func (a *Action) stringOr(name, fallback string) string {
	if !a.changed(name) && fallback != "" {
		return fallback
	}
	return a.GetString(name)
}

func (a *Action) getRune(name string) (rune, error) {
	d, err := csvgears.ParseDelimiter(a.GetString(name))
	if err != nil {
		return 0, fmt.Errorf("--%s: %w", name, err)
	}
	return d, nil
}

// A missing file or profile is only an error when named explicitly.
func (a *Action) loadProfile() (csvgears.Profile, error) {
	fname := a.GetString("config")
	profile := a.GetString("profile")
	optional := !a.changed("config") && !a.changed("profile")
	return csvgears.LoadProfile(fname, profile, optional)
}

// StreamOptions merges built-in defaults, the profile and explicit flags,
// in increasing order of precedence.
func (a *Action) StreamOptions() (csvgears.StreamOptions, error) {
	opts, err := a.profile.Apply(csvgears.NewStreamOptions())
	if err != nil {
		return opts, err
	}
	if a.changed("delimiter") {
		d, err := a.getRune("delimiter")
		if err != nil {
			return opts, err
		}
		opts = opts.WithDelimiter(d)
	}
	if a.changed("output-delimiter") {
		d, err := a.getRune("output-delimiter")
		if err != nil {
			return opts, err
		}
		opts = opts.WithOutputDelimiter(d)
	}
	if a.changed("compress") {
		c, err := csvgears.ParseCompressionType(a.GetString("compress"))
		if err != nil {
			return opts, err
		}
		opts = opts.WithCompression(c)
	}
	if a.changed("no-decompress") {
		opts = opts.WithDecompress(!a.GetBool("no-decompress"))
	}
	return opts, opts.Validate()
}

// Run streams standard input through job to standard output.
func (a *Action) Run(job *csvgears.Job) error {
	stats, err := job.WithLogger(a.logger).Run(a.stdin, a.stdout)
	if err != nil {
		return err
	}
	a.logger.Info("finished",
		"tool", a.cmd.Name(),
		"read", stats.Read,
		"written", stats.Written,
		"dropped", stats.Dropped,
		"bytes_read", stats.BytesRead,
		"elapsed", time.Since(a.start).Round(time.Millisecond).String())
	return nil
}
