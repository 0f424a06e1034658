package csvgears

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/nao1215/csvgears/domain/model"
)

// binder builds the Transformer of a job once the input header is known.
type binder func(header model.Header) (Transformer, error)

// Job is one configured tool invocation. Building a Job performs every check
// that does not need the input; Run performs the rest before writing anything.
//
// The typical usage pattern is:
//
//	job, err := csvgears.NewCutJob(csvgears.NewStreamOptions(), cfg)
//	if err != nil {
//		return err
//	}
//	stats, err := job.Run(os.Stdin, os.Stdout)
type Job struct {
	name   string
	opts   StreamOptions
	bind   binder
	logger *slog.Logger
	state  model.State
}

// Stats summarises a finished run.
type Stats struct {
	// Read is the number of input records
	Read int64
	// Written is the number of output records, excluding the header
	Written int64
	// Dropped is the number of records the transformer discarded
	Dropped int64
	// BytesRead is the number of raw input bytes consumed
	BytesRead int64
}

func newJob(name string, opts StreamOptions, bind binder) (*Job, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Job{
		name:   name,
		opts:   opts,
		bind:   bind,
		logger: slog.Default(),
		state:  model.StateInit,
	}, nil
}

// NewCutJob builds a column-select job.
func NewCutJob(opts StreamOptions, cfg CutConfig) (*Job, error) {
	plan, err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	return newJob("csvcut", opts, func(header model.Header) (Transformer, error) {
		return NewProjection(header, plan)
	})
}

// NewGrepJob builds a row-filter job. An exact-set pattern is loaded through
// loader here, before any input is read; a nil loader means LoadLines.
func NewGrepJob(ctx context.Context, opts StreamOptions, cfg GrepConfig, loader LineLoader) (*Job, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	pattern, err := BuildPattern(ctx, cfg.Pattern, loader)
	if err != nil {
		return nil, err
	}
	selector := Selector{Pattern: pattern, Invert: cfg.Invert}
	return newJob("csvgrep", opts, func(header model.Header) (Transformer, error) {
		return NewRowFilter(header, cfg.Column, selector)
	})
}

// NewSedJob builds a substitution job.
func NewSedJob(opts StreamOptions, cfg SedConfig) (*Job, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	re, err := CompileRegex(cfg.Pattern)
	if err != nil {
		return nil, err
	}
	return newJob("csvsed", opts, func(header model.Header) (Transformer, error) {
		return NewSubstitution(header, cfg.Column, re, cfg.Replacement, cfg.NewColumn)
	})
}

// WithLogger sets the logger used for progress events.
func (j *Job) WithLogger(logger *slog.Logger) *Job {
	if logger != nil {
		j.logger = logger
	}
	return j
}

// State returns the current lifecycle stage.
func (j *Job) State() model.State {
	return j.state
}

// Run streams in to out. Header and column resolution failures are reported
// before anything is written to out. Failures while streaming abort the run;
// output already written is left in place.
func (j *Job) Run(in io.Reader, out io.Writer) (stats Stats, err error) {
	if j.state != model.StateInit {
		return stats, fmt.Errorf("%s: job already ran", j.name)
	}
	start := time.Now()
	logger := j.logger.With("tool", j.name)

	reader, err := NewReader(in, j.opts)
	if err != nil {
		return stats, err
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrIO, closeErr)
		}
		stats.BytesRead = reader.BytesRead()
	}()

	transformer, err := j.bind(reader.Header())
	if err != nil {
		return stats, err
	}
	j.transition(logger, model.StateHeaderResolved,
		"input_columns", reader.Header().Len(), "output_columns", transformer.Header().Len())

	writer, err := NewWriter(out, j.opts)
	if err != nil {
		return stats, err
	}
	if err := writer.WriteHeader(transformer.Header()); err != nil {
		return stats, err
	}

	j.transition(logger, model.StateStreaming)
	err = stream(reader, transformer, writer, &stats)
	stats.Written = writer.Records()
	if err != nil {
		// flush what was already accepted so output stays a prefix of the full result
		_ = writer.Close()
		logger.Debug("stream aborted", "read", stats.Read, "written", stats.Written, "error", err)
		return stats, err
	}
	if err := writer.Close(); err != nil {
		return stats, err
	}

	j.transition(logger, model.StateDone,
		"read", stats.Read, "written", stats.Written, "dropped", stats.Dropped,
		"dur_ms", time.Since(start).Milliseconds())
	return stats, nil
}

func (j *Job) transition(logger *slog.Logger, next model.State, args ...any) {
	j.state = next
	logger.Debug("state "+next.String(), args...)
}

// stream processes records one at a time until the input is exhausted.
func stream(reader *Reader, transformer Transformer, writer *Writer, stats *Stats) error {
	for {
		record, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		stats.Read++

		out, keep := transformer.Apply(record)
		if !keep {
			stats.Dropped++
			continue
		}
		if err := writer.Write(out); err != nil {
			return err
		}
	}
}
