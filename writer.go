package csvgears

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/nao1215/csvgears/domain/model"
)

var (
	// errHeaderWritten is returned when WriteHeader is called twice
	errHeaderWritten = errors.New("header already written")
	// errHeaderMissing is returned when a record is written before the header
	errHeaderMissing = errors.New("header not written")
)

// Writer emits the output header once, then records in the order given.
type Writer struct {
	csvWriter     *csv.Writer
	out           io.Writer
	cleanup       func() error
	headerWritten bool
	records       int64
}

// NewWriter returns a Writer on w that applies the output delimiter and
// compression from opts. Nothing is written until WriteHeader.
func NewWriter(w io.Writer, opts StreamOptions) (*Writer, error) {
	if err := validateDelimiter("output delimiter", opts.OutputDelimiter); err != nil {
		return nil, err
	}
	compressed, cleanup, err := NewCompressionHandler(opts.Compression).CreateWriter(w)
	if err != nil {
		return nil, configError("%v", err)
	}

	csvWriter := csv.NewWriter(compressed)
	csvWriter.Comma = opts.OutputDelimiter
	csvWriter.UseCRLF = false

	return &Writer{
		csvWriter: csvWriter,
		out:       compressed,
		cleanup:   cleanup,
	}, nil
}

// WriteHeader writes the header row. A header with zero columns is written
// as an empty line.
func (w *Writer) WriteHeader(h model.Header) error {
	if w.headerWritten {
		return errHeaderWritten
	}
	w.headerWritten = true
	return w.write(h)
}

// Write writes one record.
func (w *Writer) Write(r model.Record) error {
	if !w.headerWritten {
		return errHeaderMissing
	}
	if err := w.write(r); err != nil {
		return err
	}
	w.records++
	return nil
}

// Records returns the number of data records written.
func (w *Writer) Records() int64 {
	return w.records
}

// Close flushes buffered output and finishes the compression stream.
// It does not close the underlying writer.
func (w *Writer) Close() error {
	w.csvWriter.Flush()
	flushErr := w.csvWriter.Error()
	cleanupErr := w.cleanup()
	if err := errors.Join(flushErr, cleanupErr); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// emptyField is a row holding one empty field. Written bare it would be a
// blank line, which readers skip.
var emptyField = []byte("\"\"\n")

func (w *Writer) write(fields []string) error {
	if len(fields) == 1 && fields[0] == "" {
		w.csvWriter.Flush()
		if err := w.csvWriter.Error(); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
		if _, err := w.out.Write(emptyField); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
		return nil
	}
	if err := w.csvWriter.Write(fields); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}
