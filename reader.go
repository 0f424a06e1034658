package csvgears

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/nao1215/csvgears/domain/model"
)

// ErrInvalidUTF8 is the cause of a ParseError for a field that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader parses delimited text into a Header followed by a forward-only
// sequence of Records. It holds at most one record in memory.
type Reader struct {
	csvReader *csv.Reader
	header    model.Header
	counter   *countingReader
	cleanup   func() error
}

// NewReader reads the header from r and returns a Reader positioned at the
// first record. Empty input produces a header with zero columns.
func NewReader(r io.Reader, opts StreamOptions) (*Reader, error) {
	if err := validateDelimiter("delimiter", opts.Delimiter); err != nil {
		return nil, err
	}

	counter := &countingReader{reader: r}
	var src io.Reader = counter
	cleanup := nopCleanup
	if opts.Decompress {
		decompressed, closeFunc, err := NewCompressionFactory().SniffReader(counter)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to open input: %w", ErrIO, err)
		}
		src, cleanup = decompressed, closeFunc
	}

	bomless, err := skipBOM(src)
	if err != nil {
		_ = cleanup()
		return nil, fmt.Errorf("%w: failed to read input: %w", ErrIO, err)
	}

	csvReader := csv.NewReader(bomless)
	csvReader.Comma = opts.Delimiter
	// 0 binds the expected width to the header row.
	csvReader.FieldsPerRecord = 0
	csvReader.ReuseRecord = true

	rd := &Reader{
		csvReader: csvReader,
		counter:   counter,
		cleanup:   cleanup,
	}

	headerRecord, err := csvReader.Read()
	switch {
	case errors.Is(err, io.EOF):
		rd.header = model.NewHeader([]string{})
		return rd, nil
	case err != nil:
		_ = cleanup()
		return nil, classifyReadError(err)
	}
	if err := rd.validateUTF8(headerRecord); err != nil {
		_ = cleanup()
		return nil, err
	}
	rd.header = model.NewHeader(headerRecord).Clone()
	return rd, nil
}

// Header returns the column names of the input.
func (r *Reader) Header() model.Header {
	return r.header
}

// Next returns the next record, or io.EOF once the input is exhausted.
// The returned record is only valid until the following call to Next.
func (r *Reader) Next() (model.Record, error) {
	record, err := r.csvReader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, classifyReadError(err)
	}
	if err := r.validateUTF8(record); err != nil {
		return nil, err
	}
	return model.NewRecord(record), nil
}

// BytesRead returns the number of raw input bytes consumed so far.
func (r *Reader) BytesRead() int64 {
	return r.counter.n
}

// Close releases the decompressor, if any. It does not close the source.
func (r *Reader) Close() error {
	return r.cleanup()
}

func (r *Reader) validateUTF8(fields []string) error {
	for i, f := range fields {
		if !utf8.ValidString(f) {
			line, column := r.csvReader.FieldPos(i)
			return &ParseError{Line: line, Column: column, Err: ErrInvalidUTF8}
		}
	}
	return nil
}

// skipBOM drops a leading UTF-8 byte order mark.
func skipBOM(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	prefix, err := br.Peek(len(utf8BOM))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if bytes.Equal(prefix, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, err
		}
	}
	return br, nil
}

// countingReader tracks bytes read from the wrapped reader.
type countingReader struct {
	reader io.Reader
	n      int64
}

// Read implements io.Reader.
func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.reader.Read(p)
	c.n += int64(n)
	return n, err
}
