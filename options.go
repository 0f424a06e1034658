package csvgears

import (
	"unicode/utf8"

	"github.com/nao1215/csvgears/domain/model"
)

// DefaultDelimiter is the field delimiter used when none is configured.
const DefaultDelimiter = ','

// StreamOptions configures how delimited text is read and written.
//
// Example:
//
//	opts := csvgears.NewStreamOptions().
//		WithDelimiter(';').
//		WithCompression(csvgears.CompressionGZ)
type StreamOptions struct {
	// Delimiter separates fields of the input
	Delimiter rune
	// OutputDelimiter separates fields of the output
	OutputDelimiter rune
	// Compression is applied to the output stream
	Compression CompressionType
	// Decompress enables detection of compressed input by its leading bytes
	Decompress bool
}

// NewStreamOptions creates default stream options: comma-delimited input and
// output, no output compression, compressed input detected automatically.
func NewStreamOptions() StreamOptions {
	return StreamOptions{
		Delimiter:       DefaultDelimiter,
		OutputDelimiter: DefaultDelimiter,
		Compression:     CompressionNone,
		Decompress:      true,
	}
}

// WithDelimiter sets the input field delimiter.
func (o StreamOptions) WithDelimiter(d rune) StreamOptions {
	o.Delimiter = d
	return o
}

// WithOutputDelimiter sets the output field delimiter.
func (o StreamOptions) WithOutputDelimiter(d rune) StreamOptions {
	o.OutputDelimiter = d
	return o
}

// WithCompression compresses the output stream.
//
// Options:
//   - CompressionNone: No compression (default)
//   - CompressionGZ: Gzip compression
//   - CompressionXZ: XZ compression
//   - CompressionZSTD: Zstandard compression
func (o StreamOptions) WithCompression(c CompressionType) StreamOptions {
	o.Compression = c
	return o
}

// WithDecompress toggles detection of compressed input.
func (o StreamOptions) WithDecompress(enabled bool) StreamOptions {
	o.Decompress = enabled
	return o
}

// Validate checks the options without touching any stream.
func (o StreamOptions) Validate() error {
	if err := validateDelimiter("delimiter", o.Delimiter); err != nil {
		return err
	}
	if err := validateDelimiter("output delimiter", o.OutputDelimiter); err != nil {
		return err
	}
	switch o.Compression {
	case CompressionNone, CompressionGZ, CompressionXZ, CompressionZSTD:
		return nil
	case CompressionBZ2:
		return configError("bzip2 compression is not supported for writing")
	default:
		return configError("unsupported compression type %d", o.Compression)
	}
}

// validateDelimiter applies the same rules encoding/csv enforces for Comma.
func validateDelimiter(what string, d rune) error {
	if d == 0 || d == '"' || d == '\r' || d == '\n' || !utf8.ValidRune(d) || d == utf8.RuneError {
		return configError("invalid %s %q", what, d)
	}
	return nil
}

// ProjectionMode selects whether a column spec lists columns to keep or to drop.
type ProjectionMode int

const (
	// ProjectInclude keeps the listed columns, in spec order
	ProjectInclude ProjectionMode = iota
	// ProjectExclude drops the listed columns, keeping header order
	ProjectExclude
)

// String returns the mode name
func (m ProjectionMode) String() string {
	if m == ProjectExclude {
		return "exclude"
	}
	return "include"
}

// CutConfig holds column-select options. Nil means the option was not given.
type CutConfig struct {
	Include *string
	Exclude *string
}

// CutPlan is a validated CutConfig.
type CutPlan struct {
	Mode ProjectionMode
	Spec model.ColumnSpec
}

// Validate checks that exactly one of Include and Exclude is set.
func (c CutConfig) Validate() (CutPlan, error) {
	switch {
	case c.Include != nil && c.Exclude != nil, c.Include == nil && c.Exclude == nil:
		return CutPlan{}, configError("Must specify either -c or -C but not both.")
	case c.Include != nil:
		return CutPlan{Mode: ProjectInclude, Spec: model.ParseColumnSpec(*c.Include)}, nil
	default:
		return CutPlan{Mode: ProjectExclude, Spec: model.ParseColumnSpec(*c.Exclude)}, nil
	}
}

// GrepConfig holds row-filter options.
type GrepConfig struct {
	Column  string
	Invert  bool
	Pattern PatternConfig
}

// Validate checks the row-filter options.
func (c GrepConfig) Validate() error {
	return c.Pattern.Validate()
}

// SedConfig holds substitution options.
type SedConfig struct {
	Column      string
	Pattern     string
	Replacement string
	// NewColumn, when set, receives the result instead of Column.
	NewColumn *string
}

// Validate checks the substitution options.
func (c SedConfig) Validate() error {
	if c.NewColumn != nil && *c.NewColumn == "" {
		return configError("new column name must not be empty")
	}
	return nil
}
