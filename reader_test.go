package csvgears

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/nao1215/csvgears/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readAll drains r, copying every record.
func readAll(t *testing.T, r *Reader) ([]model.Record, error) {
	t.Helper()

	var records []model.Record
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, append(model.Record(nil), rec...))
	}
}

func TestNewReader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		delimiter  rune
		wantHeader model.Header
		wantRows   []model.Record
	}{
		{
			name:       "comma separated",
			input:      "a,b,c\n1,2,3\n4,5,6\n",
			delimiter:  ',',
			wantHeader: model.Header{"a", "b", "c"},
			wantRows:   []model.Record{{"1", "2", "3"}, {"4", "5", "6"}},
		},
		{
			name:       "semicolon separated with CRLF",
			input:      "a;b\r\n1;2\r\n",
			delimiter:  ';',
			wantHeader: model.Header{"a", "b"},
			wantRows:   []model.Record{{"1", "2"}},
		},
		{
			name:       "tab separated without trailing newline",
			input:      "x\ty\nfoo\tbar",
			delimiter:  '\t',
			wantHeader: model.Header{"x", "y"},
			wantRows:   []model.Record{{"foo", "bar"}},
		},
		{
			name:       "multi-byte delimiter",
			input:      "a¦b¦c\n1¦2,5¦3\n",
			delimiter:  '¦',
			wantHeader: model.Header{"a", "b", "c"},
			wantRows:   []model.Record{{"1", "2,5", "3"}},
		},
		{
			name:       "quoted fields keep delimiters and newlines",
			input:      "name,note\n\"Smith, J\",\"line1\nline2\"\n",
			delimiter:  ',',
			wantHeader: model.Header{"name", "note"},
			wantRows:   []model.Record{{"Smith, J", "line1\nline2"}},
		},
		{
			name:       "byte order mark is skipped",
			input:      "\xEF\xBB\xBFid,name\n1,alice\n",
			delimiter:  ',',
			wantHeader: model.Header{"id", "name"},
			wantRows:   []model.Record{{"1", "alice"}},
		},
		{
			name:       "header only",
			input:      "a,b\n",
			delimiter:  ',',
			wantHeader: model.Header{"a", "b"},
		},
		{
			name:       "empty input",
			input:      "",
			delimiter:  ',',
			wantHeader: model.Header{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := NewReader(strings.NewReader(tt.input), NewStreamOptions().WithDelimiter(tt.delimiter))
			require.NoError(t, err)
			defer r.Close()

			assert.Equal(t, tt.wantHeader, r.Header())
			rows, err := readAll(t, r)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRows, rows)
			assert.Equal(t, int64(len(tt.input)), r.BytesRead())
		})
	}
}

func TestReaderHeaderIsStable(t *testing.T) {
	t.Parallel()

	r, err := NewReader(strings.NewReader("a,b\n1,2\n3,4\n"), NewStreamOptions())
	require.NoError(t, err)

	_, err = readAll(t, r)
	require.NoError(t, err)
	assert.Equal(t, model.Header{"a", "b"}, r.Header())
}

func TestReaderErrors(t *testing.T) {
	t.Parallel()

	t.Run("row wider than header", func(t *testing.T) {
		t.Parallel()

		r, err := NewReader(strings.NewReader("a,b\n1,2\n3,4,5\n"), NewStreamOptions())
		require.NoError(t, err)

		rows, err := readAll(t, r)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrParse)
		assert.Len(t, rows, 1)

		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, 3, perr.Line)
	})

	t.Run("unterminated quote in header", func(t *testing.T) {
		t.Parallel()

		_, err := NewReader(strings.NewReader("a,\"b\n"), NewStreamOptions())
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("invalid UTF-8", func(t *testing.T) {
		t.Parallel()

		r, err := NewReader(strings.NewReader("a\n\xff\n"), NewStreamOptions())
		require.NoError(t, err)

		_, err = r.Next()
		assert.ErrorIs(t, err, ErrParse)
		assert.ErrorIs(t, err, ErrInvalidUTF8)
	})

	t.Run("invalid delimiter", func(t *testing.T) {
		t.Parallel()

		_, err := NewReader(strings.NewReader("a\n"), NewStreamOptions().WithDelimiter('"'))
		assert.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("failing source", func(t *testing.T) {
		t.Parallel()

		_, err := NewReader(io.MultiReader(strings.NewReader("a,b\n"), errReader{}), NewStreamOptions())
		assert.ErrorIs(t, err, ErrIO)
	})
}

func TestReaderDecompress(t *testing.T) {
	t.Parallel()

	input := "a,b\n1,2\n"
	for _, c := range []CompressionType{CompressionGZ, CompressionXZ, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			t.Parallel()

			compressed := compressBytes(t, c, []byte(input))
			r, err := NewReader(bytes.NewReader(compressed), NewStreamOptions())
			require.NoError(t, err)
			defer r.Close()

			assert.Equal(t, model.Header{"a", "b"}, r.Header())
			rows, err := readAll(t, r)
			require.NoError(t, err)
			assert.Equal(t, []model.Record{{"1", "2"}}, rows)
			assert.Equal(t, int64(len(compressed)), r.BytesRead())
		})
	}

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		compressed := compressBytes(t, CompressionGZ, []byte(input))
		_, err := NewReader(bytes.NewReader(compressed), NewStreamOptions().WithDecompress(false))
		assert.Error(t, err)
	})
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}
