package csvgears

import (
	"encoding/csv"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategoriesAreDistinct(t *testing.T) {
	t.Parallel()

	errs := []error{
		&UnknownColumnError{Names: []string{"a"}},
		&DuplicateColumnError{Name: "a"},
		&ParseError{Line: 1, Column: 1, Err: csv.ErrFieldCount},
		configError("bad"),
		NewErrorContext("load lines", "x.txt").Error(errors.New("boom")),
	}
	sentinels := []error{ErrUnknownColumn, ErrDuplicateColumn, ErrParse, ErrConfiguration, ErrResourceLoad}

	for i, err := range errs {
		for j, sentinel := range sentinels {
			assert.Equal(t, i == j, errors.Is(err, sentinel), "%v vs %v", err, sentinel)
		}
	}
}

func TestClassifyReadError(t *testing.T) {
	t.Parallel()

	err := classifyReadError(&csv.ParseError{StartLine: 2, Line: 2, Column: 5, Err: csv.ErrBareQuote})
	require.ErrorIs(t, err, ErrParse)
	assert.ErrorIs(t, err, csv.ErrBareQuote)
	assert.Equal(t, "parse error on line 2, column 5: bare \" in non-quoted-field", err.Error())

	cause := errors.New("disk gone")
	err = classifyReadError(cause)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, cause)
}

func TestErrorContext(t *testing.T) {
	t.Parallel()

	cause := errors.New("no such file")
	err := NewErrorContext("load lines", "codes.txt").WithDetails("line 3").Error(cause)
	require.ErrorIs(t, err, ErrResourceLoad)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "load lines failed, resource: codes.txt, details: line 3")

	err = NewErrorContext("load lines", "").Error(nil)
	assert.ErrorIs(t, err, ErrResourceLoad)
}
