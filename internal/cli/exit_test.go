package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nao1215/csvgears"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: ExitOK},
		{name: "configuration", err: fmt.Errorf("%w: both -c and -C", csvgears.ErrConfiguration), want: ExitConfiguration},
		{name: "pattern", err: fmt.Errorf("%w: missing )", csvgears.ErrPatternCompile), want: ExitPatternCompile},
		{name: "unknown column", err: &csvgears.UnknownColumnError{Names: []string{"x"}}, want: ExitUnknownColumn},
		{name: "resource", err: csvgears.NewErrorContext("load lines", "f").Error(nil), want: ExitResourceLoad},
		{name: "duplicate", err: &csvgears.DuplicateColumnError{Name: "x"}, want: ExitDuplicateColumn},
		{name: "parse", err: &csvgears.ParseError{Line: 2, Err: errors.New("bad")}, want: ExitParse},
		{name: "io", err: fmt.Errorf("%w: broken pipe", csvgears.ErrIO), want: ExitIO},
		{name: "usage", err: errors.New(`required flag(s) "column" not set`), want: ExitConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
