package cli

import (
	"errors"

	"github.com/nao1215/csvgears"
)

// Exit statuses shared by every tool.
const (
	ExitOK              = 0
	ExitConfiguration   = 1
	ExitPatternCompile  = 2
	ExitUnknownColumn   = 3
	ExitResourceLoad    = 4
	ExitDuplicateColumn = 5
	ExitParse           = 6
	ExitIO              = 7
)

// exitCodes is checked in order; the first matching category wins.
var exitCodes = []struct {
	target error
	code   int
}{
	{csvgears.ErrConfiguration, ExitConfiguration},
	{csvgears.ErrPatternCompile, ExitPatternCompile},
	{csvgears.ErrUnknownColumn, ExitUnknownColumn},
	{csvgears.ErrResourceLoad, ExitResourceLoad},
	{csvgears.ErrDuplicateColumn, ExitDuplicateColumn},
	{csvgears.ErrParse, ExitParse},
	{csvgears.ErrIO, ExitIO},
}

// ExitCode maps err to the process exit status. Errors outside the taxonomy
// come from argument parsing and are reported as configuration errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	for _, e := range exitCodes {
		if errors.Is(err, e.target) {
			return e.code
		}
	}
	return ExitConfiguration
}
