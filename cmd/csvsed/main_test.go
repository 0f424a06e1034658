package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/csvgears/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()

	config := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(config, []byte("[default]\n"), 0o600))

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &stdout, &stderr)
	cmd.SetArgs(append([]string{"--config", config}, args...))
	code := cli.Execute(context.Background(), cmd)
	return code, stdout.String(), stderr.String()
}

func TestCsvsed(t *testing.T) {
	t.Parallel()

	input := "x,y\naabaa,1\nb,2\n"

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "in place",
			args:       []string{"-c", "x", "-p", "a+", "-t", "Z"},
			wantCode:   cli.ExitOK,
			wantStdout: "x,y\nZbZ,1\nb,2\n",
		},
		{
			name:       "empty replacement",
			args:       []string{"-c", "x", "-p", "a", "-t", ""},
			wantCode:   cli.ExitOK,
			wantStdout: "x,y\nb,1\nb,2\n",
		},
		{
			name:       "append with capture group",
			args:       []string{"-c", "x", "-p", "(b)", "-t", "<$1>", "-n", "z"},
			wantCode:   cli.ExitOK,
			wantStdout: "x,y,z\naabaa,1,aa<b>aa\nb,2,<b>\n",
		},
		{
			name:       "duplicate new column",
			args:       []string{"-c", "x", "-p", "a", "-t", "b", "-n", "y"},
			wantCode:   cli.ExitDuplicateColumn,
			wantStderr: "csvsed: error: Column 'y' is already present in the input.\n",
		},
		{
			name:       "invalid pattern",
			args:       []string{"-c", "x", "-p", "[", "-t", "b"},
			wantCode:   cli.ExitPatternCompile,
			wantStderr: "cannot parse regular expression",
		},
		{
			name:       "unknown column",
			args:       []string{"-c", "q", "-p", "a", "-t", "b"},
			wantCode:   cli.ExitUnknownColumn,
			wantStderr: "Column 'q' is not present in the input.",
		},
		{
			name:       "missing replacement",
			args:       []string{"-c", "x", "-p", "a"},
			wantCode:   cli.ExitConfiguration,
			wantStderr: `"replacement"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, stdout, stderr := run(t, input, tt.args...)
			assert.Equal(t, tt.wantCode, code, stderr)
			assert.Equal(t, tt.wantStdout, stdout)
			assert.Contains(t, stderr, tt.wantStderr)
		})
	}
}
