// Command csvcut selects or drops columns of delimited text read from stdin.
//
// Usage:
//
//	csvcut -c name,id < people.csv
//	csvcut -C secret -d ';' < people.csv
package main

import (
	"context"
	"io"
	"os"

	"github.com/nao1215/csvgears"
	"github.com/nao1215/csvgears/internal/cli"
	"github.com/spf13/cobra"
)

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	cmd := cli.NewCommand("csvcut", "Select or drop columns of delimited text", stdin, stdout, stderr, runCut)
	cmd.Flags().StringP("include", "c", "", "comma-separated columns to keep, in output order")
	cmd.Flags().StringP("exclude", "C", "", "comma-separated columns to drop")
	return cmd
}

func runCut(a *cli.Action) error {
	opts, err := a.StreamOptions()
	if err != nil {
		return err
	}
	job, err := csvgears.NewCutJob(opts, csvgears.CutConfig{
		Include: a.OptionalString("include"),
		Exclude: a.OptionalString("exclude"),
	})
	if err != nil {
		return err
	}
	return a.Run(job)
}

func main() {
	os.Exit(cli.Execute(context.Background(), newRootCmd(os.Stdin, os.Stdout, os.Stderr)))
}
