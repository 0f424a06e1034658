// Command csvsed replaces regular expression matches in one column of delimited text.
//
// Usage:
//
//	csvsed -c phone -p '[^0-9]' -t '' < people.csv
//	csvsed -c name -p '(\w+) (\w+)' -t '$2, $1' -n sort_name < people.csv
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
	cmd := cli.NewCommand("csvsed", "Substitute regular expression matches in one column", stdin, stdout, stderr, runSed)
	cmd.Flags().StringP("column", "c", "", "column to rewrite (required)")
	cmd.Flags().StringP("pattern", "p", "", "regular expression to replace (required)")
	cmd.Flags().StringP("replacement", "t", "", "replacement text, $1 or ${name} expand capture groups (required)")
	cmd.Flags().StringP("new-column", "n", "", "write the result to a new trailing column with this name")
	_ = cmd.MarkFlagRequired("column")
	_ = cmd.MarkFlagRequired("pattern")
	_ = cmd.MarkFlagRequired("replacement")
	return cmd
}

func runSed(a *cli.Action) error {
	opts, err := a.StreamOptions()
	if err != nil {
		return err
	}
	job, err := csvgears.NewSedJob(opts, csvgears.SedConfig{
		Column:      a.GetString("column"),
		Pattern:     a.GetString("pattern"),
		Replacement: a.GetString("replacement"),
		NewColumn:   a.OptionalString("new-column"),
	})
	if err != nil {
		return err
	}
	return a.Run(job)
}

func main() {
	os.Exit(cli.Execute(context.Background(), newRootCmd(os.Stdin, os.Stdout, os.Stderr)))
}
