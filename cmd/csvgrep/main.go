// Command csvgrep keeps the rows of delimited text whose column matches a pattern.
//
// Usage:
//
//	csvgrep -c city -r '^San ' < places.csv
//	csvgrep -c code -f blocked.txt.gz -i < orders.csv
//	csvgrep -c code -f 'lists.db#SELECT code FROM blocked' < orders.csv
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
	cmd := cli.NewCommand("csvgrep", "Filter rows of delimited text by matching one column", stdin, stdout, stderr, runGrep)
	cmd.Flags().StringP("column", "c", "", "column to match (required)")
	cmd.Flags().BoolP("invert", "i", false, "keep rows that do not match")
	cmd.Flags().StringP("regex", "r", "", "regular expression to search for")
	cmd.Flags().StringP("fixed-string", "m", "", "literal string to search for")
	cmd.Flags().StringP("lines-from", "f", "", "file of exact values, one per line (also .xlsx, .parquet, .db#QUERY)")
	_ = cmd.MarkFlagRequired("column")
	return cmd
}

func runGrep(a *cli.Action) error {
	opts, err := a.StreamOptions()
	if err != nil {
		return err
	}
	job, err := csvgears.NewGrepJob(a.Context(), opts, csvgears.GrepConfig{
		Column:  a.GetString("column"),
		Invert:  a.GetBool("invert"),
		Pattern: csvgears.PatternConfig{
			Regex:       a.OptionalString("regex"),
			FixedString: a.OptionalString("fixed-string"),
			LinesFrom:   a.OptionalString("lines-from"),
		},
	}, csvgears.LoadLines)
	if err != nil {
		return err
	}
	return a.Run(job)
}

func main() {
	os.Exit(cli.Execute(context.Background(), newRootCmd(os.Stdin, os.Stdout, os.Stderr)))
}
