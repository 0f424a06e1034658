// Package csvgears provides a single-pass streaming engine for delimited text,
// and the column-select, row-filter and substitution tools built on it.
//
// Every transformation reads a header row, resolves the requested column names
// against it, and then processes one record at a time. Nothing but the current
// record is held in memory, so inputs of any size can be piped through.
//
// # Features
//
//   - Keep or drop columns by name, in any order (csvcut)
//   - Keep rows whose column matches a regular expression, a literal substring,
//     or one entry of an external value list (csvgrep)
//   - Replace regular expression matches in a column, in place or into a new
//     trailing column, with $1 and ${name} capture expansion (csvsed)
//   - Any single-character field delimiter, separately for input and output
//   - Transparent decompression of gzip, bzip2, xz and zstandard input
//   - Value lists from text, Excel (XLSX), Parquet or SQLite sources
//
// # Basic Usage
//
// Build a Job from StreamOptions and a tool configuration, then run it:
//
//	include := "name,email"
//	job, err := csvgears.NewCutJob(csvgears.NewStreamOptions(), csvgears.CutConfig{Include: &include})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := job.Run(os.Stdin, os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Handling
//
// Errors belong to one of a fixed set of categories which can be tested with
// errors.Is: ErrConfiguration, ErrPatternCompile, ErrUnknownColumn,
// ErrResourceLoad, ErrDuplicateColumn, ErrParse and ErrIO. All categories except
// ErrParse and ErrIO are detected before the first output byte is written.
//
// # Value Lists
//
// LoadLines reads the entries used by an exact-set pattern:
//   - "codes.txt" or "codes.txt.gz": one entry per line, no trimming
//   - "book.xlsx#Sheet2": first column of a sheet
//   - "data.parquet#code": one column of a Parquet file
//   - "lists.db#SELECT code FROM blocked": rows of a single-column SQLite query
package csvgears
