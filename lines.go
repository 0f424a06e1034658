package csvgears

import (
	"bufio"
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow/go/v18/arrow/memory"
	pqfile "github.com/apache/arrow/go/v18/parquet/file"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/xuri/excelize/v2"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

// LineLoader returns the ordered entries of a named resource.
type LineLoader func(ctx context.Context, name string) ([]string, error)

// maxLineLength bounds a single entry of a text resource.
const maxLineLength = 16 * 1024 * 1024

// Structured resource extensions
const (
	extXLSX    = ".xlsx"
	extParquet = ".parquet"
	extDB      = ".db"
	extSQLite  = ".sqlite"
	extSQLite3 = ".sqlite3"
)

// sqliteDriverName is the name modernc.org/sqlite registers with database/sql
const sqliteDriverName = "sqlite"

// resourceType is the format of a line resource after removing compression
type resourceType int

const (
	resourceText resourceType = iota
	resourceXLSX
	resourceParquet
	resourceSQLite
)

func detectResourceType(path string) resourceType {
	base := strings.ToLower(NewCompressionFactory().RemoveCompressionExtension(path))
	switch filepath.Ext(base) {
	case extXLSX:
		return resourceXLSX
	case extParquet:
		return resourceParquet
	case extDB, extSQLite, extSQLite3:
		return resourceSQLite
	default:
		return resourceText
	}
}

// splitResourceName separates "path#fragment" at the first '#' that follows a
// structured resource path. Text resources never have a fragment, so '#' stays
// part of their path, and a fragment may itself contain '#'.
func splitResourceName(name string) (string, string) {
	for i := 1; i < len(name); i++ {
		if name[i] != '#' {
			continue
		}
		if detectResourceType(name[:i]) != resourceText {
			return name[:i], name[i+1:]
		}
	}
	return name, ""
}

// LoadLines loads a line list from a named resource.
//
// Supported resources:
//   - text files, one entry per line ("\n" or "\r\n"), no trimming
//   - text files compressed with gzip, bzip2, xz or zstd (.gz, .bz2, .xz, .zst)
//   - "book.xlsx" or "book.xlsx#Sheet": first column of the first (or named) sheet
//   - "data.parquet" or "data.parquet#column": first (or named) column
//   - "lists.db#SELECT code FROM blocked": rows of a single-column SQLite query
//
// Spreadsheet and Parquet resources may also be compressed.
func LoadLines(ctx context.Context, name string) ([]string, error) {
	path, fragment := splitResourceName(name)
	ec := NewErrorContext("load lines", name)
	if strings.TrimSpace(path) == "" {
		return nil, ec.WithDetails("empty resource name").Error(nil)
	}

	var (
		lines []string
		err   error
	)
	switch detectResourceType(path) {
	case resourceXLSX:
		lines, err = withFileReader(path, func(r io.Reader) ([]string, error) {
			return readXLSXLines(r, fragment)
		})
	case resourceParquet:
		lines, err = withFileReader(path, func(r io.Reader) ([]string, error) {
			return readParquetLines(ctx, r, fragment)
		})
	case resourceSQLite:
		lines, err = readSQLiteLines(ctx, path, fragment)
	default:
		lines, err = withFileReader(path, readTextLines)
	}
	if err != nil {
		return nil, ec.Error(err)
	}
	return lines, nil
}

// withFileReader opens path with transparent decompression and passes it to fn.
func withFileReader(path string, fn func(io.Reader) ([]string, error)) ([]string, error) {
	reader, cleanup, err := NewCompressionFactory().CreateReaderForFile(path)
	if err != nil {
		return nil, err
	}
	lines, err := fn(reader)
	if closeErr := cleanup(); closeErr != nil && err == nil {
		err = closeErr
	}
	return lines, err
}

// readTextLines splits r into lines without any further normalization.
func readTextLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lines: %w", err)
	}
	return lines, nil
}

// readXLSXLines returns the first column of sheet, or of the first sheet when
// sheet is empty. Rows without cells become empty entries.
func readXLSXLines(r io.Reader, sheet string) ([]string, error) {
	xlsxFile, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer func() {
		_ = xlsxFile.Close() // Ignore close error
	}()

	if sheet == "" {
		sheetNames := xlsxFile.GetSheetList()
		if len(sheetNames) == 0 {
			return nil, errors.New("no sheets found in XLSX file")
		}
		sheet = sheetNames[0]
	} else if idx, err := xlsxFile.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %s not found in XLSX file", sheet)
	}

	rows, err := xlsxFile.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to open rows iterator for sheet %s: %w", sheet, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var lines []string
	for rows.Next() {
		cols, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read row in sheet %s: %w", sheet, err)
		}
		if len(cols) == 0 {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, cols[0])
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("failed to iterate sheet %s: %w", sheet, err)
	}
	return lines, nil
}

// readParquetLines returns one column of a Parquet file, the first one when
// column is empty. Null values become empty entries.
func readParquetLines(ctx context.Context, r io.Reader, column string) ([]string, error) {
	// Parquet requires random access
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("empty parquet file")
	}

	pqReader, err := pqfile.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pqReader.Close()

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	table, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	defer table.Release()

	if table.NumCols() == 0 {
		return nil, errors.New("parquet file has no columns")
	}
	colIndex := 0
	if column != "" {
		indices := table.Schema().FieldIndices(column)
		if len(indices) == 0 {
			return nil, fmt.Errorf("column %s not found in parquet file", column)
		}
		colIndex = indices[0]
	}

	lines := make([]string, 0, table.NumRows())
	for _, chunk := range table.Column(colIndex).Data().Chunks() {
		for i := 0; i < chunk.Len(); i++ {
			if chunk.IsNull(i) {
				lines = append(lines, "")
				continue
			}
			lines = append(lines, chunk.ValueStr(i))
		}
	}
	return lines, nil
}

// readSQLiteLines runs a single-column query against the database at path.
func readSQLiteLines(ctx context.Context, path, query string) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("sqlite resource requires a query, e.g. lists.db#SELECT name FROM allow")
	}
	// sql.Open would silently create a missing database
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to stat database: %w", err)
	}

	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to run query: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read query columns: %w", err)
	}
	if len(cols) != 1 {
		return nil, fmt.Errorf("query must return exactly one column, got %d", len(cols))
	}

	var lines []string
	for rows.Next() {
		var value sql.NullString
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		lines = append(lines, value.String)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return lines, nil
}
