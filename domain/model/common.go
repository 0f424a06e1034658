// Package model provides the domain model for csvgears
package model

import "fmt"

// Header is the ordered list of column names read from the first row.
// Duplicate names are kept as they appear in the input.
type Header []string

// NewHeader create new Header.
func NewHeader(h []string) Header {
	return Header(h)
}

// Len returns the number of columns.
func (h Header) Len() int {
	return len(h)
}

// Clone returns a copy of the header that does not share storage with h.
func (h Header) Clone() Header {
	c := make(Header, len(h))
	copy(c, h)
	return c
}

// Equal compare Header.
func (h Header) Equal(h2 Header) bool {
	if len(h) != len(h2) {
		return false
	}
	for i, v := range h {
		if v != h2[i] {
			return false
		}
	}
	return true
}

// Record is one data row, positionally aligned to the Header.
type Record []string

// NewRecord create new Record.
func NewRecord(r []string) Record {
	return Record(r)
}

// Equal compare Record.
func (r Record) Equal(r2 Record) bool {
	if len(r) != len(r2) {
		return false
	}
	for i, v := range r {
		if v != r2[i] {
			return false
		}
	}
	return true
}

// Cell returns the value at the given column index.
func (r Record) Cell(i ColumnIndex) string {
	return r[i]
}

// ColumnIndex is a position in a Header. Values are produced by column
// resolution and are always within [0, width).
type ColumnIndex int

// NewColumnIndex returns a ColumnIndex for position i in a header of the given width.
func NewColumnIndex(i, width int) (ColumnIndex, error) {
	if i < 0 || i >= width {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, width)
	}
	return ColumnIndex(i), nil
}

// Int returns the index as int.
func (c ColumnIndex) Int() int {
	return int(c)
}
