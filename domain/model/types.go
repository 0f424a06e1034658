package model

import "strings"

// columnSpecSeparator separates names in a column spec.
const columnSpecSeparator = ","

// ColumnSpec is a comma-separated list of column names supplied by a caller.
// Order and duplicates are preserved, so a spec can reorder and repeat columns.
type ColumnSpec []string

// ParseColumnSpec splits s on commas. Names are not trimmed.
func ParseColumnSpec(s string) ColumnSpec {
	return ColumnSpec(strings.Split(s, columnSpecSeparator))
}

// String returns the column spec in its comma-separated form.
func (s ColumnSpec) String() string {
	return strings.Join(s, columnSpecSeparator)
}

// State is the lifecycle stage of one tool invocation.
type State int

const (
	// StateInit validates options and builds the pattern
	StateInit State = iota
	// StateHeaderResolved has read the header and resolved every column name
	StateHeaderResolved
	// StateStreaming processes records one at a time
	StateStreaming
	// StateDone has flushed all output
	StateDone
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateHeaderResolved:
		return "header_resolved"
	case StateStreaming:
		return "streaming"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}
