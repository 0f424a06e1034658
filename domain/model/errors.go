// Package model provides the domain model for csvgears
package model

import "errors"

// ErrIndexOutOfRange is returned when a column index falls outside the header
var ErrIndexOutOfRange = errors.New("column index out of range")
