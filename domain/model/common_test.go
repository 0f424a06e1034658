package model

import (
	"errors"
	"testing"
)

func TestNewHeader(t *testing.T) {
	t.Parallel()

	t.Run("Create header from slice", func(t *testing.T) {
		t.Parallel()

		headerSlice := []string{"col1", "col2", "col1"}
		header := NewHeader(headerSlice)

		if header.Len() != 3 {
			t.Errorf("expected length 3, got %d", header.Len())
		}

		for i, expected := range headerSlice {
			if header[i] != expected {
				t.Errorf("expected %s at index %d, got %s", expected, i, header[i])
			}
		}
	})
}

func TestHeader_Clone(t *testing.T) {
	t.Parallel()

	src := []string{"a", "b"}
	header := NewHeader(src)
	clone := header.Clone()
	src[0] = "changed"

	if clone[0] != "a" {
		t.Errorf("clone shares storage with source, got %s", clone[0])
	}
	if header.Equal(clone) {
		t.Error("expected mutated header and clone to differ")
	}
}

func TestHeader_Equal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		header1  Header
		header2  Header
		expected bool
	}{
		{
			name:     "Equal headers",
			header1:  NewHeader([]string{"col1", "col2"}),
			header2:  NewHeader([]string{"col1", "col2"}),
			expected: true,
		},
		{
			name:     "Different length headers",
			header1:  NewHeader([]string{"col1", "col2"}),
			header2:  NewHeader([]string{"col1"}),
			expected: false,
		},
		{
			name:     "Different content headers",
			header1:  NewHeader([]string{"col1", "col2"}),
			header2:  NewHeader([]string{"col1", "col3"}),
			expected: false,
		},
		{
			name:     "Empty headers",
			header1:  NewHeader([]string{}),
			header2:  NewHeader([]string{}),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.header1.Equal(tt.header2); got != tt.expected {
				t.Errorf("Equal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRecord_Equal(t *testing.T) {
	t.Parallel()

	r1 := NewRecord([]string{"val1", "val2"})
	r2 := NewRecord([]string{"val1", "val2"})
	r3 := NewRecord([]string{"val1", "other"})

	if !r1.Equal(r2) {
		t.Error("expected records to be equal")
	}
	if r1.Equal(r3) {
		t.Error("expected records with different values to be not equal")
	}
	if r1.Equal(NewRecord([]string{"val1"})) {
		t.Error("expected records with different lengths to be not equal")
	}
}

func TestNewColumnIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		index   int
		width   int
		wantErr bool
	}{
		{name: "first column", index: 0, width: 3},
		{name: "last column", index: 2, width: 3},
		{name: "past the end", index: 3, width: 3, wantErr: true},
		{name: "negative", index: -1, width: 3, wantErr: true},
		{name: "empty header", index: 0, width: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			idx, err := NewColumnIndex(tt.index, tt.width)
			if tt.wantErr {
				if !errors.Is(err, ErrIndexOutOfRange) {
					t.Errorf("expected ErrIndexOutOfRange, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if idx.Int() != tt.index {
				t.Errorf("Int() = %d, want %d", idx.Int(), tt.index)
			}
		})
	}
}

func TestRecord_Cell(t *testing.T) {
	t.Parallel()

	record := NewRecord([]string{"a", "b", "c"})
	if got := record.Cell(ColumnIndex(1)); got != "b" {
		t.Errorf("Cell(1) = %s, want b", got)
	}
}
