package model

import (
	"testing"
)

func TestParseColumnSpec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec string
		want ColumnSpec
	}{
		{name: "single name", spec: "a", want: ColumnSpec{"a"}},
		{name: "reordered names", spec: "b,a", want: ColumnSpec{"b", "a"}},
		{name: "duplicates kept", spec: "a,a,b", want: ColumnSpec{"a", "a", "b"}},
		{name: "spaces are significant", spec: "a, b", want: ColumnSpec{"a", " b"}},
		{name: "empty spec", spec: "", want: ColumnSpec{""}},
		{name: "trailing comma", spec: "a,", want: ColumnSpec{"a", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ParseColumnSpec(tt.spec)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseColumnSpec(%q) = %v, want %v", tt.spec, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("name %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
			if got.String() != tt.spec {
				t.Errorf("String() = %q, want %q", got.String(), tt.spec)
			}
		})
	}
}

func TestState_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state State
		want  string
	}{
		{StateInit, "init"},
		{StateHeaderResolved, "header_resolved"},
		{StateStreaming, "streaming"},
		{StateDone, "done"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %s, want %s", tt.state, got, tt.want)
		}
	}
}
