package csvgears

import (
	"github.com/nao1215/csvgears/domain/model"
)

// Resolve returns the index of the first column named name, scanning left to right.
func Resolve(header model.Header, name string) (model.ColumnIndex, error) {
	for i, col := range header {
		if col == name {
			return model.NewColumnIndex(i, header.Len())
		}
	}
	return 0, &UnknownColumnError{Names: []string{name}}
}

// ResolveSpec resolves every name of spec independently, keeping order and
// duplicates. All missing names are reported together.
func ResolveSpec(header model.Header, spec model.ColumnSpec) ([]model.ColumnIndex, error) {
	indices := make([]model.ColumnIndex, 0, len(spec))
	var missing []string
	for _, name := range spec {
		idx, err := Resolve(header, name)
		if err != nil {
			missing = append(missing, name)
			continue
		}
		indices = append(indices, idx)
	}
	if len(missing) > 0 {
		return nil, &UnknownColumnError{Names: missing}
	}
	return indices, nil
}

// CheckNewColumn fails with a DuplicateColumnError if name is already in header.
func CheckNewColumn(header model.Header, name string) error {
	if _, err := Resolve(header, name); err == nil {
		return &DuplicateColumnError{Name: name}
	}
	return nil
}

// indexSet is a membership test over resolved indices of one header.
type indexSet []bool

func newIndexSet(width int, indices []model.ColumnIndex) indexSet {
	s := make(indexSet, width)
	for _, idx := range indices {
		s[idx] = true
	}
	return s
}

func (s indexSet) contains(i int) bool {
	return s[i]
}
