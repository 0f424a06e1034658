package csvgears

import (
	"regexp"

	"github.com/nao1215/csvgears/domain/model"
)

// Transformer maps each input record to zero or one output record. A
// Transformer is bound to one input header and its output header is fixed
// before any record is processed.
type Transformer interface {
	// Header returns the output header
	Header() model.Header
	// Apply returns the output record and whether it should be written. The
	// returned record is only valid until the next call to Apply.
	Apply(record model.Record) (model.Record, bool)
}

// Projection keeps or drops columns.
type Projection struct {
	columns []int
	header  model.Header
	buf     model.Record
}

// NewProjection resolves plan against header. Include mode emits the column spec's
// columns in spec order; exclude mode emits the remaining columns in header order.
func NewProjection(header model.Header, plan CutPlan) (*Projection, error) {
	indices, err := ResolveSpec(header, plan.Spec)
	if err != nil {
		return nil, err
	}

	var columns []int
	if plan.Mode == ProjectInclude {
		columns = make([]int, len(indices))
		for i, idx := range indices {
			columns[i] = idx.Int()
		}
	} else {
		excluded := newIndexSet(header.Len(), indices)
		columns = make([]int, 0, header.Len())
		for i := range header {
			if !excluded.contains(i) {
				columns = append(columns, i)
			}
		}
	}

	p := &Projection{
		columns: columns,
		buf:     make(model.Record, len(columns)),
	}
	p.header = model.NewHeader(p.project(model.Record(header))).Clone()
	return p, nil
}

// Header returns the projected header.
func (p *Projection) Header() model.Header {
	return p.header
}

// Apply projects record. Every record is kept.
func (p *Projection) Apply(record model.Record) (model.Record, bool) {
	return p.project(record), true
}

func (p *Projection) project(record model.Record) model.Record {
	for i, col := range p.columns {
		p.buf[i] = record[col]
	}
	return p.buf
}

// RowFilter keeps records whose selected cell satisfies a Selector.
type RowFilter struct {
	column   model.ColumnIndex
	selector Selector
	header   model.Header
}

// NewRowFilter resolves column against header.
func NewRowFilter(header model.Header, column string, selector Selector) (*RowFilter, error) {
	idx, err := Resolve(header, column)
	if err != nil {
		return nil, err
	}
	return &RowFilter{
		column:   idx,
		selector: selector,
		header:   header,
	}, nil
}

// Header returns the input header unchanged.
func (f *RowFilter) Header() model.Header {
	return f.header
}

// Apply returns record unchanged when the selector keeps it.
func (f *RowFilter) Apply(record model.Record) (model.Record, bool) {
	return record, f.selector.Keep(record.Cell(f.column))
}

// Substitution replaces every non-overlapping match of a regular expression in
// one column, either in place or into a new trailing column.
type Substitution struct {
	column      model.ColumnIndex
	re          *regexp.Regexp
	replacement string
	appendMode  bool
	header      model.Header
	buf         model.Record
}

// NewSubstitution resolves column against header. When newColumn is non-nil
// the result is appended under that name, which must not already exist.
func NewSubstitution(header model.Header, column string, re *regexp.Regexp, replacement string, newColumn *string) (*Substitution, error) {
	idx, err := Resolve(header, column)
	if err != nil {
		return nil, err
	}

	s := &Substitution{
		column:      idx,
		re:          re,
		replacement: replacement,
		header:      header,
	}
	if newColumn != nil {
		if err := CheckNewColumn(header, *newColumn); err != nil {
			return nil, err
		}
		out := make(model.Header, 0, header.Len()+1)
		out = append(out, header...)
		s.header = append(out, *newColumn)
		s.appendMode = true
		s.buf = make(model.Record, header.Len()+1)
	}
	return s, nil
}

// Header returns the output header.
func (s *Substitution) Header() model.Header {
	return s.header
}

// Apply rewrites the selected cell. Every record is kept.
// The replacement may refer to capture groups as $1 or ${name}.
func (s *Substitution) Apply(record model.Record) (model.Record, bool) {
	replaced := s.re.ReplaceAllString(record.Cell(s.column), s.replacement)
	if !s.appendMode {
		record[s.column] = replaced
		return record, true
	}
	n := copy(s.buf, record)
	s.buf[n] = replaced
	return s.buf, true
}
