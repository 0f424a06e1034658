package csvgears

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// PatternKind identifies the matching rule behind a Pattern.
type PatternKind int

const (
	// PatternRegex matches when a regular expression finds a match anywhere in the cell
	PatternRegex PatternKind = iota
	// PatternFixedString matches when the cell contains a literal substring
	PatternFixedString
	// PatternExactSet matches when the whole cell equals one entry of a line list
	PatternExactSet
)

// String returns the kind name
func (k PatternKind) String() string {
	switch k {
	case PatternRegex:
		return "regex"
	case PatternFixedString:
		return "fixed-string"
	case PatternExactSet:
		return "exact-set"
	default:
		return "unknown"
	}
}

// Pattern is the matching rule applied to one cell. The set of implementations
// is closed: a Pattern can only be built by BuildPattern or the New*Pattern
// constructors of this package.
type Pattern interface {
	// Matches reports whether cell matches the pattern
	Matches(cell string) bool
	// Kind returns the kind of matching rule
	Kind() PatternKind
	sealed()
}

type regexPattern struct {
	re *regexp.Regexp
}

func (p *regexPattern) Matches(cell string) bool { return p.re.MatchString(cell) }
func (p *regexPattern) Kind() PatternKind        { return PatternRegex }
func (p *regexPattern) sealed()                  {}

type fixedStringPattern struct {
	literal string
}

func (p *fixedStringPattern) Matches(cell string) bool { return strings.Contains(cell, p.literal) }
func (p *fixedStringPattern) Kind() PatternKind        { return PatternFixedString }
func (p *fixedStringPattern) sealed()                  {}

type exactSetPattern struct {
	entries map[string]struct{}
}

func (p *exactSetPattern) Matches(cell string) bool {
	_, ok := p.entries[cell]
	return ok
}
func (p *exactSetPattern) Kind() PatternKind { return PatternExactSet }
func (p *exactSetPattern) sealed()           {}

// CompileRegex compiles expr, reporting failures as ErrPatternCompile.
func CompileRegex(expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatternCompile, err)
	}
	return re, nil
}

// NewRegexPattern compiles expr into an unanchored regular expression pattern.
func NewRegexPattern(expr string) (Pattern, error) {
	re, err := CompileRegex(expr)
	if err != nil {
		return nil, err
	}
	return &regexPattern{re: re}, nil
}

// NewFixedStringPattern returns a substring containment pattern.
func NewFixedStringPattern(literal string) Pattern {
	return &fixedStringPattern{literal: literal}
}

// NewExactSetPattern returns a whole-cell equality pattern over entries.
func NewExactSetPattern(entries []string) Pattern {
	set := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		set[e] = struct{}{}
	}
	return &exactSetPattern{entries: set}
}

// PatternConfig selects one pattern kind. Nil means the option was not given.
type PatternConfig struct {
	Regex       *string
	FixedString *string
	LinesFrom   *string
}

// Validate checks that exactly one pattern kind is selected.
func (c PatternConfig) Validate() error {
	n := 0
	for _, opt := range []*string{c.Regex, c.FixedString, c.LinesFrom} {
		if opt != nil {
			n++
		}
	}
	if n != 1 {
		return configError("Must specify exactly one of -r, -m or -f.")
	}
	return nil
}

// BuildPattern validates c and builds its pattern. An exact-set pattern is
// loaded completely through loader before BuildPattern returns.
func BuildPattern(ctx context.Context, c PatternConfig, loader LineLoader) (Pattern, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	switch {
	case c.Regex != nil:
		return NewRegexPattern(*c.Regex)
	case c.FixedString != nil:
		return NewFixedStringPattern(*c.FixedString), nil
	default:
		if loader == nil {
			loader = LoadLines
		}
		entries, err := loader(ctx, *c.LinesFrom)
		if err != nil {
			if !errors.Is(err, ErrResourceLoad) {
				err = NewErrorContext("load lines", *c.LinesFrom).Error(err)
			}
			return nil, err
		}
		return NewExactSetPattern(entries), nil
	}
}

// Selector applies the row-selection policy: keep = invert XOR matches.
type Selector struct {
	Pattern Pattern
	Invert  bool
}

// Keep reports whether a record whose selected cell is cell should be written.
func (s Selector) Keep(cell string) bool {
	return s.Invert != s.Pattern.Matches(cell)
}
