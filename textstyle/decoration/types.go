package decoration

import (
	"fmt"

	"github.com/oligo/gvfocus/textstyle"
)

const (
	dimPriority = iota
	backgroundPriority
	borderPriority
)

// Span is a column range on one line. Columns are measured in characters.
type Span struct {
	Line     int
	StartCol int
	EndCol   int
	// WholeLine extends the span to the full line including its line break.
	WholeLine bool
}

func (s Span) String() string {
	if s.WholeLine {
		return fmt.Sprintf("%d:*", s.Line)
	}
	return fmt.Sprintf("%d:%d-%d", s.Line, s.StartCol, s.EndCol)
}

// Decoration defines APIs each concrete decorations should implement.
// A decoration represents a ranged decoration for a range of lines.
type Decoration interface {
	// Range returns the half-open line range [start, end) of the decoration.
	Range() (int, int)
	Source() any
	GetPriority() int
	// Columns returns the column span on the decorated line.
	Columns() Span
}

// base decoration implements APIs of Decoration.
type baseDecoration struct {
	Src        any
	Priority   int
	Start, End int
	Span       Span
}

func (b baseDecoration) Source() any {
	return b.Src
}

func (b baseDecoration) GetPriority() int {
	return b.Priority
}

func (b baseDecoration) Range() (int, int) {
	return b.Start, b.End
}

func (b baseDecoration) Columns() Span {
	return b.Span
}

type Background struct {
	baseDecoration
	// Color for background.
	Color         textstyle.Color
	OverviewRuler textstyle.Color
}

func BackgroundDeco(span Span, color textstyle.Color) Background {
	return Background{
		baseDecoration: baseDecoration{Start: span.Line, End: span.Line + 1, Span: span, Priority: backgroundPriority},
		Color:          color,
	}
}

type Border struct {
	baseDecoration
	BorderStyle
}

func BorderDeco(span Span, style BorderStyle) Border {
	return Border{
		baseDecoration: baseDecoration{Start: span.Line, End: span.Line + 1, Span: span, Priority: borderPriority},
		BorderStyle:    style,
	}
}

type Dim struct {
	baseDecoration
	DimStyle
}

func DimDeco(span Span, style DimStyle) Dim {
	return Dim{
		baseDecoration: baseDecoration{Start: span.Line, End: span.Line + 1, Span: span, Priority: dimPriority},
		DimStyle:       style,
	}
}

// WithSource returns a copy of d tagged with src.
func WithSource(d Decoration, src any) Decoration {
	switch v := d.(type) {
	case Background:
		v.Src = src
		return v
	case Border:
		v.Src = src
		return v
	case Dim:
		v.Src = src
		return v
	}
	return d
}
