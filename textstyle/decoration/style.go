package decoration

import (
	"gioui.org/font"
	"gioui.org/unit"
	"github.com/oligo/gvfocus/textstyle"
)

// Edges is a bit set of the sides of a box.
type Edges uint8

const (
	EdgeTop Edges = 1 << iota
	EdgeRight
	EdgeBottom
	EdgeLeft

	AllEdges = EdgeTop | EdgeRight | EdgeBottom | EdgeLeft
)

func (e Edges) Has(mask Edges) bool {
	return e&mask == mask
}

// Corners is a bit set of the corners of a box that are rounded.
type Corners uint8

const (
	CornerNW Corners = 1 << iota
	CornerNE
	CornerSE
	CornerSW

	TopCorners    = CornerNW | CornerNE
	BottomCorners = CornerSW | CornerSE
	AllCorners    = TopCorners | BottomCorners
)

func (c Corners) Has(mask Corners) bool {
	return c&mask == mask
}

// BorderStyle strokes some edges of a line span.
type BorderStyle struct {
	Color textstyle.Color
	Width unit.Dp
	Edges Edges
	// Radius of the rounded corners listed in Corners.
	Radius  unit.Dp
	Corners Corners
}

// DimStyle fades text.
type DimStyle struct {
	// Opacity of the text in [0, 1].
	Opacity float32
	Weight  font.Weight
}

// Style describes how decorations of one channel render. Any combination of
// fields may be set.
type Style struct {
	Background textstyle.Color
	// OverviewRuler marks decorated lines in the scrollbar area.
	OverviewRuler textstyle.Color
	Border        *BorderStyle
	Dim           *DimStyle
}

// IsZero reports if the style renders nothing.
func (s Style) IsZero() bool {
	return !s.Background.IsSet() && !s.OverviewRuler.IsSet() && s.Border == nil && s.Dim == nil
}

// Decorations expands the style into concrete decorations for a span of one
// line. src tags the decorations so that they can be removed together.
func (s Style) Decorations(src any, span Span) []Decoration {
	var out []Decoration
	if s.Dim != nil {
		out = append(out, WithSource(DimDeco(span, *s.Dim), src))
	}
	if s.Background.IsSet() || s.OverviewRuler.IsSet() {
		bg := BackgroundDeco(span, s.Background)
		bg.OverviewRuler = s.OverviewRuler
		out = append(out, WithSource(bg, src))
	}
	if s.Border != nil {
		out = append(out, WithSource(BorderDeco(span, *s.Border), src))
	}

	return out
}
