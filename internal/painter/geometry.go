package painter

import (
	"image"

	"gioui.org/f32"
	"github.com/oligo/gvfocus/textstyle/decoration"
	"golang.org/x/image/math/fixed"
)

// LineMetrics describes the grid of a monospaced text layout.
type LineMetrics struct {
	// LineHeight is the distance between two baselines.
	LineHeight fixed.Int26_6
	// Advance is the width of one column.
	Advance fixed.Int26_6
}

// LineTop returns the y coordinate of the top of line.
func (m LineMetrics) LineTop(line int) int {
	return (m.LineHeight * fixed.Int26_6(line)).Round()
}

// ColumnX returns the x coordinate of the left edge of col.
func (m LineMetrics) ColumnX(col int) int {
	return (m.Advance * fixed.Int26_6(col)).Round()
}

// SpanRect returns the rectangle covered by span in document coordinates.
// Whole line spans extend at least to lineWidth.
func (m LineMetrics) SpanRect(span decoration.Span, lineWidth int) image.Rectangle {
	top, bottom := m.LineTop(span.Line), m.LineTop(span.Line+1)
	if span.WholeLine {
		return image.Rect(0, top, max(lineWidth, m.ColumnX(span.EndCol)), bottom)
	}

	return image.Rect(m.ColumnX(span.StartCol), top, m.ColumnX(span.EndCol), bottom)
}

// segment is one step of a border path. A move starts a new sub path at to,
// otherwise a line or a quadratic curve through ctrl is drawn to to.
type segment struct {
	move bool
	quad bool
	ctrl f32.Point
	to   f32.Point
}

// borderPath traces the edges of r that are present, clockwise from the
// bottom left corner. A corner is rounded only when both of its edges are
// drawn. closed is true when the path runs all around r.
func borderPath(r image.Rectangle, edges decoration.Edges, corners decoration.Corners, radius float32) (segs []segment, closed bool) {
	x0, y0 := float32(r.Min.X), float32(r.Min.Y)
	x1, y1 := float32(r.Max.X), float32(r.Max.Y)

	// corner j is where side j starts.
	pts := [4]f32.Point{{X: x0, Y: y1}, {X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}}
	dirs := [4]f32.Point{{Y: -1}, {X: 1}, {Y: 1}, {X: -1}}
	sides := [4]decoration.Edges{decoration.EdgeLeft, decoration.EdgeTop, decoration.EdgeRight, decoration.EdgeBottom}
	cornerAt := [4]decoration.Corners{decoration.CornerSW, decoration.CornerNW, decoration.CornerNE, decoration.CornerSE}

	radius = max(0, min(radius, (x1-x0)/2, (y1-y0)/2))
	var radii [4]float32
	for j := range pts {
		prev := sides[(j+3)%4]
		if radius > 0 && corners.Has(cornerAt[j]) && edges.Has(prev) && edges.Has(sides[j]) {
			radii[j] = radius
		}
	}

	penDown := false
	for i, side := range sides {
		if !edges.Has(side) {
			penDown = false
			continue
		}

		next := (i + 1) % 4
		start := pts[i].Add(dirs[i].Mul(radii[i]))
		end := pts[next].Sub(dirs[i].Mul(radii[next]))
		if !penDown {
			segs = append(segs, segment{move: true, to: start})
			penDown = true
		}
		segs = append(segs, segment{to: end})

		if radii[next] > 0 {
			segs = append(segs, segment{
				quad: true,
				ctrl: pts[next],
				to:   pts[next].Add(dirs[next].Mul(radii[next])),
			})
		}
	}

	return segs, edges.Has(decoration.AllEdges)
}

// rulerRect returns the marker of line in an overview ruler lane of the
// given size, scaled to the whole document.
func rulerRect(lane image.Rectangle, line, lineCount int) image.Rectangle {
	if lineCount <= 0 || lane.Empty() {
		return image.Rectangle{}
	}

	h := lane.Dy()
	top := lane.Min.Y + line*h/lineCount
	bottom := lane.Min.Y + (line+1)*h/lineCount
	// keep markers visible in long documents.
	bottom = max(bottom, top+2)
	return image.Rect(lane.Min.X, top, lane.Max.X, min(bottom, lane.Max.Y))
}
