// Package painter paints line decorations with Gio.
package painter

import (
	"image"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/oligo/gvfocus/textstyle"
	"github.com/oligo/gvfocus/textstyle/decoration"
)

// DecorationPainter paints backgrounds, borders and dimming of decorated lines
// over, or under, already laid out text.
type DecorationPainter struct {
	Metrics LineMetrics
	// Viewport is the visible rectangle in document coordinates.
	Viewport image.Rectangle
	// Veil is painted over dimmed lines. It is usually the background of
	// the editor.
	Veil textstyle.Color
	// RulerWidth is the width in pixels of the overview ruler lane along
	// the right edge. Zero disables the ruler.
	RulerWidth int
	// LineCount is the number of lines of the document, used to place
	// ruler markers.
	LineCount int
}

// Paint paints decos, which must be ordered by priority. Decorations outside
// of the viewport are skipped but still get their ruler markers.
func (p *DecorationPainter) Paint(gtx layout.Context, decos []decoration.Decoration) {
	m := op.Record(gtx.Ops)
	viewport := p.Viewport

	offset := op.Offset(viewport.Min.Mul(-1)).Push(gtx.Ops)
	for _, deco := range decos {
		rect := p.Metrics.SpanRect(deco.Columns(), viewport.Max.X)
		if !rect.Overlaps(viewport) {
			continue
		}

		switch d := deco.(type) {
		case decoration.Dim:
			p.paintDim(gtx, rect, d.DimStyle)
		case decoration.Background:
			fill(gtx.Ops, rect, d.Color)
		case decoration.Border:
			p.paintBorder(gtx, rect, d.BorderStyle)
		}
	}
	offset.Pop()

	if p.RulerWidth > 0 {
		size := viewport.Size()
		lane := image.Rect(size.X-p.RulerWidth, 0, size.X, size.Y)
		for _, deco := range decos {
			bg, ok := deco.(decoration.Background)
			if !ok || !bg.OverviewRuler.IsSet() {
				continue
			}
			fill(gtx.Ops, rulerRect(lane, bg.Columns().Line, p.LineCount), bg.OverviewRuler)
		}
	}

	call := m.Stop()
	// clip to make it fit the viewport.
	defer clip.Rect(image.Rectangle{Max: viewport.Size()}).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
}

func (p *DecorationPainter) paintDim(gtx layout.Context, rect image.Rectangle, style decoration.DimStyle) {
	if !p.Veil.IsSet() {
		return
	}
	fill(gtx.Ops, rect, p.Veil.WithAlpha(1-style.Opacity))
}

func (p *DecorationPainter) paintBorder(gtx layout.Context, rect image.Rectangle, style decoration.BorderStyle) {
	width := gtx.Dp(style.Width)
	if width <= 0 || !style.Color.IsSet() {
		return
	}

	// keep the stroke inside of the line box.
	inset := width / 2
	rect = image.Rect(rect.Min.X+inset, rect.Min.Y+inset, rect.Max.X-inset, rect.Max.Y-inset)
	if rect.Empty() {
		return
	}

	segs, closed := borderPath(rect, style.Edges, style.Corners, float32(gtx.Dp(style.Radius)))
	if len(segs) == 0 {
		return
	}

	path := clip.Path{}
	path.Begin(gtx.Ops)
	for _, seg := range segs {
		switch {
		case seg.move:
			path.MoveTo(seg.to)
		case seg.quad:
			path.QuadTo(seg.ctrl, seg.to)
		default:
			path.LineTo(seg.to)
		}
	}
	if closed {
		path.Close()
	}

	drawStroke(gtx, path.End(), float32(width), style.Color)
}

func drawStroke(gtx layout.Context, path clip.PathSpec, width float32, color textstyle.Color) {
	shape := clip.Stroke{
		Path:  path,
		Width: width,
	}.Op()

	defer shape.Push(gtx.Ops).Pop()
	color.Op().Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
}

func fill(ops *op.Ops, rect image.Rectangle, color textstyle.Color) {
	if !color.IsSet() || rect.Empty() {
		return
	}
	defer clip.Rect(rect).Push(ops).Pop()
	color.Op().Add(ops)
	paint.PaintOp{}.Add(ops)
}
