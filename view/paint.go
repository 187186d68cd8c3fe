package view

import (
	"gioui.org/layout"
	"github.com/oligo/gvfocus/internal/painter"
)

type (
	// Painter paints the decorations of a view with Gio.
	Painter = painter.DecorationPainter
	// LineMetrics describes the monospaced grid the text is laid out on.
	LineMetrics = painter.LineMetrics
)

// PaintDecorations paints all decorations of the view with p. The text itself
// is painted by the caller.
func (v *TextView) PaintDecorations(gtx layout.Context, p *Painter) {
	lineCount := v.handle.LineCount()
	p.LineCount = lineCount
	p.Paint(gtx, v.Decorations(0, lineCount))
}
