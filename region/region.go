// Package region computes the visual regions of a focus range: a uniform
// width background, a border that frames the range and a dimmed remainder.
package region

import (
	"github.com/oligo/gvfocus"
)

// RegionSet is the set of regions computed for a document and a focus range.
// It is recomputed as a whole and never patched.
type RegionSet struct {
	// Focus is the range after clamping to the document.
	Focus gvfocus.FocusRange
	// UniformWidth is the right edge shared by all focused lines. It is at
	// least 1.
	UniformWidth int

	Background []gvfocus.Region
	SingleLine []gvfocus.Region
	Top        []gvfocus.Region
	Side       []gvfocus.Region
	Bottom     []gvfocus.Region
	Dim        []gvfocus.Region
}

// Empty reports if the set has no regions at all.
func (rs RegionSet) Empty() bool {
	return len(rs.Background) == 0 && len(rs.Dim) == 0
}

// Channel returns the regions assigned to kind.
func (rs RegionSet) Channel(kind gvfocus.ChannelKind) []gvfocus.Region {
	switch kind {
	case gvfocus.BackgroundChannel:
		return rs.Background
	case gvfocus.TopBorderChannel:
		return rs.Top
	case gvfocus.BottomBorderChannel:
		return rs.Bottom
	case gvfocus.SideBorderChannel:
		return rs.Side
	case gvfocus.SingleLineBorderChannel:
		return rs.SingleLine
	case gvfocus.DimChannel:
		return rs.Dim
	}
	return nil
}

// Compute returns the regions of r on doc. The range is normalized and
// clamped to the lines of doc. An empty set is returned when doc has no
// lines; the caller is expected to drop the focus in that case.
func Compute(doc gvfocus.Document, r gvfocus.FocusRange) RegionSet {
	lineCount := doc.LineCount()
	focus, ok := r.Clamp(lineCount)
	if !ok {
		return RegionSet{}
	}

	rs := RegionSet{Focus: focus}

	width := 0
	for line := focus.Start; line <= focus.End; line++ {
		width = max(width, doc.LineLength(line))
	}
	// keep a visible rectangle for blank lines.
	rs.UniformWidth = max(width, 1)

	span := func(kind gvfocus.ChannelKind, line int) gvfocus.Region {
		return gvfocus.Region{Kind: kind, Line: line, StartCol: 0, EndCol: rs.UniformWidth}
	}

	rs.Background = make([]gvfocus.Region, 0, focus.Lines())
	for line := focus.Start; line <= focus.End; line++ {
		rs.Background = append(rs.Background, span(gvfocus.BackgroundChannel, line))
	}

	if focus.IsSingleLine() {
		rs.SingleLine = []gvfocus.Region{span(gvfocus.SingleLineBorderChannel, focus.Start)}
	} else {
		rs.Top = []gvfocus.Region{span(gvfocus.TopBorderChannel, focus.Start)}
		for line := focus.Start + 1; line < focus.End; line++ {
			rs.Side = append(rs.Side, span(gvfocus.SideBorderChannel, line))
		}
		rs.Bottom = []gvfocus.Region{span(gvfocus.BottomBorderChannel, focus.End)}
	}

	dimmed := lineCount - focus.Lines()
	if dimmed > 0 {
		rs.Dim = make([]gvfocus.Region, 0, dimmed)
	}
	for line := 0; line < lineCount; line++ {
		if focus.Contains(line) {
			continue
		}
		rs.Dim = append(rs.Dim, gvfocus.Region{
			Kind:      gvfocus.DimChannel,
			Line:      line,
			EndCol:    doc.LineLength(line),
			WholeLine: true,
		})
	}

	return rs
}
