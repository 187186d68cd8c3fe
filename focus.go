// Package gvfocus defines the vocabulary shared by the focus engine and the
// hosts embedding it: positions and focus ranges, the decoration channels and
// their regions, and the interfaces a host implements to show them.
package gvfocus

import (
	"fmt"
)

// Position is a location in a document in line/column. Both are 0-based and
// column is measured in characters of the line.
type Position struct {
	Line   int
	Column int
}

// Before reports whether p is strictly before other.
func (p Position) Before(other Position) bool {
	return p.Line < other.Line || (p.Line == other.Line && p.Column < other.Column)
}

// Selection is a text selection in a view. Anchor is where the selection
// started and Active is where the caret is, so Active may come before Anchor.
type Selection struct {
	Anchor Position
	Active Position
}

// IsEmpty reports if the selection has zero width.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Active
}

// Start returns the earlier of the two ends.
func (s Selection) Start() Position {
	if s.Active.Before(s.Anchor) {
		return s.Active
	}
	return s.Anchor
}

// End returns the later of the two ends.
func (s Selection) End() Position {
	if s.Active.Before(s.Anchor) {
		return s.Anchor
	}
	return s.Active
}

// FocusRange is the inclusive, 0-based span of lines to emphasize.
type FocusRange struct {
	Start int
	End   int
}

// NewFocusRange builds a range from two line indices in any order.
func NewFocusRange(a, b int) FocusRange {
	if a > b {
		a, b = b, a
	}
	return FocusRange{Start: a, End: b}
}

// Lines returns the number of lines covered by the range.
func (r FocusRange) Lines() int {
	return r.End - r.Start + 1
}

// Contains reports whether line is inside the range.
func (r FocusRange) Contains(line int) bool {
	return line >= r.Start && line <= r.End
}

// IsSingleLine reports if the range spans exactly one line.
func (r FocusRange) IsSingleLine() bool {
	return r.Start == r.End
}

// ValidFor reports whether both ends of the range exist in a document with
// lineCount lines.
func (r FocusRange) ValidFor(lineCount int) bool {
	return r.Start >= 0 && r.Start <= r.End && r.End < lineCount
}

// Clamp limits both ends of the range to [0, lineCount-1]. It returns false
// when the document has no lines, in which case no range can be valid.
func (r FocusRange) Clamp(lineCount int) (FocusRange, bool) {
	if lineCount <= 0 {
		return FocusRange{}, false
	}

	r = NewFocusRange(r.Start, r.End)
	r.Start = max(0, min(r.Start, lineCount-1))
	r.End = max(0, min(r.End, lineCount-1))
	return r, true
}

// String renders the range with 1-based line numbers, as shown to users.
func (r FocusRange) String() string {
	return fmt.Sprintf("lines %d-%d", r.Start+1, r.End+1)
}

// ChannelKind identifies one of the independently styled visual channels.
type ChannelKind uint8

const (
	// BackgroundChannel fills every focused line up to the uniform width.
	BackgroundChannel ChannelKind = iota
	// TopBorderChannel frames the first line of a multi-line range.
	TopBorderChannel
	// BottomBorderChannel frames the last line of a multi-line range.
	BottomBorderChannel
	// SideBorderChannel frames the interior lines of a multi-line range.
	SideBorderChannel
	// SingleLineBorderChannel frames a range of exactly one line.
	SingleLineBorderChannel
	// DimChannel fades every line outside the range.
	DimChannel
)

var channelNames = [...]string{
	BackgroundChannel:       "background",
	TopBorderChannel:        "top-border",
	BottomBorderChannel:     "bottom-border",
	SideBorderChannel:       "side-border",
	SingleLineBorderChannel: "single-line-border",
	DimChannel:              "dim",
}

func (k ChannelKind) String() string {
	if int(k) < len(channelNames) {
		return channelNames[k]
	}
	return fmt.Sprintf("channel(%d)", uint8(k))
}

// ChannelKinds lists all channels in the order they are applied.
func ChannelKinds() []ChannelKind {
	return []ChannelKind{
		BackgroundChannel,
		TopBorderChannel,
		BottomBorderChannel,
		SideBorderChannel,
		SingleLineBorderChannel,
		DimChannel,
	}
}

// Region is a rectangular, line-aligned span assigned to one channel.
type Region struct {
	Kind     ChannelKind
	Line     int
	StartCol int
	EndCol   int
	// WholeLine marks a region covering the full line including its line
	// break, so that adjacent regions render as one block.
	WholeLine bool
}

func (r Region) String() string {
	return fmt.Sprintf("%s(%d:%d-%d)", r.Kind, r.Line, r.StartCol, r.EndCol)
}

// LineLengths is a Document made of plain line lengths.
type LineLengths []int

func (l LineLengths) LineCount() int {
	return len(l)
}

func (l LineLengths) LineLength(line int) int {
	if line < 0 || line >= len(l) {
		return 0
	}
	return l[line]
}
