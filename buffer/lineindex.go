package buffer

import "golang.org/x/exp/slices"

const (
	lineBreak = '\n'
)

type lineInfo struct {
	// length in runes, including the trailing line break if there is one.
	length       int
	hasLineBreak bool
}

// lineIndex manages a line index for the text sequence using an incremental manner.
// It always holds at least one line. Every line but the last one ends with a line
// break.
type lineIndex struct {
	// Index of the slice saves the continuous line number starting from zero.
	// The value contains the rune length of the line.
	lines []lineInfo
}

func newLineIndex(text []rune) lineIndex {
	li := lineIndex{}
	li.reset(text)
	return li
}

func (li *lineIndex) reset(text []rune) {
	li.lines = li.lines[:0]
	li.lines = append(li.lines, parseLines(text)...)
}

// locate returns the line holding runeIndex and the rune offset of the
// position inside that line. runeIndex equal to the text length maps to the
// end of the last line.
func (li *lineIndex) locate(runeIndex int) (line int, col int) {
	off := 0
	for i, l := range li.lines {
		if runeIndex < off+l.length {
			return i, runeIndex - off
		}
		off += l.length
	}

	last := len(li.lines) - 1
	return last, li.lines[last].length
}

// lineStart returns the rune offset of the first rune of line.
func (li *lineIndex) lineStart(line int) int {
	off := 0
	for _, l := range li.lines[:line] {
		off += l.length
	}
	return off
}

func (li *lineIndex) UpdateOnInsert(runeIndex int, text []rune) {
	if len(text) == 0 {
		return
	}

	i, col := li.locate(runeIndex)
	orig := li.lines[i]
	newLines := parseLines(text)

	if len(newLines) == 1 {
		li.lines[i].length += newLines[0].length
		return
	}

	// Split the line at the insertion point: the left part takes the first
	// inserted line, the right part is appended to the last inserted line.
	newLines[0].length += col
	last := len(newLines) - 1
	newLines[last].length += orig.length - col
	newLines[last].hasLineBreak = orig.hasLineBreak

	li.lines = slices.Replace(li.lines, i, i+1, newLines...)
}

func (li *lineIndex) UpdateOnDelete(runeIndex int, length int) {
	if length <= 0 {
		return
	}

	startLine, startCol := li.locate(runeIndex)
	endLine, endCol := li.locate(runeIndex + length)

	merged := lineInfo{
		length:       startCol + li.lines[endLine].length - endCol,
		hasLineBreak: li.lines[endLine].hasLineBreak,
	}

	li.lines = slices.Replace(li.lines, startLine, endLine+1, merged)
}

func (li *lineIndex) Lines() []lineInfo {
	return li.lines
}

// parseLines splits text into lines. The result always has at least one
// line, the last one without a line break.
func parseLines(text []rune) []lineInfo {
	var lines []lineInfo

	n := 0
	for _, c := range text {
		n++
		if c == lineBreak {
			lines = append(lines, lineInfo{length: n, hasLineBreak: true})
			n = 0
		}
	}

	// The remaining runes that don't end with a line break.
	lines = append(lines, lineInfo{length: n})
	return lines
}
