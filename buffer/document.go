package buffer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-text/typesetting/segmenter"
)

// ErrOutOfRange is returned by edits addressing runes outside of the document.
var ErrOutOfRange = errors.New("position out of range")

// Document is an in-memory text document with an incremental line index.
// Offsets are measured in runes. Line lengths reported by LineLength are
// measured in grapheme clusters, which is what a user sees as characters.
//
// An empty document has a single empty line.
type Document struct {
	text  []rune
	index lineIndex
	// seg is reused between line length computations.
	seg segmenter.Segmenter
}

func NewDocument(text string) *Document {
	d := &Document{}
	d.SetText(text)
	return d
}

// SetText replaces the whole content of the document.
func (d *Document) SetText(text string) {
	d.text = []rune(text)
	d.index.reset(d.text)
}

// Text returns the content of the document.
func (d *Document) Text() string {
	return string(d.text)
}

// Len returns the length of the document in runes.
func (d *Document) Len() int {
	return len(d.text)
}

// Insert inserts text at the rune offset runeIndex.
func (d *Document) Insert(runeIndex int, text string) error {
	if runeIndex < 0 || runeIndex > len(d.text) {
		return fmt.Errorf("insert at %d: %w", runeIndex, ErrOutOfRange)
	}

	runes := []rune(text)
	d.text = append(d.text[:runeIndex], append(runes, d.text[runeIndex:]...)...)
	d.index.UpdateOnInsert(runeIndex, runes)
	return nil
}

// Delete removes length runes starting at runeIndex.
func (d *Document) Delete(runeIndex, length int) error {
	if runeIndex < 0 || length < 0 || runeIndex+length > len(d.text) {
		return fmt.Errorf("delete [%d, %d): %w", runeIndex, runeIndex+length, ErrOutOfRange)
	}

	d.text = append(d.text[:runeIndex], d.text[runeIndex+length:]...)
	d.index.UpdateOnDelete(runeIndex, length)
	return nil
}

// Replace replaces length runes at runeIndex with text.
func (d *Document) Replace(runeIndex, length int, text string) error {
	if err := d.Delete(runeIndex, length); err != nil {
		return err
	}
	return d.Insert(runeIndex, text)
}

// LineCount returns the number of lines. It is never less than one.
func (d *Document) LineCount() int {
	return len(d.index.lines)
}

// lineRunes returns the runes of line without its line break.
func (d *Document) lineRunes(line int) []rune {
	if line < 0 || line >= len(d.index.lines) {
		return nil
	}

	start := d.index.lineStart(line)
	info := d.index.lines[line]
	n := info.length
	if info.hasLineBreak {
		n--
	}
	return d.text[start : start+n]
}

// LineText returns the text of line without its line break.
func (d *Document) LineText(line int) string {
	return string(d.lineRunes(line))
}

// Lines returns the text of every line without line breaks.
func (d *Document) Lines() []string {
	return strings.Split(string(d.text), string(lineBreak))
}

// LineLength returns the number of grapheme clusters of line, excluding the
// line break.
func (d *Document) LineLength(line int) int {
	runes := d.lineRunes(line)
	if len(runes) == 0 {
		return 0
	}

	d.seg.Init(runes)
	iter := d.seg.GraphemeIterator()
	n := 0
	for iter.Next() {
		n++
	}
	return n
}

// LineOffset returns the rune offset of the first rune of line.
func (d *Document) LineOffset(line int) int {
	line = max(0, min(line, len(d.index.lines)-1))
	return d.index.lineStart(line)
}

// Position converts a rune offset to a line and a rune column.
func (d *Document) Position(runeIndex int) (line, col int) {
	runeIndex = max(0, min(runeIndex, len(d.text)))
	return d.index.locate(runeIndex)
}
