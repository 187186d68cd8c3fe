package view

import (
	"cmp"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/oligo/gvfocus"
	"github.com/oligo/gvfocus/buffer"
	"github.com/oligo/gvfocus/textstyle/decoration"
	"golang.org/x/exp/slices"
)

// TextView shows a buffer.Document with a selection and the decorations set
// by decoration channels. It is safe for concurrent use, and no lock is held
// while its events are delivered.
type TextView struct {
	id string
	ws *Workspace

	mu        sync.Mutex
	doc       *buffer.Document
	selection gvfocus.Selection
	// regions set per channel, kept to answer RegionsOf.
	regions     map[gvfocus.Channel][]gvfocus.Region
	decorations *decoration.DecorationTree

	// handle is the stable gvfocus.Document of this view.
	handle *document
}

func newTextView(ws *Workspace, text string) *TextView {
	v := &TextView{
		id:          uuid.NewString(),
		ws:          ws,
		doc:         buffer.NewDocument(text),
		regions:     make(map[gvfocus.Channel][]gvfocus.Region),
		decorations: decoration.NewDecorationTree(),
	}
	v.handle = &document{view: v}
	return v
}

func (v *TextView) ID() string {
	return v.id
}

// Document returns a live, read-only handle on the text of the view. The same
// handle is returned on every call.
func (v *TextView) Document() gvfocus.Document {
	return v.handle
}

func (v *TextView) Selection() gvfocus.Selection {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selection
}

// Select moves the selection and notifies selection listeners.
func (v *TextView) Select(anchor, active gvfocus.Position) {
	v.mu.Lock()
	sel := gvfocus.Selection{Anchor: v.clampLocked(anchor), Active: v.clampLocked(active)}
	v.selection = sel
	v.mu.Unlock()

	v.ws.selectionHandlers.publish(gvfocus.SelectionEvent{View: v, Selections: []gvfocus.Selection{sel}})
}

// Text returns the whole text of the view.
func (v *TextView) Text() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.doc.Text()
}

// Lines returns the text of each line, without line breaks.
func (v *TextView) Lines() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.doc.Lines()
}

// Offset converts a position to a rune offset in the text.
func (v *TextView) Offset(pos gvfocus.Position) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	pos = v.clampLocked(pos)
	return v.doc.LineOffset(pos.Line) + pos.Column
}

// SetText replaces the whole text.
func (v *TextView) SetText(text string) {
	v.edit(func(doc *buffer.Document) error {
		doc.SetText(text)
		return nil
	})
}

// Insert inserts text at the rune offset runeIndex.
func (v *TextView) Insert(runeIndex int, text string) error {
	return v.edit(func(doc *buffer.Document) error {
		return doc.Insert(runeIndex, text)
	})
}

// Delete removes length runes at runeIndex.
func (v *TextView) Delete(runeIndex, length int) error {
	return v.edit(func(doc *buffer.Document) error {
		return doc.Delete(runeIndex, length)
	})
}

// Replace replaces length runes at runeIndex with text.
func (v *TextView) Replace(runeIndex, length int, text string) error {
	return v.edit(func(doc *buffer.Document) error {
		return doc.Replace(runeIndex, length, text)
	})
}

// Edit replaces Length runes at Offset with Text.
type Edit struct {
	Offset int
	Length int
	Text   string
}

// ApplyEdits applies edits in order as one change: listeners get a single
// edit event once all of them are applied. Offsets of later edits refer to
// the text produced by the earlier ones. If an edit fails the text is left
// unchanged.
func (v *TextView) ApplyEdits(edits []Edit) error {
	if len(edits) == 0 {
		return nil
	}

	return v.edit(func(doc *buffer.Document) error {
		old := doc.Text()
		for _, e := range edits {
			if err := doc.Replace(e.Offset, e.Length, e.Text); err != nil {
				doc.SetText(old)
				return err
			}
		}
		return nil
	})
}

func (v *TextView) edit(fn func(doc *buffer.Document) error) error {
	v.mu.Lock()
	if err := fn(v.doc); err != nil {
		v.mu.Unlock()
		return err
	}
	v.selection.Anchor = v.clampLocked(v.selection.Anchor)
	v.selection.Active = v.clampLocked(v.selection.Active)
	v.mu.Unlock()

	v.ws.editHandlers.publish(gvfocus.EditEvent{Document: v.handle})
	return nil
}

func (v *TextView) clampLocked(pos gvfocus.Position) gvfocus.Position {
	pos.Line = max(0, min(pos.Line, v.doc.LineCount()-1))
	lineLen := len([]rune(v.doc.LineText(pos.Line)))
	pos.Column = max(0, min(pos.Column, lineLen))
	return pos
}

// SetDecorations replaces the regions of ch with regions. Regions must address
// existing lines.
func (v *TextView) SetDecorations(ch gvfocus.Channel, regions []gvfocus.Region) error {
	if ch.Disposed() {
		return fmt.Errorf("%s: %w", ch.Kind(), gvfocus.ErrChannelDisposed)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	lineCount := v.doc.LineCount()
	for _, r := range regions {
		if r.Line < 0 || r.Line >= lineCount {
			return fmt.Errorf("region %s: %w", r, buffer.ErrOutOfRange)
		}
	}

	if err := v.decorations.RemoveBySource(ch); err != nil {
		v.rebuildLocked()
		return err
	}
	if err := v.decorations.Insert(channelDecorations(ch, regions)...); err != nil {
		// back to the regions set before this call.
		v.rebuildLocked()
		return err
	}

	if len(regions) == 0 {
		delete(v.regions, ch)
	} else {
		v.regions[ch] = append([]gvfocus.Region(nil), regions...)
	}
	return nil
}

// rebuildLocked refills the decoration tree from the regions of every channel.
func (v *TextView) rebuildLocked() {
	v.decorations.Clear()
	for ch, regions := range v.regions {
		if err := v.decorations.Insert(channelDecorations(ch, regions)...); err != nil {
			logger.Error("restore decorations", "channel", ch.Kind(), "error", err)
		}
	}
}

func channelDecorations(ch gvfocus.Channel, regions []gvfocus.Region) []decoration.Decoration {
	style := ch.Style()
	decos := make([]decoration.Decoration, 0, len(regions)*2)
	for _, r := range regions {
		span := decoration.Span{Line: r.Line, StartCol: r.StartCol, EndCol: r.EndCol, WholeLine: r.WholeLine}
		decos = append(decos, style.Decorations(ch, span)...)
	}
	return decos
}

// RegionsOf returns the regions currently set by live channels of kind, in
// line order.
func (v *TextView) RegionsOf(kind gvfocus.ChannelKind) []gvfocus.Region {
	v.mu.Lock()
	defer v.mu.Unlock()

	var out []gvfocus.Region
	for ch, regions := range v.regions {
		if ch.Kind() == kind && !ch.Disposed() {
			out = append(out, regions...)
		}
	}
	slices.SortStableFunc(out, func(a, b gvfocus.Region) int {
		return cmp.Compare(a.Line, b.Line)
	})
	return out
}

// Decorations returns the decorations of live channels overlapping lines
// [start, end), ordered by priority.
func (v *TextView) Decorations(start, end int) []decoration.Decoration {
	v.mu.Lock()
	defer v.mu.Unlock()

	decos := v.decorations.QueryRange(start, end)
	live := decos[:0]
	for _, d := range decos {
		if ch, ok := d.Source().(gvfocus.Channel); ok && ch.Disposed() {
			continue
		}
		live = append(live, d)
	}
	return live
}

// document is the gvfocus.Document handle of a view. Every read goes through
// the view lock.
type document struct {
	view *TextView
}

func (d *document) LineCount() int {
	d.view.mu.Lock()
	defer d.view.mu.Unlock()
	return d.view.doc.LineCount()
}

func (d *document) LineLength(line int) int {
	d.view.mu.Lock()
	defer d.view.mu.Unlock()
	return d.view.doc.LineLength(line)
}
