package gvfocus

import (
	"errors"

	"github.com/oligo/gvfocus/textstyle/decoration"
)

// ErrChannelDisposed is returned when decorations are set on a channel that
// has already been disposed.
var ErrChannelDisposed = errors.New("decoration channel is disposed")

// Document is the read-only view of a text document needed to compute
// focus regions.
type Document interface {
	// LineCount returns the number of lines in the document.
	LineCount() int
	// LineLength returns the length of line in characters, excluding the
	// line break. Lines out of range have length 0.
	LineLength(line int) int
}

// Channel is a decoration style resource allocated by the host. It stays
// usable until Dispose is called, and disposal is terminal.
type Channel interface {
	Kind() ChannelKind
	Style() decoration.Style
	Dispose() error
	Disposed() bool
}

// ChannelFactory allocates channel resources.
type ChannelFactory interface {
	CreateChannel(kind ChannelKind, style decoration.Style) (Channel, error)
}

// View is a visible text surface showing a document. The engine only writes
// decoration requests into it.
type View interface {
	ID() string
	Document() Document
	// Selection returns the primary selection of the view.
	Selection() Selection
	// SetDecorations replaces all regions previously set for ch on this view.
	// An empty regions slice clears the channel.
	SetDecorations(ch Channel, regions []Region) error
}

// SelectionEvent is delivered when the selection of a view changes.
type SelectionEvent struct {
	View       View
	Selections []Selection
}

// Primary returns the first selection of the event, if any.
func (e SelectionEvent) Primary() (Selection, bool) {
	if len(e.Selections) == 0 {
		return Selection{}, false
	}
	return e.Selections[0], true
}

// EditEvent is delivered after the text of a document changed.
type EditEvent struct {
	Document Document
}

// Subscription is an event registration. Unsubscribe is idempotent.
type Subscription interface {
	Unsubscribe()
}

// Workspace tracks the views of the host and delivers their events
// synchronously on the host's event thread.
type Workspace interface {
	// ActiveView returns the focused view, or nil when there is none.
	ActiveView() View
	// VisibleViews returns all views currently shown.
	VisibleViews() []View

	OnSelectionChanged(fn func(SelectionEvent)) Subscription
	OnActiveViewChanged(fn func(View)) Subscription
	OnDocumentEdited(fn func(EditEvent)) Subscription
}

// Notifier shows short messages to the user.
type Notifier interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

// PromptRequest describes a free-text input request.
type PromptRequest struct {
	Prompt      string
	Placeholder string
	// Validate returns a non-empty message when the input is rejected. The
	// host keeps prompting with that message until it returns "".
	Validate func(input string) string
}

// Prompter asks the user for text input. It may return before the user
// answers: done is called later with the accepted value, or with ok set to
// false when the prompt was dismissed.
type Prompter interface {
	Prompt(req PromptRequest, done func(value string, ok bool))
}
