package focus

import (
	"errors"
	"fmt"

	"github.com/oligo/gvfocus"
)

var (
	ErrNoActiveView    = errors.New("no active editor found")
	ErrInactive        = errors.New("focus mode is not active")
	ErrAlreadyActive   = errors.New("focus mode is already active")
	ErrAlreadyInactive = errors.New("focus mode is already inactive")
	// ErrEmptyDocument is returned when a focus range is set on a document
	// without any line. The focus is dropped in that case.
	ErrEmptyDocument = errors.New("document has no lines")
)

// RangeInputError rejects a line range typed by the user. The message is
// meant to be shown as is.
type RangeInputError struct {
	Input string
	Msg   string
}

func (e *RangeInputError) Error() string {
	return e.Msg
}

// ChannelError reports a failure of one decoration channel.
type ChannelError struct {
	Kind gvfocus.ChannelKind
	Err  error
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("%s channel: %v", e.Kind, e.Err)
}

func (e *ChannelError) Unwrap() error {
	return e.Err
}
