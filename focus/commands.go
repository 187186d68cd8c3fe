package focus

import (
	"github.com/oligo/gvfocus"
)

// Command IDs.
const (
	CmdToggle         = "focusHighlight.toggle"
	CmdActivate       = "focusHighlight.activate"
	CmdDeactivate     = "focusHighlight.deactivate"
	CmdClear          = "focusHighlight.clear"
	CmdStartSelection = "focusHighlight.startSelection"
)

// Command is a user invocable action of focus mode.
type Command struct {
	ID    string
	Title string
	Run   func() error
}

// Commands returns the commands a host should register. prompter is used by
// the start selection command to ask for a line range.
func (c *Controller) Commands(prompter gvfocus.Prompter) []Command {
	return []Command{
		{ID: CmdToggle, Title: "Focus Highlight: Toggle Focus Mode", Run: c.Toggle},
		{ID: CmdActivate, Title: "Focus Highlight: Activate Focus Mode", Run: c.Activate},
		{ID: CmdDeactivate, Title: "Focus Highlight: Deactivate Focus Mode", Run: c.Deactivate},
		{ID: CmdClear, Title: "Focus Highlight: Clear Focus Area", Run: func() error { return c.ClearFocus(true) }},
		{ID: CmdStartSelection, Title: "Focus Highlight: Start Selection", Run: func() error { return c.StartSelection(prompter) }},
	}
}

// StartSelection asks the user for a line range of the active view and
// focuses it. The prompt may complete after StartSelection returned.
func (c *Controller) StartSelection(prompter gvfocus.Prompter) error {
	c.mu.Lock()
	view := c.ws.ActiveView()
	mode := c.mode
	c.mu.Unlock()

	if view == nil || mode != Active {
		c.notifier.Warn("Focus mode is not active or no editor found")
		if view == nil {
			return ErrNoActiveView
		}
		return ErrInactive
	}

	doc := view.Document()
	prompter.Prompt(gvfocus.PromptRequest{
		Prompt:      `Enter line range (e.g., "5-15" or "10-25")`,
		Placeholder: "startLine-endLine",
		Validate: func(input string) string {
			if _, err := ParseLineRange(input, doc.LineCount()); err != nil {
				return err.Error()
			}
			return ""
		},
	}, func(value string, ok bool) {
		if !ok {
			return
		}

		r, err := ParseLineRange(value, doc.LineCount())
		if err != nil {
			// the document changed while prompting.
			logger.Warn("rejected line range", "input", value, "error", err)
			return
		}

		start := gvfocus.Position{Line: r.Start}
		end := gvfocus.Position{Line: r.End, Column: doc.LineLength(r.End)}
		if _, err := c.SetFocusRange(view, start, end); err != nil {
			logger.Warn("focusing line range", "input", value, "error", err)
		}
	})

	return nil
}
