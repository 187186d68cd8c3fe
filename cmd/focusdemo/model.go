package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/oligo/gvfocus"
	"github.com/oligo/gvfocus/focus"
	"github.com/oligo/gvfocus/view"
)

// dispatchMsg carries a debounced focus update into the event loop.
type dispatchMsg func()

type fileView struct {
	path string
	view *view.TextView
}

// noticeBoard keeps the latest notice of the controller. Notices are raised
// inside Update, so they are stored instead of sent to the program.
type noticeBoard struct {
	mu    sync.Mutex
	level string
	msg   string
}

func (n *noticeBoard) set(level, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.level, n.msg = level, msg
}

func (n *noticeBoard) get() (string, string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.level, n.msg
}

func (n *noticeBoard) Info(msg string)  { n.set("info", msg) }
func (n *noticeBoard) Warn(msg string)  { n.set("warn", msg) }
func (n *noticeBoard) Error(msg string) { n.set("error", msg) }

type prompt struct {
	req   gvfocus.PromptRequest
	done  func(string, bool)
	input textinput.Model
	err   string
}

type model struct {
	ws       *view.Workspace
	files    []*fileView
	ctrl     *focus.Controller
	commands []focus.Command
	notices  *noticeBoard
	prompt   *prompt

	width, height int
	// top is the first shown line.
	top    int
	cursor gvfocus.Position
	anchor gvfocus.Position
}

func newModel(ws *view.Workspace, files []*fileView) *model {
	return &model{
		ws:      ws,
		files:   files,
		notices: &noticeBoard{},
	}
}

func (m *model) Init() tea.Cmd { return nil }

// Prompt implements gvfocus.Prompter with an input line under the text.
func (m *model) Prompt(req gvfocus.PromptRequest, done func(string, bool)) {
	ti := textinput.New()
	ti.Prompt = req.Prompt + " "
	ti.Placeholder = req.Placeholder
	ti.CharLimit = 32
	ti.Focus()

	m.prompt = &prompt{req: req, done: done, input: ti}
}

func (m *model) active() *fileView {
	active := m.ws.Active()
	for _, f := range m.files {
		if f.view == active {
			return f
		}
	}
	return nil
}

func (m *model) run(id string) {
	for _, cmd := range m.commands {
		if cmd.ID == id {
			// errors are reported through notices.
			_ = cmd.Run()
			return
		}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dispatchMsg:
		msg()
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case fileChangedMsg:
		for _, f := range m.files {
			if f.path != msg.path {
				continue
			}
			if n, err := reload(f.view, f.path); err != nil {
				m.notices.Error(fmt.Sprintf("Reloading %s failed: %v", f.path, err))
			} else if n > 0 {
				m.notices.Info(fmt.Sprintf("Reloaded %s (%d edits)", f.path, n))
			}
		}
		return m, nil

	case tea.KeyMsg:
		if m.prompt != nil {
			return m, m.updatePrompt(msg)
		}
		return m, m.updateKeys(msg)
	}

	return m, nil
}

func (m *model) updatePrompt(msg tea.KeyMsg) tea.Cmd {
	p := m.prompt
	switch msg.String() {
	case "esc", "ctrl+c":
		m.prompt = nil
		p.done("", false)
		return nil
	case "enter":
		value := p.input.Value()
		if errMsg := p.req.Validate(value); errMsg != "" {
			p.err = errMsg
			return nil
		}
		m.prompt = nil
		p.done(value, true)
		return nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.err = ""
	return cmd
}

func (m *model) updateKeys(msg tea.KeyMsg) tea.Cmd {
	f := m.active()
	key := msg.String()

	switch key {
	case "q", "ctrl+c":
		return tea.Quit
	case "f":
		m.run(focus.CmdToggle)
	case "a":
		m.run(focus.CmdActivate)
	case "d":
		m.run(focus.CmdDeactivate)
	case "x":
		m.run(focus.CmdClear)
	case "s", ":":
		m.run(focus.CmdStartSelection)
	case "y":
		m.copyFocus()
	case "tab":
		m.nextView()
	}

	if f == nil {
		return nil
	}

	extend := strings.HasPrefix(key, "shift+")
	switch strings.TrimPrefix(key, "shift+") {
	case "up", "k":
		m.move(f, -1, 0, extend)
	case "down", "j":
		m.move(f, 1, 0, extend)
	case "left", "h":
		m.move(f, 0, -1, extend)
	case "right", "l":
		m.move(f, 0, 1, extend)
	case "pgup":
		m.move(f, -max(1, m.textHeight()), 0, extend)
	case "pgdown":
		m.move(f, max(1, m.textHeight()), 0, extend)
	}
	return nil
}

// move moves the cursor. Extending keeps the anchor, so that the selection
// grows and focus mode follows it.
func (m *model) move(f *fileView, dLine, dCol int, extend bool) {
	lines := f.view.Lines()
	m.cursor.Line = max(0, min(m.cursor.Line+dLine, len(lines)-1))
	lineLen := len([]rune(lines[m.cursor.Line]))
	m.cursor.Column = max(0, min(m.cursor.Column+dCol, lineLen))

	if !extend {
		m.anchor = m.cursor
	}
	f.view.Select(m.anchor, m.cursor)
	m.scrollTo(m.cursor.Line)
}

func (m *model) scrollTo(line int) {
	h := max(1, m.textHeight())
	if line < m.top {
		m.top = line
	} else if line >= m.top+h {
		m.top = line - h + 1
	}
}

func (m *model) nextView() {
	views := m.ws.Views()
	if len(views) < 2 {
		return
	}

	idx := 0
	for i, v := range views {
		if v == m.ws.Active() {
			idx = i
		}
	}
	next := views[(idx+1)%len(views)]
	m.ws.SetActive(next)

	sel := next.Selection()
	m.anchor, m.cursor = sel.Anchor, sel.Active
	m.top = 0
	m.scrollTo(m.cursor.Line)
}

func (m *model) copyFocus() {
	f := m.active()
	r, ok := m.ctrl.Focus()
	if f == nil || !ok {
		m.notices.Warn("No focus area to copy")
		return
	}

	if err := clipboard.WriteAll(focusedText(f.view.Lines(), r)); err != nil {
		m.notices.Error(fmt.Sprintf("Copy failed: %v", err))
		return
	}
	m.notices.Info(fmt.Sprintf("Copied %s", r))
}

// focusedText returns the lines of r joined by line breaks.
func focusedText(lines []string, r gvfocus.FocusRange) string {
	r, ok := r.Clamp(len(lines))
	if !ok {
		return ""
	}
	return strings.Join(lines[r.Start:r.End+1], "\n")
}

// textHeight is the number of rows left for the text.
func (m *model) textHeight() int {
	// title, status and prompt rows, plus the frame borders.
	return m.height - 6
}
