package focus

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/oligo/gvfocus"
	"github.com/oligo/gvfocus/textstyle/decoration"
	"github.com/oligo/gvfocus/view"
)

type notice struct {
	level string
	msg   string
}

// recorder is a gvfocus.Notifier keeping every notice.
type recorder struct {
	mu      sync.Mutex
	notices []notice
}

func (r *recorder) add(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice{level: level, msg: msg})
}

func (r *recorder) Info(msg string)  { r.add("info", msg) }
func (r *recorder) Warn(msg string)  { r.add("warn", msg) }
func (r *recorder) Error(msg string) { r.add("error", msg) }

func (r *recorder) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notices)
}

func (r *recorder) last() notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return notice{}
	}
	return r.notices[len(r.notices)-1]
}

func (r *recorder) count(prefix string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.notices {
		if strings.HasPrefix(e.msg, prefix) {
			n++
		}
	}
	return n
}

// failingFactory fails to allocate the channel of one kind.
type failingFactory struct {
	*view.Workspace
	fail gvfocus.ChannelKind
}

var errAllocation = errors.New("allocation failed")

func (f failingFactory) CreateChannel(kind gvfocus.ChannelKind, style decoration.Style) (gvfocus.Channel, error) {
	if kind == f.fail {
		return nil, errAllocation
	}
	return f.Workspace.CreateChannel(kind, style)
}

// failingView rejects the decorations of one channel kind.
type failingView struct {
	*view.TextView
	fail gvfocus.ChannelKind
}

var errRender = errors.New("render failed")

func (v failingView) SetDecorations(ch gvfocus.Channel, regions []gvfocus.Region) error {
	if ch.Kind() == v.fail {
		return errRender
	}
	return v.TextView.SetDecorations(ch, regions)
}

// scriptedPrompter answers prompts with inputs, in order, until one is
// accepted by the validation func.
type scriptedPrompter struct {
	inputs   []string
	messages []string
	prompts  []gvfocus.PromptRequest
}

func (p *scriptedPrompter) Prompt(req gvfocus.PromptRequest, done func(string, bool)) {
	p.prompts = append(p.prompts, req)
	for _, input := range p.inputs {
		msg := req.Validate(input)
		if msg == "" {
			done(input, true)
			return
		}
		p.messages = append(p.messages, msg)
	}
	done("", false)
}

func lines(n, width int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = strings.Repeat("x", width)
	}
	return strings.Join(out, "\n")
}

func setup(t *testing.T, text string, opts ...Option) (*Controller, *view.Workspace, *view.TextView, *recorder) {
	t.Helper()
	ws := view.NewWorkspace()
	v := ws.Open(text)
	notes := &recorder{}
	c := New(ws, ws, notes, opts...)
	return c, ws, v, notes
}

func activate(t *testing.T, c *Controller) {
	t.Helper()
	if err := c.Activate(); err != nil {
		t.Fatalf("Activate() failed: %v", err)
	}
}

func regionLines(regions []gvfocus.Region) []int {
	out := make([]int, 0, len(regions))
	for _, r := range regions {
		out = append(out, r.Line)
	}
	return out
}

func assertNoDecorations(t *testing.T, v *view.TextView) {
	t.Helper()
	for _, kind := range gvfocus.ChannelKinds() {
		if got := v.RegionsOf(kind); len(got) != 0 {
			t.Errorf("%s channel still has regions: %v", kind, got)
		}
	}
	if n := len(v.Decorations(0, v.Document().LineCount())); n != 0 {
		t.Errorf("view still shows %d decorations", n)
	}
}
