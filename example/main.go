package main

import (
	"image"
	"log"
	"os"
	"strings"

	"gioui.org/app"
	"gioui.org/font"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/oligo/gvfocus"
	"github.com/oligo/gvfocus/config"
	"github.com/oligo/gvfocus/focus"
	"github.com/oligo/gvfocus/textstyle"
	"github.com/oligo/gvfocus/textstyle/decoration"
	"github.com/oligo/gvfocus/view"
	"golang.org/x/image/math/fixed"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

const sample = `package main

import "fmt"

func main() {
	for i := 0; i < 3; i++ {
		fmt.Println("hello", i)
	}
}

// Select lines with shift and the arrow keys, or press R to type a range.
// F toggles focus mode and X clears the focus area.
`

type notice struct {
	msg string
}

func (n *notice) Info(msg string)  { n.msg = msg }
func (n *notice) Warn(msg string)  { n.msg = msg }
func (n *notice) Error(msg string) { n.msg = msg }

type FocusApp struct {
	window *app.Window
	th     *material.Theme
	ws     *view.Workspace
	doc    *view.TextView
	ctrl   *focus.Controller
	notice *notice
	// pending holds debounced updates to run on the UI goroutine.
	pending chan func()

	cursor, anchor int
	rangeInput     widget.Editor
	prompt         *gvfocus.PromptRequest
	promptDone     func(string, bool)
	painter        view.Painter
}

// Prompt shows an input line for the range under the text.
func (a *FocusApp) Prompt(req gvfocus.PromptRequest, done func(string, bool)) {
	a.prompt = &req
	a.promptDone = done
	a.rangeInput.SetText("")
}

func (a *FocusApp) run() error {
	var ops op.Ops
	for {
		e := a.window.Event()

		switch e := e.(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			a.drain()
			gtx := app.NewContext(&ops, e)
			a.update(gtx)
			layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx C) D {
				return a.layout(gtx)
			})
			e.Frame(gtx.Ops)
		}
	}
}

func (a *FocusApp) drain() {
	for {
		select {
		case fn := <-a.pending:
			fn()
		default:
			return
		}
	}
}

func (a *FocusApp) update(gtx C) {
	if a.prompt != nil {
		for {
			ev, ok := a.rangeInput.Update(gtx)
			if !ok {
				break
			}
			if _, ok := ev.(widget.SubmitEvent); !ok {
				continue
			}
			if msg := a.prompt.Validate(a.rangeInput.Text()); msg != "" {
				a.notice.Warn(msg)
				continue
			}
			done := a.promptDone
			a.prompt, a.promptDone = nil, nil
			done(a.rangeInput.Text(), true)
		}
		return
	}

	for {
		ev, ok := gtx.Event(
			key.Filter{Name: "F"},
			key.Filter{Name: "X"},
			key.Filter{Name: "R"},
			key.Filter{Name: key.NameUpArrow, Optional: key.ModShift},
			key.Filter{Name: key.NameDownArrow, Optional: key.ModShift},
		)
		if !ok {
			break
		}
		e, ok := ev.(key.Event)
		if !ok || e.State != key.Press {
			continue
		}

		switch e.Name {
		case "F":
			a.ctrl.Toggle()
		case "X":
			a.ctrl.ClearFocus(true)
		case "R":
			if a.ctrl.StartSelection(a) == nil {
				gtx.Execute(key.FocusCmd{Tag: &a.rangeInput})
			}
		case key.NameUpArrow, key.NameDownArrow:
			step := 1
			if e.Name == key.NameUpArrow {
				step = -1
			}
			a.moveCursor(step, e.Modifiers.Contain(key.ModShift))
		}
	}
}

func (a *FocusApp) moveCursor(step int, extend bool) {
	lines := a.doc.Document().LineCount()
	a.cursor = max(0, min(a.cursor+step, lines-1))
	if !extend {
		a.anchor = a.cursor
	}
	a.doc.Select(gvfocus.Position{Line: a.anchor}, gvfocus.Position{Line: a.cursor, Column: a.doc.Document().LineLength(a.cursor)})
}

func (a *FocusApp) layout(gtx C) D {
	return layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			lb := material.Label(a.th, a.th.TextSize, "gvfocus: focus mode "+a.ctrl.Mode().String())
			lb.Alignment = text.Middle
			return lb.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(6)}.Layout),
		layout.Flexed(1, func(gtx C) D {
			borderColor := a.th.Fg
			borderColor.A = 0xb6
			return widget.Border{
				Color: borderColor, Width: unit.Dp(1),
			}.Layout(gtx, func(gtx C) D {
				return layout.UniformInset(unit.Dp(6)).Layout(gtx, a.layoutText)
			})
		}),
		layout.Rigid(func(gtx C) D {
			if a.prompt == nil {
				return material.Body2(a.th, a.notice.msg).Layout(gtx)
			}
			ed := material.Editor(a.th, &a.rangeInput, a.prompt.Placeholder)
			return layout.Flex{}.Layout(gtx,
				layout.Rigid(material.Body2(a.th, a.prompt.Prompt+" ").Layout),
				layout.Flexed(1, ed.Layout),
			)
		}),
	)
}

// layoutText paints the decorations of the document first, then its text.
func (a *FocusApp) layoutText(gtx C) D {
	textSize := unit.Sp(14)
	px := gtx.Sp(textSize)
	metrics := view.LineMetrics{
		LineHeight: fixed.I(px * 3 / 2),
		// monospaced glyphs are about 0.6em wide.
		Advance: fixed.Int26_6(px * 64 * 6 / 10),
	}

	size := gtx.Constraints.Max
	a.painter.Metrics = metrics
	a.painter.Viewport = image.Rectangle{Max: size}
	a.painter.Veil = textstyle.NewColor(a.th.Bg)
	a.painter.RulerWidth = gtx.Dp(6)
	a.doc.PaintDecorations(gtx, &a.painter)

	for i, line := range strings.Split(a.doc.Text(), "\n") {
		top := metrics.LineTop(i)
		if top > size.Y {
			break
		}

		lb := material.Label(a.th, textSize, line)
		lb.Font.Typeface = "monospace"
		lb.MaxLines = 1
		for _, d := range a.doc.Decorations(i, i+1) {
			if dim, ok := d.(decoration.Dim); ok {
				lb.Color.A = uint8(float32(lb.Color.A) * dim.Opacity)
				lb.Font.Weight = dim.Weight
			}
		}
		if i == a.cursor {
			lb.Font.Weight = font.Bold
		}

		offset := op.Offset(image.Pt(0, top)).Push(gtx.Ops)
		gtx := gtx
		gtx.Constraints.Min = image.Point{}
		lb.Layout(gtx)
		offset.Pop()
	}

	return D{Size: size}
}

func main() {
	log.SetFlags(log.Flags() | log.Lshortfile)
	th := material.NewTheme()

	cfg, err := config.Load("focus.toml")
	if err != nil {
		log.Fatal(err)
	}

	focusApp := &FocusApp{
		window:  &app.Window{},
		th:      th,
		ws:      view.NewWorkspace(),
		notice:  &notice{},
		pending: make(chan func(), 16),
	}
	focusApp.window.Option(app.Title("Focus Mode Example"))
	focusApp.rangeInput.SingleLine = true
	focusApp.rangeInput.Submit = true

	focusApp.doc = focusApp.ws.Open(sample)
	focusApp.ctrl = focus.New(focusApp.ws, focusApp.ws, focusApp.notice,
		focus.WithConfig(cfg),
		focus.WithDispatcher(func(fn func()) {
			focusApp.pending <- fn
			focusApp.window.Invalidate()
		}),
	)

	go func() {
		err := focusApp.run()
		if err != nil {
			os.Exit(1)
		}

		os.Exit(0)
	}()

	app.Main()
}
