package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/oligo/gvfocus/textstyle"
	"github.com/oligo/gvfocus/textstyle/decoration"
)

// base is the terminal background translucent colors are blended over.
var base = color.NRGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	gutterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	helpStyle   = lipgloss.NewStyle().Faint(true)
	noticeStyle = map[string]lipgloss.Style{
		"info":  lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		"warn":  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		"error": lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
)

// termColor blends c over the terminal background.
func termColor(c textstyle.Color) lipgloss.Color {
	v := c.NRGBA()
	a := uint32(v.A)
	mix := func(fg, bg uint8) uint32 {
		return (uint32(fg)*a + uint32(bg)*(255-a) + 127) / 255
	}
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", mix(v.R, base.R), mix(v.G, base.G), mix(v.B, base.B)))
}

// lineStyle builds the terminal style of a line from its decorations. Border
// edges map to the sides of a lipgloss border, and rounded corners to a
// rounded border.
func lineStyle(decos []decoration.Decoration) lipgloss.Style {
	style := lipgloss.NewStyle()

	for _, deco := range decos {
		switch d := deco.(type) {
		case decoration.Dim:
			if d.Opacity < 1 {
				style = style.Faint(true)
			}
		case decoration.Background:
			if d.Color.IsSet() {
				style = style.Background(termColor(d.Color))
			}
			// one more cell for a cursor past the end of the line.
			style = style.Width(d.Columns().EndCol + 1)
		case decoration.Border:
			border := lipgloss.NormalBorder()
			if d.Corners != 0 {
				border = lipgloss.RoundedBorder()
			}
			style = style.
				Border(border,
					d.Edges.Has(decoration.EdgeTop),
					d.Edges.Has(decoration.EdgeRight),
					d.Edges.Has(decoration.EdgeBottom),
					d.Edges.Has(decoration.EdgeLeft)).
				BorderForeground(termColor(d.Color)).
				Width(d.Columns().EndCol + 1)
		}
	}

	return style
}

// renderText renders height lines of the active view starting at top.
func (m *model) renderText(f *fileView, height int) string {
	lines := f.view.Lines()
	gutterWidth := len(fmt.Sprint(len(lines)))

	var b strings.Builder
	end := min(len(lines), m.top+height)
	for i := m.top; i < end; i++ {
		text := lines[i]
		if i == m.cursor.Line {
			text = withCursor(text, m.cursor.Column)
		}

		style := lineStyle(f.view.Decorations(i, i+1))
		if !style.GetBorderLeft() {
			// keep text aligned with framed lines.
			text = " " + text
		}
		rendered := style.Render(text)

		gutter := gutterStyle.Render(fmt.Sprintf("%*d ", gutterWidth, i+1))
		textRow := 0
		if style.GetBorderTop() {
			textRow = 1
		}
		// borders may add rows above and below the text.
		for j, row := range strings.Split(rendered, "\n") {
			if j == textRow {
				b.WriteString(gutter)
			} else {
				b.WriteString(strings.Repeat(" ", gutterWidth+1))
			}
			b.WriteString(row)
			b.WriteString("\n")
		}
	}

	return b.String()
}

func withCursor(text string, col int) string {
	runes := []rune(text)
	if col >= len(runes) {
		return text + cursorStyle.Render(" ")
	}
	return string(runes[:col]) + cursorStyle.Render(string(runes[col])) + string(runes[col+1:])
}

func (m *model) View() string {
	var b strings.Builder

	f := m.active()
	title := "no file"
	if f != nil {
		title = f.path
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	if f != nil {
		b.WriteString(m.renderText(f, max(1, m.textHeight())))
	}

	status := fmt.Sprintf("focus mode %s", m.ctrl.Mode())
	if r, ok := m.ctrl.Focus(); ok {
		status += ", " + r.String()
	}
	if level, msg := m.notices.get(); msg != "" {
		status += "  " + noticeStyle[level].Render(msg)
	}
	b.WriteString(status)
	b.WriteString("\n")

	if m.prompt != nil {
		b.WriteString(m.prompt.input.View())
		if m.prompt.err != "" {
			b.WriteString("  " + noticeStyle["error"].Render(m.prompt.err))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(helpStyle.Render("f toggle  s range  x clear  y copy  shift+arrows select  tab next file  q quit"))
		b.WriteString("\n")
	}

	return b.String()
}
