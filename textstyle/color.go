package textstyle

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"gioui.org/op"
	"gioui.org/op/paint"
)

// Color wraps a color.NRGBA color which is widely used by Gio.
// It provides method to convert the non-alpha-premultiplied color
// to a color OP used by Gio ops.
type Color struct {
	val color.NRGBA
	op  op.CallOp
}

// NewColor wraps cl.
func NewColor(cl color.NRGBA) Color {
	return Color{val: cl}
}

// MustParseColor is like ParseColor but panics on malformed input. It is
// meant for package level defaults.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) NRGBA() color.NRGBA {
	return c.val
}

// IsSet reports if the color is anything but fully transparent black, the
// zero value.
func (c Color) IsSet() bool {
	return c.val != (color.NRGBA{})
}

func (c *Color) makeOp() {
	if c.op != (op.CallOp{}) {
		return
	}
	ops := new(op.Ops)
	m := op.Record(ops)
	paint.ColorOp{Color: c.val}.Add(ops)
	c.op = m.Stop()
}

// Op returns a recorded color op, or an empty CallOp when the color is not set.
func (c *Color) Op() op.CallOp {
	if !c.IsSet() {
		return op.CallOp{}
	}

	c.makeOp()
	return c.op
}

// WithAlpha returns a copy of the color with alpha scaled by factor in [0, 1].
func (c Color) WithAlpha(factor float32) Color {
	factor = max(0, min(factor, 1))
	val := c.val
	val.A = uint8(float32(val.A)*factor + 0.5)
	return Color{val: val}
}

// String renders the color in the rgba() form accepted by ParseColor.
func (c Color) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.val.R, c.val.G, c.val.B,
		strconv.FormatFloat(float64(c.val.A)/255, 'f', -1, 32))
}

// ParseColor parses a CSS-like color. Supported forms are #rgb, #rrggbb,
// #rrggbbaa, rgb(r, g, b) and rgba(r, g, b, a) where a is in [0, 1].
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgba("):len(s)-1], true)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgb("):len(s)-1], false)
	}

	return Color{}, fmt.Errorf("unsupported color %q", s)
}

func parseHex(hex string) (Color, error) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid hex color #%s", hex)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color #%s: %w", hex, err)
	}

	return NewColor(color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}), nil
}

func parseFunc(args string, withAlpha bool) (Color, error) {
	parts := strings.Split(args, ",")
	want := 3
	if withAlpha {
		want = 4
	}
	if len(parts) != want {
		return Color{}, fmt.Errorf("expected %d components, got %d", want, len(parts))
	}

	var rgb [3]uint8
	for i := range rgb {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return Color{}, fmt.Errorf("invalid color component %q", strings.TrimSpace(parts[i]))
		}
		rgb[i] = uint8(v)
	}

	alpha := uint8(255)
	if withAlpha {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return Color{}, fmt.Errorf("invalid alpha %q", strings.TrimSpace(parts[3]))
		}
		alpha = uint8(math.Round(a * 255))
	}

	return NewColor(color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: alpha}), nil
}
