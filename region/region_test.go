package region

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/oligo/gvfocus"
)

func uniformDoc(lines, length int) gvfocus.LineLengths {
	doc := make(gvfocus.LineLengths, lines)
	for i := range doc {
		doc[i] = length
	}
	return doc
}

func lineNumbers(regions []gvfocus.Region) []int {
	out := make([]int, 0, len(regions))
	for _, r := range regions {
		out = append(out, r.Line)
	}
	return out
}

func seq(from, to int) []int {
	out := []int{}
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func TestComputeMultiLine(t *testing.T) {
	// lines 5-15 as typed by a user, 0-based 4-14.
	rs := Compute(uniformDoc(20, 10), gvfocus.FocusRange{Start: 4, End: 14})

	if rs.UniformWidth != 10 {
		t.Errorf("uniform width = %d, want 10", rs.UniformWidth)
	}
	if len(rs.Top) != 1 || rs.Top[0].Line != 4 {
		t.Errorf("top = %v", rs.Top)
	}
	if len(rs.Bottom) != 1 || rs.Bottom[0].Line != 14 {
		t.Errorf("bottom = %v", rs.Bottom)
	}
	if got := lineNumbers(rs.Side); !reflect.DeepEqual(got, seq(5, 13)) {
		t.Errorf("side lines = %v", got)
	}
	if len(rs.SingleLine) != 0 {
		t.Errorf("unexpected single line region %v", rs.SingleLine)
	}

	wantDim := append(seq(0, 3), seq(15, 19)...)
	if got := lineNumbers(rs.Dim); !reflect.DeepEqual(got, wantDim) {
		t.Errorf("dim lines = %v, want %v", got, wantDim)
	}
	for _, r := range rs.Dim {
		if !r.WholeLine || r.Kind != gvfocus.DimChannel {
			t.Errorf("dim region %v must cover the whole line", r)
		}
	}

	for _, r := range rs.Background {
		if r.StartCol != 0 || r.EndCol != 10 {
			t.Errorf("background region %v should span [0, 10)", r)
		}
	}
}

func TestComputeSingleEmptyLine(t *testing.T) {
	rs := Compute(gvfocus.LineLengths{0}, gvfocus.FocusRange{Start: 0, End: 0})

	if rs.UniformWidth != 1 {
		t.Errorf("uniform width = %d, want 1", rs.UniformWidth)
	}
	if len(rs.SingleLine) != 1 {
		t.Fatalf("got %d single line regions, want 1", len(rs.SingleLine))
	}
	if r := rs.SingleLine[0]; r.Line != 0 || r.StartCol != 0 || r.EndCol != 1 {
		t.Errorf("single line region = %v", r)
	}
	if len(rs.Dim) != 0 {
		t.Errorf("dim = %v, want none", rs.Dim)
	}
	if len(rs.Top)+len(rs.Bottom)+len(rs.Side) != 0 {
		t.Error("single line range must not have top, bottom or side regions")
	}
}

func TestComputeRaggedWidth(t *testing.T) {
	doc := gvfocus.LineLengths{3, 12, 0, 7, 40}
	rs := Compute(doc, gvfocus.FocusRange{Start: 1, End: 3})

	if rs.UniformWidth != 12 {
		t.Errorf("uniform width = %d, want 12", rs.UniformWidth)
	}
	// lines outside the range never widen it.
	for _, r := range append(append([]gvfocus.Region{}, rs.Background...), rs.Top[0], rs.Bottom[0]) {
		if r.EndCol != 12 {
			t.Errorf("region %v should end at 12", r)
		}
	}
	if rs.Dim[1].EndCol != 40 {
		t.Errorf("dim region keeps the line length, got %v", rs.Dim[1])
	}
}

func TestComputeClamp(t *testing.T) {
	cases := []struct {
		name string
		doc  gvfocus.LineLengths
		in   gvfocus.FocusRange
		want gvfocus.FocusRange
	}{
		{"reversed", uniformDoc(10, 1), gvfocus.FocusRange{Start: 7, End: 2}, gvfocus.FocusRange{Start: 2, End: 7}},
		{"past end", uniformDoc(10, 1), gvfocus.FocusRange{Start: 5, End: 30}, gvfocus.FocusRange{Start: 5, End: 9}},
		{"negative", uniformDoc(10, 1), gvfocus.FocusRange{Start: -3, End: 1}, gvfocus.FocusRange{Start: 0, End: 1}},
		{"whole doc", uniformDoc(4, 1), gvfocus.FocusRange{Start: 0, End: 3}, gvfocus.FocusRange{Start: 0, End: 3}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rs := Compute(tc.doc, tc.in)
			if rs.Focus != tc.want {
				t.Errorf("focus = %v, want %v", rs.Focus, tc.want)
			}
			for _, kind := range gvfocus.ChannelKinds() {
				for _, r := range rs.Channel(kind) {
					if r.Line < 0 || r.Line >= tc.doc.LineCount() {
						t.Errorf("region %v is outside of the document", r)
					}
				}
			}
		})
	}
}

func TestComputeEmptyDocument(t *testing.T) {
	rs := Compute(gvfocus.LineLengths{}, gvfocus.FocusRange{Start: 0, End: 3})
	if !rs.Empty() {
		t.Errorf("expected empty set, got %+v", rs)
	}
	for _, kind := range gvfocus.ChannelKinds() {
		if len(rs.Channel(kind)) != 0 {
			t.Errorf("channel %s is not empty", kind)
		}
	}
}

// TestComputeProperties checks the partition and topology rules on random
// documents and ranges.
func TestComputeProperties(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		lines := 1 + rnd.Intn(40)
		doc := make(gvfocus.LineLengths, lines)
		for j := range doc {
			doc[j] = rnd.Intn(5) * rnd.Intn(20)
		}
		a, b := rnd.Intn(lines), rnd.Intn(lines)
		r := gvfocus.NewFocusRange(a, b)

		t.Run(fmt.Sprintf("%d_%v", i, r), func(t *testing.T) {
			rs := Compute(doc, r)

			seen := make([]int, lines)
			for _, reg := range rs.Background {
				seen[reg.Line]++
			}
			for _, reg := range rs.Dim {
				seen[reg.Line]++
			}
			for line, n := range seen {
				if n != 1 {
					t.Fatalf("line %d covered %d times", line, n)
				}
			}

			if rs.UniformWidth < 1 {
				t.Fatalf("uniform width %d < 1", rs.UniformWidth)
			}

			if r.Start == r.End {
				if len(rs.SingleLine) != 1 || len(rs.Top)+len(rs.Bottom)+len(rs.Side) != 0 {
					t.Fatalf("bad single line topology: %+v", rs)
				}
				return
			}

			if len(rs.SingleLine) != 0 || len(rs.Top) != 1 || len(rs.Bottom) != 1 {
				t.Fatalf("bad multi line topology: %+v", rs)
			}
			if len(rs.Side) != r.End-r.Start-1 {
				t.Fatalf("got %d side regions, want %d", len(rs.Side), r.End-r.Start-1)
			}
			for _, reg := range rs.Side {
				if reg.Line <= r.Start || reg.Line >= r.End {
					t.Fatalf("side region %v not strictly inside %v", reg, r)
				}
			}

			if again := Compute(doc, r); !reflect.DeepEqual(rs, again) {
				t.Fatal("compute is not deterministic")
			}
		})
	}
}
