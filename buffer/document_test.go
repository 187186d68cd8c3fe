package buffer

import (
	"errors"
	"testing"
)

func TestDocumentLines(t *testing.T) {
	cases := []struct {
		text    string
		lengths []int
	}{
		{text: "", lengths: []int{0}},
		{text: "abc", lengths: []int{3}},
		{text: "abc\n", lengths: []int{3, 0}},
		{text: "a\n\nbcd", lengths: []int{1, 0, 3}},
		// a flag emoji is two runes but one grapheme cluster.
		{text: "\U0001F1EB\U0001F1F7 ok", lengths: []int{4}},
		// e + combining acute accent.
		{text: "cafe\u0301", lengths: []int{4}},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			doc := NewDocument(tc.text)
			if doc.LineCount() != len(tc.lengths) {
				t.Fatalf("line count = %d, want %d", doc.LineCount(), len(tc.lengths))
			}
			for i, want := range tc.lengths {
				if got := doc.LineLength(i); got != want {
					t.Errorf("line %d length = %d, want %d", i, got, want)
				}
			}
		})
	}
}

func TestDocumentEdit(t *testing.T) {
	doc := NewDocument("hello\nworld")

	if err := doc.Insert(5, ", dear"); err != nil {
		t.Fatal(err)
	}
	if doc.LineText(0) != "hello, dear" {
		t.Errorf("line 0 = %q", doc.LineText(0))
	}

	if err := doc.Insert(doc.Len(), "\nthird\nfourth"); err != nil {
		t.Fatal(err)
	}
	if doc.LineCount() != 4 || doc.LineText(3) != "fourth" {
		t.Errorf("unexpected lines %q", doc.Lines())
	}

	// drop "world\nthird\n"
	start := doc.LineOffset(1)
	if err := doc.Delete(start, doc.LineOffset(3)-start); err != nil {
		t.Fatal(err)
	}
	if doc.Text() != "hello, dear\nfourth" {
		t.Errorf("text = %q", doc.Text())
	}
	if doc.LineCount() != 2 {
		t.Errorf("line count = %d, want 2", doc.LineCount())
	}

	if err := doc.Replace(0, 5, "bye"); err != nil {
		t.Fatal(err)
	}
	if doc.LineText(0) != "bye, dear" || doc.LineLength(0) != 9 {
		t.Errorf("line 0 = %q", doc.LineText(0))
	}

	if err := doc.Delete(5, 100); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if err := doc.Insert(-1, "x"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestDocumentPosition(t *testing.T) {
	doc := NewDocument("ab\ncd\n")
	cases := []struct {
		off       int
		line, col int
	}{
		{0, 0, 0},
		{2, 0, 2},
		{3, 1, 0},
		{6, 2, 0},
		{99, 2, 0},
	}
	for _, tc := range cases {
		line, col := doc.Position(tc.off)
		if line != tc.line || col != tc.col {
			t.Errorf("Position(%d) = %d,%d, want %d,%d", tc.off, line, col, tc.line, tc.col)
		}
	}
}
