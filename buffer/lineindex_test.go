package buffer

import "testing"

func TestLineIndexInsertDelete(t *testing.T) {
	idx := newLineIndex(nil)

	printIdx := func() {
		for i := range idx.lines {
			t.Logf("line %d len: %d", i, idx.lines[i].length)
		}
	}

	check := func(lens ...int) {
		t.Helper()
		if len(idx.lines) != len(lens) {
			printIdx()
			t.Fatalf("got %d lines, want %d", len(idx.lines), len(lens))
		}
		for i, l := range lens {
			if idx.lines[i].length != l {
				printIdx()
				t.Fatalf("line %d: got length %d, want %d", i, idx.lines[i].length, l)
			}
		}
	}

	check(0)

	idx.UpdateOnInsert(0, []rune("hello\nworld"))
	check(6, 5)

	// insert at the end
	idx.UpdateOnInsert(11, []rune(" one"))
	check(6, 9)

	// insert in the middle of line
	idx.UpdateOnInsert(2, []rune("abc"))
	check(9, 9)

	idx.UpdateOnInsert(5, []rune("\nedf"))
	check(6, 7, 9)

	// delete across a line break joins the lines.
	idx.UpdateOnDelete(5, 1)
	check(12, 9)

	// delete everything but the first rune.
	idx.UpdateOnDelete(1, 20)
	check(1)
	if idx.lines[0].hasLineBreak {
		t.Error("last line must not have a line break")
	}
}

func TestLineIndexTrailingBreak(t *testing.T) {
	idx := newLineIndex([]rune("a\nb\n"))
	if len(idx.lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(idx.lines))
	}

	if line, col := idx.locate(4); line != 2 || col != 0 {
		t.Errorf("locate(4) = %d,%d, want 2,0", line, col)
	}

	if off := idx.lineStart(2); off != 4 {
		t.Errorf("lineStart(2) = %d, want 4", off)
	}

	idx.UpdateOnInsert(4, []rune("\n"))
	if len(idx.lines) != 4 {
		t.Errorf("got %d lines, want 4", len(idx.lines))
	}
}
