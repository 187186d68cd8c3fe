package decoration

import (
	"cmp"
	"fmt"

	"github.com/rdleal/intervalst/interval"
	"golang.org/x/exp/slices"
)

// DecorationTree leverages a interval tree to stores overlapping decorations.
// Intervals are line ranges, so a query for a line returns everything drawn
// on it.
type DecorationTree struct {
	tree *interval.MultiValueSearchTree[Decoration, int]
	size int
}

func NewDecorationTree() *DecorationTree {
	tree := interval.NewMultiValueSearchTree[Decoration](func(a, b int) int {
		return cmp.Compare(a, b)
	})

	return &DecorationTree{
		tree: tree,
	}
}

// Insert new decorations. Their ranges are line ranges in the document.
func (d *DecorationTree) Insert(decos ...Decoration) error {
	for _, deco := range decos {
		start, end := deco.Range()
		if err := d.tree.Insert(start, end, deco); err != nil {
			return fmt.Errorf("insert decoration [%d, %d): %w", start, end, err)
		}
		d.size++
	}

	return nil
}

// Len returns the number of decorations in the tree.
func (d *DecorationTree) Len() int {
	return d.size
}

// Query returns all decorations on a given line, ordered by priority.
func (d *DecorationTree) Query(line int) []Decoration {
	return d.QueryRange(line, line+1)
}

// QueryRange returns all decorations overlapping the half-open line range
// [start, end), ordered by priority and then by line.
func (d *DecorationTree) QueryRange(start, end int) []Decoration {
	if start >= end || d.size == 0 {
		return nil
	}

	all, _ := d.tree.AllIntersections(start, end)
	// The tree treats intervals as closed, drop the ones only touching the
	// boundaries.
	out := slices.DeleteFunc(slices.Clone(all), func(deco Decoration) bool {
		s, e := deco.Range()
		return s >= end || e <= start
	})

	slices.SortStableFunc(out, func(a, b Decoration) int {
		if c := cmp.Compare(a.GetPriority(), b.GetPriority()); c != 0 {
			return c
		}
		as, _ := a.Range()
		bs, _ := b.Range()
		return cmp.Compare(as, bs)
	})
	return out
}

// All returns every decoration in the tree.
func (d *DecorationTree) All() []Decoration {
	if d.size == 0 {
		return nil
	}

	maxVals, found := d.tree.MaxEnd()
	if !found {
		return nil
	}

	// line ranges never start before zero.
	_, end := maxVals[0].Range()
	return d.QueryRange(0, end)
}

// RemoveBySource removes every decoration whose source is source. Other
// decorations sharing the same line range are kept.
func (d *DecorationTree) RemoveBySource(source any) error {
	all := d.All()
	if len(all) == 0 {
		return nil
	}

	type key struct{ start, end int }
	touched := make(map[key][]Decoration)
	for _, deco := range all {
		if deco.Source() == source {
			s, e := deco.Range()
			touched[key{s, e}] = nil
		}
	}

	if len(touched) == 0 {
		return nil
	}

	// collect the survivors of each touched interval before deleting it.
	for _, deco := range all {
		s, e := deco.Range()
		k := key{s, e}
		if kept, ok := touched[k]; ok && deco.Source() != source {
			touched[k] = append(kept, deco)
		}
	}

	for k, kept := range touched {
		removed := d.countAt(all, k.start, k.end)
		if err := d.tree.Delete(k.start, k.end); err != nil {
			return fmt.Errorf("delete decorations [%d, %d): %w", k.start, k.end, err)
		}
		d.size -= removed
		if len(kept) > 0 {
			if err := d.Insert(kept...); err != nil {
				return err
			}
		}
	}

	return nil
}

// Clear removes all decorations.
func (d *DecorationTree) Clear() {
	d.tree = interval.NewMultiValueSearchTree[Decoration](func(a, b int) int {
		return cmp.Compare(a, b)
	})
	d.size = 0
}

func (d *DecorationTree) countAt(all []Decoration, start, end int) int {
	n := 0
	for _, deco := range all {
		if s, e := deco.Range(); s == start && e == end {
			n++
		}
	}
	return n
}
