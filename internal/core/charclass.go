package core

// CharClass is a set of Unicode codepoints represented as a balanced
// binary search tree of disjoint, non-adjacent [lo,hi] ranges. In-order
// traversal always yields strictly increasing ranges with a gap of at
// least two codepoints between any pair (adjacent ranges are merged).
//
// Every mutation goes through a common path: flatten the tree to its
// sorted range sequence (the "vine" spec.md's algorithm section
// describes as a right-linked list — a sorted slice is the same normal
// form), apply the edit to that sequence, merge adjacent results, and
// rebuild a balanced tree from the sorted output. Rebuilding from a
// sorted slice by repeatedly splitting at the midpoint keeps every
// subtree's balance factor within 1, which is the guarantee the vine
// rebalance pass exists to provide.
type CharClass struct {
	root *rangeNode
}

type rangeNode struct {
	lo, hi      rune
	left, right *rangeNode
}

type rangeSpan struct {
	lo, hi rune
}

// NewCharClass returns an empty class.
func NewCharClass() *CharClass { return &CharClass{} }

// Empty reports whether the class contains no codepoints.
func (c *CharClass) Empty() bool { return c.root == nil }

// Size returns the number of disjoint ranges in the class.
func (c *CharClass) Size() int {
	n := 0
	var walk func(*rangeNode)
	walk = func(x *rangeNode) {
		if x == nil {
			return
		}
		n++
		walk(x.left)
		walk(x.right)
	}
	walk(c.root)
	return n
}

// Cardinality returns the total number of codepoints in the class.
func (c *CharClass) Cardinality() int64 {
	var total int64
	for _, s := range c.ranges() {
		total += int64(s.hi-s.lo) + 1
	}
	return total
}

// Search reports whether cp is a member of the class.
func (c *CharClass) Search(cp rune) bool {
	n := c.root
	for n != nil {
		switch {
		case cp < n.lo:
			n = n.left
		case cp > n.hi:
			n = n.right
		default:
			return true
		}
	}
	return false
}

// Copy returns an independent class with the same contents.
func (c *CharClass) Copy() *CharClass {
	return &CharClass{root: buildBalanced(c.ranges())}
}

// InsertRange adds every codepoint in [lo,hi] to the class.
func (c *CharClass) InsertRange(lo, hi rune) {
	if lo > hi {
		panic("core: CharClass.InsertRange: lo > hi")
	}
	c.root = buildBalanced(insertSpan(c.ranges(), rangeSpan{lo, hi}))
}

// InsertCodepoint adds a single codepoint to the class.
func (c *CharClass) InsertCodepoint(cp rune) { c.InsertRange(cp, cp) }

// DeleteRange removes every codepoint in [lo,hi] from the class,
// splitting any range that only partially overlaps it.
func (c *CharClass) DeleteRange(lo, hi rune) {
	if lo > hi {
		panic("core: CharClass.DeleteRange: lo > hi")
	}
	c.root = buildBalanced(deleteSpan(c.ranges(), rangeSpan{lo, hi}))
}

// DeleteCodepoint removes a single codepoint from the class.
func (c *CharClass) DeleteCodepoint(cp rune) { c.DeleteRange(cp, cp) }

// Union mutates c to contain every codepoint in c or other.
func (c *CharClass) Union(other *CharClass) {
	mustNotAlias(c, other)
	c.root = buildBalanced(unionSpans(c.ranges(), other.ranges()))
}

// Intersection mutates c to contain only codepoints present in both c
// and other. Implemented as an ordered merge of the two range
// sequences (spec.md §4.2's second offered strategy) rather than
// double-complementing against a universe range.
func (c *CharClass) Intersection(other *CharClass) {
	mustNotAlias(c, other)
	c.root = buildBalanced(intersectSpans(c.ranges(), other.ranges()))
}

// Difference mutates c to remove every codepoint present in other.
func (c *CharClass) Difference(other *CharClass) {
	mustNotAlias(c, other)
	c.root = buildBalanced(differenceSpans(c.ranges(), other.ranges()))
}

func mustNotAlias(a, b *CharClass) {
	if a == b {
		panic("core: CharClass set operation with aliased argument")
	}
}

// ranges returns the class's disjoint ranges in increasing order.
func (c *CharClass) ranges() []rangeSpan {
	var out []rangeSpan
	var walk func(*rangeNode)
	walk = func(x *rangeNode) {
		if x == nil {
			return
		}
		walk(x.left)
		out = append(out, rangeSpan{x.lo, x.hi})
		walk(x.right)
	}
	walk(c.root)
	return out
}

// buildBalanced rebuilds a height-balanced tree from a sorted, disjoint
// span sequence by recursively splitting at the midpoint.
func buildBalanced(spans []rangeSpan) *rangeNode {
	if len(spans) == 0 {
		return nil
	}
	mid := len(spans) / 2
	n := &rangeNode{lo: spans[mid].lo, hi: spans[mid].hi}
	n.left = buildBalanced(spans[:mid])
	n.right = buildBalanced(spans[mid+1:])
	return n
}

// insertSpan merges s into spans, covering the algorithm's
// DISJOINT/LESS_THAN_MIN cases (s copied in verbatim, in sorted
// position) and its OVERLAP_ONE/OVERLAP_MULTIPLE/OVERLAP_ALL cases
// (every touching or adjacent existing range absorbed into s) in one
// pass over the sorted sequence.
func insertSpan(spans []rangeSpan, s rangeSpan) []rangeSpan {
	out := make([]rangeSpan, 0, len(spans)+1)
	lo, hi := s.lo, s.hi
	placed := false
	for _, r := range spans {
		if r.hi < lo-1 {
			out = append(out, r)
			continue
		}
		if r.lo > hi+1 {
			if !placed {
				out = append(out, rangeSpan{lo, hi})
				placed = true
			}
			out = append(out, r)
			continue
		}
		if r.lo < lo {
			lo = r.lo
		}
		if r.hi > hi {
			hi = r.hi
		}
	}
	if !placed {
		out = append(out, rangeSpan{lo, hi})
	}
	return out
}

// deleteSpan removes s from spans, splitting any range that only
// partially overlaps it.
func deleteSpan(spans []rangeSpan, s rangeSpan) []rangeSpan {
	out := make([]rangeSpan, 0, len(spans))
	for _, r := range spans {
		if r.hi < s.lo || r.lo > s.hi {
			out = append(out, r)
			continue
		}
		if r.lo < s.lo {
			out = append(out, rangeSpan{r.lo, s.lo - 1})
		}
		if r.hi > s.hi {
			out = append(out, rangeSpan{s.hi + 1, r.hi})
		}
	}
	return out
}

// unionSpans merges two sorted, disjoint range sequences into one,
// coalescing overlapping or adjacent ranges as it goes.
func unionSpans(a, b []rangeSpan) []rangeSpan {
	var out []rangeSpan
	i, j := 0, 0
	for {
		var next rangeSpan
		switch {
		case i < len(a) && (j >= len(b) || a[i].lo < b[j].lo):
			next = a[i]
			i++
		case j < len(b):
			next = b[j]
			j++
		default:
			return out
		}
		if len(out) == 0 {
			out = append(out, next)
			continue
		}
		last := &out[len(out)-1]
		if next.hi <= last.hi {
			continue
		}
		if next.lo <= last.hi+1 {
			last.hi = next.hi
			continue
		}
		out = append(out, next)
	}
}

// intersectSpans walks two sorted, disjoint range sequences in lockstep
// and emits their overlap.
func intersectSpans(a, b []rangeSpan) []rangeSpan {
	var out []rangeSpan
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		lo := maxRune(a[i].lo, b[j].lo)
		hi := minRune(a[i].hi, b[j].hi)
		if lo <= hi {
			out = append(out, rangeSpan{lo, hi})
		}
		if a[i].hi < b[j].hi {
			i++
		} else {
			j++
		}
	}
	return out
}

// differenceSpans removes every codepoint in b's ranges from a's,
// splitting a's ranges where b only partially covers them.
func differenceSpans(a, b []rangeSpan) []rangeSpan {
	var out []rangeSpan
	j := 0
	for _, s := range a {
		for j < len(b) && b[j].hi < s.lo {
			j++
		}
		k := j
		for k < len(b) && b[k].lo <= s.hi {
			o := b[k]
			if o.lo > s.lo {
				out = append(out, rangeSpan{s.lo, o.lo - 1})
			}
			if o.hi < s.hi {
				s.lo = o.hi + 1
			} else {
				s.lo = s.hi + 1
			}
			k++
		}
		if s.lo <= s.hi {
			out = append(out, s)
		}
	}
	return out
}

func maxRune(a, b rune) rune {
	if a > b {
		return a
	}
	return b
}

func minRune(a, b rune) rune {
	if a < b {
		return a
	}
	return b
}
