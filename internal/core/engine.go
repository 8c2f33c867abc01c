package core

import "bytes"

// matchState is the per-match context shared by every recursive core
// invocation of a single top-level match attempt: the input buffer
// (NUL-terminated internally, per spec.md's design note that the
// engine treats byte 0 as end-of-string) and the fixed start-of-input
// offset anchors reference. It plays the role the teacher's `machine`
// struct plays for its byte-code interpreter, generalized to carry
// context for a graph of mutually recursive Core/Branch/Atom values
// instead of a flat instruction array.
type matchState struct {
	input []byte
	head  int
}

func newMatchState(s string) *matchState {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	buf[len(s)] = 0
	return &matchState{input: buf}
}

func (m *matchState) atEnd(pos int) bool {
	return pos >= len(m.input) || m.input[pos] == 0
}

// coreIter drives one Core's branch selection and backtracking, and can
// be resumed via next() to produce successive leftmost-first solutions
// at the same starting position. Storing one of these on a Recursive
// stack frame (spec.md §4.7.1's FoundMatch step, §4.7.4's
// core_match_continue) is what lets the engine backtrack into a
// previously matched repetition of a Group or Subroutine atom and try
// a different internal split, without native recursion driving the
// search itself — recursion here is bounded by the pattern's own
// nesting depth (one Go call per Core level), never by input length or
// repetition count, which stay on the explicit BacktrackStack.
type coreIter struct {
	m         *matchState
	core      *Core
	pos       int
	groups    *CaptureStore
	branch    *Branch
	branchNum int
	stack     *BacktrackStack
	done      bool
}

func (m *matchState) newCoreIter(c *Core, pos int, groups *CaptureStore) *coreIter {
	return &coreIter{m: m, core: c, pos: pos, groups: groups, branch: c.Branches}
}

// next runs (or resumes) the branch/backtracking search and returns the
// next leftmost-first solution, if any.
func (it *coreIter) next() (end int, ok bool) {
	if it.done {
		return it.pos, false
	}
	for it.branch != nil {
		if it.stack == nil {
			it.stack = NewBacktrackStack()
			it.stack.Push(Frame{AtomIndex: 0, InputPos: it.pos})
			if it.core.GroupIndex >= 0 {
				it.groups.Clear(it.core.GroupIndex)
			}
		}
		end, ok := it.m.branchMatch(it.branch, it.stack, it.groups)
		if ok {
			if it.core.GroupIndex >= 0 {
				it.groups.Set(it.core.GroupIndex, it.pos, end)
			}
			return end, true
		}
		it.branch = it.branch.Next
		it.branchNum++
		it.stack = nil
	}
	it.done = true
	return it.pos, false
}

// branchMatch is spec.md §4.7.2's loop, extended to recognize Recursive
// frames (§4.7.4): a frame produced when an earlier repetition of a
// Group/Subroutine atom succeeded and might have another internal
// solution worth trying before giving up on that repetition entirely.
func (m *matchState) branchMatch(branch *Branch, stack *BacktrackStack, groups *CaptureStore) (int, bool) {
	for !stack.Empty() {
		top := *stack.Top()

		if top.Recursive {
			stack.Pop()
			end, ok := top.Inner.next()
			if !ok {
				continue
			}
			atom := branch.Atoms[top.AtomIndex]
			stack.Push(Frame{Recursive: true, Inner: top.Inner, AtomIndex: top.AtomIndex, MatchCount: top.MatchCount})
			if atom.Greedy {
				m.greedyLoop(atom, top.AtomIndex, end, top.MatchCount, stack, groups)
			} else {
				m.lazyDecision(atom, top.AtomIndex, top.MatchCount, end, stack, groups)
			}
			continue
		}

		if top.AtomIndex == len(branch.Atoms) {
			f, _ := stack.Pop()
			return f.InputPos, true
		}

		atomIdx := top.AtomIndex
		atom := branch.Atoms[atomIdx]
		f, _ := stack.Pop()
		if f.NestSnapshot != nil {
			groups.Restore(f.NestSnapshot)
		}

		if f.LazyAdvance {
			m.lazyAdvanceOnce(atom, atomIdx, f.MatchCount, f.InputPos, stack, groups)
			continue
		}

		switch atom.Kind {
		case AtomString, AtomLookahead, AtomWordAnchor, AtomEdgeAnchor:
			end, ok := m.matchNonRepeatingOnce(atom, f.InputPos, groups)
			if ok {
				stack.Push(Frame{AtomIndex: atomIdx + 1, InputPos: end})
			}
		default:
			if atom.Greedy {
				m.greedyLoop(atom, atomIdx, f.InputPos, f.MatchCount, stack, groups)
			} else {
				m.lazyDecision(atom, atomIdx, f.MatchCount, f.InputPos, stack, groups)
			}
		}
	}
	return 0, false
}

// atomWritesCaptures reports whether one attempt of atom can mutate the
// shared capture array, which decides whether a resumption frame needs
// a capture snapshot to roll back to when a longer/later attempt is
// abandoned.
func atomWritesCaptures(k AtomKind) bool {
	return k == AtomGroup || k == AtomAtomicGroup || k == AtomSubroutine
}

// greedyLoop implements spec.md §4.7.3's greedy repetition algorithm:
// push a resumption point at every valid match count before trying to
// extend it further, so the longest attempt is tried first and
// backtracking walks resumption points from longest to shortest.
func (m *matchState) greedyLoop(atom *Atom, atomIdx, pos, count int, stack *BacktrackStack, groups *CaptureStore) {
	for {
		inRange := count >= atom.Min && (atom.Max == Unbounded || count <= atom.Max)
		if inRange {
			var snap []Capture
			if atomWritesCaptures(atom.Kind) {
				snap = groups.Snapshot()
			}
			stack.Push(Frame{AtomIndex: atomIdx + 1, InputPos: pos, NestSnapshot: snap})
		}
		if (atom.Max != Unbounded && count == atom.Max) || m.atEnd(pos) {
			return
		}
		end, ok := m.attemptOnce(atom, atomIdx, count+1, pos, stack, groups)
		if !ok {
			return
		}
		pos = end
		count++
	}
}

// lazyDecision implements spec.md §4.7.3's lazy repetition algorithm's
// per-step choice: once the count is in range, try the successor now
// (fewer repetitions preferred) but leave a frame that can advance the
// primitive if that fails.
func (m *matchState) lazyDecision(atom *Atom, atomIdx, count, pos int, stack *BacktrackStack, groups *CaptureStore) {
	inRange := count >= atom.Min && (atom.Max == Unbounded || count <= atom.Max)
	if inRange {
		canAdvance := !(atom.Max != Unbounded && count == atom.Max) && !m.atEnd(pos)
		if canAdvance {
			var snap []Capture
			if atomWritesCaptures(atom.Kind) {
				snap = groups.Snapshot()
			}
			stack.Push(Frame{AtomIndex: atomIdx, MatchCount: count, InputPos: pos, LazyAdvance: true, NestSnapshot: snap})
		}
		var snap2 []Capture
		if atomWritesCaptures(atom.Kind) {
			snap2 = groups.Snapshot()
		}
		stack.Push(Frame{AtomIndex: atomIdx + 1, InputPos: pos, NestSnapshot: snap2})
		return
	}
	m.lazyAdvanceOnce(atom, atomIdx, count, pos, stack, groups)
}

// lazyAdvanceOnce performs the deferred "try one more repetition" step
// of the lazy loop, then re-enters the decision at the new count.
func (m *matchState) lazyAdvanceOnce(atom *Atom, atomIdx, count, pos int, stack *BacktrackStack, groups *CaptureStore) {
	if m.atEnd(pos) {
		return
	}
	end, ok := m.attemptOnce(atom, atomIdx, count+1, pos, stack, groups)
	if !ok {
		return
	}
	m.lazyDecision(atom, atomIdx, count+1, end, stack, groups)
}

// attemptOnce runs one repetition of a repeating atom's primitive.
// Class and Backreference are deterministic (no internal alternatives,
// so nothing is pushed); Group and Subroutine push a Recursive frame so
// a later backtrack can ask for a different internal solution; Atomic
// runs once and discards its iterator, cutting off backtracking into it
// entirely (spec.md §4.7.3's Atomic primitive).
func (m *matchState) attemptOnce(atom *Atom, atomIdx, newCount, pos int, stack *BacktrackStack, groups *CaptureStore) (int, bool) {
	switch atom.Kind {
	case AtomClass:
		return m.matchClassOnce(atom, pos)
	case AtomBackreference:
		return m.matchBackrefOnce(atom, pos, groups)
	case AtomAtomicGroup:
		it := m.newCoreIter(atom.Nested, pos, groups)
		return it.next()
	case AtomGroup:
		it := m.newCoreIter(atom.Nested, pos, groups)
		end, ok := it.next()
		if !ok {
			return pos, false
		}
		stack.Push(Frame{Recursive: true, Inner: it, AtomIndex: atomIdx, MatchCount: newCount})
		return end, true
	case AtomSubroutine:
		if atom.SubroutineCore == nil {
			return pos, false
		}
		// Isolated capture array: the subroutine's own group writes
		// never become visible in the caller's groups (spec.md §4.7.3,
		// §4.8's subroutine isolation).
		isolated := &CaptureStore{slots: groups.Snapshot()}
		it := m.newCoreIter(atom.SubroutineCore, pos, isolated)
		end, ok := it.next()
		if !ok {
			return pos, false
		}
		stack.Push(Frame{Recursive: true, Inner: it, AtomIndex: atomIdx, MatchCount: newCount})
		return end, true
	}
	return pos, false
}

func (m *matchState) matchClassOnce(atom *Atom, pos int) (int, bool) {
	cp, n := Decode(m.input[pos:])
	if n == 0 {
		return pos, false
	}
	in := atom.Class.Search(cp)
	if !in && atom.FoldCase {
		in = atom.Class.Search(swapASCIICase(cp))
	}
	if in == atom.Invert {
		return pos, false
	}
	return pos + n, true
}

func (m *matchState) matchBackrefOnce(atom *Atom, pos int, groups *CaptureStore) (int, bool) {
	g := groups.Get(atom.RefGroup)
	if g.Begin < 0 {
		return pos, false
	}
	want := m.input[g.Begin:g.End]
	if pos+len(want) > len(m.input) {
		return pos, false
	}
	got := m.input[pos : pos+len(want)]
	if atom.FoldCase {
		if !bytesEqualFold(got, want) {
			return pos, false
		}
	} else if !bytes.Equal(got, want) {
		return pos, false
	}
	return pos + len(want), true
}

// swapASCIICase flips the case of an ASCII letter codepoint, leaving
// anything else unchanged — the CaseInsensitive option folds ASCII
// only (SPEC_FULL.md §6).
func swapASCIICase(cp rune) rune {
	switch {
	case cp >= 'a' && cp <= 'z':
		return cp - 32
	case cp >= 'A' && cp <= 'Z':
		return cp + 32
	}
	return cp
}

func asciiLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 32
	}
	return b
}

func bytesEqualFold(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if asciiLower(a[i]) != asciiLower(b[i]) {
			return false
		}
	}
	return true
}

func (m *matchState) matchNonRepeatingOnce(atom *Atom, pos int, groups *CaptureStore) (int, bool) {
	switch atom.Kind {
	case AtomString:
		s := atom.Str
		if pos+len(s) > len(m.input) {
			return pos, false
		}
		got := m.input[pos : pos+len(s)]
		if atom.FoldCase {
			if !bytesEqualFold(got, s) {
				return pos, false
			}
		} else if !bytes.Equal(got, s) {
			return pos, false
		}
		return pos + len(s), true

	case AtomLookahead:
		it := m.newCoreIter(atom.Nested, pos, groups)
		_, ok := it.next()
		return pos, ok != atom.Invert

	case AtomWordAnchor:
		return pos, m.isWordBoundary(pos) != atom.Invert

	case AtomEdgeAnchor:
		if atom.Invert {
			return pos, pos == m.head
		}
		return pos, m.atEnd(pos)
	}
	return pos, false
}

func (m *matchState) isWordBoundary(pos int) bool {
	wc := WordCharacters()
	before := pos > 0 && wc.Search(rune(m.input[pos-1]))
	after := pos < len(m.input) && m.input[pos] != 0 && wc.Search(rune(m.input[pos]))
	return before != after
}

// Execute runs the compiled pattern rooted at root against s, starting
// the attempt at byte offset startPos, and returns the capture array
// and match end on success.
func Execute(root *Core, groupCount int, s string, startPos int) (*CaptureStore, int, bool) {
	m := newMatchState(s)
	groups := NewCaptureStore(groupCount)
	it := m.newCoreIter(root, startPos, groups)
	end, ok := it.next()
	return groups, end, ok
}

// Search tries successive start positions from 0 through len(s) and
// returns the leftmost-first match (spec.md §6).
func Search(root *Core, groupCount int, s string) (*CaptureStore, int, int, bool) {
	return SearchFrom(root, groupCount, s, 0)
}

// SearchFrom is Search restricted to start positions at or after from,
// which backs Scanner's repeated-match iteration (SPEC_FULL.md §6).
func SearchFrom(root *Core, groupCount int, s string, from int) (*CaptureStore, int, int, bool) {
	m := newMatchState(s)
	for pos := from; pos <= len(s); pos++ {
		groups := NewCaptureStore(groupCount)
		it := m.newCoreIter(root, pos, groups)
		if end, ok := it.next(); ok {
			return groups, pos, end, true
		}
	}
	return nil, 0, 0, false
}

// Entire requires the match to start at offset 0 and consume the whole
// string, trying successive internal solutions at that one start
// position until one does (or the possibilities are exhausted).
func Entire(root *Core, groupCount int, s string) (*CaptureStore, bool) {
	m := newMatchState(s)
	groups := NewCaptureStore(groupCount)
	it := m.newCoreIter(root, 0, groups)
	for {
		end, ok := it.next()
		if !ok {
			return nil, false
		}
		if end == len(s) {
			return groups, true
		}
	}
}
