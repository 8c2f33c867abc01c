package core

// pendingSubroutine records an unresolved SUBROUTINE atom until the
// whole matcher graph exists, per spec.md §4.5/§9: cores are built
// depth-first before any back-edge can be resolved, because a
// subroutine may target a group defined later in the pattern.
type pendingSubroutine struct {
	atom   *Atom
	target int
}

// BuildMatcher lowers a parsed token stream into the root Core of the
// matcher graph, resolving every subroutine call's back-edge once the
// whole graph exists. foldCase threads the CaseInsensitive compile
// option (SPEC_FULL.md §6) onto every Class/String/Backreference atom.
func BuildMatcher(res *ParseResult, foldCase bool) (*Core, error) {
	var pending []pendingSubroutine
	root := buildCore(res.Tokens, 0, &pending, foldCase)
	for _, ps := range pending {
		target := findCore(root, ps.target)
		if target == nil {
			return nil, newCompileError(BADREF, 0)
		}
		ps.atom.SubroutineCore = target
	}
	return root, nil
}

func buildCore(ts *TokenStream, groupIndex int, pending *[]pendingSubroutine, foldCase bool) *Core {
	core := &Core{GroupIndex: groupIndex}
	head := &Branch{}
	cur := head

	appendAtom := func(a *Atom) {
		cur.Atoms = append(cur.Atoms, a)
	}
	lastAtom := func() *Atom {
		return cur.Atoms[len(cur.Atoms)-1]
	}

	for t := ts.Front(); t != nil; t = t.next {
		switch t.Kind {
		case TokAlternator:
			nb := &Branch{}
			cur.Next = nb
			cur = nb

		case TokRange:
			a := lastAtom()
			a.Min, a.Max = t.Min, t.Max

		case TokLazy:
			lastAtom().Greedy = false

		case TokClass:
			appendAtom(&Atom{Kind: AtomClass, Class: t.Class, Invert: t.Negated, Min: 1, Max: 1, Greedy: true, FoldCase: foldCase})

		case TokString:
			appendAtom(&Atom{Kind: AtomString, Str: t.Str, Min: 1, Max: 1, Greedy: true, FoldCase: foldCase})

		case TokGroup:
			nested := buildCore(t.Sub, t.GroupNumber, pending, foldCase)
			appendAtom(&Atom{Kind: AtomGroup, Nested: nested, Min: 1, Max: 1, Greedy: true})

		case TokAtomic:
			nested := buildCore(t.Sub, NoGroup, pending, foldCase)
			appendAtom(&Atom{Kind: AtomAtomicGroup, Nested: nested, Min: 1, Max: 1, Greedy: true})

		case TokLookahead:
			nested := buildCore(t.Sub, NoGroup, pending, foldCase)
			appendAtom(&Atom{Kind: AtomLookahead, Nested: nested, Invert: false, Min: 1, Max: 1, Greedy: true})

		case TokNLookahead:
			nested := buildCore(t.Sub, NoGroup, pending, foldCase)
			appendAtom(&Atom{Kind: AtomLookahead, Nested: nested, Invert: true, Min: 1, Max: 1, Greedy: true})

		case TokReference:
			appendAtom(&Atom{Kind: AtomBackreference, RefGroup: t.RefGroup, Min: 1, Max: 1, Greedy: true, FoldCase: foldCase})

		case TokSubroutine:
			a := &Atom{Kind: AtomSubroutine, Min: 1, Max: 1, Greedy: true}
			appendAtom(a)
			*pending = append(*pending, pendingSubroutine{atom: a, target: t.RefGroup})

		case TokWordAnchor:
			appendAtom(&Atom{Kind: AtomWordAnchor, Invert: false, Min: 1, Max: 1, Greedy: true})

		case TokNWordAnchor:
			appendAtom(&Atom{Kind: AtomWordAnchor, Invert: true, Min: 1, Max: 1, Greedy: true})

		case TokStanch:
			appendAtom(&Atom{Kind: AtomEdgeAnchor, Invert: true, Min: 1, Max: 1, Greedy: true})

		case TokEdgeAnchor:
			appendAtom(&Atom{Kind: AtomEdgeAnchor, Invert: false, Min: 1, Max: 1, Greedy: true})

		case TokEmpty:
			// zero-width, matches unconditionally; represented as an
			// empty literal string atom.
			appendAtom(&Atom{Kind: AtomString, Str: nil, Min: 1, Max: 1, Greedy: true})
		}
	}

	core.Branches = head
	return core
}

// findCore looks up the Core with the given group index inside root's
// owned subtree (root itself if target is 0, meaning "the whole
// pattern"). It only follows owning Nested pointers, never
// SubroutineCore back-edges, so it terminates even though the graph as
// a whole is not acyclic.
func findCore(root *Core, target int) *Core {
	if target == 0 {
		return root
	}
	var found *Core
	var walk func(*Core)
	walk = func(c *Core) {
		if found != nil || c == nil {
			return
		}
		if c.GroupIndex == target {
			found = c
			return
		}
		for b := c.Branches; b != nil; b = b.Next {
			for _, a := range b.Atoms {
				if a.Nested != nil {
					walk(a.Nested)
				}
			}
		}
	}
	walk(root)
	return found
}
