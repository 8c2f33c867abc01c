package core

// weedeat is the post-parse normalization pass from spec.md §4.4. It
// runs once at every nesting level (top level and inside every
// GROUP/ATOMIC/LOOKAHEAD/NLOOKAHEAD sub-stream) and is idempotent: a
// second application is a no-op because each rewrite leaves behind a
// form the corresponding rule no longer matches.
func weedeat(ts *TokenStream) *TokenStream {
	rewriteNulClasses(ts)
	coalesceLiterals(ts)
	rewritePossessive(ts)
	rewriteStandaloneLiterals(ts)

	for t := ts.Front(); t != nil; t = t.next {
		if t.Sub != nil {
			t.Sub = weedeat(t.Sub)
		}
	}
	return ts
}

// rewriteNulClasses implements rule 1: a CLASS containing \0, or an
// NCLASS whose base set does not contain \0, is rewritten in place to a
// non-capturing group `(?:[class-without-\0]|$)` so the byte the engine
// treats as end-of-string is matched via the end anchor instead of
// being consumed as data.
func rewriteNulClasses(ts *TokenStream) {
	for t := ts.Front(); t != nil; t = t.next {
		if t.Kind != TokClass {
			continue
		}
		hasNul := t.Class.Search(0)
		needsRewrite := (!t.Negated && hasNul) || (t.Negated && !hasNul)
		if !needsRewrite {
			continue
		}

		stripped := t.Class.Copy()
		if t.Negated {
			// The negated class doesn't cover \0 yet, so its complement
			// (what it actually matches) still includes \0. Add \0 to the
			// base set so the rewritten negated class excludes it too,
			// leaving the end-anchor alternative to match \0 instead.
			stripped.InsertCodepoint(0)
		} else if stripped.Search(0) {
			stripped.DeleteCodepoint(0)
		}

		sub := NewTokenStream()
		sub.PushBack(&Token{Kind: TokClass, Class: stripped, Negated: t.Negated, GroupNumber: NoGroup})
		sub.PushBack(&Token{Kind: TokAlternator, GroupNumber: NoGroup})
		sub.PushBack(&Token{Kind: TokEdgeAnchor, GroupNumber: NoGroup})

		t.Kind = TokGroup
		t.Class = nil
		t.Negated = false
		t.Sub = sub
		t.GroupNumber = NoGroup
	}
}

// coalesceLiterals implements rule 2: maximal runs of unquantified
// LITERAL tokens become one STRING token holding their UTF-8 bytes.
func coalesceLiterals(ts *TokenStream) {
	t := ts.Front()
	for t != nil {
		if t.Kind != TokLiteral || isQuantified(t) {
			t = t.next
			continue
		}
		runStart := t
		runEnd := t
		for runEnd.next != nil && runEnd.next.Kind == TokLiteral && !isQuantified(runEnd.next) {
			runEnd = runEnd.next
		}
		var buf []byte
		var tmp [4]byte
		for n := runStart; ; n = n.next {
			w := Encode(n.Literal, tmp[:])
			buf = append(buf, tmp[:w]...)
			if n == runEnd {
				break
			}
		}
		after := runEnd.next
		cut, prev := ts.Slice(runStart, runEnd)
		_ = cut
		strTok := &Token{Kind: TokString, Str: buf, GroupNumber: NoGroup}
		ts.InsertAfter(prev, strTok)
		t = after
	}
}

// isQuantified reports whether the token immediately following t is a
// RANGE token, meaning t carries an explicit repetition and must not be
// folded into a STRING run.
func isQuantified(t *Token) bool {
	return t.next != nil && t.next.Kind == TokRange
}

// rewritePossessive implements rule 3: an [ATOM, RANGE, POSSESSIVE]
// triplet becomes a single ATOMIC group wrapping [ATOM, RANGE].
func rewritePossessive(ts *TokenStream) {
	t := ts.Front()
	for t != nil {
		next := t.next
		if t.Kind == TokPossessive {
			rangeTok := t.prev
			atomTok := rangeTok.prev

			sub, prev := ts.Slice(atomTok, rangeTok)
			atomicTok := &Token{Kind: TokAtomic, Sub: sub, GroupNumber: NoGroup}
			ts.Remove(t)
			ts.InsertAfter(prev, atomicTok)
		}
		t = next
	}
}

// rewriteStandaloneLiterals implements rule 4: any LITERAL token that
// survived coalescing (because it carries a quantifier) becomes a
// single-codepoint CLASS.
func rewriteStandaloneLiterals(ts *TokenStream) {
	for t := ts.Front(); t != nil; t = t.next {
		if t.Kind != TokLiteral {
			continue
		}
		cls := NewCharClass()
		cls.InsertCodepoint(t.Literal)
		t.Kind = TokClass
		t.Class = cls
		t.Negated = false
	}
}
