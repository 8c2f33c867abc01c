package core

// badrefCheck implements spec.md §4.4's post-parse validation: it
// resolves NAME tokens to a group number using the parser's name table
// (BADREF if the name is unknown) and turns them into REFERENCE or
// SUBROUTINE tokens depending on whether the name was written as a
// backreference (\g<name>, \k<name>) or a subroutine call ((?&name)).
// It then verifies every REFERENCE/SUBROUTINE's group number is within
// range.
func badrefCheck(ts *TokenStream, res *ParseResult) error {
	return walkBadref(ts, res)
}

func walkBadref(ts *TokenStream, res *ParseResult) error {
	for t := ts.Front(); t != nil; t = t.next {
		switch t.Kind {
		case TokName:
			gn, ok := res.Names[t.Name]
			if !ok {
				return newCompileError(BADREF, 0)
			}
			t.NameGroup = gn
			if t.NameIsCall {
				t.Kind = TokSubroutine
				t.RefGroup = gn
			} else {
				t.Kind = TokReference
				t.RefGroup = gn
			}

		case TokReference:
			if t.RefGroup < 0 || t.RefGroup >= res.GroupCount {
				return newCompileError(BADREF, 0)
			}

		case TokSubroutine:
			if t.RefGroup != 0 && (t.RefGroup < 0 || t.RefGroup >= res.GroupCount) {
				return newCompileError(BADREF, 0)
			}
		}

		if t.Sub != nil {
			if err := walkBadref(t.Sub, res); err != nil {
				return err
			}
		}
	}
	return nil
}
