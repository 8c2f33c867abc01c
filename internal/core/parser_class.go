package core

// parseBracketExpression parses a `[...]` bracket expression: negation,
// ranges, nested classes with union/intersection/difference operators,
// and the escapes valid inside a class. The leading '[' has not yet
// been consumed.
func (p *Parser) parseBracketExpression() (*Token, error) {
	cls, negated, err := p.parseBracketBody()
	if err != nil {
		return nil, err
	}
	if cls.Empty() {
		return nil, newCompileError(EMPCLA, p.pos)
	}
	return &Token{Kind: TokClass, Class: cls, Negated: negated, GroupNumber: NoGroup}, nil
}

// parseBracketBody parses the '[' up through its matching ']' and
// returns the raw (possibly empty) class and its negation flag, without
// the EMPCLA check — used both for the top-level class token and for
// nested `[...]` operands, where an empty nested operand is legal (it
// just contributes nothing to the enclosing set operation).
func (p *Parser) parseBracketBody() (*CharClass, bool, error) {
	p.advance() // '['
	negated := false
	if p.peek() == '^' {
		negated = true
		p.advance()
	}

	cls := NewCharClass()
	for {
		if p.eof() {
			return nil, false, newCompileError(UNBBRA, p.pos)
		}
		switch {
		case p.peek() == ']':
			p.advance()
			return cls, negated, nil

		case p.peek() == '&' && p.peekAt(1) == '&' && p.peekAt(2) == '[':
			p.pos += 2
			nested, err := p.parseNestedClassValue()
			if err != nil {
				return nil, false, err
			}
			cls.Intersection(nested)

		case p.peek() == '-' && p.peekAt(1) == '[':
			p.advance()
			nested, err := p.parseNestedClassValue()
			if err != nil {
				return nil, false, err
			}
			cls.Difference(nested)

		case p.peek() == '[':
			nested, err := p.parseNestedClassValue()
			if err != nil {
				return nil, false, err
			}
			cls.Union(nested)

		default:
			r1, isChar, err := p.parseClassAtomChar(cls)
			if err != nil {
				return nil, false, err
			}
			if !isChar {
				continue // shorthand escape already unioned into cls
			}
			if p.peek() == '-' && p.peekAt(1) != 0 && p.peekAt(1) != ']' {
				save := p.pos
				p.advance() // '-'
				r2, isChar2, err := p.parseClassAtomChar(cls)
				if err != nil {
					return nil, false, err
				}
				if !isChar2 {
					return nil, false, newCompileError(BADRAN, save)
				}
				if r2 < r1 {
					return nil, false, newCompileError(BADRAN, save)
				}
				cls.InsertRange(r1, r2)
			} else {
				cls.InsertCodepoint(r1)
			}
		}
	}
}

// parseNestedClassValue parses a nested `[...]` operand and returns the
// class it denotes, applying its own negation immediately (as a
// complement against the full codepoint space) so the caller can union,
// intersect, or subtract it directly.
func (p *Parser) parseNestedClassValue() (*CharClass, error) {
	cls, negated, err := p.parseBracketBody()
	if err != nil {
		return nil, err
	}
	if negated {
		full := NewCharClass()
		full.InsertRange(0, MaxCodepoint)
		full.Difference(cls)
		cls = full
	}
	return cls, nil
}

// parseClassAtomChar parses one character-position inside a bracket
// expression: an escape or a literal byte. If the escape denotes a
// shorthand class (\d, \w, \s, \h and their negations), it is unioned
// directly into cls and isChar is false — the caller has nothing to
// range against.
func (p *Parser) parseClassAtomChar(cls *CharClass) (r rune, isChar bool, err error) {
	if p.eof() {
		return 0, false, newCompileError(UNBBRA, p.pos)
	}
	if p.peek() != '\\' {
		cp, n := Decode(p.src[p.pos:])
		p.pos += n
		return cp, true, nil
	}

	start := p.pos
	p.advance() // '\\'
	if p.eof() {
		return 0, false, newCompileError(BOGESC, start)
	}
	c := p.peek()

	if shorthand, negated, ok := classEscapeSet(c); ok {
		p.advance()
		if negated {
			full := NewCharClass()
			full.InsertRange(0, MaxCodepoint)
			full.Difference(shorthand)
			shorthand = full
		}
		cls.Union(shorthand)
		return 0, false, nil
	}

	switch c {
	case ']', '\\', '-', '^', '&':
		p.advance()
		return rune(c), true, nil
	case '0':
		p.advance()
		return 0, true, nil
	case 'a':
		p.advance()
		return 0x07, true, nil
	case 'b':
		p.advance()
		return 0x08, true, nil
	case 't':
		p.advance()
		return '\t', true, nil
	case 'n':
		p.advance()
		return '\n', true, nil
	case 'v':
		p.advance()
		return '\v', true, nil
	case 'f':
		p.advance()
		return '\f', true, nil
	case 'r':
		p.advance()
		return '\r', true, nil
	case 'x':
		p.advance()
		cp, err := p.parseHexEscape(start)
		return cp, true, err
	default:
		if c >= '1' && c <= '7' {
			p.advance()
			return p.parseOctalEscape(c), true, nil
		}
		if isASCIIAlnum(c) {
			return 0, false, newCompileError(BOGESC, start)
		}
		p.advance()
		return rune(c), true, nil
	}
}
