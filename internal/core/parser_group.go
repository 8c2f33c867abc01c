package core

// parseGroup parses a parenthesized construct: a plain capturing group,
// a non-capturing/atomic/lookaround group, a named capture, or a
// subroutine call. The leading '(' has not yet been consumed.
func (p *Parser) parseGroup() (*Token, error) {
	openPos := p.pos
	p.advance() // '('

	if p.peek() != '?' {
		gn := p.groupCount
		p.groupCount++
		sub, err := p.parseGroupBody(true)
		if err != nil {
			return nil, err
		}
		return &Token{Kind: TokGroup, Sub: sub, GroupNumber: gn}, nil
	}

	p.advance() // '?'
	switch c := p.peek(); {
	case c == ':':
		p.advance()
		sub, err := p.parseGroupBody(true)
		if err != nil {
			return nil, err
		}
		return &Token{Kind: TokGroup, Sub: sub, GroupNumber: NoGroup}, nil

	case c == '>':
		p.advance()
		sub, err := p.parseGroupBody(true)
		if err != nil {
			return nil, err
		}
		return &Token{Kind: TokAtomic, Sub: sub, GroupNumber: NoGroup}, nil

	case c == '=':
		p.advance()
		sub, err := p.parseGroupBody(true)
		if err != nil {
			return nil, err
		}
		return &Token{Kind: TokLookahead, Sub: sub, GroupNumber: NoGroup}, nil

	case c == '!':
		p.advance()
		sub, err := p.parseGroupBody(true)
		if err != nil {
			return nil, err
		}
		return &Token{Kind: TokNLookahead, Sub: sub, GroupNumber: NoGroup}, nil

	case c == 'P' && p.peekAt(1) == '<':
		p.advance() // 'P'
		return p.parseNamedGroup('<', '>')

	case c == '<' && p.peekAt(1) != '=' && p.peekAt(1) != '!':
		return p.parseNamedGroup('<', '>')

	case c == '<':
		// (?<= or (?<! : lookbehind. Left unspecified by spec.md (an
		// open question the original leaves undefined); bucketed with
		// every other unrecognized (?X construct.
		return nil, newCompileError(QUEPAR, openPos)

	case c == '\'':
		return p.parseNamedGroup('\'', '\'')

	case c == 'R':
		p.advance()
		if p.peek() != ')' {
			return nil, newCompileError(QUEPAR, openPos)
		}
		p.advance()
		return &Token{Kind: TokSubroutine, RefGroup: 0, GroupNumber: NoGroup}, nil

	case c == '&':
		p.advance()
		name, err := p.readName(')')
		if err != nil {
			return nil, err
		}
		p.advance() // ')'
		return &Token{Kind: TokName, Name: name, NameIsCall: true, NameGroup: -1, GroupNumber: NoGroup}, nil

	case c >= '0' && c <= '9':
		n, _, _ := p.readDigits()
		if p.peek() != ')' {
			return nil, newCompileError(QUEPAR, openPos)
		}
		p.advance()
		return &Token{Kind: TokSubroutine, RefGroup: n, GroupNumber: NoGroup}, nil

	default:
		return nil, newCompileError(QUEPAR, openPos)
	}
}

func (p *Parser) parseNamedGroup(openDelim, closeDelim byte) (*Token, error) {
	p.advance() // opening delimiter
	name, err := p.readName(closeDelim)
	if err != nil {
		return nil, err
	}
	p.advance() // closing delimiter
	if len(name) > 0 && name[0] >= '0' && name[0] <= '9' {
		return nil, newCompileError(GRPDIG, p.pos)
	}
	if _, dup := p.names[name]; dup {
		return nil, newCompileError(NAMEXT, p.pos)
	}
	gn := p.groupCount
	p.groupCount++
	p.names[name] = gn
	sub, err := p.parseGroupBody(true)
	if err != nil {
		return nil, err
	}
	return &Token{Kind: TokGroup, Sub: sub, GroupNumber: gn}, nil
}

func (p *Parser) readName(closeDelim byte) (string, error) {
	start := p.pos
	for {
		if p.eof() {
			return "", newCompileError(UNBPAR, p.pos)
		}
		if p.peek() == closeDelim {
			break
		}
		p.advance()
	}
	if p.pos == start {
		return "", newCompileError(NERROR, p.pos)
	}
	return string(p.src[start:p.pos]), nil
}
