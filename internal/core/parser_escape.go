package core

// parseEscapeOutsideClass handles a backslash escape appearing in the
// main pattern body (as opposed to inside a bracket expression, which
// parser_class.go handles with slightly different rules — \b means
// backspace there, not a word boundary).
func (p *Parser) parseEscapeOutsideClass(stream *TokenStream) error {
	start := p.pos
	p.advance() // '\\'
	if p.eof() {
		return newCompileError(BOGESC, start)
	}
	c := p.peek()

	switch {
	case c >= '1' && c <= '9':
		n, _, _ := p.readDigits()
		stream.PushBack(&Token{Kind: TokReference, RefGroup: n, GroupNumber: NoGroup})
		return nil

	case c == 'g' || c == 'k':
		return p.parseNamedBackref(stream)

	case c == 'b':
		p.advance()
		stream.PushBack(&Token{Kind: TokWordAnchor, GroupNumber: NoGroup})
		return nil

	case c == 'B':
		p.advance()
		stream.PushBack(&Token{Kind: TokNWordAnchor, GroupNumber: NoGroup})
		return nil

	case c == '0':
		p.advance()
		stream.PushBack(&Token{Kind: TokEdgeAnchor, GroupNumber: NoGroup})
		return nil

	case c == 'N':
		p.advance()
		cls := NewCharClass()
		insertLineTerminators(cls)
		stream.PushBack(&Token{Kind: TokClass, Class: cls, Negated: true, GroupNumber: NoGroup})
		return nil

	case c == 'Q':
		p.advance()
		return p.parseLiteralBlock(stream)

	default:
		if cls, negated, ok := classEscapeSet(c); ok {
			p.advance()
			stream.PushBack(&Token{Kind: TokClass, Class: cls, Negated: negated, GroupNumber: NoGroup})
			return nil
		}
		cp, err := p.parseCharEscape()
		if err != nil {
			return err
		}
		stream.PushBack(&Token{Kind: TokLiteral, Literal: cp, GroupNumber: NoGroup})
		return nil
	}
}

// parseNamedBackref parses \g<n>, \g'n', \g<name>, \k<n>, \k'n',
// \k<name> — the leading \g or \k has not yet been consumed.
func (p *Parser) parseNamedBackref(stream *TokenStream) error {
	start := p.pos
	p.advance() // 'g' or 'k'
	var closeDelim byte
	switch p.peek() {
	case '<':
		closeDelim = '>'
	case '\'':
		closeDelim = '\''
	default:
		return newCompileError(BOGESC, start)
	}
	p.advance()
	body, err := p.readName(closeDelim)
	if err != nil {
		return err
	}
	p.advance() // closing delimiter
	if len(body) > 0 && isAllDigits(body) {
		n := 0
		for _, c := range []byte(body) {
			n = n*10 + int(c-'0')
		}
		stream.PushBack(&Token{Kind: TokReference, RefGroup: n, GroupNumber: NoGroup})
		return nil
	}
	if body == "" {
		return newCompileError(BOGESC, start)
	}
	stream.PushBack(&Token{Kind: TokName, Name: body, NameIsCall: false, NameGroup: -1, GroupNumber: NoGroup})
	return nil
}

func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// parseLiteralBlock parses the body of \Q...\E, emitting one LITERAL
// token per codepoint; weedeat later coalesces the run into a single
// STRING token, same as any other run of unquantified literals.
func (p *Parser) parseLiteralBlock(stream *TokenStream) error {
	for !p.eof() {
		if p.peek() == '\\' && p.peekAt(1) == 'E' {
			p.pos += 2
			return nil
		}
		cp, n := Decode(p.src[p.pos:])
		p.pos += n
		stream.PushBack(&Token{Kind: TokLiteral, Literal: cp, GroupNumber: NoGroup})
	}
	return nil
}

// parseCharEscape decodes a single-codepoint escape: octal, hex, or a
// named C-style control character. Only the outside-class escape parser
// uses it; parseClassAtomChar has its own escape table.
func (p *Parser) parseCharEscape() (rune, error) {
	start := p.pos
	c := p.advance()
	switch c {
	case 'a':
		return 0x07, nil
	case 'e':
		return 0x1B, nil
	case 't':
		return '\t', nil
	case 'n':
		return '\n', nil
	case 'v':
		return '\v', nil
	case 'f':
		return '\f', nil
	case 'r':
		return '\r', nil
	case 'x':
		return p.parseHexEscape(start)
	default:
		if c >= '0' && c <= '7' {
			return p.parseOctalEscape(c), nil
		}
		if isASCIIAlnum(c) {
			return 0, newCompileError(BOGESC, start)
		}
		// Any other punctuation escapes to itself: \. \* \( etc.
		return rune(c), nil
	}
}

func isASCIIAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func (p *Parser) parseHexEscape(start int) (rune, error) {
	if p.peek() == '{' {
		p.advance()
		v := 0
		n := 0
		for !p.eof() && isHexDigit(p.peek()) {
			v = v*16 + hexVal(p.advance())
			n++
		}
		if n == 0 || p.peek() != '}' {
			return 0, newCompileError(HEXESC, start)
		}
		p.advance()
		if rune(v) > MaxCodepoint {
			return 0, newCompileError(HEXESC, start)
		}
		return rune(v), nil
	}
	v := 0
	for i := 0; i < 2; i++ {
		if p.eof() || !isHexDigit(p.peek()) {
			return 0, newCompileError(HEXESC, start)
		}
		v = v*16 + hexVal(p.advance())
	}
	return rune(v), nil
}

func (p *Parser) parseOctalEscape(first byte) rune {
	v := int(first - '0')
	for i := 0; i < 2; i++ {
		if p.eof() || p.peek() < '0' || p.peek() > '7' {
			break
		}
		v = v*8 + int(p.advance()-'0')
	}
	return rune(v)
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

// classEscapeSet returns the class backing \d \D \w \W \s \S \h \H, or
// ok=false if c isn't one of those letters.
func classEscapeSet(c byte) (cls *CharClass, negated bool, ok bool) {
	switch c {
	case 'd':
		return digitClass(), false, true
	case 'D':
		return digitClass(), true, true
	case 'w':
		return wordClass(), false, true
	case 'W':
		return wordClass(), true, true
	case 's':
		return spaceClass(), false, true
	case 'S':
		return spaceClass(), true, true
	case 'h':
		return hspaceClass(), false, true
	case 'H':
		return hspaceClass(), true, true
	}
	return nil, false, false
}

func digitClass() *CharClass {
	c := NewCharClass()
	c.InsertRange('0', '9')
	return c
}

func wordClass() *CharClass {
	c := NewCharClass()
	c.InsertRange('0', '9')
	c.InsertRange('A', 'Z')
	c.InsertRange('a', 'z')
	c.InsertCodepoint('_')
	return c
}

func spaceClass() *CharClass {
	c := NewCharClass()
	for _, r := range []rune{'\t', '\n', '\f', '\r', ' '} {
		c.InsertCodepoint(r)
	}
	return c
}

// hspaceClass is \h's base set: hexadecimal digits, not horizontal
// whitespace.
func hspaceClass() *CharClass {
	c := NewCharClass()
	c.InsertRange('0', '9')
	c.InsertRange('a', 'f')
	c.InsertRange('A', 'F')
	return c
}
