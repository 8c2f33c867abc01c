package vinex

import "github.com/vinex/vinex/internal/core"

// Scanner iterates over successive, non-overlapping matches of a Pattern
// in a string.
type Scanner struct {
	p       *Pattern
	src     string
	pos     int
	done    bool
	current *Match
}

// Scanner returns a Scanner that finds successive matches of p in s.
func (p *Pattern) Scanner(s string) *Scanner {
	return &Scanner{p: p, src: s}
}

// Next advances the Scanner to the next match, reporting whether one was
// found. A zero-length match advances the scan position by one byte
// before the next call, so Next never returns the same empty match twice
// (SPEC_FULL.md §6).
func (s *Scanner) Next() bool {
	if s.done {
		return false
	}
	groups, start, end, ok := core.SearchFrom(s.p.root, s.p.groupCount, s.src, s.pos)
	if !ok {
		s.done = true
		s.current = nil
		return false
	}
	s.current = &Match{src: s.src, groups: groups, names: s.p.names, start: start, end: end}
	if end == start {
		s.pos = end + 1
	} else {
		s.pos = end
	}
	if s.pos > len(s.src) {
		s.done = true
	}
	return true
}

// Match returns the match found by the most recent call to Next, or nil
// if Next has not been called or returned false.
func (s *Scanner) Match() *Match { return s.current }
