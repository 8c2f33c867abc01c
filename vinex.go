// Package vinex is a backtracking regular expression engine: leftmost-first
// semantics, capturing groups, backreferences, subroutine calls, atomic
// groups and lookaheads, compiled from source with no JIT or DFA step.
package vinex

import (
	"github.com/vinex/vinex/internal/core"
)

// CompileOption adjusts how Compile builds a Pattern.
type CompileOption func(*compileConfig)

type compileConfig struct {
	caseInsensitive bool
}

// CaseInsensitive folds ASCII letter case when matching classes, literal
// strings, and backreferences. It does not fold non-ASCII letters — vinex
// carries no Unicode case-folding tables (SPEC_FULL.md §6, §8).
func CaseInsensitive() CompileOption {
	return func(c *compileConfig) { c.caseInsensitive = true }
}

// Pattern is a compiled regular expression. A Pattern is safe for
// concurrent read-only use — Search, Entire, Scanner and Replace never
// mutate it — but a single Match's transient state must not be shared
// across goroutines (SPEC_FULL.md §8).
type Pattern struct {
	root       *core.Core
	groupCount int
	names      map[string]int
	src        string
}

// Compile parses pattern and builds a matcher graph, or returns a
// *SyntaxError describing the first grammar violation.
func Compile(pattern string, opts ...CompileOption) (*Pattern, error) {
	var cfg compileConfig
	for _, o := range opts {
		o(&cfg)
	}
	res, err := core.Parse(pattern)
	if err != nil {
		return nil, &SyntaxError{pattern: pattern, err: err.(*core.CompileError)}
	}
	root, err := core.BuildMatcher(res, cfg.caseInsensitive)
	if err != nil {
		return nil, &SyntaxError{pattern: pattern, err: err.(*core.CompileError)}
	}
	return &Pattern{root: root, groupCount: res.GroupCount, names: res.Names, src: pattern}, nil
}

// MustCompile is like Compile but panics if pattern cannot be parsed. It
// simplifies safe initialization of global variables holding patterns.
func MustCompile(pattern string, opts ...CompileOption) *Pattern {
	p, err := Compile(pattern, opts...)
	if err != nil {
		panic("vinex: MustCompile: " + err.Error())
	}
	return p
}

// String returns the source the Pattern was compiled from.
func (p *Pattern) String() string { return p.src }

// NumGroups returns the number of capturing groups, including group 0
// (the overall match).
func (p *Pattern) NumGroups() int { return p.groupCount }

// Search finds the leftmost match of p in s, trying successive start
// positions left to right, or nil if there is none.
func (p *Pattern) Search(s string) *Match {
	groups, start, end, ok := core.Search(p.root, p.groupCount, s)
	if !ok {
		return nil
	}
	return &Match{src: s, groups: groups, names: p.names, start: start, end: end}
}

// Entire reports whether p matches all of s, trying alternative internal
// solutions at the same start offset until one consumes the whole string.
func (p *Pattern) Entire(s string) *Match {
	groups, ok := core.Entire(p.root, p.groupCount, s)
	if !ok {
		return nil
	}
	return &Match{src: s, groups: groups, names: p.names, start: 0, end: len(s)}
}
