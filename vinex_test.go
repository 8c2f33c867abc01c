package vinex

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"
)

// runner is a small table-driven harness in the same spirit as the
// teacher's own match/no-match runner: one call per assertion, built on
// top of the public API instead of re-implementing it.
type runner struct {
	t    *testing.T
	opts []CompileOption
}

func newRunner(t *testing.T) *runner { return &runner{t: t} }

func (r *runner) f(opts ...CompileOption) *runner {
	return &runner{t: r.t, opts: opts}
}

func (r *runner) m(pattern, source string, expectedGroups ...string) {
	r.t.Helper()
	p, err := Compile(pattern, r.opts...)
	assert.NilError(r.t, err)
	m := p.Search(source)
	assert.Assert(r.t, m != nil, "expected %q to match %q", pattern, source)
	for i, want := range expectedGroups {
		got, ok := m.Group(i + 1)
		assert.Assert(r.t, ok, "group %d did not participate", i+1)
		assert.Equal(r.t, got, want)
	}
}

func (r *runner) n(pattern, source string) {
	r.t.Helper()
	p, err := Compile(pattern, r.opts...)
	assert.NilError(r.t, err)
	m := p.Search(source)
	got := ""
	if m != nil {
		got = m.Get()
	}
	assert.Assert(r.t, m == nil, "expected %q not to match %q, got %q", pattern, source, got)
}

func (r *runner) se(pattern string) {
	r.t.Helper()
	_, err := Compile(pattern, r.opts...)
	assert.Assert(r.t, err != nil, "expected %q to fail to compile", pattern)
}

func TestBasics(t *testing.T) {
	r := newRunner(t)
	r.m("foo", "xxfooxx")
	r.n("foo", "bar")
	r.m(`(\d+)-(\d+)`, "12-34", "12", "34")
	r.m(`\bcat\b`, "a cat sat")
	r.n(`\bcat\b`, "concatenate")
}

func TestCaseInsensitiveOption(t *testing.T) {
	r := newRunner(t)
	r.f(CaseInsensitive()).m("HELLO", "say hello there")
	r.n("HELLO", "say hello there")
}

func TestCompileSyntaxError(t *testing.T) {
	r := newRunner(t)
	r.se("[")
	r.se("a{2,1}")
	r.se(`\g<9>`)
}

func TestSyntaxErrorUnwrap(t *testing.T) {
	_, err := Compile("[")
	var se *SyntaxError
	assert.Assert(t, errors.As(err, &se))
	assert.Equal(t, se.Code().String(), "unterminated bracket expression")
	assert.Assert(t, se.Offset() >= 0)
}

func TestMustCompilePanicsOnBadPattern(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected MustCompile to panic")
		}
	}()
	MustCompile("[")
}

func TestNumGroupsIncludesWholeMatch(t *testing.T) {
	p := MustCompile(`(a)(b)`)
	assert.Equal(t, p.NumGroups(), 3)
}

func TestStringReturnsSource(t *testing.T) {
	p := MustCompile(`a+`)
	assert.Equal(t, p.String(), "a+")
}

func TestEntire(t *testing.T) {
	p := MustCompile(`a+`)
	assert.Assert(t, p.Entire("aaa") != nil)
	assert.Assert(t, p.Entire("aaab") == nil)
}

func TestNamedGroups(t *testing.T) {
	p := MustCompile(`(?<year>\d+)-(?<month>\d+)`)
	m := p.Search("2026-08")
	assert.Assert(t, m != nil)
	year, ok := m.NamedGroup("year")
	assert.Assert(t, ok)
	assert.Equal(t, year, "2026")
	_, ok = m.NamedGroup("nonexistent")
	assert.Equal(t, ok, false)
}

func TestMatchOffsetAndGet(t *testing.T) {
	p := MustCompile(`bar`)
	m := p.Search("foobarbaz")
	assert.Assert(t, m != nil)
	start, end := m.Offset()
	assert.Equal(t, start, 3)
	assert.Equal(t, end, 6)
	assert.Equal(t, m.Get(), "bar")
}

func TestGroupThatDidNotParticipate(t *testing.T) {
	p := MustCompile(`(a)|(b)`)
	m := p.Search("a")
	assert.Assert(t, m != nil)
	_, ok := m.Group(2)
	assert.Equal(t, ok, false)
}
