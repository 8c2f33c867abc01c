package core

import (
	"testing"

	"gotest.tools/v3/assert"
)

func compile(t *testing.T, src string, foldCase bool) (*Core, int) {
	t.Helper()
	res, err := Parse(src)
	assert.NilError(t, err)
	root, err := BuildMatcher(res, foldCase)
	assert.NilError(t, err)
	return root, res.GroupCount
}

func searchGroup(t *testing.T, src, s string, i int) (string, bool) {
	t.Helper()
	root, n := compile(t, src, false)
	groups, _, _, ok := Search(root, n, s)
	if !ok {
		return "", false
	}
	c := groups.Get(i)
	if c.Begin < 0 {
		return "", false
	}
	return s[c.Begin:c.End], true
}

func TestSearchLiteral(t *testing.T) {
	got, ok := searchGroup(t, "foo", "xxfooyy", 0)
	assert.Assert(t, ok)
	assert.Equal(t, got, "foo")
}

func TestSearchNoMatch(t *testing.T) {
	root, n := compile(t, "zzz", false)
	_, _, _, ok := Search(root, n, "abc")
	assert.Equal(t, ok, false)
}

func TestSearchLeftmostFirst(t *testing.T) {
	got, ok := searchGroup(t, "a|ab", "xabx", 0)
	assert.Assert(t, ok)
	assert.Equal(t, got, "a")
}

func TestGreedyVsLazyQuantifier(t *testing.T) {
	got, ok := searchGroup(t, "a.*b", "axbxb", 0)
	assert.Assert(t, ok)
	assert.Equal(t, got, "axbxb")

	got, ok = searchGroup(t, "a.*?b", "axbxb", 0)
	assert.Assert(t, ok)
	assert.Equal(t, got, "axb")
}

func TestCapturingGroups(t *testing.T) {
	root, n := compile(t, `(\w+)@(\w+)`, false)
	groups, _, _, ok := Search(root, n, "user@host")
	assert.Assert(t, ok)
	assert.Equal(t, n, 3)
	g1 := groups.Get(1)
	g2 := groups.Get(2)
	assert.Equal(t, "user@host"[g1.Begin:g1.End], "user")
	assert.Equal(t, "user@host"[g2.Begin:g2.End], "host")
}

func TestBacktrackingIntoNestedGroup(t *testing.T) {
	// (a|ab)(cd) tries group 1's first alternative "a" first, but then
	// group 2 can't match "cd" against the remaining "bcd" — backtracking
	// must re-enter group 1's iterator and try its second alternative.
	got, ok := searchGroup(t, "(a|ab)(cd)", "abcd", 0)
	assert.Assert(t, ok)
	assert.Equal(t, got, "abcd")
}

func TestAtomicGroupCutsBacktracking(t *testing.T) {
	root, n := compile(t, `(?>a|ab)c`, false)
	_, _, _, ok := Search(root, n, "abc")
	// The atomic group commits to "a" (its first alternative) and is not
	// permitted to backtrack to "ab" even though that would let the
	// trailing "c" match.
	assert.Equal(t, ok, false)
}

func TestBackreference(t *testing.T) {
	got, ok := searchGroup(t, `(\w+) \1`, "hello hello", 0)
	assert.Assert(t, ok)
	assert.Equal(t, got, "hello hello")

	_, ok = searchGroup(t, `(\w+) \1`, "hello world", 0)
	assert.Equal(t, ok, false)
}

func TestSubroutineIsolatesCaptures(t *testing.T) {
	// The subroutine call re-runs group 1's pattern but must not leave
	// its own group 1 write visible: the outer group 1 keeps its first
	// capture.
	root, n := compile(t, `(\w)(?1)`, false)
	groups, _, _, ok := Search(root, n, "ab")
	assert.Assert(t, ok)
	g1 := groups.Get(1)
	assert.Equal(t, "ab"[g1.Begin:g1.End], "a")
}

func TestLookaheadIsZeroWidth(t *testing.T) {
	got, ok := searchGroup(t, `a(?=b)`, "ab", 0)
	assert.Assert(t, ok)
	assert.Equal(t, got, "a")

	_, ok = searchGroup(t, `a(?=b)`, "ac", 0)
	assert.Equal(t, ok, false)
}

func TestNegativeLookahead(t *testing.T) {
	got, ok := searchGroup(t, `a(?!b)`, "ac", 0)
	assert.Assert(t, ok)
	assert.Equal(t, got, "a")

	_, ok = searchGroup(t, `a(?!b)`, "ab", 0)
	assert.Equal(t, ok, false)
}

func TestWordBoundary(t *testing.T) {
	got, ok := searchGroup(t, `\bcat\b`, "a cat sat", 0)
	assert.Assert(t, ok)
	assert.Equal(t, got, "cat")

	_, ok = searchGroup(t, `\bcat\b`, "concatenate", 0)
	assert.Equal(t, ok, false)
}

func TestEdgeAnchors(t *testing.T) {
	got, ok := searchGroup(t, `^abc$`, "abc", 0)
	assert.Assert(t, ok)
	assert.Equal(t, got, "abc")

	_, ok = searchGroup(t, `^abc$`, "xabc", 0)
	assert.Equal(t, ok, false)
}

func TestEntireRequiresFullConsumption(t *testing.T) {
	root, n := compile(t, `a+`, false)
	_, ok := Entire(root, n, "aaa")
	assert.Assert(t, ok)
	_, ok = Entire(root, n, "aaab")
	assert.Equal(t, ok, false)
}

func TestFoldCaseMatchesEitherCase(t *testing.T) {
	root, n := compile(t, "ABC", true)
	_, _, _, ok := Search(root, n, "xxabcxx")
	assert.Assert(t, ok)

	root, n = compile(t, "ABC", false)
	_, _, _, ok = Search(root, n, "xxabcxx")
	assert.Equal(t, ok, false)
}

func TestFoldCaseBackreference(t *testing.T) {
	root, n := compile(t, `(\w+) \1`, true)
	_, _, _, ok := Search(root, n, "Hello hello")
	assert.Assert(t, ok)
}

func TestSearchFromRestrictsStart(t *testing.T) {
	root, n := compile(t, "a", false)
	_, start, _, ok := SearchFrom(root, n, "xaxa", 2)
	assert.Assert(t, ok)
	assert.Equal(t, start, 3)
}

func TestEmbeddedNulIsTreatedAsEndOfString(t *testing.T) {
	root, n := compile(t, ".", false)
	_, _, end, ok := Search(root, n, "a\x00b")
	assert.Assert(t, ok)
	assert.Equal(t, end, 1)
}

func TestIntervalQuantifier(t *testing.T) {
	got, ok := searchGroup(t, `a{2,3}`, "aaaa", 0)
	assert.Assert(t, ok)
	assert.Equal(t, got, "aaa")

	_, ok = searchGroup(t, `a{2,3}`, "a", 0)
	assert.Equal(t, ok, false)
}
