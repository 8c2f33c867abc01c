package vinex

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestReplaceNumberedGroup(t *testing.T) {
	p := MustCompile(`(\w+)@(\w+)`)
	got := p.Replace("contact user@host now", `\g<2>/\g<1>`)
	assert.Equal(t, got, "contact host/user now")
}

func TestReplaceNamedGroup(t *testing.T) {
	p := MustCompile(`(?<user>\w+)@(?<host>\w+)`)
	got := p.Replace("user@host", `\k<host>/\k<user>`)
	assert.Equal(t, got, "host/user")
}

func TestReplaceWholeMatch(t *testing.T) {
	p := MustCompile(`\d+`)
	got := p.Replace("v1 and v22", `[\g<0>]`)
	assert.Equal(t, got, "v[1] and v[22]")
}

func TestReplaceMultipleNonOverlapping(t *testing.T) {
	p := MustCompile(`\d`)
	got := p.Replace("a1b2c3", "-")
	assert.Equal(t, got, "a-b-c-")
}

func TestReplaceUnparticipatingGroupExpandsEmpty(t *testing.T) {
	p := MustCompile(`(a)|(b)`)
	got := p.Replace("a", `[\g<2>]`)
	assert.Equal(t, got, "[]")
}

func TestReplaceLiteralBackslashPassesThrough(t *testing.T) {
	p := MustCompile(`x`)
	got := p.Replace("x", `\n`)
	assert.Equal(t, got, `\n`)
}

func TestReplaceNoMatchReturnsOriginal(t *testing.T) {
	p := MustCompile(`zzz`)
	got := p.Replace("abc", "-")
	assert.Equal(t, got, "abc")
}
