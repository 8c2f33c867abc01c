package vinex

import (
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func TestSyntaxErrorMessageIncludesPattern(t *testing.T) {
	_, err := Compile("a{2,1}")
	assert.Assert(t, err != nil)
	assert.Assert(t, strings.Contains(err.Error(), "a{2,1}"))
}

func TestQuotePatternTruncatesLongPatterns(t *testing.T) {
	long := strings.Repeat("a", 100) + "["
	_, err := Compile(long)
	assert.Assert(t, err != nil)
	msg := err.Error()
	assert.Assert(t, len(msg) < len(long))
	assert.Assert(t, strings.Contains(msg, "..."))
}
