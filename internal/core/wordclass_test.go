package core

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestWordCharactersDefault(t *testing.T) {
	SetWordCharacters(nil)
	wc := WordCharacters()
	assert.Equal(t, wc.Search('a'), true)
	assert.Equal(t, wc.Search('_'), true)
	assert.Equal(t, wc.Search('9'), true)
	assert.Equal(t, wc.Search(' '), false)
	assert.Equal(t, wc.Search('-'), false)
}

func TestSetWordCharactersOverride(t *testing.T) {
	defer SetWordCharacters(nil)
	custom := NewCharClass()
	custom.InsertCodepoint('-')
	SetWordCharacters(custom)
	assert.Equal(t, WordCharacters().Search('-'), true)
	assert.Equal(t, WordCharacters().Search('a'), false)
}
