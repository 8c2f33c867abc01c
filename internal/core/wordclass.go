package core

import "sync"

var (
	wordCharsMu    sync.RWMutex
	wordCharsCache *CharClass
)

// WordCharacters returns the class the word-boundary primitives test
// against (spec.md §4.7.3's WordAnchor): [A-Za-z0-9_] unless
// SetWordCharacters installed an override.
func WordCharacters() *CharClass {
	wordCharsMu.RLock()
	c := wordCharsCache
	wordCharsMu.RUnlock()
	if c != nil {
		return c
	}
	wordCharsMu.Lock()
	defer wordCharsMu.Unlock()
	if wordCharsCache == nil {
		wordCharsCache = wordClass()
	}
	return wordCharsCache
}

// SetWordCharacters overrides the class \b and \B test against, for
// callers whose word-character notion isn't ASCII (SPEC_FULL.md §7).
// Passing nil restores the default. \w keeps its fixed [A-Za-z0-9_] set.
// It must be called before any pattern using \b or \B is matched — the
// override applies process-wide and is not synchronized with in-flight
// matches.
func SetWordCharacters(c *CharClass) {
	wordCharsMu.Lock()
	wordCharsCache = c
	wordCharsMu.Unlock()
}
