package vinex

import (
	"testing"

	"github.com/vinex/vinex/internal/core"
	"gotest.tools/v3/assert"
)

func TestCompileCachedReturnsSameInstance(t *testing.T) {
	Init()
	defer Teardown()
	p1, err := CompileCached(`a+`)
	assert.NilError(t, err)
	p2, err := CompileCached(`a+`)
	assert.NilError(t, err)
	assert.Assert(t, p1 == p2)
}

func TestCompileCachedDistinguishesCaseInsensitive(t *testing.T) {
	Init()
	defer Teardown()
	p1, err := CompileCached(`abc`)
	assert.NilError(t, err)
	p2, err := CompileCached(`abc`, CaseInsensitive())
	assert.NilError(t, err)
	assert.Assert(t, p1 != p2)
}

func TestCompileCachedWithoutInitBehavesLikeCompile(t *testing.T) {
	Teardown()
	p1, err := CompileCached(`x`)
	assert.NilError(t, err)
	p2, err := CompileCached(`x`)
	assert.NilError(t, err)
	assert.Assert(t, p1 != p2)
}

func TestCompileCachedPropagatesSyntaxError(t *testing.T) {
	Init()
	defer Teardown()
	_, err := CompileCached(`[`)
	assert.Assert(t, err != nil)
}

func TestInitWithOptionsEvictsAtMaxSize(t *testing.T) {
	InitWithOptions(EngineOptions{MaxCacheEntries: 1})
	defer Teardown()
	_, err := CompileCached(`a`)
	assert.NilError(t, err)
	_, err = CompileCached(`b`)
	assert.NilError(t, err)
	cache.mu.RLock()
	n := len(cache.entries)
	cache.mu.RUnlock()
	assert.Assert(t, n <= 1)
}

func TestInitWithOptionsCustomWordCharacters(t *testing.T) {
	custom := core.NewCharClass()
	custom.InsertRange('a', 'z')
	custom.InsertCodepoint('-')
	InitWithOptions(EngineOptions{WordCharacters: custom})
	defer func() {
		Teardown()
		core.SetWordCharacters(nil)
	}()
	p := MustCompile(`\bfoo-bar\b`)
	assert.Assert(t, p.Search("foo-bar") != nil)
}
