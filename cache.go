package vinex

import (
	"sync"

	"github.com/vinex/vinex/internal/core"
)

// EngineOptions configures process-wide engine behavior (SPEC_FULL.md
// §3, §7). The zero value is the default configuration: an unbounded
// cache and the built-in ASCII word-character class.
type EngineOptions struct {
	// MaxCacheEntries bounds the process-wide pattern cache Init enables.
	// Zero means unbounded. When the bound is reached, CompileCached
	// evicts one arbitrary entry to make room — the cache is a
	// convenience for avoiding repeat compilation, not an LRU.
	MaxCacheEntries int

	// WordCharacters, if non-nil, replaces the class \b and \B test
	// against. A nil value leaves the current class as it is. \w is not
	// affected: it always matches [A-Za-z0-9_].
	WordCharacters *core.CharClass
}

var cache struct {
	mu      sync.RWMutex
	entries map[string]*Pattern
	maxSize int
}

// Init enables the process-wide pattern cache. Calling it more than once
// clears any previously cached patterns.
func Init() {
	InitWithOptions(EngineOptions{})
}

// InitWithOptions enables the process-wide pattern cache with the given
// options, and, if opts.WordCharacters is set, installs it as the
// word-character class every subsequently matched pattern uses.
func InitWithOptions(opts EngineOptions) {
	cache.mu.Lock()
	cache.entries = make(map[string]*Pattern)
	cache.maxSize = opts.MaxCacheEntries
	cache.mu.Unlock()
	if opts.WordCharacters != nil {
		core.SetWordCharacters(opts.WordCharacters)
	}
}

// Teardown disables the process-wide pattern cache, releasing every
// cached Pattern.
func Teardown() {
	cache.mu.Lock()
	cache.entries = nil
	cache.mu.Unlock()
}

// CompileCached is Compile, but consults and populates the process-wide
// cache enabled by Init. Before Init is called, or after Teardown, it
// behaves exactly like Compile.
func CompileCached(pattern string, opts ...CompileOption) (*Pattern, error) {
	var cfg compileConfig
	for _, o := range opts {
		o(&cfg)
	}
	key := pattern
	if cfg.caseInsensitive {
		key = "i:" + pattern
	}

	cache.mu.RLock()
	entries := cache.entries
	if entries != nil {
		if p, ok := entries[key]; ok {
			cache.mu.RUnlock()
			return p, nil
		}
	}
	cache.mu.RUnlock()

	p, err := Compile(pattern, opts...)
	if err != nil {
		return nil, err
	}

	cache.mu.Lock()
	if cache.entries != nil {
		if cache.maxSize > 0 && len(cache.entries) >= cache.maxSize {
			for k := range cache.entries {
				delete(cache.entries, k)
				break
			}
		}
		cache.entries[key] = p
	}
	cache.mu.Unlock()
	return p, nil
}
