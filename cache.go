package fpdb

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Max number of distinct templates whose fragments are kept in memory.
const FragmentCacheSize = 1024

type fragmentKey struct {
	src    string
	escape byte
}

var fragmentCache = try1(lru.New[fragmentKey, []Fragment](FragmentCacheSize))

/*
Returns the fragments of the given template, tokenizing it on a cache miss.
Templates that fail to tokenize are not cached. The returned slice is shared
and must not be mutated.

Susceptible to "thundering herd" when many goroutines miss on the same
template. The work is idempotent, so the only cost is repeated tokenizing.
*/
func cachedFragments(src string, escape byte) []Fragment {
	key := fragmentKey{src, escape}

	val, ok := fragmentCache.Get(key)
	if ok {
		return val
	}

	val = tokenize(src, escape)
	fragmentCache.Add(key, val)
	return val
}

// Drops all cached fragments. Mostly for tests and benchmarks.
func PurgeCache() { fragmentCache.Purge() }
