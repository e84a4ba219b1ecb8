//go:build turnstile_cachelinesize_64

package opt

// CacheLineSize_ is pinned to 64 bytes via the turnstile_cachelinesize_64
// build tag.
const CacheLineSize_ uintptr = 64
