//go:build turnstile_cachelinesize_128

package opt

// CacheLineSize_ is pinned to 128 bytes via the turnstile_cachelinesize_128
// build tag (e.g. Apple M-series, POWER).
const CacheLineSize_ uintptr = 128
