//go:build !turnstile_cachelinesize_64 && !turnstile_cachelinesize_128

package opt

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize_ is the size every stripe is rounded up to, so that two
// mutexes hashed to neighbouring stripes never share a cache line. The
// value comes from the padding type in `golang.org/x/sys/cpu` for the
// target architecture.
const CacheLineSize_ = unsafe.Sizeof(cpu.CacheLinePad{})
