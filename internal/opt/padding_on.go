//go:build !turnstile_disable_padding

package opt

import (
	"sync"
	"unsafe"
)

const Padded_ = true

// Stripe_ is one entry of the process-wide stripe table.
// Each entry occupies a whole cache line so that unrelated mutexes hashed
// to neighbouring stripes do not false-share.
type Stripe_ struct {
	sync.Mutex
	_ [(CacheLineSize_ - unsafe.Sizeof(sync.Mutex{})%CacheLineSize_) % CacheLineSize_]byte
}
