package turnstile

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/zeebo/xxh3"

	"github.com/llxisdsh/turnstile/internal/opt"
)

// stripeCount is the number of process-wide stripes. A prime keeps the
// modulo well distributed even for poorly mixed keys.
const stripeCount = 389

// stripe serializes state transitions of every Mutex whose key maps to
// it. It is held only while a transition is decided, never across the
// caller's critical section.
type stripe = opt.Stripe_

var stripes [stripeCount]stripe

// identities hands out surrogate identities. Goroutine stacks may move,
// so the address of a Mutex cannot be used to pick its stripe.
var identities atomic.Uint64

func stripeFor(key uint32) *stripe {
	return &stripes[key%stripeCount]
}

// newKey returns a fresh non-zero stripe key: the next surrogate
// identity, hashed once so that the key is well mixed.
func newKey() uint32 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], identities.Add(1))
	h := xxh3.Hash(b[:])
	k := uint32(h) ^ uint32(h>>32)
	if k == 0 {
		k = 1
	}
	return k
}
