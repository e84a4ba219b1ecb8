//go:build turnstile_disable_padding

package opt

import (
	"sync"
)

const Padded_ = false

// Stripe_ is one entry of the process-wide stripe table.
// Padding is force-disabled via the turnstile_disable_padding build tag.
// Use: go build -tags=turnstile_disable_padding
type Stripe_ struct {
	sync.Mutex
}
