package turnstile

import (
	"sync"
	"sync/atomic"
)

// turnstile is the waiting queue of one contended Mutex.
//
// It is created by the second goroutine to arrive at a held Mutex and is
// destroyed by the waiter that drains it. The Mutex stops referring to
// the turnstile (release sets it back to heldSolo) no later than the
// moment the last waiter is spun through, so the destroying goroutine is
// the only one left holding it.
type turnstile struct {
	mu   sync.Mutex
	cond sync.Cond

	// waiting is incremented with both the stripe and mu held, and
	// decremented with mu held by a woken waiter. It is read under the
	// stripe alone, hence atomic.
	waiting atomic.Uint64

	// sleep is true while waiters must keep sleeping. spin clears it for
	// exactly one waiter, which sets it again on its way out.
	sleep bool

	destroyed bool
	handle    lockState
}

// newTurnstile allocates a turnstile and registers it under a fresh
// handle.
func newTurnstile() (*turnstile, error) {
	t := &turnstile{sleep: true}
	t.cond.L = &t.mu
	if err := register(t); err != nil {
		return nil, err
	}
	return t, nil
}

// enter queues the caller on t and blocks until spin lets it through.
//
// The caller holds s, the stripe of the owning Mutex. enter releases it
// only after the caller is counted, so a concurrent release can never
// spin an empty turnstile and lose the wakeup.
func (t *turnstile) enter(s *stripe) {
	t.mu.Lock()
	t.checkLive()
	t.waiting.Add(1)
	s.Unlock()

	// Re-checked under mu after every wake; spurious wakeups go back
	// to sleep.
	for t.sleep {
		t.cond.Wait()
	}
	if t.waiting.Add(^uint64(0)) == ^uint64(0) {
		panic("turnstile: waiter count underflow")
	}
	t.sleep = true
	last := t.isEmpty()
	t.mu.Unlock()

	if last {
		t.destroy()
	}
}

// spin lets exactly one waiter through. Which one is unspecified.
func (t *turnstile) spin() {
	t.mu.Lock()
	t.checkLive()
	t.sleep = false
	t.cond.Signal()
	t.mu.Unlock()
}

// canDropAfterSpin reports whether the next spin empties t. The caller
// holds the stripe, so no waiter can be added concurrently.
func (t *turnstile) canDropAfterSpin() bool {
	return t.waiting.Load() == 1
}

func (t *turnstile) isEmpty() bool {
	return t.waiting.Load() == 0
}

// destroy unregisters t and poisons it. Only the last waiter calls it.
func (t *turnstile) destroy() {
	unregister(t.handle)
	t.mu.Lock()
	t.destroyed = true
	t.mu.Unlock()
}

// checkLive must be called with mu held.
func (t *turnstile) checkLive() {
	if t.destroyed {
		panic("turnstile: use of destroyed turnstile")
	}
}
