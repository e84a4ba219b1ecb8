package turnstile

import (
	"sync/atomic"
)

// lockState is the tagged state word of a Mutex.
//
//	stateUnheld   nobody holds the mutex
//	stateHeldSolo held, nobody waiting (the sentinel marker)
//	>= firstHandle held, waiters queued on the turnstile with this handle
type lockState uint32

const (
	stateUnheld lockState = iota
	stateHeldSolo
	firstHandle
)

// Mutex is a mutual exclusion lock that costs one machine word.
//
// An uncontended Mutex never allocates. Only when a second goroutine
// arrives while the mutex is held is a turnstile (a sync.Mutex plus a
// sync.Cond) allocated; it is shared by every waiter of that episode and
// destroyed by the last one. State transitions are serialized by a small
// process-wide table of stripes rather than by a lock per Mutex, which is
// what makes millions of instances cheap.
//
// Properties:
//   - Not fair: the order in which waiters are let through is unspecified.
//   - Not recursive: locking a Mutex already held by the caller deadlocks.
//   - No timeouts or cancellation.
//
// The zero value is an unlocked Mutex. A Mutex must not be copied after
// first use.
//
// Size: 8 bytes (4 byte stripe key + 4 byte state).
type Mutex struct {
	_ noCopy
	// key selects the stripe. Zero until first use.
	key atomic.Uint32
	// state is guarded by the stripe.
	state lockState
}

// NewMutex returns an unlocked Mutex whose stripe is already assigned.
func NewMutex() *Mutex {
	m := &Mutex{}
	m.key.Store(newKey())
	return m
}

func (m *Mutex) stripe() *stripe {
	k := m.key.Load()
	if k == 0 {
		k = newKey()
		if !m.key.CompareAndSwap(0, k) {
			k = m.key.Load()
		}
	}
	return stripeFor(k)
}

// Acquire locks m, blocking until it is available.
//
// It fails only with ErrExhausted, when m is contended and no turnstile
// can be allocated; m is then left as it was and is not held by the
// caller.
func (m *Mutex) Acquire() error {
	s := m.stripe()
	s.Lock()
	switch st := m.state; {
	case st == stateUnheld:
		m.state = stateHeldSolo
		s.Unlock()
	case st == stateHeldSolo:
		t, err := newTurnstile()
		if err != nil {
			s.Unlock()
			return err
		}
		m.state = t.handle
		t.enter(s)
	default:
		lookup(st).enter(s)
	}
	return nil
}

// Release unlocks m, letting one waiter through if there are any.
//
// It returns ErrNotLocked if m is not held; m is left unchanged and
// remains usable. Release cannot tell which goroutine holds m, so
// releasing a mutex held by someone else is not detected.
func (m *Mutex) Release() error {
	s := m.stripe()
	s.Lock()
	switch st := m.state; {
	case st == stateUnheld:
		s.Unlock()
		return ErrNotLocked
	case st == stateHeldSolo:
		m.state = stateUnheld
	default:
		t := lookup(st)
		drop := t.canDropAfterSpin()
		t.spin()
		if drop {
			// The woken waiter destroys t once it has left.
			m.state = stateHeldSolo
		}
	}
	s.Unlock()
	return nil
}

// TryLock tries to lock m without blocking and reports whether it
// succeeded. It never allocates.
func (m *Mutex) TryLock() bool {
	s := m.stripe()
	s.Lock()
	ok := m.state == stateUnheld
	if ok {
		m.state = stateHeldSolo
	}
	s.Unlock()
	return ok
}

// Lock locks m. It panics with an *Error if Acquire fails.
func (m *Mutex) Lock() {
	if err := m.Acquire(); err != nil {
		panic(err)
	}
}

// Unlock unlocks m. It panics with ErrNotLocked if m is not locked.
// The panic is recoverable and leaves m usable.
func (m *Mutex) Unlock() {
	if err := m.Release(); err != nil {
		panic(err)
	}
}

