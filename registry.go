package turnstile

import (
	"sync/atomic"

	"github.com/llxisdsh/pb"
)

// The registry maps the handle stored in a contended Mutex to its
// turnstile. A handle is live from newTurnstile until the last waiter
// destroys the turnstile; handles are recycled only after that.
var (
	registry   pb.MapOf[lockState, *turnstile]
	nextHandle atomic.Uint32

	live      atomic.Int64
	created   atomic.Uint64
	destroyed atomic.Uint64
)

// maxLiveTurnstiles bounds the number of simultaneously contended
// mutexes. It stays well below the handle space so that handle
// allocation always finds a free slot.
var maxLiveTurnstiles int64 = 1 << 31

// Stats describes the process-wide turnstile population.
type Stats struct {
	// Created is the number of turnstiles ever allocated.
	Created uint64
	// Destroyed is the number of turnstiles destroyed by their last waiter.
	Destroyed uint64
	// Live is the number of turnstiles currently in use.
	Live uint64
}

// ReadStats returns a snapshot of the turnstile counters. Once every
// contended mutex has drained, Created == Destroyed and Live == 0.
func ReadStats() Stats {
	return Stats{
		Created:   created.Load(),
		Destroyed: destroyed.Load(),
		Live:      uint64(max(live.Load(), 0)),
	}
}

// register assigns t a free handle and publishes it.
func register(t *turnstile) error {
	if live.Add(1) > maxLiveTurnstiles {
		live.Add(-1)
		return ErrExhausted
	}
	for {
		h := lockState(nextHandle.Add(1))
		if h < firstHandle {
			// wrapped around
			continue
		}
		inserted := false
		registry.ProcessEntry(
			h,
			func(l *pb.EntryOf[lockState, *turnstile]) (*pb.EntryOf[lockState, *turnstile], *turnstile, bool) {
				if l != nil {
					// still held by a turnstile from a previous cycle
					return l, l.Value, true
				}
				t.handle = h
				inserted = true
				return &pb.EntryOf[lockState, *turnstile]{Value: t}, t, false
			},
		)
		if inserted {
			created.Add(1)
			return nil
		}
	}
}

// unregister releases h. It panics if h is not live, which means the
// turnstile was destroyed twice.
func unregister(h lockState) {
	found := false
	registry.ProcessEntry(
		h,
		func(l *pb.EntryOf[lockState, *turnstile]) (*pb.EntryOf[lockState, *turnstile], *turnstile, bool) {
			if l == nil {
				return nil, nil, false
			}
			found = true
			return nil, nil, true
		},
	)
	if !found {
		panic("turnstile: turnstile destroyed twice")
	}
	live.Add(-1)
	destroyed.Add(1)
}

// lookup returns the turnstile registered under h.
func lookup(h lockState) *turnstile {
	t, ok := registry.Load(h)
	if !ok {
		panic("turnstile: state refers to a destroyed turnstile")
	}
	return t
}
