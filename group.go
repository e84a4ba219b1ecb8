package turnstile

import (
	"github.com/llxisdsh/pb"
)

// Group allows locking on arbitrary keys (string, int, struct, etc.).
// It dynamically manages a set of Mutexes associated with keys.
//
// Features:
//   - Infinite Keys: No need to pre-allocate locks.
//   - Auto-Cleanup: An entry is removed when it is unlocked and no one else
//     is waiting for it.
//   - Low Overhead: entries live in a sharded concurrent map and each holds
//     a one-word Mutex.
//
// Usage:
//
//	var group Group[string]
//	group.Lock("user-123")
//	// Critical section for user-123
//	group.Unlock("user-123")
type Group[K comparable] struct {
	_ noCopy
	m pb.MapOf[K, *groupEntry]
}

type groupEntry struct {
	mu  Mutex
	ref int32
}

// Acquire locks k, blocking until it is available.
func (g *Group[K]) Acquire(k K) error {
	v, _ := g.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *groupEntry]) (*pb.EntryOf[K, *groupEntry], *groupEntry, bool) {
			if l != nil {
				l.Value.ref++
				return l, l.Value, true
			}
			v := &groupEntry{ref: 1}
			return &pb.EntryOf[K, *groupEntry]{Value: v}, v, false
		},
	)
	if err := v.mu.Acquire(); err != nil {
		g.unref(k, v)
		return err
	}
	return nil
}

// Release unlocks k. It returns ErrNotLocked if k is not locked.
func (g *Group[K]) Release(k K) error {
	v, ok := g.m.Load(k)
	if !ok {
		return ErrNotLocked
	}
	if err := v.mu.Release(); err != nil {
		return err
	}
	g.unref(k, v)
	return nil
}

// Lock locks k. It panics with an *Error if Acquire fails.
func (g *Group[K]) Lock(k K) {
	if err := g.Acquire(k); err != nil {
		panic(err)
	}
}

// Unlock unlocks k. It panics with ErrNotLocked if k is not locked.
func (g *Group[K]) Unlock(k K) {
	if err := g.Release(k); err != nil {
		panic(err)
	}
}

func (g *Group[K]) unref(k K, v *groupEntry) {
	g.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *groupEntry]) (*pb.EntryOf[K, *groupEntry], *groupEntry, bool) {
			if l == nil || l.Value != v {
				return l, nil, false
			}
			l.Value.ref--
			if l.Value.ref <= 0 {
				return nil, nil, true
			}
			return l, l.Value, false
		},
	)
}
