package anim

import (
	"sync"
)

// Lock serializes top-level animation sequences. At most one holder exists
// at any time; waiters are granted the lock in FIFO order.
//
// A free lock is granted synchronously within Acquire. A waiter is granted
// the lock through a zero-delay timer of the scheduler, i.e. never from
// within the Release call of the previous holder.
type Lock struct {
	mu      sync.Mutex
	sched   Scheduler
	locked  bool
	waiters []func()
}

// NewLock creates an unlocked lock dispatching grants on sched.
func NewLock(sched Scheduler) *Lock {
	return &Lock{sched: sched}
}

// Acquire requests the lock. granted is called once the caller holds it;
// the holder must call Release exactly once afterwards.
func (l *Lock) Acquire(granted func()) {
	l.mu.Lock()
	if !l.locked {
		l.locked = true
		l.mu.Unlock()
		tracer().Debugf("animation lock acquired")
		granted()
		return
	}
	l.waiters = append(l.waiters, granted)
	n := len(l.waiters)
	l.mu.Unlock()
	tracer().Debugf("animation lock busy, %d waiting", n)
}

// Release hands the lock to the next waiter, or unlocks it if nobody waits.
func (l *Lock) Release() {
	l.mu.Lock()
	if !l.locked {
		l.mu.Unlock()
		tracer().Errorf("release of unlocked animation lock")
		return
	}
	if len(l.waiters) == 0 {
		l.locked = false
		l.mu.Unlock()
		tracer().Debugf("animation lock released")
		return
	}
	next := l.waiters[0]
	l.waiters[0] = nil
	l.waiters = l.waiters[1:]
	l.mu.Unlock()
	tracer().Debugf("animation lock handed to next waiter")
	l.sched.AfterFunc(0, next)
}

// Locked reports whether the lock is held.
func (l *Lock) Locked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.locked
}

// Waiting returns the number of queued waiters.
func (l *Lock) Waiting() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.waiters)
}
