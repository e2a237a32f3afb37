package anim

import (
	"time"

	"github.com/emirpasic/gods/trees/binaryheap"
)

// ManualScheduler is a Scheduler on a virtual clock. Time only moves when
// a client calls Advance, Step or RunUntil. Frames are issued every frame
// interval; timers fire in due order, ties in the order of their creation.
//
// ManualScheduler is not safe for concurrent use. It drives tests and
// headless renderings.
type ManualScheduler struct {
	now    time.Time
	frame  time.Duration
	frames []func(time.Time)
	timers *binaryheap.Heap
	seq    int
}

type manualTimer struct {
	due     time.Time
	seq     int
	fn      func()
	stopped bool
}

func (mt *manualTimer) Stop() bool {
	if mt.stopped {
		return false
	}
	mt.stopped = true
	return true
}

func byDue(a, b interface{}) int {
	ta, tb := a.(*manualTimer), b.(*manualTimer)
	switch {
	case ta.due.Before(tb.due):
		return -1
	case tb.due.Before(ta.due):
		return 1
	}
	return ta.seq - tb.seq
}

// NewManualScheduler creates a virtual clock starting at start, issuing a
// frame every frameInterval (16ms if frameInterval is not positive).
func NewManualScheduler(start time.Time, frameInterval time.Duration) *ManualScheduler {
	if frameInterval <= 0 {
		frameInterval = 16 * time.Millisecond
	}
	return &ManualScheduler{
		now:    start,
		frame:  frameInterval,
		timers: binaryheap.NewWith(byDue),
	}
}

// Now implements Scheduler.
func (m *ManualScheduler) Now() time.Time {
	return m.now
}

// FrameInterval is the virtual time between two frames.
func (m *ManualScheduler) FrameInterval() time.Duration {
	return m.frame
}

// RequestFrame implements Scheduler.
func (m *ManualScheduler) RequestFrame(fn func(now time.Time)) {
	m.frames = append(m.frames, fn)
}

// AfterFunc implements Scheduler.
func (m *ManualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	m.seq++
	mt := &manualTimer{due: m.now.Add(d), seq: m.seq, fn: fn}
	m.timers.Push(mt)
	return mt
}

// Pending reports whether any frame or timer callback is waiting.
func (m *ManualScheduler) Pending() bool {
	if len(m.frames) > 0 {
		return true
	}
	it := m.timers.Iterator()
	for it.Next() {
		if !it.Value().(*manualTimer).stopped {
			return true
		}
	}
	return false
}

// Step advances the clock by one frame interval: timers due until then
// fire first, then every frame callback requested before the step runs.
func (m *ManualScheduler) Step() {
	next := m.now.Add(m.frame)
	m.fireTimers(next)
	m.now = next
	m.runFrames()
}

// Advance moves the clock forward by d, issuing all frames and firing all
// timers falling into this span.
func (m *ManualScheduler) Advance(d time.Duration) {
	end := m.now.Add(d)
	for {
		next := m.now.Add(m.frame)
		if next.After(end) {
			m.fireTimers(end)
			m.now = end
			return
		}
		m.fireTimers(next)
		m.now = next
		m.runFrames()
	}
}

// RunUntil steps frame by frame until cond holds or limit of virtual time
// has passed. It returns whether cond holds.
func (m *ManualScheduler) RunUntil(cond func() bool, limit time.Duration) bool {
	end := m.now.Add(limit)
	m.fireTimers(m.now)
	for !cond() {
		if !m.now.Before(end) {
			return false
		}
		m.Step()
	}
	return true
}

// Settle fires timers which are due at the current time, e.g. zero-delay
// timers, without advancing the clock.
func (m *ManualScheduler) Settle() {
	m.fireTimers(m.now)
}

func (m *ManualScheduler) fireTimers(upTo time.Time) {
	for {
		v, ok := m.timers.Peek()
		if !ok {
			return
		}
		mt := v.(*manualTimer)
		if mt.due.After(upTo) {
			return
		}
		m.timers.Pop()
		if mt.stopped {
			continue
		}
		mt.stopped = true
		if mt.due.After(m.now) {
			m.now = mt.due
		}
		mt.fn()
	}
}

func (m *ManualScheduler) runFrames() {
	frames := m.frames
	m.frames = nil
	for _, fn := range frames {
		fn(m.now)
	}
}
