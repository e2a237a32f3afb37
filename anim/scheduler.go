package anim

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler is the host's scheduling primitive. Implementations run every
// callback on a single goroutine.
type Scheduler interface {
	// Now is the scheduler's current time.
	Now() time.Time
	// RequestFrame calls fn once, at the next frame.
	RequestFrame(fn func(now time.Time))
	// AfterFunc calls fn once, after at least d has passed.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a pending AfterFunc call.
type Timer interface {
	// Stop prevents the call. It returns false if the call has already
	// happened or the timer had been stopped before.
	Stop() bool
}

// --- Real-time loop --------------------------------------------------------

// Loop is a Scheduler running in real time. Frames are issued at a fixed
// rate. All callbacks run on the goroutine calling Run; other goroutines
// hand work to the loop with Post.
type Loop struct {
	interval time.Duration
	tasks    chan func()
	mu       sync.Mutex
	frames   []func(time.Time)
	// OnTick, if set, is called after the frame callbacks of every tick.
	// Presenters use it to redraw.
	OnTick func(now time.Time)
}

// NewLoop creates a loop issuing fps frames per second. Values below 1 are
// taken as 60.
func NewLoop(fps int) *Loop {
	if fps < 1 {
		fps = 60
	}
	return &Loop{
		interval: time.Second / time.Duration(fps),
		tasks:    make(chan func(), 256),
	}
}

// Now returns the wall clock time.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// Post schedules fn to run on the loop goroutine. It is safe to call from
// any goroutine.
func (l *Loop) Post(fn func()) {
	l.tasks <- fn
}

// RequestFrame implements Scheduler.
func (l *Loop) RequestFrame(fn func(now time.Time)) {
	l.mu.Lock()
	l.frames = append(l.frames, fn)
	l.mu.Unlock()
}

// AfterFunc implements Scheduler. The call is posted to the loop goroutine
// when the delay has passed.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	lt := &loopTimer{}
	lt.t = time.AfterFunc(d, func() {
		l.Post(func() {
			if lt.fired.CompareAndSwap(false, true) {
				fn()
			}
		})
	})
	return lt
}

// Run drives the loop until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	tracer().Infof("animation loop started, frame interval %v", l.interval)
	for {
		select {
		case <-ctx.Done():
			tracer().Infof("animation loop stopped")
			return ctx.Err()
		case fn := <-l.tasks:
			fn()
		case now := <-ticker.C:
			l.tick(now)
		}
	}
}

func (l *Loop) tick(now time.Time) {
	l.mu.Lock()
	frames := l.frames
	l.frames = nil
	l.mu.Unlock()
	for _, fn := range frames {
		fn(now)
	}
	if l.OnTick != nil {
		l.OnTick(now)
	}
}

type loopTimer struct {
	t     *time.Timer
	fired atomic.Bool
}

func (lt *loopTimer) Stop() bool {
	lt.t.Stop()
	return lt.fired.CompareAndSwap(false, true)
}
