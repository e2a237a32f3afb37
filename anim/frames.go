package anim

import (
	"time"
)

// FrameDriver animates a progress value from 0 to 1 over a duration of
// unpaused time. Every frame it calls onFrame with the eased progress;
// after the frame with progress 1 it calls onComplete, exactly once.
//
// While the environment is paused, frames are rescheduled without
// progress. On resume the start of the animation is shifted by the length
// of the pause, so the unpaused elapsed time is preserved exactly.
type FrameDriver struct {
	env         *Env
	duration    time.Duration
	easing      Easing
	onFrame     func(t float64)
	onComplete  func()
	start       time.Time
	pausedAt    time.Time
	paused      bool
	stopped     bool
	done        bool
	unsubscribe func()
}

// Animate creates and starts a frame driver. easing may be nil for linear
// progress, onComplete may be nil. A non-positive duration completes on the
// first frame.
func (env *Env) Animate(d time.Duration, easing Easing, onFrame func(t float64),
	onComplete func()) *FrameDriver {
	//
	if easing == nil {
		easing = Linear
	}
	fd := &FrameDriver{
		env:        env,
		duration:   d,
		easing:     easing,
		onFrame:    onFrame,
		onComplete: onComplete,
		start:      env.Scheduler.Now(),
	}
	if env.State.Paused() {
		fd.paused = true
		fd.pausedAt = fd.start
	}
	fd.unsubscribe = env.State.Subscribe(fd.pauseChanged)
	env.Scheduler.RequestFrame(fd.frame)
	return fd
}

func (fd *FrameDriver) pauseChanged(paused bool) {
	if fd.stopped || fd.done || paused == fd.paused {
		return
	}
	now := fd.env.Scheduler.Now()
	if paused {
		fd.pausedAt = now
	} else {
		fd.start = fd.start.Add(now.Sub(fd.pausedAt))
		tracer().Debugf("frame driver resumed after pause of %v", now.Sub(fd.pausedAt))
	}
	fd.paused = paused
}

// Elapsed is the unpaused time the driver has been running.
func (fd *FrameDriver) Elapsed() time.Duration {
	now := fd.env.Scheduler.Now()
	if fd.paused {
		now = fd.pausedAt
	}
	return now.Sub(fd.start)
}

func (fd *FrameDriver) frame(now time.Time) {
	if fd.stopped || fd.done {
		return
	}
	if fd.paused {
		fd.env.Scheduler.RequestFrame(fd.frame)
		return
	}
	t := 1.0
	if fd.duration > 0 {
		t = clamp01(float64(now.Sub(fd.start)) / float64(fd.duration))
	}
	if fd.onFrame != nil {
		fd.onFrame(fd.easing(t))
	}
	if fd.stopped { // onFrame may stop the driver
		return
	}
	if t < 1 {
		fd.env.Scheduler.RequestFrame(fd.frame)
		return
	}
	fd.done = true
	fd.unsubscribe()
	if fd.onComplete != nil {
		fd.onComplete()
	}
}

// Stop cancels the driver. onComplete will not be called.
func (fd *FrameDriver) Stop() {
	if fd == nil || fd.stopped || fd.done {
		return
	}
	fd.stopped = true
	fd.unsubscribe()
}

// Done reports whether the driver has completed.
func (fd *FrameDriver) Done() bool {
	return fd != nil && fd.done
}
