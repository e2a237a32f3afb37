package anim

import (
	"time"
)

// Delay is a pausable delayed call. The callback fires exactly once, when
// the accumulated unpaused time reaches the delay. It never fires after
// Clear.
type Delay struct {
	env         *Env
	fn          func()
	remaining   time.Duration // unpaused time left, valid while no timer runs
	started     time.Time     // start of the current timer
	timer       Timer
	unsubscribe func()
	finished    bool
}

// Delay schedules fn after d of unpaused time. If the environment is
// paused when Delay is called, the countdown starts on resume.
func (env *Env) Delay(d time.Duration, fn func()) *Delay {
	if d < 0 {
		d = 0
	}
	dl := &Delay{env: env, fn: fn, remaining: d}
	dl.unsubscribe = env.State.Subscribe(dl.pauseChanged)
	if !env.State.Paused() {
		dl.start()
	} else {
		tracer().Debugf("delay of %v created while paused", d)
	}
	return dl
}

func (dl *Delay) start() {
	dl.started = dl.env.Scheduler.Now()
	dl.timer = dl.env.Scheduler.AfterFunc(dl.remaining, dl.fire)
}

func (dl *Delay) pauseChanged(paused bool) {
	if dl.finished {
		return
	}
	if paused {
		if dl.timer == nil {
			return
		}
		dl.timer.Stop()
		dl.timer = nil
		elapsed := dl.env.Scheduler.Now().Sub(dl.started)
		dl.remaining -= elapsed
		if dl.remaining < 0 {
			dl.remaining = 0
		}
		tracer().Debugf("delay paused, %v remaining", dl.remaining)
		return
	}
	if dl.timer == nil {
		dl.start()
	}
}

func (dl *Delay) fire() {
	if dl.finished {
		return
	}
	dl.finish()
	dl.fn()
}

func (dl *Delay) finish() {
	dl.finished = true
	if dl.timer != nil {
		dl.timer.Stop()
		dl.timer = nil
	}
	if dl.unsubscribe != nil {
		dl.unsubscribe()
	}
}

// Clear cancels the delay permanently. Clear may be called any number of
// times, also after the callback has fired.
func (dl *Delay) Clear() {
	if dl == nil || dl.finished {
		return
	}
	dl.finish()
}

// Pending reports whether the callback is still due.
func (dl *Delay) Pending() bool {
	return dl != nil && !dl.finished
}
