/*
Package anim provides the clock primitives of the visualizer: a frame
scheduler, a global pause switch, a lock serializing top-level animation
sequences, pausable delays and frame drivers animating a progress value
from 0 to 1.

Scheduling is single-threaded and cooperative. Every callback of this
package runs on the goroutine driving the Scheduler, one after the other:
per-frame callbacks are requested with RequestFrame, delayed callbacks
with AfterFunc. Between two callbacks control returns to the scheduler.
A Loop drives callbacks in real time; a ManualScheduler drives them on a
virtual clock for tests and headless runs.

There are no process-wide singletons. An Env bundles a scheduler with a
pause State and a Lock; every animation is handed the Env it belongs to:

	env := anim.NewEnv(anim.NewLoop(60))
	d := env.Animate(2*time.Second, anim.EaseInOutCubic, func(t float64) {
	    // draw frame for progress t
	}, func() {
	    // done
	})
	env.State.SetPaused(true)  // every running driver and delay holds

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package anim

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'anim'
func tracer() tracing.Trace {
	return tracing.Select("anim")
}

// Env is the animation context shared by all animations of a canvas:
// the scheduler driving them, the pause state and the lock serializing
// top-level sequences.
type Env struct {
	Scheduler Scheduler
	State     *State
	Lock      *Lock
}

// NewEnv creates an animation context for a scheduler.
func NewEnv(sched Scheduler) *Env {
	return &Env{
		Scheduler: sched,
		State:     NewState(),
		Lock:      NewLock(sched),
	}
}
