package clock

import (
	"time"
)

// TickInterval is the Timer's resolution.
const TickInterval = time.Second

// Timer counts whole seconds of play while running.
type Timer struct {
	sched   Scheduler
	task    *Task
	seconds int
	onTick  func(seconds int)
}

// NewTimer creates a stopped timer at zero. onTick may be nil.
func NewTimer(sched Scheduler, onTick func(seconds int)) *Timer {
	return &Timer{sched: sched, onTick: onTick}
}

// Start begins ticking. Starting a running timer does nothing.
func (t *Timer) Start() {
	if t.Running() {
		return
	}
	t.task = t.sched.Every(TickInterval, t.tick)
}

// Stop halts the timer and keeps the count. Safe to call repeatedly.
func (t *Timer) Stop() {
	t.task.Stop()
	t.task = nil
}

// Reset stops the timer and zeroes the count.
func (t *Timer) Reset() {
	t.Stop()
	t.seconds = 0
}

func (t *Timer) Running() bool {
	return !t.task.Stopped()
}

func (t *Timer) Seconds() int {
	return t.seconds
}

func (t *Timer) tick() {
	t.seconds++
	if t.onTick != nil {
		t.onTick(t.seconds)
	}
}
