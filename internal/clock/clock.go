// Package clock provides a logical clock that runs scheduled callbacks when
// it is advanced, and the one-second game Timer built on top of it.
//
// Nothing here starts goroutines: time only moves when the owner calls
// Advance, so every callback runs on the caller's goroutine.
package clock

import (
	"time"
)

// Scheduler runs callbacks after a delay of logical time.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) *Task
	Every(d time.Duration, fn func()) *Task
}

// Task is a handle to a scheduled callback.
type Task struct {
	due     time.Duration
	period  time.Duration
	seq     int
	fn      func()
	stopped bool
}

// Stop prevents any further runs. It reports whether the task was still
// pending.
func (t *Task) Stop() bool {
	if t == nil || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Stopped reports whether the task will not run again.
func (t *Task) Stopped() bool {
	return t == nil || t.stopped
}

// Clock is a logical clock. The zero value is ready to use.
type Clock struct {
	now   time.Duration
	seq   int
	tasks []*Task
}

// New returns a clock at time zero.
func New() *Clock {
	return &Clock{}
}

// Now returns the logical time elapsed since the clock was created.
func (c *Clock) Now() time.Duration {
	return c.now
}

// AfterFunc schedules fn to run once, d after the current logical time.
func (c *Clock) AfterFunc(d time.Duration, fn func()) *Task {
	return c.schedule(d, 0, fn)
}

// Every schedules fn to run every d, starting d from now.
func (c *Clock) Every(d time.Duration, fn func()) *Task {
	if d <= 0 {
		d = time.Nanosecond
	}
	return c.schedule(d, d, fn)
}

func (c *Clock) schedule(d, period time.Duration, fn func()) *Task {
	if d < 0 {
		d = 0
	}
	c.seq++
	t := &Task{due: c.now + d, period: period, seq: c.seq, fn: fn}
	c.tasks = append(c.tasks, t)
	return t
}

// Pending returns the number of tasks that have not run or been stopped.
func (c *Clock) Pending() int {
	n := 0
	for _, t := range c.tasks {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, running every task that falls due
// in due-time order (ties in scheduling order). Tasks scheduled by a
// callback run in the same call if they fall due before the target time.
func (c *Clock) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	target := c.now + d
	for {
		next := c.next(target)
		if next == nil {
			break
		}
		c.now = next.due
		if next.period > 0 {
			next.due += next.period
		} else {
			next.stopped = true
		}
		next.fn()
	}
	c.now = target
	c.compact()
}

func (c *Clock) next(limit time.Duration) *Task {
	var best *Task
	for _, t := range c.tasks {
		if t.stopped || t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (c *Clock) compact() {
	live := c.tasks[:0]
	for _, t := range c.tasks {
		if !t.stopped {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(c.tasks); i++ {
		c.tasks[i] = nil
	}
	c.tasks = live
}
