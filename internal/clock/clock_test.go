package clock

import (
	"testing"
	"time"
)

func TestClock_AfterFuncFiresOnce(t *testing.T) {
	c := New()
	fired := 0
	c.AfterFunc(time.Second, func() { fired++ })

	c.Advance(999 * time.Millisecond)
	if fired != 0 {
		t.Fatalf("fired too early")
	}
	c.Advance(time.Millisecond)
	if fired != 1 {
		t.Fatalf("expected 1 run at due time, got %d", fired)
	}
	c.Advance(5 * time.Second)
	if fired != 1 {
		t.Errorf("one-shot ran again: %d", fired)
	}
	if c.Pending() != 0 {
		t.Errorf("expected no pending tasks, got %d", c.Pending())
	}
}

func TestClock_OrderAndNow(t *testing.T) {
	c := New()
	var order []string
	var at []time.Duration
	c.AfterFunc(1500*time.Millisecond, func() { order = append(order, "hint"); at = append(at, c.Now()) })
	c.AfterFunc(1000*time.Millisecond, func() { order = append(order, "revert"); at = append(at, c.Now()) })
	c.AfterFunc(1000*time.Millisecond, func() { order = append(order, "complete"); at = append(at, c.Now()) })

	c.Advance(2 * time.Second)

	want := []string{"revert", "complete", "hint"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], order[i])
		}
	}
	if at[0] != time.Second || at[2] != 1500*time.Millisecond {
		t.Errorf("callbacks saw wrong Now(): %v", at)
	}
	if c.Now() != 2*time.Second {
		t.Errorf("expected clock at 2s, got %v", c.Now())
	}
}

func TestClock_EveryAndStop(t *testing.T) {
	c := New()
	n := 0
	task := c.Every(time.Second, func() { n++ })

	c.Advance(3500 * time.Millisecond)
	if n != 3 {
		t.Fatalf("expected 3 ticks, got %d", n)
	}

	if !task.Stop() {
		t.Error("first Stop should report the task was pending")
	}
	if task.Stop() {
		t.Error("second Stop should be a no-op")
	}
	c.Advance(10 * time.Second)
	if n != 3 {
		t.Errorf("stopped task kept ticking: %d", n)
	}
}

func TestClock_CallbackSchedulesWithinWindow(t *testing.T) {
	c := New()
	var fired []time.Duration
	c.AfterFunc(time.Second, func() {
		c.AfterFunc(time.Second, func() { fired = append(fired, c.Now()) })
	})

	c.Advance(3 * time.Second)
	if len(fired) != 1 || fired[0] != 2*time.Second {
		t.Errorf("expected nested task at 2s, got %v", fired)
	}
}

func TestClock_StopFromOtherCallback(t *testing.T) {
	c := New()
	ran := false
	var victim *Task
	c.AfterFunc(time.Second, func() { victim.Stop() })
	victim = c.AfterFunc(2*time.Second, func() { ran = true })

	c.Advance(5 * time.Second)
	if ran {
		t.Error("task stopped by an earlier callback should not run")
	}
}

func TestTask_NilSafe(t *testing.T) {
	var task *Task
	if task.Stop() {
		t.Error("nil task Stop should report false")
	}
	if !task.Stopped() {
		t.Error("nil task should count as stopped")
	}
}
