package loop

import (
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// Timers arms cancellable delayed tasks. Expired tasks are posted to the loop
// instead of running on the clock's goroutine.
type Timers struct {
	clock clock.WithDelayedExecution
	loop  *Loop
}

func NewTimers(clk clock.WithDelayedExecution, l *Loop) *Timers {
	return &Timers{clock: clk, loop: l}
}

// Now is the game time source.
func (t *Timers) Now() time.Time {
	return t.clock.Now()
}

// After runs fn on the loop once d has elapsed.
func (t *Timers) After(d time.Duration, fn func()) *Timer {
	timer := &Timer{fn: fn}
	timer.mu.Lock()
	timer.timer = t.clock.AfterFunc(d, func() {
		t.loop.Post(timer.fire)
	})
	timer.mu.Unlock()
	return timer
}

type Timer struct {
	mu      sync.Mutex
	timer   clock.Timer
	fn      func()
	stopped bool
	fired   bool
}

// Stop disarms the timer. A stopped timer never runs, even when its expiry
// was already posted to the loop. Reports whether the timer was still armed.
func (t *Timer) Stop() bool {
	if t == nil {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
	}
	return true
}

// Armed reports whether the timer can still run.
func (t *Timer) Armed() bool {
	if t == nil {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.stopped && !t.fired
}

func (t *Timer) fire() {
	t.mu.Lock()
	if t.stopped || t.fired {
		t.mu.Unlock()
		return
	}
	t.fired = true
	fn := t.fn
	t.mu.Unlock()

	fn()
}
