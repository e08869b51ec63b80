package loop

import (
	"context"
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// Loop is a single-threaded frame executor. All machine work happens inside
// Frame; other goroutines hand work to it through Post.
type Loop struct {
	mu     sync.Mutex
	posted []func()
	frames []func()
	count  uint64
}

func New() *Loop {
	return &Loop{}
}

// RequestFrame registers fn to run on the next frame.
func (l *Loop) RequestFrame(fn func()) {
	l.mu.Lock()
	l.frames = append(l.frames, fn)
	l.mu.Unlock()
}

// Post hands fn to the loop. Safe to call from any goroutine; fn runs at the
// start of the next frame.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.posted = append(l.posted, fn)
	l.mu.Unlock()
}

// Frame runs posted tasks, then every frame callback registered so far.
// Callbacks registered while the frame runs wait for the next one.
func (l *Loop) Frame() {
	l.mu.Lock()
	posted := l.posted
	l.posted = nil
	l.mu.Unlock()

	for _, fn := range posted {
		fn()
	}

	l.mu.Lock()
	frames := l.frames
	l.frames = nil
	l.count++
	l.mu.Unlock()

	for _, fn := range frames {
		fn()
	}
}

// Frames returns how many frames have run.
func (l *Loop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Idle reports whether nothing is waiting for a frame.
func (l *Loop) Idle() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.posted) == 0 && len(l.frames) == 0
}

// Run drives the loop from a ticker until ctx is cancelled or onTick returns
// false. onTick runs before each frame.
func (l *Loop) Run(ctx context.Context, clk clock.WithTicker, interval time.Duration, onTick func() bool) error {
	ticker := clk.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C():
			if !onTick() {
				return nil
			}
			l.Frame()
		}
	}
}
