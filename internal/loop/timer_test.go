package loop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

func newFakeTimers() (*Timers, *Loop, *testingclock.FakeClock) {
	clk := testingclock.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	l := New()
	return NewTimers(clk, l), l, clk
}

func TestTimers_ExpiryRunsOnNextFrame(t *testing.T) {
	timers, l, clk := newFakeTimers()

	fired := 0
	timer := timers.After(100*time.Millisecond, func() { fired++ })
	require.True(t, timer.Armed())

	clk.Step(99 * time.Millisecond)
	l.Frame()
	assert.Equal(t, 0, fired)

	clk.Step(time.Millisecond)
	assert.Equal(t, 0, fired, "expiry must wait for the loop")
	l.Frame()
	assert.Equal(t, 1, fired)
	assert.False(t, timer.Armed())
	assert.False(t, timer.Stop())
}

func TestTimers_StopBeforeExpiry(t *testing.T) {
	timers, l, clk := newFakeTimers()

	fired := 0
	timer := timers.After(time.Second, func() { fired++ })
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	clk.Step(2 * time.Second)
	l.Frame()
	assert.Equal(t, 0, fired)
}

func TestTimers_StopAfterExpiryWasPosted(t *testing.T) {
	timers, l, clk := newFakeTimers()

	fired := 0
	timer := timers.After(time.Second, func() { fired++ })
	clk.Step(time.Second)
	require.False(t, l.Idle())

	assert.True(t, timer.Stop())
	l.Frame()
	assert.Equal(t, 0, fired)
}

func TestTimers_NowFollowsClock(t *testing.T) {
	timers, _, clk := newFakeTimers()
	start := timers.Now()

	clk.Step(250 * time.Millisecond)
	assert.Equal(t, 250*time.Millisecond, timers.Now().Sub(start))
}

func TestTimer_NilIsInert(t *testing.T) {
	var timer *Timer
	assert.False(t, timer.Stop())
	assert.False(t, timer.Armed())
}
