package game

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/alexei-ozerov/whack/internal/loop"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type harness struct {
	t     *testing.T
	loop  *loop.Loop
	clock *testingclock.FakeClock
	env   Env
}

func newHarness(t *testing.T, src rand.Source) *harness {
	t.Helper()
	clk := testingclock.NewFakeClock(epoch)
	l := loop.New()
	return &harness{
		t:     t,
		loop:  l,
		clock: clk,
		env: Env{
			Frames: l,
			Timers: loop.NewTimers(clk, l),
			Rand:   rand.New(src),
		},
	}
}

func seeded(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// zeroSource makes every power-of-two draw return 0.
type zeroSource struct{}

func (zeroSource) Uint64() uint64 { return 0 }

// settle runs frames until no machine has work left.
func (h *harness) settle() {
	h.t.Helper()
	for i := 0; !h.loop.Idle(); i++ {
		require.Less(h.t, i, 1000, "loop never went idle")
		h.loop.Frame()
	}
}

// advance moves the clock and lets the loop absorb the fallout.
func (h *harness) advance(d time.Duration) {
	h.t.Helper()
	h.clock.Step(d)
	h.settle()
}
