package main

import (
	"math/rand/v2"

	"github.com/alexei-ozerov/whack/internal/game"
	"github.com/alexei-ozerov/whack/internal/loop"
	tea "github.com/charmbracelet/bubbletea"
	"k8s.io/utils/clock"
)

type appData struct {
	// Lifecycle
	program *tea.Program
	seed    uint64

	// Runtime
	clock  clock.WithTickerAndDelayedExecution
	loop   *loop.Loop
	timers *loop.Timers
	bot    *rand.Rand

	// Game
	cfg    game.Config
	engine *game.Engine
}

func newAppData(cfg game.Config, seed uint64) *appData {
	return newAppDataWithClock(cfg, seed, clock.RealClock{})
}

func newAppDataWithClock(cfg game.Config, seed uint64, clk clock.WithTickerAndDelayedExecution) *appData {
	if seed == 0 {
		seed = uint64(clk.Now().UnixNano())
	}

	l := loop.New()
	timers := loop.NewTimers(clk, l)

	d := &appData{
		seed:   seed,
		clock:  clk,
		loop:   l,
		timers: timers,
		bot:    rand.New(rand.NewPCG(seed, seed+1)),
		cfg:    cfg,
	}
	d.engine = game.NewEngine(cfg, game.Env{
		Frames: l,
		Timers: timers,
		Rand:   rand.New(rand.NewPCG(seed, seed^0x5bd1e995)),
	})
	return d
}

// frame is one render tick: heartbeat first, then the machines get their turn.
func (a *appData) frame() {
	a.engine.Tick()
	a.loop.Frame()
}
