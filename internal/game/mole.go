package game

import (
	"math/rand/v2"
	"time"

	"github.com/alexei-ozerov/whack/internal/fsm"
	"github.com/alexei-ozerov/whack/internal/loop"
	"k8s.io/klog/v2"
)

// Env bundles the collaborators every machine in a game shares.
type Env struct {
	Frames fsm.FrameRequester
	Timers *loop.Timers
	Rand   *rand.Rand
}

const (
	MoleInit fsm.State = iota
	MoleWait
	MoleVisible
	MoleHidden
	MoleFinal
)

// Events shared by every machine in the game. Each state table only lists
// the ones it handles.
const (
	EventPlay fsm.Event = iota
	EventWhack
	EventHide
	EventStart
	EventUpdate
	EventEnd
	EventDone
)

var moleStates = fsm.Table[Mole]{
	MoleInit: {
		Name: "init",
		Events: []fsm.HandlerFn[Mole]{
			EventPlay: (*Mole).play,
		},
	},
	MoleWait: {
		Name:    "wait",
		OnEnter: (*Mole).enterWait,
	},
	MoleVisible: {
		Name:    "visible",
		OnEnter: (*Mole).enterVisible,
		OnExit:  (*Mole).exitVisible,
		Events: []fsm.HandlerFn[Mole]{
			EventWhack: (*Mole).whack,
			EventHide:  (*Mole).hide,
		},
	},
	MoleHidden: {
		Name:    "hidden",
		OnEnter: (*Mole).enterHidden,
		OnExit:  (*Mole).exitHidden,
	},
	MoleFinal: {
		Name: "final",
	},
}

type Mole struct {
	*fsm.Entity[Mole]

	ID int

	VisibleOn time.Time
	WhackedOn time.Time
	HiddenOn  time.Time
	Whacked   bool

	VisibleTime  time.Duration
	CooldownTime time.Duration
	Multiplier   float64
	MaxPoints    int
	MinPoints    int

	// Placement, only read by the renderer.
	Size int
	X, Y int
	Slot int

	env      Env
	released bool
	wait     *loop.Timer
	hideT    *loop.Timer
	cooldown *loop.Timer
}

func NewMole(id, size int, cfg MoleConfig, env Env) *Mole {
	cfg = cfg.WithDefaults()
	m := &Mole{
		ID:           id,
		VisibleTime:  cfg.VisibleTime,
		CooldownTime: cfg.CooldownTime,
		Multiplier:   cfg.Multiplier,
		MaxPoints:    cfg.MaxPoints,
		MinPoints:    cfg.MinPoints,
		Size:         size,
		Slot:         -1,
		env:          env,
	}
	m.Entity = fsm.NewEntity(m, moleStates, MoleInit, env.Frames)
	return m
}

func (m *Mole) Radius() int {
	return m.Size / 2
}

// Whack is the activate signal from the input layer.
func (m *Mole) Whack() {
	m.Trigger(EventWhack)
}

// Release stops every timer the mole still has armed and refuses to arm new
// ones, so queued hooks cannot bring it back to life.
func (m *Mole) Release() {
	m.released = true
	m.wait.Stop()
	m.hideT.Stop()
	m.cooldown.Stop()
}

func (m *Mole) play(_ fsm.Args) {
	if m.GetCurrentState() != MoleInit {
		return
	}
	m.Transition(MoleWait)
}

func (m *Mole) after(d time.Duration, fn func()) *loop.Timer {
	if m.released {
		return nil
	}
	return m.env.Timers.After(d, fn)
}

func (m *Mole) enterWait(_ fsm.Args) {
	d := randomBetween(m.env.Rand, m.CooldownTime, m.VisibleTime-m.CooldownTime)
	klog.V(4).InfoS("Mole waiting", "mole", m.ID, "delay", d)
	m.wait = m.after(d, func() {
		m.Transition(MoleVisible)
	})
}

func (m *Mole) enterVisible(_ fsm.Args) {
	m.VisibleOn = m.env.Timers.Now()
	klog.V(4).InfoS("Mole visible", "mole", m.ID)
	m.hideT = m.after(m.VisibleTime, func() {
		m.Trigger(EventHide)
	})
}

// whack and hide were bound while the mole was visible; if the other one
// already resolved the mole they are stale and dropped.
func (m *Mole) whack(_ fsm.Args) {
	if m.GetCurrentState() != MoleVisible {
		return
	}
	m.Whacked = true
	m.WhackedOn = m.env.Timers.Now()
	m.Transition(MoleHidden)
}

func (m *Mole) hide(_ fsm.Args) {
	if m.GetCurrentState() != MoleVisible {
		return
	}
	m.Whacked = false
	m.HiddenOn = m.env.Timers.Now()
	m.Transition(MoleHidden)
}

func (m *Mole) exitVisible(_ fsm.Args) {
	m.hideT.Stop()
}

func (m *Mole) enterHidden(_ fsm.Args) {
	klog.V(4).InfoS("Mole hidden", "mole", m.ID, "whacked", m.Whacked, "delta", Delta(m))
	m.cooldown = m.after(m.CooldownTime, func() {
		m.Transition(MoleFinal)
	})
}

func (m *Mole) exitHidden(_ fsm.Args) {
	m.cooldown.Stop()
}

// randomBetween returns a uniform duration in [lo, hi), truncated to whole
// milliseconds. An empty range yields lo.
func randomBetween(r *rand.Rand, lo, hi time.Duration) time.Duration {
	minMs := lo.Milliseconds()
	maxMs := hi.Milliseconds()
	if maxMs <= minMs {
		return lo
	}
	return time.Duration(r.Int64N(maxMs-minMs)+minMs) * time.Millisecond
}
