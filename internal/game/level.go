package game

import (
	"slices"

	"github.com/alexei-ozerov/whack/internal/fsm"
	"k8s.io/klog/v2"
)

const (
	LevelInit fsm.State = iota
	LevelPlay
	LevelFinal
)

var levelStates = fsm.Table[Level]{
	LevelInit: {
		Name: "init",
		Events: []fsm.HandlerFn[Level]{
			EventStart: (*Level).start,
		},
	},
	LevelPlay: {
		Name:    "play",
		OnEnter: (*Level).enterPlay,
		OnExit:  (*Level).exitPlay,
		Events: []fsm.HandlerFn[Level]{
			EventUpdate: (*Level).update,
			EventEnd:    (*Level).end,
		},
	},
	LevelFinal: {
		Name: "final",
	},
}

// Slot is one grid cell. Moles that land on a busy slot queue behind the
// head; only the head is ever advanced.
type Slot struct {
	Index    int
	Row, Col int
	X, Y     int

	nodes []*Mole
}

func (s *Slot) Head() *Mole {
	if len(s.nodes) == 0 {
		return nil
	}
	return s.nodes[0]
}

func (s *Slot) Len() int {
	return len(s.nodes)
}

type Level struct {
	*fsm.Entity[Level]

	ID int

	cfg     LevelConfig
	surface Surface
	env     Env

	pending []*Mole
	active  map[int]*Mole
	done    []*Mole
	slots   []*Slot
}

func NewLevel(id int, cfg LevelConfig, surface Surface, env Env) *Level {
	l := &Level{
		ID:      id,
		cfg:     cfg.WithDefaults(),
		surface: surface,
		env:     env,
		active:  make(map[int]*Mole),
	}
	l.Entity = fsm.NewEntity(l, levelStates, LevelInit, env.Frames)

	size := l.MoleSize()
	l.pending = make([]*Mole, 0, l.cfg.MoleCount)
	for i := 0; i < l.cfg.MoleCount; i++ {
		l.pending = append(l.pending, NewMole(i, size, l.cfg.Mole, env))
	}
	return l
}

func (l *Level) MoleCount() int {
	return l.cfg.MoleCount
}

func (l *Level) Rows() int {
	return l.cfg.Rows
}

func (l *Level) Columns() int {
	return l.cfg.Columns
}

func (l *Level) MaxActive() int {
	return l.cfg.Columns * l.cfg.Rows
}

// MoleSize is the edge of a square cell that fits the grid on the surface.
func (l *Level) MoleSize() int {
	return min(l.surface.Width/l.cfg.Columns, l.surface.Height/l.cfg.Rows)
}

func (l *Level) Width() int {
	return l.MoleSize() * l.cfg.Columns
}

func (l *Level) Height() int {
	return l.MoleSize() * l.cfg.Rows
}

func (l *Level) Slots() []*Slot {
	return l.slots
}

// PendingMoles are the moles not placed yet, in admission order.
func (l *Level) PendingMoles() []*Mole {
	return l.pending
}

func (l *Level) Done() []*Mole {
	return l.done
}

// Active returns the active moles ordered by id.
func (l *Level) Active() []*Mole {
	moles := make([]*Mole, 0, len(l.active))
	for _, m := range l.active {
		moles = append(moles, m)
	}
	slices.SortFunc(moles, func(a, b *Mole) int { return a.ID - b.ID })
	return moles
}

func (l *Level) ActiveCount() int {
	return len(l.active)
}

// WhackSlot whacks the mole at the head of slot i, if any.
func (l *Level) WhackSlot(i int) {
	if i < 0 || i >= len(l.slots) {
		return
	}
	if head := l.slots[i].Head(); head != nil {
		head.Whack()
	}
}

func (l *Level) start(_ fsm.Args) {
	l.Transition(LevelPlay)
}

func (l *Level) enterPlay(_ fsm.Args) {
	klog.InfoS("Starting level", "level", l.ID, "moles", l.cfg.MoleCount, "rows", l.cfg.Rows, "columns", l.cfg.Columns)

	size := l.MoleSize()
	x := l.surface.Width/2 - l.Width()/2
	y := l.surface.Height/2 - l.Height()/2

	l.slots = make([]*Slot, 0, l.MaxActive())
	for r := 0; r < l.cfg.Rows; r++ {
		for c := 0; c < l.cfg.Columns; c++ {
			l.slots = append(l.slots, &Slot{
				Index: len(l.slots),
				Row:   r,
				Col:   c,
				X:     x + c*size,
				Y:     y + r*size,
			})
		}
	}
}

func (l *Level) update(_ fsm.Args) {
	if len(l.slots) == 0 {
		// Layout happens on enter; an update can be queued ahead of it.
		return
	}

	if len(l.active) < l.MaxActive() && len(l.pending) > 0 {
		m := l.pending[0]
		l.pending[0] = nil
		l.pending = l.pending[1:]

		slot := l.slots[l.env.Rand.IntN(len(l.slots))]
		m.Slot = slot.Index
		slot.nodes = append(slot.nodes, m)
		l.active[m.ID] = m
	}

	for _, slot := range l.slots {
		m := slot.Head()
		if m == nil {
			continue
		}
		switch m.GetCurrentState() {
		case MoleInit:
			m.X = slot.X
			m.Y = slot.Y
			m.Trigger(EventPlay)
		case MoleFinal:
			slot.nodes[0] = nil
			slot.nodes = slot.nodes[1:]
			delete(l.active, m.ID)
			l.done = append(l.done, m)
		}
	}

	if len(l.done) == l.cfg.MoleCount {
		l.Transition(LevelFinal)
	}
}

func (l *Level) end(_ fsm.Args) {
	for _, m := range l.pending {
		m.Release()
	}
	for _, m := range l.active {
		m.Release()
	}
	l.Transition(LevelFinal)
}

func (l *Level) exitPlay(_ fsm.Args) {
	klog.InfoS("End of level", "level", l.ID, "score", LevelScore(l), "hit", LevelHit(l), "total", l.cfg.MoleCount)
}
