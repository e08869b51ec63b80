package game

import (
	"github.com/alexei-ozerov/whack/internal/fsm"
	"k8s.io/klog/v2"
)

const (
	ScreenStart fsm.State = iota
	ScreenPlayLevel
	ScreenScore
)

var engineStates = fsm.Table[Engine]{
	ScreenStart: {
		Name:    "start-screen",
		OnEnter: (*Engine).enterStart,
	},
	ScreenPlayLevel: {
		Name:    "play-level",
		OnEnter: (*Engine).enterPlayLevel,
		Events: []fsm.HandlerFn[Engine]{
			EventUpdate: (*Engine).update,
			EventEnd:    (*Engine).end,
		},
	},
	ScreenScore: {
		Name:    "score-screen",
		OnEnter: (*Engine).enterScore,
		Events: []fsm.HandlerFn[Engine]{
			EventDone: (*Engine).done,
		},
	},
}

// Report is what the score screen shows. Totals is only set on the last level.
type Report struct {
	Level   int
	Summary Summary
	Last    bool
	Totals  *Summary
}

type Engine struct {
	*fsm.Entity[Engine]

	cfg    Config
	env    Env
	levels []*Level
	level  int
	report Report
}

func NewEngine(cfg Config, env Env) *Engine {
	e := &Engine{
		cfg: cfg.WithDefaults(),
		env: env,
	}
	e.Entity = fsm.NewEntity(e, engineStates, ScreenStart, env.Frames)
	return e
}

// Restart rebuilds every level and rewinds to the first one.
func (e *Engine) Restart() {
	e.levels = make([]*Level, 0, len(e.cfg.Levels))
	for i, lc := range e.cfg.Levels {
		e.levels = append(e.levels, NewLevel(i, lc, e.cfg.Surface, e.env))
	}
	e.level = 0
	e.report = Report{}
}

func (e *Engine) Levels() []*Level {
	return e.levels
}

func (e *Engine) LevelIndex() int {
	return e.level
}

// CurrentLevel is nil until the start screen has been entered once.
func (e *Engine) CurrentLevel() *Level {
	if e.level < 0 || e.level >= len(e.levels) {
		return nil
	}
	return e.levels[e.level]
}

func (e *Engine) IsLastLevel() bool {
	return e.level == len(e.levels)-1
}

func (e *Engine) Report() Report {
	return e.report
}

// Start leaves the start screen.
func (e *Engine) Start() {
	if e.GetCurrentState() != ScreenStart || len(e.levels) == 0 {
		return
	}
	e.Transition(ScreenPlayLevel)
}

// Tick is the per-frame heartbeat.
func (e *Engine) Tick() {
	e.Trigger(EventUpdate)
}

// Continue acknowledges the score screen.
func (e *Engine) Continue() {
	e.Trigger(EventDone)
}

// End abandons the level being played.
func (e *Engine) End() {
	e.Trigger(EventEnd)
}

func (e *Engine) WhackSlot(i int) {
	if e.GetCurrentState() != ScreenPlayLevel {
		return
	}
	if l := e.CurrentLevel(); l != nil {
		l.WhackSlot(i)
	}
}

func (e *Engine) enterStart(args fsm.Args) {
	e.Restart()
	klog.V(2).InfoS("Start screen", "levels", len(e.levels), "init", args.Init)
}

func (e *Engine) enterPlayLevel(_ fsm.Args) {
	l := e.CurrentLevel()
	if l == nil {
		return
	}
	klog.V(2).InfoS("Playing level", "level", e.level)
	l.Trigger(EventStart)
}

func (e *Engine) update(_ fsm.Args) {
	l := e.CurrentLevel()
	if l == nil {
		return
	}
	l.Trigger(EventUpdate)
	if l.GetCurrentState() == LevelFinal {
		// The report must be valid as soon as the state reads score-screen.
		e.report = e.buildReport()
		e.Transition(ScreenScore)
	}
}

func (e *Engine) end(_ fsm.Args) {
	if l := e.CurrentLevel(); l != nil {
		l.Trigger(EventEnd)
	}
}

func (e *Engine) buildReport() Report {
	r := Report{
		Level:   e.level,
		Summary: LevelSummary(e.CurrentLevel()),
		Last:    e.IsLastLevel(),
	}
	if r.Last {
		var totals Summary
		for _, l := range e.levels {
			totals = totals.Add(LevelSummary(l))
		}
		r.Totals = &totals
	}
	return r
}

func (e *Engine) enterScore(_ fsm.Args) {
	klog.V(2).InfoS("Score screen", "level", e.report.Level, "score", e.report.Summary.Score, "last", e.report.Last)
}

func (e *Engine) done(_ fsm.Args) {
	// A second done queued from the same score screen is stale.
	if e.GetCurrentState() != ScreenScore {
		return
	}
	e.level++
	if e.level >= len(e.levels) {
		e.Transition(ScreenStart)
		return
	}
	e.Transition(ScreenPlayLevel)
}
