package game

import (
	"testing"
	"time"

	"github.com/alexei-ozerov/whack/internal/fsm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runUntil ticks the engine until the screen reaches want.
func runUntil(t *testing.T, h *harness, e *Engine, want fsm.State, step time.Duration, onTick func()) {
	t.Helper()
	for i := 0; e.GetCurrentState() != want; i++ {
		require.Less(t, i, 5000, "engine never reached %d (at %s)", want, e.StateName())
		if onTick != nil {
			onTick()
		}
		e.Tick()
		h.loop.Frame()
		h.clock.Step(step)
	}
}

func emptyLevels(n int) Config {
	levels := make([]LevelConfig, n)
	return Config{Levels: levels}
}

func TestEngine_StartScreenRestarts(t *testing.T) {
	h := newHarness(t, seeded(20))
	e := NewEngine(emptyLevels(3), h.env)

	assert.Equal(t, ScreenStart, e.GetCurrentState())
	assert.Nil(t, e.CurrentLevel())

	e.Start()
	assert.Equal(t, ScreenStart, e.GetCurrentState(), "start is ignored until levels exist")

	h.settle()
	require.Len(t, e.Levels(), 3)
	assert.Equal(t, 0, e.LevelIndex())
	assert.Equal(t, "start-screen", e.StateName())
}

func TestEngine_DoneAdvancesOneLevel(t *testing.T) {
	h := newHarness(t, seeded(21))
	e := NewEngine(emptyLevels(2), h.env)
	h.settle()

	e.Start()
	runUntil(t, h, e, ScreenScore, 0, nil)
	report := e.Report()
	assert.Equal(t, 0, report.Level)
	assert.False(t, report.Last)
	assert.Nil(t, report.Totals)

	e.Continue()
	e.Continue()
	runUntil(t, h, e, ScreenPlayLevel, 0, nil)
	assert.Equal(t, 1, e.LevelIndex())
	h.settle()
	assert.Equal(t, 1, e.LevelIndex(), "a repeated done must not skip a level")
}

func TestEngine_DoneOnLastLevelReturnsToStart(t *testing.T) {
	h := newHarness(t, seeded(22))
	e := NewEngine(emptyLevels(2), h.env)
	h.settle()

	e.Start()
	runUntil(t, h, e, ScreenScore, 0, nil)
	e.Continue()
	runUntil(t, h, e, ScreenPlayLevel, 0, nil)
	runUntil(t, h, e, ScreenScore, 0, nil)

	report := e.Report()
	require.True(t, report.Last)
	require.NotNil(t, report.Totals)
	assert.Equal(t, Summary{}, *report.Totals)

	first := e.Levels()[0]
	e.Continue()
	runUntil(t, h, e, ScreenStart, 0, nil)
	h.settle()
	assert.Equal(t, 0, e.LevelIndex())
	assert.NotSame(t, first, e.Levels()[0], "levels are rebuilt on restart")
	assert.Equal(t, LevelInit, e.CurrentLevel().GetCurrentState())
}

func TestEngine_FullGameWithPerfectAim(t *testing.T) {
	h := newHarness(t, seeded(23))
	level := LevelConfig{
		MoleCount: 2,
		Rows:      1,
		Columns:   1,
		Mole:      MoleConfig{VisibleTime: time.Second, CooldownTime: 100 * time.Millisecond},
	}
	e := NewEngine(Config{Levels: []LevelConfig{level, level}}, h.env)
	h.settle()

	whack := func() {
		if l := e.CurrentLevel(); l != nil && len(l.Slots()) > 0 {
			if head := l.Slots()[0].Head(); head != nil && IsVisible(head) {
				e.WhackSlot(0)
			}
		}
	}

	e.Start()
	runUntil(t, h, e, ScreenScore, 10*time.Millisecond, whack)
	assert.Equal(t, 2, e.Report().Summary.Hit)
	e.Continue()
	runUntil(t, h, e, ScreenPlayLevel, 10*time.Millisecond, nil)
	runUntil(t, h, e, ScreenScore, 10*time.Millisecond, whack)

	report := e.Report()
	require.NotNil(t, report.Totals)
	assert.Equal(t, 4, report.Totals.Hit)
	assert.Equal(t, 0, report.Totals.Missed)
	assert.Equal(t, 4, report.Totals.Count)
	assert.Greater(t, report.Totals.Score, 4*90)
	assert.LessOrEqual(t, report.Totals.Score, 4*100)
}

func TestEngine_EndAbandonsCurrentLevel(t *testing.T) {
	h := newHarness(t, seeded(24))
	e := NewEngine(Config{Levels: []LevelConfig{{MoleCount: 4}}}, h.env)
	h.settle()

	e.Start()
	for range 20 {
		e.Tick()
		h.loop.Frame()
		h.clock.Step(10 * time.Millisecond)
	}
	require.Equal(t, ScreenPlayLevel, e.GetCurrentState())

	e.End()
	runUntil(t, h, e, ScreenScore, 10*time.Millisecond, nil)
	report := e.Report()
	assert.True(t, report.Last)
	assert.Equal(t, 4, report.Summary.Count)
	assert.Zero(t, report.Summary.Hit)
}

func TestEngine_InputOutsidePlayIsIgnored(t *testing.T) {
	h := newHarness(t, seeded(25))
	e := NewEngine(emptyLevels(1), h.env)
	h.settle()

	e.WhackSlot(0)
	e.Continue()
	e.End()
	h.settle()
	assert.Equal(t, ScreenStart, e.GetCurrentState())
	assert.Equal(t, 0, e.LevelIndex())
}

func TestEngine_ReportReadyWhenScoreScreenShows(t *testing.T) {
	h := newHarness(t, seeded(26))
	level := LevelConfig{
		MoleCount: 2,
		Rows:      1,
		Columns:   1,
		Mole:      MoleConfig{VisibleTime: time.Second, CooldownTime: 100 * time.Millisecond},
	}
	e := NewEngine(Config{Levels: []LevelConfig{level, level}}, h.env)
	h.settle()

	whackFirstLevel := func() {
		if e.LevelIndex() != 0 {
			return
		}
		if l := e.CurrentLevel(); l != nil && len(l.Slots()) > 0 {
			if head := l.Slots()[0].Head(); head != nil && IsVisible(head) {
				e.WhackSlot(0)
			}
		}
	}

	e.Start()
	for want := 0; want < 2; want++ {
		// Check the report on the same frame the screen changes.
		for i := 0; e.GetCurrentState() != ScreenScore; i++ {
			require.Less(t, i, 5000, "level %d never reached the score screen", want)
			whackFirstLevel()
			e.Tick()
			h.loop.Frame()
			h.clock.Step(10 * time.Millisecond)
		}

		report := e.Report()
		require.Equal(t, want, report.Level)
		assert.Equal(t, LevelSummary(e.CurrentLevel()), report.Summary)
		assert.Equal(t, want == 1, report.Last)

		if want == 0 {
			assert.Equal(t, 2, report.Summary.Hit)
			assert.Nil(t, report.Totals)
			e.Continue()
			runUntil(t, h, e, ScreenPlayLevel, 10*time.Millisecond, nil)
			continue
		}

		require.NotNil(t, report.Totals)
		first := LevelSummary(e.Levels()[0])
		assert.Equal(t, first.Add(report.Summary), *report.Totals)
		assert.Equal(t, 2, report.Totals.Hit)
		assert.Equal(t, 4, report.Totals.Count)
	}
}
