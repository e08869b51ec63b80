package main

import (
	"github.com/alexei-ozerov/whack/internal/game"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

/*
Screen Input
*/

type screenFn func(m *model, msg tea.KeyMsg)

// screenInput is indexed by the engine's screen state.
var screenInput = []screenFn{
	game.ScreenStart:     (*model).startScreenKey,
	game.ScreenPlayLevel: (*model).playLevelKey,
	game.ScreenScore:     (*model).scoreScreenKey,
}

func (m *model) dispatchKey(msg tea.KeyMsg) {
	s := m.data.engine.GetCurrentState()
	if s < 0 || int(s) >= len(screenInput) {
		return
	}
	screenInput[s](m, msg)
}

// Start Screen
func (m *model) startScreenKey(msg tea.KeyMsg) {
	if key.Matches(msg, m.keys.action) {
		m.data.engine.Start()
	}
}

// Play Level
func (m *model) playLevelKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.end):
		m.data.engine.End()

	case key.Matches(msg, m.keys.whack):
		l := m.data.engine.CurrentLevel()
		if l == nil {
			return
		}
		if slot, ok := slotForKey(msg.String(), l.Rows(), l.Columns()); ok {
			m.data.engine.WhackSlot(slot)
		}
	}
}

// Score Screen
func (m *model) scoreScreenKey(msg tea.KeyMsg) {
	if key.Matches(msg, m.keys.action) {
		m.data.engine.Continue()
	}
}
