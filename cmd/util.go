package main

import (
	"github.com/charmbracelet/bubbles/key"
)

// keypadColumns is the width of the keypad; slot keys are laid out the same
// way the grid is, so the key at (row, col) hits the slot at (row, col).
const keypadColumns = 4

var slotKeys = []string{
	"1", "2", "3", "4",
	"q", "w", "e", "r",
	"a", "s", "d", "f",
	"z", "x", "c", "v",
}

type keyMap struct {
	whack  key.Binding
	action key.Binding
	end    key.Binding
	help   key.Binding
	quit   key.Binding
}

// newKeyMap initializes the keys for the UI
func newKeyMap() keyMap {
	return keyMap{
		whack: key.NewBinding(
			key.WithKeys(slotKeys...),
			key.WithHelp("1-4/q-r/a-f/z-v", "whack"),
		),
		action: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space/enter", "start/continue"),
		),
		end: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "end level"),
		),
		help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.whack, k.action, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.whack, k.end},
		{k.action},
		{k.help, k.quit},
	}
}

// slotForKey maps a keypad key onto a slot of a rows x columns grid.
func slotForKey(k string, rows, columns int) (int, bool) {
	for i, sk := range slotKeys {
		if sk != k {
			continue
		}
		r, c := i/keypadColumns, i%keypadColumns
		if r >= rows || c >= columns {
			return 0, false
		}
		return r*columns + c, true
	}
	return 0, false
}

// keyForSlot is the inverse of slotForKey.
func keyForSlot(slot, columns int) string {
	r, c := slot/columns, slot%columns
	i := r*keypadColumns + c
	if c >= keypadColumns || i >= len(slotKeys) {
		return ""
	}
	return slotKeys[i]
}
