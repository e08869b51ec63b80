package main

import (
	"github.com/alexei-ozerov/whack/internal/game"
	"github.com/charmbracelet/lipgloss"
)

var (
	visibleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)  // Blue
	hitStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)  // Green
	missStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)   // Red
	waitStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("153"))            // Pale blue
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))            // Grey
	blinkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true) // Magenta
)

// colorizeMole renders the glyph for the mole at the head of a slot.
func colorizeMole(m *game.Mole) string {
	if m == nil {
		return " "
	}
	switch m.GetCurrentState() {
	case game.MoleVisible:
		return visibleStyle.Render("●")
	case game.MoleHidden, game.MoleFinal:
		if m.Whacked {
			return hitStyle.Render("✕")
		}
		return missStyle.Render("○")
	default:
		return waitStyle.Render("·")
	}
}
