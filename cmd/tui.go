package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexei-ozerov/whack/internal/game"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	cellWidth  = 7
	cellHeight = 3
	blinkEvery = 1500 * time.Millisecond
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	scoreStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231"))
	cellStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Width(cellWidth).
			Height(cellHeight).
			Align(lipgloss.Center, lipgloss.Center)
	helpStyle = lipgloss.NewStyle().PaddingTop(1)
)

/*
Messages
*/

type frameMsg time.Time

/*
Model Methods
*/

type model struct {
	data     *appData
	interval time.Duration
	keys     keyMap
	help     help.Model

	width, height int
	now           time.Time
}

func newModel(d *appData, interval time.Duration) *model {
	return &model{
		data:     d,
		interval: interval,
		keys:     newKeyMap(),
		help:     help.New(),
	}
}

func (m *model) Init() tea.Cmd {
	return m.nextFrame()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width

	case frameMsg:
		m.now = time.Time(msg)
		m.data.frame()
		return m, m.nextFrame()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.help):
			m.help.ShowAll = !m.help.ShowAll
		default:
			m.dispatchKey(msg)
		}
	}

	return m, nil
}

func (m *model) View() string {
	var body string
	switch m.data.engine.GetCurrentState() {
	case game.ScreenStart:
		body = m.viewStart()
	case game.ScreenPlayLevel:
		body = m.viewPlayLevel()
	case game.ScreenScore:
		body = m.viewScore()
	}

	body = lipgloss.JoinVertical(lipgloss.Center, body, helpStyle.Render(m.help.View(m.keys)))
	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

/*
Custom Methods
*/

func (m *model) nextFrame() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// blink fades text in and out the way the start and continue prompts pulse.
func (m *model) blink(s string) string {
	if (m.now.UnixMilli()/blinkEvery.Milliseconds())%2 == 1 {
		return keyStyle.Render(s)
	}
	return blinkStyle.Render(s)
}

func (m *model) viewStart() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("WHACK-A-MOLE"),
		"",
		m.blink("Press space to start!"),
	)
}

func (m *model) viewPlayLevel() string {
	l := m.data.engine.CurrentLevel()
	if l == nil || len(l.Slots()) == 0 {
		return titleStyle.Render("Get ready...")
	}

	rows := make([]string, 0, l.Rows())
	for r := 0; r < l.Rows(); r++ {
		cells := make([]string, 0, l.Columns())
		for c := 0; c < l.Columns(); c++ {
			slot := l.Slots()[r*l.Columns()+c]
			label := keyStyle.Render(keyForSlot(slot.Index, l.Columns()))
			cells = append(cells, cellStyle.Render(colorizeMole(slot.Head())+"\n"+label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	status := fmt.Sprintf("Level %d/%d  •  score %d  •  hit %d  •  left %d",
		m.data.engine.LevelIndex()+1,
		len(m.data.engine.Levels()),
		game.LevelScore(l),
		game.LevelHit(l),
		l.MoleCount()-len(l.Done()),
	)

	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(status),
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *model) viewScore() string {
	r := m.data.engine.Report()

	next := "CONTINUE?"
	if r.Last {
		next = "GAME OVER"
	}

	lines := []string{
		titleStyle.Render("Your Score"),
		scoreStyle.Render(fmt.Sprint(r.Summary.Score)),
		fmt.Sprintf("%d/%d", r.Summary.Hit, r.Summary.Count),
		"",
		m.blink(next),
	}

	if r.Totals != nil {
		lines = append(lines,
			"",
			titleStyle.Render("Overall Score"),
			scoreStyle.Render(fmt.Sprint(r.Totals.Score)),
			fmt.Sprintf("%d/%d", r.Totals.Hit, r.Totals.Count),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Center, strings.Join(lines, "\n"))
}
