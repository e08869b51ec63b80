package game

import (
	"math"
	"time"
)

// Summary is the outcome of one or more levels.
type Summary struct {
	Score  int
	Hit    int
	Missed int
	Count  int
}

func (s Summary) Add(o Summary) Summary {
	return Summary{
		Score:  s.Score + o.Score,
		Hit:    s.Hit + o.Hit,
		Missed: s.Missed + o.Missed,
		Count:  s.Count + o.Count,
	}
}

func IsVisible(m *Mole) bool {
	return m.GetCurrentState() == MoleVisible
}

// Delta is the time between the mole showing up and being resolved. It is
// meaningless before the mole has been visible.
func Delta(m *Mole) time.Duration {
	if m.VisibleOn.IsZero() {
		return 0
	}
	resolved := m.HiddenOn
	if m.Whacked {
		resolved = m.WhackedOn
	}
	if resolved.IsZero() {
		return 0
	}
	return resolved.Sub(m.VisibleOn)
}

// Factor is the fraction of the visible window left when the mole was resolved.
func Factor(m *Mole) float64 {
	if m.VisibleTime <= 0 {
		return 0
	}
	return float64(m.VisibleTime-Delta(m)) / float64(m.VisibleTime)
}

func Score(m *Mole) int {
	if !m.Whacked {
		return 0
	}
	return max(m.MinPoints, int(math.Floor(float64(m.MaxPoints)*Factor(m)*m.Multiplier)))
}

func LevelScore(l *Level) int {
	score := 0
	for _, m := range l.done {
		score += Score(m)
	}
	return score
}

func LevelHit(l *Level) int {
	hit := 0
	for _, m := range l.done {
		if m.Whacked {
			hit++
		}
	}
	return hit
}

func LevelMissed(l *Level) int {
	return len(l.done) - LevelHit(l)
}

func LevelSummary(l *Level) Summary {
	return Summary{
		Score:  LevelScore(l),
		Hit:    LevelHit(l),
		Missed: LevelMissed(l),
		Count:  l.MoleCount(),
	}
}
