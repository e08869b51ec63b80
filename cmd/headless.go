package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alexei-ozerov/whack/internal/game"
	"k8s.io/klog/v2"
)

// botAccuracy is the chance per frame that the bot hits a visible mole.
const botAccuracy = 0.05

// runHeadless plays the whole game without a terminal and prints each score
// screen. It returns once the engine is back on the start screen.
func (a *appData) runHeadless(ctx context.Context, interval time.Duration, out io.Writer) error {
	reported := -1

	err := a.loop.Run(ctx, a.clock, interval, func() bool {
		switch a.engine.GetCurrentState() {
		case game.ScreenStart:
			if reported >= 0 {
				return false
			}
			a.engine.Start()

		case game.ScreenPlayLevel:
			a.autoWhack()

		case game.ScreenScore:
			r := a.engine.Report()
			if r.Level == a.engine.LevelIndex() && r.Level != reported {
				reported = r.Level
				writeReport(out, r)
				a.engine.Continue()
			}
		}

		a.engine.Tick()
		return true
	})
	if err != nil {
		klog.ErrorS(err, "Headless run stopped early")
		return fmt.Errorf("headless run: %w", err)
	}
	return nil
}

func (a *appData) autoWhack() {
	l := a.engine.CurrentLevel()
	if l == nil {
		return
	}
	for _, slot := range l.Slots() {
		head := slot.Head()
		if head == nil || !game.IsVisible(head) {
			continue
		}
		if a.bot.Float64() < botAccuracy {
			a.engine.WhackSlot(slot.Index)
		}
	}
}

func writeReport(w io.Writer, r game.Report) {
	fmt.Fprintf(w, "level %d: score %d, hit %d/%d\n", r.Level+1, r.Summary.Score, r.Summary.Hit, r.Summary.Count)
	if r.Totals != nil {
		fmt.Fprintf(w, "overall: score %d, hit %d/%d, missed %d\n", r.Totals.Score, r.Totals.Hit, r.Totals.Count, r.Totals.Missed)
	}
}
