// Package engine drives a raiding voyage forward one day at a time.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// DaysPerWeek sets how often the weekly callback fires.
const DaysPerWeek = 7

// Engine is the voyage clock.
type Engine struct {
	Day      uint64        // Last completed day (monotonic)
	Interval time.Duration // Pause between days; 0 runs flat out

	// Callbacks, set before Run.
	OnDay  func(day uint64) // Every day
	OnWeek func(day uint64) // Every DaysPerWeek days, after OnDay
}

// NewEngine creates an engine that runs days back to back.
func NewEngine() *Engine {
	return &Engine{}
}

// Run advances the given number of days, or until ctx is done. It returns
// the number of days completed.
func (e *Engine) Run(ctx context.Context, days int) int {
	slog.Info("voyage engine started", "day", e.Day, "days", days)

	done := 0
	for done < days {
		if ctx.Err() != nil {
			break
		}
		e.step()
		done++

		if e.Interval > 0 && done < days {
			select {
			case <-ctx.Done():
			case <-time.After(e.Interval):
			}
		}
	}

	slog.Info("voyage engine stopped", "day", e.Day, "completed", done)
	return done
}

func (e *Engine) step() {
	e.Day++

	if e.OnDay != nil {
		e.OnDay(e.Day)
	}
	if e.Day%DaysPerWeek == 0 && e.OnWeek != nil {
		e.OnWeek(e.Day)
	}
}

// VoyageTime renders a day number as "Week W, Day D" (both 1-based).
func VoyageTime(day uint64) string {
	if day == 0 {
		return "Week 1, Day 0"
	}
	return fmt.Sprintf("Week %d, Day %d", (day-1)/DaysPerWeek+1, (day-1)%DaysPerWeek+1)
}
