// Package fasting implements the intermittent fasting window: starting,
// stopping and correcting it, and deriving remaining time and progress from
// absolute timestamps on every tick.
package fasting

import (
	"errors"
	"fmt"
	"time"

	"github.com/pageza/calorix/backend/internal/model"
)

const msPerHour = int64(time.Hour / time.Millisecond)

// MaxHours is the longest fast Start accepts.
const MaxHours = 168

var (
	// ErrInvalidDuration is returned when a fast is started with a
	// non-positive number of hours or more than MaxHours.
	ErrInvalidDuration = errors.New("fasting duration must be between 0 and 168 hours")
)

// Clock supplies wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Start begins a fast of the given length at now. Any previous state is
// overwritten.
func Start(now time.Time, hours float64) (model.FastingState, error) {
	if hours <= 0 || hours > MaxHours {
		return model.FastingState{}, ErrInvalidDuration
	}
	start := now.UnixMilli()
	end := start + int64(hours*float64(msPerHour))
	return model.FastingState{
		IsFasting:     true,
		StartTime:     &start,
		EndTime:       &end,
		DurationHours: hours,
	}, nil
}

// Stop returns the idle state.
func Stop() model.FastingState {
	return model.IdleFasting()
}

// TimeUpdate is a manual correction of one or both boundaries, in epoch ms.
type TimeUpdate struct {
	StartTime *int64 `json:"startTime,omitempty"`
	EndTime   *int64 `json:"endTime,omitempty"`
}

// UpdateTimes applies a boundary correction to an active fast. The start must
// stay strictly before the end; an edit that breaks that, or any edit while
// not fasting, leaves the state untouched and reports false. An applied edit
// recomputes DurationHours from the new boundaries.
func UpdateTimes(state model.FastingState, upd TimeUpdate) (model.FastingState, bool) {
	if !state.IsFasting || state.StartTime == nil || state.EndTime == nil {
		return state, false
	}
	if upd.StartTime == nil && upd.EndTime == nil {
		return state, false
	}

	start, end := *state.StartTime, *state.EndTime
	if upd.StartTime != nil {
		start = *upd.StartTime
	}
	if upd.EndTime != nil {
		end = *upd.EndTime
	}
	if start >= end {
		return state, false
	}

	next := state
	next.StartTime = &start
	next.EndTime = &end
	next.DurationHours = float64(end-start) / float64(msPerHour)
	return next, true
}

// Reading is the derived view of a fast at one instant.
type Reading struct {
	RemainingMs int64   `json:"remainingMs"`
	Remaining   string  `json:"remaining"`
	Progress    float64 `json:"progress"`
	Completed   bool    `json:"completed"`
	// Notify is set on the single tick that first observes completion.
	Notify bool   `json:"-"`
	Label  string `json:"label"`
}

// Tick evaluates the fast at now. When the window has elapsed and completion
// was not yet signalled, the reading carries Notify and the returned state
// has CompletionNotified set, so later ticks stay quiet.
func Tick(state model.FastingState, now time.Time) (model.FastingState, Reading) {
	if !state.IsFasting || state.EndTime == nil {
		return state, Reading{Remaining: FormatRemaining(0)}
	}

	remaining := *state.EndTime - now.UnixMilli()
	total := state.DurationHours * float64(msPerHour)

	var progress float64
	if total > 0 {
		progress = clamp((total-float64(remaining))/total*100, 0, 100)
	}

	r := Reading{
		RemainingMs: remaining,
		Remaining:   FormatRemaining(remaining),
		Progress:    progress,
		Completed:   remaining <= 0,
		Label:       Label(state.DurationHours),
	}
	if r.Completed && !state.CompletionNotified {
		state.CompletionNotified = true
		r.Notify = true
	}
	return state, r
}

// Label names the fast by its length.
func Label(hours float64) string {
	switch {
	case hours <= 12:
		return "rabbit"
	case hours <= 14:
		return "fox"
	default:
		return "lion"
	}
}

// FormatRemaining renders milliseconds as HH:MM:SS, clamped at zero.
func FormatRemaining(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	secs := ms / 1000
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
