package challenge

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/pageza/calorix/backend/internal/model"
)

var (
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrChallengeMismatch = errors.New("challenge does not match the active progress")
)

// Day is the data one evaluation looks at.
type Day struct {
	Totals model.Macros
	Water  float64 // ml
	Items  int
}

// Event is raised once when a challenge completes.
type Event struct {
	ChallengeID string `json:"challengeId"`
	Title       string `json:"title"`
	Date        string `json:"date"`
}

// Satisfied reports whether the day meets the challenge's daily condition.
func Satisfied(ch model.Challenge, goals model.Goals, day Day) bool {
	switch ch.Type {
	case model.ChallengeLogStreak:
		return day.Items > 0
	case model.ChallengeDeficit:
		return day.Totals.Calories < goals.Calories
	case model.ChallengeProteinGoal:
		return day.Totals.Protein >= goals.Protein
	case model.ChallengeWater:
		return ch.DailyTarget != nil && day.Water >= *ch.DailyTarget
	case model.ChallengeLowCarb:
		return ch.DailyTarget != nil && day.Totals.Carbs <= *ch.DailyTarget
	}
	return false
}

// Select makes ch the profile's active challenge, replacing any other.
// Custom challenges run over their own date range; built-ins start today.
func Select(p *model.Profile, ch model.Challenge, today time.Time) *model.UserChallengeProgress {
	slots := ch.DurationDays
	if slots <= 0 {
		slots = ch.GoalValue
	}
	prog := &model.UserChallengeProgress{
		ChallengeID: ch.ID,
		StartDate:   model.DateKey(model.StartOfDay(today)),
		Progress:    make([]bool, slots),
	}
	if ch.IsCustom && ch.StartDate != "" {
		prog.StartDate = ch.StartDate
		prog.EndDate = ch.EndDate
	}
	p.ChallengeProgress = prog
	return prog
}

// Disable clears the active challenge.
func Disable(p *model.Profile) {
	p.ChallengeProgress = nil
}

// SlotIndex is the whole number of days between start and today. It is
// negative before the start.
func SlotIndex(start, today time.Time) int {
	days := model.StartOfDay(today).Sub(model.StartOfDay(start)).Hours() / 24
	return int(math.Floor(days))
}

// Track evaluates today against the active challenge and records the result
// in today's slot. Days outside the challenge range and already completed
// challenges are left alone. When enough slots are satisfied the challenge
// is completed, appended to the history, cleared from the profile and an
// Event is returned; that happens at most once per progress.
func Track(p *model.Profile, ch model.Challenge, day Day, today time.Time) (*Event, error) {
	prog := p.ChallengeProgress
	if prog == nil || prog.Completed {
		return nil, nil
	}
	if prog.ChallengeID != ch.ID {
		return nil, ErrChallengeMismatch
	}

	start, err := model.ParseDate(prog.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parse challenge start: %w", err)
	}
	if prog.EndDate != "" {
		end, err := model.ParseDate(prog.EndDate)
		if err != nil {
			return nil, fmt.Errorf("parse challenge end: %w", err)
		}
		if model.StartOfDay(today).After(end) {
			return nil, nil
		}
	}
	idx := SlotIndex(start, today)
	if idx < 0 || idx >= len(prog.Progress) {
		return nil, nil
	}

	prog.Progress[idx] = Satisfied(ch, p.Goals, day)
	if prog.DaysDone() < ch.GoalValue {
		return nil, nil
	}

	prog.Completed = true
	var ev *Event
	if !prog.CompletionNotified {
		prog.CompletionNotified = true
		ev = &Event{ChallengeID: ch.ID, Title: ch.Title, Date: model.DateKey(model.StartOfDay(today))}
	}
	p.CompletedChallenges = append(p.CompletedChallenges, model.CompletedChallenge{
		ChallengeID:   ch.ID,
		DateCompleted: model.DateKey(model.StartOfDay(today)),
	})
	p.ChallengeProgress = nil
	return ev, nil
}
