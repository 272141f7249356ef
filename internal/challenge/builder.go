package challenge

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pageza/calorix/backend/internal/model"
)

// Input is the user-supplied form for a custom challenge.
type Input struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Type        model.ChallengeType `json:"type"`
	GoalDays    int                 `json:"goalDays"`
	StartDate   string              `json:"startDate"`
	EndDate     string              `json:"endDate"`
	DailyTarget *float64            `json:"dailyTarget,omitempty"`
}

// Build validates the input and derives a custom challenge with the given
// id. An empty start date means today. On any failed check it returns a
// *ValidationError and no challenge.
func Build(in Input, id string, today time.Time) (model.Challenge, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Challenge{}, invalid("title", CodeTitleRequired, 0)
	}
	if !in.Type.Valid() {
		return model.Challenge{}, invalid("type", CodeInvalidType, 0)
	}
	if strings.TrimSpace(in.EndDate) == "" {
		return model.Challenge{}, invalid("endDate", CodeEndDateRequired, 0)
	}

	startStr := strings.TrimSpace(in.StartDate)
	if startStr == "" {
		startStr = model.DateKey(model.StartOfDay(today))
	}
	start, err := model.ParseDate(startStr)
	if err != nil {
		return model.Challenge{}, invalid("startDate", CodeInvalidDate, 0)
	}
	end, err := model.ParseDate(strings.TrimSpace(in.EndDate))
	if err != nil {
		return model.Challenge{}, invalid("endDate", CodeInvalidDate, 0)
	}
	if start.After(end) {
		return model.Challenge{}, invalid("startDate", CodeStartAfterEnd, 0)
	}

	duration := DurationDays(start, end)
	if in.GoalDays < 1 || in.GoalDays > duration {
		return model.Challenge{}, invalid("goalDays", CodeGoalDaysRange, duration)
	}

	ch := model.Challenge{
		ID:           id,
		Title:        title,
		Description:  strings.TrimSpace(in.Description),
		Type:         in.Type,
		GoalValue:    in.GoalDays,
		DurationDays: duration,
		IsCustom:     true,
		StartDate:    model.DateKey(start),
		EndDate:      model.DateKey(end),
	}
	if in.Type.RequiresTarget() {
		if in.DailyTarget == nil || *in.DailyTarget <= 0 || math.IsNaN(*in.DailyTarget) {
			return model.Challenge{}, invalid("dailyTarget", CodeTargetRequired, 0)
		}
		v := *in.DailyTarget
		ch.DailyTarget = &v
	}
	if ch.Description == "" {
		ch.Description = fmt.Sprintf("Complete the goal for %d day(s).", in.GoalDays)
	}
	return ch, nil
}

// DurationDays counts the days from start to end, both included.
func DurationDays(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours()/24)) + 1
}
