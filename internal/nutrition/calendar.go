package nutrition

import (
	"time"

	"github.com/pageza/calorix/backend/internal/model"
)

// Status buckets a day's calories against the goal.
type Status string

const (
	StatusNone     Status = "none"
	StatusUnder    Status = "under"
	StatusOnTarget Status = "on_target"
	StatusOver     Status = "over"
)

// Classify maps calories c against goal g. 90-110% of the goal is on target.
// A non-positive goal with calories classifies as over.
func Classify(c, g float64) Status {
	if c <= 0 {
		return StatusNone
	}
	if g <= 0 {
		return StatusOver
	}
	// 90% to 110% of goal, compared without dividing
	switch {
	case c*10 >= g*9 && c*10 <= g*11:
		return StatusOnTarget
	case c*10 > g*11:
		return StatusOver
	default:
		return StatusUnder
	}
}

// CalendarDay is one cell of the month strip.
type CalendarDay struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
	HasDot   bool    `json:"hasDot"`
	Status   Status  `json:"status"`
}

// Month returns one entry per day of the given month. Days without activity
// carry no dot and status none.
func Month(logs map[string]model.DailyLog, year int, month time.Month, goal float64) []CalendarDay {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := make([]CalendarDay, 0, 31)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		key := model.DateKey(d)
		cell := CalendarDay{Date: key, Status: StatusNone}
		if log, ok := logs[key]; ok && HasActivity(log) {
			cell.Calories = DailyTotals(log).Calories
			cell.HasDot = true
			cell.Status = Classify(cell.Calories, goal)
		}
		days = append(days, cell)
	}
	return days
}
