package nutrition

import (
	"errors"
	"math"
	"time"

	"github.com/pageza/calorix/backend/internal/model"
)

// ErrInvalidWindow is returned for a window other than 7, 15 or 30 days.
var ErrInvalidWindow = errors.New("summary window must be 7, 15 or 30 days")

// Windows lists the supported summary sizes.
var Windows = []int{7, 15, 30}

// ValidWindow reports whether n is a supported summary size.
func ValidWindow(n int) bool {
	for _, w := range Windows {
		if w == n {
			return true
		}
	}
	return false
}

// Summary is the rounded per-day average over a window of days.
type Summary struct {
	From         string       `json:"from"`
	To           string       `json:"to"`
	Window       int          `json:"window"`
	DaysLogged   int          `json:"daysLogged"`
	AvgCalories  float64      `json:"avgCalories"`
	AvgProtein   float64      `json:"avgProtein"`
	AvgCarbs     float64      `json:"avgCarbs"`
	AvgFat       float64      `json:"avgFat"`
	AvgWater     float64      `json:"avgWater"`
	Distribution Distribution `json:"distribution"`
}

// PeriodSummary averages the logs of the window days ending at anchor,
// inclusive. A day counts only when it has a log with at least one meal;
// water-only days are skipped. With no counted days the divisor is 1, so
// every average is zero.
func PeriodSummary(logs map[string]model.DailyLog, anchor time.Time, window int) (Summary, error) {
	if !ValidWindow(window) {
		return Summary{}, ErrInvalidWindow
	}

	day := model.StartOfDay(anchor)
	out := Summary{
		To:     model.DateKey(day),
		From:   model.DateKey(day.AddDate(0, 0, -(window - 1))),
		Window: window,
	}

	var total model.Macros
	var water float64
	for i := 0; i < window; i++ {
		log, ok := logs[model.DateKey(day.AddDate(0, 0, -i))]
		if !ok || len(log.Meals) == 0 {
			continue
		}
		total = total.Add(DailyTotals(log))
		water += log.WaterIntake
		out.DaysLogged++
	}

	div := float64(out.DaysLogged)
	if div == 0 {
		div = 1
	}
	out.AvgCalories = math.Round(total.Calories / div)
	out.AvgProtein = math.Round(total.Protein / div)
	out.AvgCarbs = math.Round(total.Carbs / div)
	out.AvgFat = math.Round(total.Fat / div)
	out.AvgWater = math.Round(water / div)
	out.Distribution = MacroDistribution(total)
	return out, nil
}
