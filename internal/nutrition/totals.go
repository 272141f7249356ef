// Package nutrition derives totals, period averages and calendar status from
// daily logs. Everything here is pure and safe to call from any goroutine.
package nutrition

import (
	"math"

	"github.com/pageza/calorix/backend/internal/model"
)

// DailyTotals sums every item of every meal in the log. A log without meals
// yields zero totals.
func DailyTotals(log model.DailyLog) model.Macros {
	var total model.Macros
	for _, meal := range log.Meals {
		for _, item := range meal.Items {
			total = total.Add(item.Macros())
		}
	}
	return total
}

// ItemCount returns the number of foods logged across all meals.
func ItemCount(log model.DailyLog) int {
	n := 0
	for _, meal := range log.Meals {
		n += len(meal.Items)
	}
	return n
}

// HasActivity reports whether the day gets a calendar dot: any calories or
// any water. This is deliberately looser than the period summary rule, which
// needs at least one meal.
func HasActivity(log model.DailyLog) bool {
	return DailyTotals(log).Calories > 0 || log.WaterIntake > 0
}

// Distribution is the share of each macro by grams, in whole percent.
type Distribution struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

// MacroDistribution splits protein, carbs and fat grams into percentages.
// With no grams at all every share is zero.
func MacroDistribution(m model.Macros) Distribution {
	total := m.Protein + m.Carbs + m.Fat
	if total == 0 {
		total = 1
	}
	return Distribution{
		Protein: int(math.Round(m.Protein / total * 100)),
		Carbs:   int(math.Round(m.Carbs / total * 100)),
		Fat:     int(math.Round(m.Fat / total * 100)),
	}
}
