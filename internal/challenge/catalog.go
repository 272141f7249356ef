// Package challenge evaluates multi-day goals against daily nutrition data
// and builds user-defined challenges.
package challenge

import "github.com/pageza/calorix/backend/internal/model"

func target(v float64) *float64 { return &v }

// Builtin is the catalog offered to every user.
var Builtin = []model.Challenge{
	{
		ID:           "hydration-week",
		Title:        "Hydration Week",
		Description:  "Drink at least 2 litres of water on 5 days this week.",
		Type:         model.ChallengeWater,
		GoalValue:    5,
		DurationDays: 7,
		DailyTarget:  target(2000),
	},
	{
		ID:           "deficit-week",
		Title:        "Calorie Deficit",
		Description:  "Stay under your calorie goal on 5 days this week.",
		Type:         model.ChallengeDeficit,
		GoalValue:    5,
		DurationDays: 7,
	},
	{
		ID:           "protein-week",
		Title:        "Protein Power",
		Description:  "Hit your protein goal on 5 days this week.",
		Type:         model.ChallengeProteinGoal,
		GoalValue:    5,
		DurationDays: 7,
	},
	{
		ID:           "log-streak-week",
		Title:        "Consistent Logger",
		Description:  "Log at least one meal every day for a week.",
		Type:         model.ChallengeLogStreak,
		GoalValue:    7,
		DurationDays: 7,
	},
	{
		ID:           "low-carb-week",
		Title:        "Low Carb Week",
		Description:  "Keep carbs at or below 100 g on 4 days this week.",
		Type:         model.ChallengeLowCarb,
		GoalValue:    4,
		DurationDays: 7,
		DailyTarget:  target(100),
	},
}

// All returns the built-in catalog followed by the user's custom challenges.
func All(custom []model.Challenge) []model.Challenge {
	out := make([]model.Challenge, 0, len(Builtin)+len(custom))
	out = append(out, Builtin...)
	return append(out, custom...)
}

// Find looks a challenge up by id among the built-ins and custom ones.
func Find(id string, custom []model.Challenge) (model.Challenge, bool) {
	for _, c := range All(custom) {
		if c.ID == id {
			return c, true
		}
	}
	return model.Challenge{}, false
}
