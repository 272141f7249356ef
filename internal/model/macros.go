package model

// Macros represents calorie and macronutrient totals. Protein, carbs and fat
// are in grams.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Add returns the element-wise sum of m and o.
func (m Macros) Add(o Macros) Macros {
	return Macros{
		Calories: m.Calories + o.Calories,
		Protein:  m.Protein + o.Protein,
		Carbs:    m.Carbs + o.Carbs,
		Fat:      m.Fat + o.Fat,
	}
}

// Goals holds a user's daily targets.
type Goals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Water    float64 `json:"water"` // ml
}

// DefaultGoals are assigned to new profiles.
var DefaultGoals = Goals{
	Calories: 2000,
	Protein:  150,
	Carbs:    200,
	Fat:      65,
	Water:    2500,
}
