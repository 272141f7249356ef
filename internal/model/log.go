package model

import "time"

// DateLayout is the key format of daily logs.
const DateLayout = "2006-01-02"

// Food is one logged item. Nutrition values are for the logged serving.
type Food struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Calories       float64            `json:"calories"`
	Protein        float64            `json:"protein"`
	Carbs          float64            `json:"carbs"`
	Fat            float64            `json:"fat"`
	ServingSize    string             `json:"servingSize"`
	Micronutrients map[string]float64 `json:"micronutrients,omitempty"`
	Timestamp      int64              `json:"timestamp,omitempty"` // epoch ms
}

// Macros returns the calorie and macro values of the item.
func (f Food) Macros() Macros {
	return Macros{Calories: f.Calories, Protein: f.Protein, Carbs: f.Carbs, Fat: f.Fat}
}

// Meal groups foods under a name that is unique within its log.
type Meal struct {
	Name  string `json:"name"`
	Items []Food `json:"items"`
}

// DailyLog is one calendar day's meals and water intake.
type DailyLog struct {
	Meals       []Meal  `json:"meals"`
	WaterIntake float64 `json:"waterIntake"` // ml
}

// Meal returns the meal with the given name, or nil.
func (l *DailyLog) Meal(name string) *Meal {
	for i := range l.Meals {
		if l.Meals[i].Name == name {
			return &l.Meals[i]
		}
	}
	return nil
}

// DateKey formats t as a daily log key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a daily log key into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// StartOfDay truncates t to midnight in UTC after converting its calendar date.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
