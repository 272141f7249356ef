package model

// ChallengeType selects the daily condition a challenge checks.
type ChallengeType string

const (
	ChallengeWater       ChallengeType = "water"
	ChallengeDeficit     ChallengeType = "deficit"
	ChallengeProteinGoal ChallengeType = "protein_goal"
	ChallengeLogStreak   ChallengeType = "log_streak"
	ChallengeLowCarb     ChallengeType = "low_carb"
)

// Valid reports whether t is a known challenge type.
func (t ChallengeType) Valid() bool {
	switch t {
	case ChallengeWater, ChallengeDeficit, ChallengeProteinGoal, ChallengeLogStreak, ChallengeLowCarb:
		return true
	}
	return false
}

// RequiresTarget reports whether the type needs a daily numeric threshold.
func (t ChallengeType) RequiresTarget() bool {
	return t == ChallengeWater || t == ChallengeLowCarb
}

// Challenge is a built-in or custom multi-day goal.
type Challenge struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Type         ChallengeType `json:"type"`
	GoalValue    int           `json:"goalValue"`             // days required
	DurationDays int           `json:"durationDays"`          // progress slots
	DailyTarget  *float64      `json:"dailyTarget,omitempty"` // ml for water, g for low_carb
	IsCustom     bool          `json:"isCustom,omitempty"`
	StartDate    string        `json:"startDate,omitempty"`
	EndDate      string        `json:"endDate,omitempty"`
}

// UserChallengeProgress tracks the single active challenge of a user.
type UserChallengeProgress struct {
	ChallengeID        string `json:"challengeId"`
	StartDate          string `json:"startDate"`
	EndDate            string `json:"endDate,omitempty"`
	Progress           []bool `json:"progress"`
	Completed          bool   `json:"completed"`
	CompletionNotified bool   `json:"completionNotified"`
}

// DaysDone counts satisfied slots.
func (p *UserChallengeProgress) DaysDone() int {
	n := 0
	for _, ok := range p.Progress {
		if ok {
			n++
		}
	}
	return n
}

// CompletedChallenge is an entry of a profile's challenge history.
type CompletedChallenge struct {
	ChallengeID   string `json:"challengeId"`
	DateCompleted string `json:"dateCompleted"`
}
