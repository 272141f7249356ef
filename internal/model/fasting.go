package model

// FastingState is the per-user intermittent fasting window. Times are epoch
// milliseconds. While fasting, EndTime == StartTime + DurationHours*3600000.
type FastingState struct {
	IsFasting          bool    `json:"isFasting"`
	StartTime          *int64  `json:"startTime"`
	EndTime            *int64  `json:"endTime"`
	DurationHours      float64 `json:"durationHours"`
	CompletionNotified bool    `json:"completionNotified"`
}

// IdleFasting returns the default, not-fasting state.
func IdleFasting() FastingState {
	return FastingState{}
}
