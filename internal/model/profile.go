package model

// Profile is the per-user state the derivation layer reads and mutates.
// Daily logs are kept separately, keyed by date.
type Profile struct {
	Name                string                 `json:"name"`
	Goals               Goals                  `json:"goals"`
	Fasting             FastingState           `json:"fasting"`
	ChallengeProgress   *UserChallengeProgress `json:"challengeProgress,omitempty"`
	CustomChallenges    []Challenge            `json:"customChallenges"`
	CompletedChallenges []CompletedChallenge   `json:"completedChallenges"`
}
