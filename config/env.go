package config

import (
	"os"
	"strings"
)

// Environment selects how configuration is loaded and validated.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment reads ENV, case-insensitively. CI=true overrides it so
// pipelines never pick up local settings. Unknown or empty values mean
// development.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	switch env := Environment(strings.ToLower(strings.TrimSpace(os.Getenv("ENV")))); env {
	case Production, Test, CI, Development:
		return env
	default:
		return Development
	}
}
