package challenge

import (
	"fmt"
	"strings"
)

// Code identifies a builder validation failure.
type Code string

const (
	CodeTitleRequired   Code = "title_required"
	CodeInvalidType     Code = "invalid_type"
	CodeEndDateRequired Code = "end_date_required"
	CodeInvalidDate     Code = "invalid_date"
	CodeStartAfterEnd   Code = "start_after_end"
	CodeGoalDaysRange   Code = "goal_days_range"
	CodeTargetRequired  Code = "target_required"
)

// ValidationError reports a rejected custom challenge.
type ValidationError struct {
	Field string
	Code  Code
	// MaxDays is the challenge length, set for CodeGoalDaysRange.
	MaxDays int
}

func invalid(field string, code Code, maxDays int) *ValidationError {
	return &ValidationError{Field: field, Code: code, MaxDays: maxDays}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message("en"))
}

var messages = map[string]map[Code]string{
	"en": {
		CodeTitleRequired:   "Please give the challenge a name.",
		CodeInvalidType:     "Please choose a valid goal type.",
		CodeEndDateRequired: "Please choose an end date.",
		CodeInvalidDate:     "Dates must use the YYYY-MM-DD format.",
		CodeStartAfterEnd:   "The start date cannot be after the end date.",
		CodeGoalDaysRange:   "The number of goal days must be between 1 and %d (the total length of the challenge).",
		CodeTargetRequired:  "Please enter a positive daily target.",
	},
	"pt-BR": {
		CodeTitleRequired:   "Por favor, dê um nome ao desafio.",
		CodeInvalidType:     "Por favor, escolha um tipo de meta válido.",
		CodeEndDateRequired: "Por favor, escolha uma data de término.",
		CodeInvalidDate:     "As datas devem usar o formato AAAA-MM-DD.",
		CodeStartAfterEnd:   "A data de início não pode ser posterior à data de término.",
		CodeGoalDaysRange:   "O número de dias para a meta deve ser entre 1 e %d (a duração total do desafio).",
		CodeTargetRequired:  "Por favor, informe uma meta diária positiva.",
	},
}

// Language picks a supported message language from an Accept-Language
// style value. English is the fallback.
func Language(accept string) string {
	for _, part := range strings.Split(accept, ",") {
		tag := strings.ToLower(strings.TrimSpace(strings.SplitN(part, ";", 2)[0]))
		switch {
		case strings.HasPrefix(tag, "pt"):
			return "pt-BR"
		case strings.HasPrefix(tag, "en"):
			return "en"
		}
	}
	return "en"
}

// Message renders the error for a user in the given language.
func (e *ValidationError) Message(lang string) string {
	catalog, ok := messages[lang]
	if !ok {
		catalog = messages["en"]
	}
	tmpl := catalog[e.Code]
	if e.Code == CodeGoalDaysRange {
		return fmt.Sprintf(tmpl, e.MaxDays)
	}
	return tmpl
}
