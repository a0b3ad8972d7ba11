// Package validation checks generation-request fields before any prompt is built.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Rule describes the constraints on one request field.
type Rule struct {
	Field     string
	Type      string // "string" or "number"
	Required  bool
	MaxLength int // runes, string fields only; 0 means unbounded
	Enum      []string
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Check validates the decoded request body against the rules. A required
// field must be present, of the expected type, and non-empty; violations are
// reported per field so the handler can name the offender.
func Check(fields map[string]interface{}, rules []Rule) *ValidationResult {
	errors := []ValidationError{}

	for _, rule := range rules {
		value, exists := fields[rule.Field]
		if !exists || value == nil {
			if rule.Required {
				errors = append(errors, ValidationError{
					Field:   rule.Field,
					Message: "required field missing",
					Code:    "REQUIRED_FIELD_MISSING",
				})
			}
			continue
		}

		if fieldErrors := checkField(value, rule); len(fieldErrors) > 0 {
			errors = append(errors, fieldErrors...)
		}
	}

	return &ValidationResult{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}

func checkField(value interface{}, rule Rule) []ValidationError {
	errors := []ValidationError{}

	switch rule.Type {
	case "string":
		strVal, ok := value.(string)
		if !ok {
			return []ValidationError{{
				Field:   rule.Field,
				Message: fmt.Sprintf("expected string, got %T", value),
				Code:    "INVALID_TYPE",
			}}
		}

		if rule.Required && strings.TrimSpace(strVal) == "" {
			errors = append(errors, ValidationError{
				Field:   rule.Field,
				Message: "value must not be empty",
				Code:    "EMPTY_VALUE",
			})
		}

		if rule.MaxLength > 0 && utf8.RuneCountInString(strVal) > rule.MaxLength {
			errors = append(errors, ValidationError{
				Field:   rule.Field,
				Message: fmt.Sprintf("value must be at most %d characters", rule.MaxLength),
				Code:    "MAX_LENGTH_VIOLATION",
			})
		}

		if len(rule.Enum) > 0 {
			found := false
			for _, enumVal := range rule.Enum {
				if strVal == enumVal {
					found = true
					break
				}
			}
			if !found {
				errors = append(errors, ValidationError{
					Field:   rule.Field,
					Message: fmt.Sprintf("value must be one of %v", rule.Enum),
					Code:    "INVALID_ENUM_VALUE",
				})
			}
		}

	case "number":
		// encoding/json decodes every number as float64.
		if _, ok := value.(float64); !ok {
			errors = append(errors, ValidationError{
				Field:   rule.Field,
				Message: fmt.Sprintf("expected number, got %T", value),
				Code:    "INVALID_TYPE",
			})
		}
	}

	return errors
}

// GetErrorMessages returns a simple list of error messages.
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// First returns the first violation, or nil when the result is valid.
func (vr *ValidationResult) First() *ValidationError {
	if len(vr.Errors) == 0 {
		return nil
	}
	return &vr.Errors[0]
}
