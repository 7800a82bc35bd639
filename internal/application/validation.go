package application

import (
	"fmt"
	"strings"

	"sportspack/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "containerID" -> "container ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"containerID": "container ID",
		"nodeID":      "node ID",
		"parentID":    "parent ID",
		"remoteID":    "remote ID",
		"attribute":   "attribute",
		"title":       "title",
		"days":        "days",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidateAttribute parses an attribute name, returning a ValidationError
// wrapping ErrInvalidAttribute when it is not one of the known keys.
func ValidateAttribute(fieldName, key string) (domain.Attribute, error) {
	attr, err := domain.ParseAttribute(key)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidAttribute, &ValidationError{
			Field:   fieldName,
			Message: err.Error(),
		})
	}
	return attr, nil
}

// ValidateDays checks a lookahead window. Zero is allowed; callers
// substitute their default window for it.
func ValidateDays(days int) error {
	if days < 0 {
		return &ValidationError{
			Field:   "days",
			Message: fmt.Sprintf("days must not be negative, got: %d", days),
		}
	}
	return nil
}
