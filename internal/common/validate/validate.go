// Package validate guards identifiers and required fields before any
// persistence call is made.
package validate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"restaurant-floor/internal/common/apperr"
)

// IsValidID reports whether value is a base-10 integer >= 0.
func IsValidID(value string) bool {
	_, ok := parseID(value)
	return ok
}

// ParseID parses a path or body identifier, returning a field-level
// validation error when it is not an integer >= 0.
func ParseID(op, field, value string) (int64, error) {
	id, ok := parseID(value)
	if !ok {
		return 0, apperr.Validation(op, field, fmt.Sprintf("%s is invalid: %q is not a non-negative integer", field, value))
	}
	return id, nil
}

// CheckID validates an identifier that already arrived as a number.
func CheckID(op, field string, id int64) error {
	if id < 0 {
		return apperr.Validation(op, field, fmt.Sprintf("%s is invalid: must be a non-negative integer", field))
	}
	return nil
}

func RequireText(op, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperr.Validation(op, field, fmt.Sprintf("%s is required", field))
	}
	return nil
}

func RequirePositive(op, field string, n int) error {
	if n <= 0 {
		return apperr.Validation(op, field, fmt.Sprintf("%s must be a positive integer", field))
	}
	return nil
}

// MaxCount is the largest party size or quantity accepted.
const MaxCount = math.MaxInt32

// ParseCount parses a required positive integer such as a party size or a
// quantity. present is false when the field was omitted.
func ParseCount(op, field, value string, present bool) (int, error) {
	if !present || strings.TrimSpace(value) == "" {
		return 0, apperr.Validation(op, field, fmt.Sprintf("%s is required", field))
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, apperr.Validation(op, field, fmt.Sprintf("%s must be a positive integer", field))
	}
	// counts are stored in INTEGER columns
	if n > MaxCount {
		return 0, apperr.Validation(op, field, fmt.Sprintf("%s must be at most %d", field, MaxCount))
	}
	if err := RequirePositive(op, field, int(n)); err != nil {
		return 0, err
	}
	return int(n), nil
}

func parseID(value string) (int64, bool) {
	if value == "" || value[0] == '+' {
		return 0, false
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
