package common

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxPrice is the largest value a NUMERIC(10,2) price column can hold.
var MaxPrice = decimal.RequireFromString("99999999.99")

// ValidationError collects per-field messages. Field keys use dotted paths
// such as "items.0.quantity".
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Add records the first message for a field.
func (e *ValidationError) Add(field, message string) {
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// OrNil returns nil when no field failed so callers can `return v.OrNil()`.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidateUUID validates UUID format with comprehensive checks
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}

	if len(idStr) != 36 {
		return uuid.Nil, fmt.Errorf("%s must be exactly 36 characters (including hyphens)", fieldName)
	}

	for _, pos := range []int{8, 13, 18, 23} {
		if idStr[pos] != '-' {
			return uuid.Nil, fmt.Errorf("%s has invalid UUID format: hyphens must be at positions 9, 14, 19, and 24", fieldName)
		}
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s contains invalid characters", fieldName)
	}
	return id, nil
}

// ValidatePositiveInteger validates positive integer values with upper bounds
func ValidatePositiveInteger(value int, fieldName string, maxValue int) error {
	if value <= 0 {
		return fmt.Errorf("%s must be at least 1", fieldName)
	}
	if value > maxValue {
		return fmt.Errorf("%s cannot exceed %d", fieldName, maxValue)
	}
	return nil
}

// ValidateRequiredString validates required string fields
func ValidateRequiredString(value, fieldName string, maxLength int) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	if len(value) > maxLength {
		return fmt.Errorf("%s may not be greater than %d characters", fieldName, maxLength)
	}
	return nil
}

// ValidatePrice checks a money amount fits a NUMERIC(10,2) column
func ValidatePrice(price decimal.Decimal, fieldName string) error {
	if price.IsNegative() {
		return fmt.Errorf("%s cannot be negative", fieldName)
	}
	if !price.Equal(price.Round(2)) {
		return fmt.Errorf("%s may not have more than 2 decimal places", fieldName)
	}
	if price.GreaterThan(MaxPrice) {
		return fmt.Errorf("%s cannot exceed %s", fieldName, MaxPrice.StringFixed(2))
	}
	return nil
}

// ValidateURL accepts absolute http(s) URLs up to maxLength characters
func ValidateURL(raw, fieldName string, maxLength int) error {
	if err := ValidateRequiredString(raw, fieldName, maxLength); err != nil {
		return err
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%s must be a valid URL", fieldName)
	}
	return nil
}

// ValidatePaginationParams normalizes 1-based page parameters
func ValidatePaginationParams(page, perPage, defaultPerPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}

// SafeString safely handles string pointer operations
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
