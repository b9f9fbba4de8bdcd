package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxIdentifierLength bounds SKU, box, invoice and family identifiers.
const maxIdentifierLength = 128

// ValidateIdentifier validates a catalog or order identifier.
// kind names the entity in the error message ("sku", "box", "invoice", "family").
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or null bytes
//   - No leading or trailing whitespace
//   - Maximum length of 128 characters
func ValidateIdentifier(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "%s id cannot be empty", kind)
	}

	if len(id) > maxIdentifierLength {
		return New(ErrCodeInvalidInput, "%s id too long (max %d characters)", kind, maxIdentifierLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s id contains invalid control characters", kind)
		}
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidInput, "%s id %q has surrounding whitespace", kind, id)
	}

	return nil
}

// ValidateMaxWeight checks the per-container weight ceiling.
func ValidateMaxWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
		return New(ErrCodeInvalidInput, "max weight must be a positive number, got %v", w)
	}
	return nil
}

// ValidateCeiling checks the per-stage container ceiling.
func ValidateCeiling(n int) error {
	if n < 1 {
		return New(ErrCodeInvalidInput, "container ceiling must be at least 1, got %d", n)
	}
	return nil
}
