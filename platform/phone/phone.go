// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "IN"

// Digits strips everything except decimal digits from a phone number.
func Digits(input string) string {
	var b strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidMobile reports whether the input is a 10-digit Indian mobile
// number after stripping formatting: exactly 10 digits with a leading
// digit in 6-9. The rule is intentionally fixed, matching the numbering
// plan the quote form serves.
func IsValidMobile(input string) bool {
	digits := Digits(input)
	if len(digits) != 10 {
		return false
	}
	return digits[0] >= '6' && digits[0] <= '9'
}

// NormalizeE164 formats a phone number to E.164 for display (e.g. tel:
// links in notification emails). If parsing fails, it returns the trimmed
// input. Stored record values are never rewritten with this.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}
