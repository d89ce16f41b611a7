// Package sanitize provides text sanitization utilities for user-submitted
// form fields.
package sanitize

import "strings"

// MaxFieldLength caps every free-text field before it enters a record.
const MaxFieldLength = 1000

// Field cleans a user-provided string: surrounding whitespace is trimmed,
// every '<' and '>' is removed, and the result is capped at MaxFieldLength
// runes. The final trim keeps the function idempotent when truncation
// exposes trailing whitespace.
func Field(s string) string {
	result := strings.TrimSpace(s)
	result = strings.Map(func(r rune) rune {
		if r == '<' || r == '>' {
			return -1
		}
		return r
	}, result)
	if runes := []rune(result); len(runes) > MaxFieldLength {
		result = string(runes[:MaxFieldLength])
	}
	return strings.TrimSpace(result)
}

// FieldPtr is a helper for optional string pointers.
func FieldPtr(s *string) *string {
	if s == nil {
		return nil
	}
	result := Field(*s)
	return &result
}
