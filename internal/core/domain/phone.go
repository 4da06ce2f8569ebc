package domain

import "strings"

const defaultCountryCode = "1"

// NormalizePhone converts a loosely formatted phone number into E.164.
// Ten-digit numbers are assumed to be North American. It returns "" when the
// input cannot be a valid number.
func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	plus := strings.HasPrefix(raw, "+")
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '.', r == '(', r == ')', r == '+':
		default:
			return ""
		}
	}
	digits := b.String()

	switch {
	case plus && len(digits) >= 8 && len(digits) <= 15:
		return "+" + digits
	case !plus && len(digits) == 10:
		return "+" + defaultCountryCode + digits
	case !plus && len(digits) == 11 && strings.HasPrefix(digits, defaultCountryCode):
		return "+" + digits
	}
	return ""
}
