package utils

import (
	"strings"
)

// countryCode is Argentina's international dialing prefix; trunkPrefix
// is the national long-distance "0" that must not appear when dialing
// from abroad.
const (
	countryCode = "54"
	trunkPrefix = "0"
)

// NormalizePhone reduces a contact number to digits suitable for a
// wa.me style link: every non-digit drops out, a single leading trunk
// "0" drops out, and the country code is prepended when absent.
// The function is idempotent.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if clean == "" {
		return ""
	}

	if strings.HasPrefix(clean, trunkPrefix) {
		clean = clean[len(trunkPrefix):]
	}
	if !strings.HasPrefix(clean, countryCode) {
		clean = countryCode + clean
	}
	return clean
}
