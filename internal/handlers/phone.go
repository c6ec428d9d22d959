package handlers

import "strings"

const (
	// PhoneNone is the placeholder for contacts with no usable number.
	PhoneNone = "S/N"
	// CountryCode is the dialing prefix assumed for local numbers that
	// arrive without one.
	CountryCode = "55"
)

// NormalizePhone turns an arbitrary phone string into a digit-only dialable
// number with country code, or PhoneNone when too few digits remain.
// Numbers of 8-11 digits without the country prefix are treated as local and
// get CountryCode prepended; anything longer (or already prefixed) passes
// through unchanged, so the function is idempotent.
func NormalizePhone(raw string) string {
	digits := onlyDigits(raw)
	if len(digits) < 8 {
		return PhoneNone
	}
	if !strings.HasPrefix(digits, CountryCode) && len(digits) <= 11 {
		return CountryCode + digits
	}
	return digits
}

func onlyDigits(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
