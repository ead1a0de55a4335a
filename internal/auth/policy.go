package auth

import "unicode"

// Password policy thresholds. Criteria are checked in a fixed order so the
// reported violation is deterministic.
const minPasswordLength = 8

// ValidatePassword checks password strength: minimum length, then at least
// one digit, then at least one uppercase letter. It returns a
// *PolicyViolation for the first unmet criterion.
func ValidatePassword(plain string) error {
	if len(plain) < minPasswordLength {
		return &PolicyViolation{Criterion: "min_length", Message: "password must have at least 8 characters"}
	}

	hasDigit := false
	hasUpper := false
	for _, r := range plain {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}

	if !hasDigit {
		return &PolicyViolation{Criterion: "digit", Message: "password must contain a digit"}
	}
	if !hasUpper {
		return &PolicyViolation{Criterion: "uppercase", Message: "password must contain an uppercase letter"}
	}
	return nil
}
