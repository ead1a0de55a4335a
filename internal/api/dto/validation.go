package dto

import "regexp"

// Shared validation patterns for request payloads.
var (
	// Lowercase letters, digits, underscore, dot and hyphen; must start with
	// a letter.
	loginPattern = regexp.MustCompile(`^[a-z][a-z0-9_.-]{2,99}$`)

	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

	// Brazilian phone formats, with optional country code and separators.
	phonePattern = regexp.MustCompile(`^(\+55\s?)?(\(?\d{2}\)?\s?)?(9?\d{4})-?\d{4}$`)
)
