package validation

import (
	"errors"
	"strings"
	"unicode"
)

var (
	// ErrLocationEmpty is returned when the location is empty or whitespace-only after trim.
	ErrLocationEmpty = errors.New("location is required")
	// ErrLocationTooLong is returned when the location exceeds the maximum rune count.
	ErrLocationTooLong = errors.New("location too long")
	// ErrLocationInvalidChars is returned when the location contains disallowed characters.
	ErrLocationInvalidChars = errors.New("location contains invalid characters")
	// ErrLocationMalformed is returned when the location is not "city[,state][,country]".
	ErrLocationMalformed = errors.New("location must be city[,state][,country]")
)

// maxLocationParts matches the upstream q syntax: city name, state code, country code.
const maxLocationParts = 3

// ValidateLocation trims the input and checks it is usable as the upstream q
// parameter: at most maxLen runes (0 disables the check), only letters,
// digits, space, comma, hyphen, period and apostrophe, and one to three
// non-empty comma-separated parts. Returns the trimmed string.
func ValidateLocation(input string, maxLen int) (string, error) {
	s := strings.TrimSpace(input)
	r := []rune(s)
	if len(r) == 0 {
		return "", ErrLocationEmpty
	}
	if maxLen > 0 && len(r) > maxLen {
		return "", ErrLocationTooLong
	}
	for _, c := range r {
		if !isAllowedLocationRune(c) {
			return "", ErrLocationInvalidChars
		}
	}
	parts := strings.Split(s, ",")
	if len(parts) > maxLocationParts {
		return "", ErrLocationMalformed
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return "", ErrLocationMalformed
		}
	}
	return s, nil
}

func isAllowedLocationRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsNumber(r) {
		return true
	}
	switch r {
	case ' ', ',', '-', '.', '\'':
		return true
	}
	return false
}
