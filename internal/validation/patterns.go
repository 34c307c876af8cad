package validation

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)

	// phoneSeparators are stripped before matching phonePattern
	phoneSeparators = strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "")
)

// IsValidEmail reports whether s looks like local@domain.tld
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// IsValidPhone reports whether s is an optional leading plus followed by
// 1-16 digits once common separators are removed
func IsValidPhone(s string) bool {
	return phonePattern.MatchString(phoneSeparators.Replace(strings.TrimSpace(s)))
}
