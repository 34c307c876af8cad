package rendering

import (
	"strings"
	"unicode"
)

// Clean prepares user text for a document tree: control characters are
// dropped and runs of whitespace collapse to one space. Text is otherwise
// kept literally; each engine escapes for its own output format.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text))

	space := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			space = true
			continue
		case unicode.IsControl(r):
			continue
		}
		if space && result.Len() > 0 {
			result.WriteByte(' ')
		}
		space = false
		result.WriteRune(r)
	}

	return result.String()
}

// cleanAll cleans each item and drops the ones that end up empty
func cleanAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if c := Clean(item); c != "" {
			out = append(out, c)
		}
	}
	return out
}
