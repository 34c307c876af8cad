package validation

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Hint is an advisory style finding. Hints never block export.
type Hint struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Hint kinds
const (
	HintFillerPhrase = "filler_phrase"
	HintLongBullet   = "long_bullet"
)

// MaxBulletChars is the bullet length above which a long_bullet hint is raised
const MaxBulletChars = 200

// FillerPhrases are clichés recruiters tend to skip over
var FillerPhrases = []string{
	"team player",
	"hard worker",
	"go-getter",
	"synergy",
	"think outside the box",
	"detail-oriented",
	"results-driven",
	"self-starter",
	"ninja",
	"rockstar",
	"responsible for",
}

// StyleHints checks the summary and every bullet for filler phrases and
// bullets longer than maxBulletChars. A non-positive maxBulletChars uses
// MaxBulletChars. One filler hint is reported per field, for the first match.
func StyleHints(data types.ResumeData, maxBulletChars int) []Hint {
	if maxBulletChars <= 0 {
		maxBulletChars = MaxBulletChars
	}
	hints := []Hint{}
	check := func(field, text string, bullet bool) {
		if phrase, ok := findPhrase(text, FillerPhrases); ok {
			hints = append(hints, Hint{
				Field:   field,
				Kind:    HintFillerPhrase,
				Message: fmt.Sprintf("%q adds little; show the result instead", phrase),
			})
		}
		if n := len([]rune(strings.TrimSpace(text))); bullet && n > maxBulletChars {
			hints = append(hints, Hint{
				Field:   field,
				Kind:    HintLongBullet,
				Message: fmt.Sprintf("Bullet has %d characters, maximum is %d", n, maxBulletChars),
			})
		}
	}

	check(KeySummary, data.Summary, false)
	for i, e := range data.Experience {
		for j, line := range e.Description {
			check(bulletKey(KeyExperience, i, "description", j), line, true)
		}
		for j, line := range e.Achievements {
			check(bulletKey(KeyExperience, i, "achievements", j), line, true)
		}
	}
	for i, p := range data.Projects {
		check(entryKey("projects", i, "description"), p.Description, false)
		for j, line := range p.Highlights {
			check(bulletKey("projects", i, "highlights", j), line, true)
		}
	}
	return hints
}

// findPhrase returns the first phrase contained in text, ignoring case
func findPhrase(text string, phrases []string) (string, bool) {
	lower := strings.ToLower(text)
	for _, phrase := range phrases {
		p := strings.ToLower(strings.TrimSpace(phrase))
		if p != "" && strings.Contains(lower, p) {
			return phrase, true
		}
	}
	return "", false
}

func bulletKey(section string, i int, field string, j int) string {
	return fmt.Sprintf("%s[%d]", entryKey(section, i, field), j)
}
