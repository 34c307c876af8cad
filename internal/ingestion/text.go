package ingestion

import (
	"regexp"
	"strings"
)

var (
	spaceRun     = regexp.MustCompile(`[ \t]+`)
	blankLineRun = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes imported free text: line endings become LF, runs of
// spaces collapse, bullet markers keep their indentation and no more than one
// blank line separates paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := strings.Join(lines, "\n")
	result = blankLineRun.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	indent := len(line) - len(trimmed)
	if isBulletLine(trimmed) {
		return strings.Repeat(" ", indent) + trimmed
	}
	content := spaceRun.ReplaceAllString(trimmed, " ")
	return strings.Repeat(" ", indent) + content
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "· ")
}

// CleanBullet trims a single bullet and strips a leading bullet marker, since
// the renderers draw their own
func CleanBullet(s string) string {
	s = strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
	for _, marker := range []string{"- ", "* ", "• ", "· "} {
		if rest, ok := strings.CutPrefix(s, marker); ok {
			return strings.TrimSpace(rest)
		}
	}
	return s
}

// cleanBullets applies CleanBullet and drops entries that end up empty
func cleanBullets(in []string) []string {
	out := make([]string, 0, len(in))
	for _, b := range in {
		if b = CleanBullet(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
