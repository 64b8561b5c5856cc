package chat

import (
	"regexp"
	"strings"
)

var codeDumpMarkers = []string{
	"def ",
	"class ",
	"import ",
	"from ",
	"return ",
	"try:",
	"except",
	"func ",
	"package ",
	"dependencies = [",
	"[project]",
}

var assignmentPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*\s*=\s*.+$`)

// detects model output that is mostly raw code or config text.
// short answers and ordinary prose with a stray keyword pass through.
func LooksLikeCodeDump(answer string) bool {
	text := strings.TrimSpace(answer)
	if text == "" {
		return false
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) <= 3 {
		return false
	}

	if strings.Contains(text, "```") {
		return true
	}

	normalized := strings.ToLower(text)

	markerHits := 0
	for _, marker := range codeDumpMarkers {
		markerHits += strings.Count(normalized, marker)
	}

	indentedLines := 0
	assignmentLines := 0

	for _, line := range lines {
		if strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t") {
			indentedLines++
		}

		if assignmentPattern.MatchString(strings.TrimSpace(line)) {
			assignmentLines++
		}
	}

	codePunct := 0
	for _, ch := range "{}[]();" {
		codePunct += strings.Count(text, string(ch))
	}

	likelyCode := markerHits >= 6 ||
		(markerHits >= 4 && indentedLines >= 2) ||
		(markerHits >= 2 && indentedLines >= 2 &&
			(strings.Contains(normalized, "def ") || strings.Contains(normalized, "class ") || strings.Contains(normalized, "func "))) ||
		(assignmentLines >= 4 && markerHits >= 1)

	strongStructure := codePunct >= 4 || indentedLines >= 2 || assignmentLines >= 4

	return likelyCode && strongStructure
}
