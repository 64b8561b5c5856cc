package chunker

import (
	"regexp"
	"strings"
)

var blankLinesRegex = regexp.MustCompile(`\n{3,}`)

// normalizes raw file content before chunking: unify line endings, strip
// non-printable control characters (keeping newlines and tabs), collapse
// runs of blank lines
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	text = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, text)

	text = blankLinesRegex.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
