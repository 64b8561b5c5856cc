package chat

import (
	"strings"

	"github.com/ragops/server/internal/storage"
)

const (
	historyMessageMaxChars = 700
	emptyHistoryText       = "(no prior conversation)"
	omittedDumpText        = "[previous assistant response omitted: raw code/config dump]"
)

// renders prior messages into a compact plain-text transcript.
// long messages are truncated and assistant code dumps are replaced
// with a placeholder so they don't poison the next generation.
func RenderHistory(messages []storage.Message) string {
	if len(messages) == 0 {
		return emptyHistoryText
	}

	var lines []string

	for _, msg := range messages {
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}

		if len(content) > historyMessageMaxChars {
			content = strings.TrimRight(content[:historyMessageMaxChars], " \t\n") + "..."
		}

		role := strings.ToLower(msg.Role)

		if role == "assistant" && LooksLikeCodeDump(content) {
			content = omittedDumpText
		}

		speaker := "User"
		if role == "assistant" {
			speaker = "Assistant"
		}

		lines = append(lines, speaker+": "+content)
	}

	if len(lines) == 0 {
		return emptyHistoryText
	}

	return strings.Join(lines, "\n")
}
