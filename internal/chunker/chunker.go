package chunker

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// rough character-to-token ratio for English text and source code
const charsPerToken = 4

func DefaultOptions() Options {
	return Options{
		ChunkSize:    512,
		ChunkOverlap: 64,
	}
}

// rejects malformed chunking configuration before any chunking begins
func (o Options) Validate() error {
	if o.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", o.ChunkSize)
	}

	if o.ChunkOverlap < 0 {
		return fmt.Errorf("chunk overlap must not be negative, got %d", o.ChunkOverlap)
	}

	if o.ChunkOverlap >= o.ChunkSize {
		return fmt.Errorf("chunk overlap (%d) must be smaller than chunk size (%d)", o.ChunkOverlap, o.ChunkSize)
	}

	return nil
}

// returns a deterministic token estimate, monotonically related to content length
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}

	return max(1, utf8.RuneCountInString(text)/charsPerToken)
}

// splits text into overlapping chunks with 1-based inclusive line tracking.
// chunking the same text with the same options always yields identical
// boundaries and ordinals.
func Split(text, sourceFile string, opts Options) ([]Chunk, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	charSize := opts.ChunkSize * charsPerToken
	charOverlap := opts.ChunkOverlap * charsPerToken

	var chunks []Chunk

	// windows walk over runes so multi-byte characters never split
	runes := []rune(text)

	pos := 0
	index := 0
	textLen := len(runes)

	for pos < textLen {
		end := min(pos+charSize, textLen)

		// prefer paragraph, then sentence, then line boundaries after the
		// half-window mark so chunks don't cut mid-thought
		if end < textLen {
			end = adjustBoundary(runes, pos+charSize/2, end)
		}

		content := strings.TrimSpace(string(runes[pos:end]))
		if content == "" {
			break
		}

		chunks = append(chunks, Chunk{
			Index:      index,
			Content:    content,
			TokenCount: EstimateTokens(content),
			SourceFile: sourceFile,
			LineStart:  countNewlines(runes[:pos]) + 1,
			LineEnd:    countNewlines(runes[:end]) + 1,
		})

		index++

		if end >= textLen {
			break
		}

		// advance by window minus overlap; always make forward progress
		advance := end - pos - charOverlap
		pos += max(advance, 1)
	}

	return chunks, nil
}

// moves the chunk end back to the nearest natural break in [from, end)
func adjustBoundary(runes []rune, from, end int) int {
	if from >= end {
		return end
	}

	for i := end - 2; i >= from; i-- {
		if runes[i] == '\n' && runes[i+1] == '\n' {
			return i + 1
		}
	}

	for i := end - 2; i >= from; i-- {
		if runes[i] == '.' && runes[i+1] == ' ' {
			return i + 2
		}
	}

	for i := end - 1; i >= from; i-- {
		if runes[i] == '\n' {
			return i + 1
		}
	}

	return end
}

func countNewlines(runes []rune) int {
	count := 0

	for _, r := range runes {
		if r == '\n' {
			count++
		}
	}

	return count
}
