package chunker

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", DefaultOptions(), false},
		{"zero size", Options{ChunkSize: 0, ChunkOverlap: 0}, true},
		{"negative size", Options{ChunkSize: -10, ChunkOverlap: 0}, true},
		{"negative overlap", Options{ChunkSize: 100, ChunkOverlap: -1}, true},
		{"overlap equals size", Options{ChunkSize: 100, ChunkOverlap: 100}, true},
		{"overlap exceeds size", Options{ChunkSize: 100, ChunkOverlap: 150}, true},
		{"valid custom", Options{ChunkSize: 100, ChunkOverlap: 20}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSplitEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n\n"} {
		chunks, err := Split(input, "empty.txt", DefaultOptions())
		if err != nil {
			t.Fatalf("Split failed: %v", err)
		}

		if len(chunks) != 0 {
			t.Errorf("expected zero chunks for %q, got %d", input, len(chunks))
		}
	}
}

func TestSplitShortInput(t *testing.T) {
	text := "line one\nline two\nline three"

	chunks, err := Split(text, "short.txt", DefaultOptions())
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	if len(chunks) != 1 {
		t.Fatalf("expected exactly one chunk, got %d", len(chunks))
	}

	chunk := chunks[0]

	if chunk.Index != 0 {
		t.Errorf("expected ordinal 0, got %d", chunk.Index)
	}

	if chunk.Content != text {
		t.Errorf("chunk should span the whole input, got %q", chunk.Content)
	}

	if chunk.LineStart != 1 || chunk.LineEnd != 3 {
		t.Errorf("expected lines 1-3, got %d-%d", chunk.LineStart, chunk.LineEnd)
	}

	if chunk.SourceFile != "short.txt" {
		t.Errorf("unexpected source file %q", chunk.SourceFile)
	}
}

func TestSplitRejectsBadConfig(t *testing.T) {
	_, err := Split("some text", "x.txt", Options{ChunkSize: 50, ChunkOverlap: 80})
	if err == nil {
		t.Fatal("expected configuration error, got nil")
	}
}

func TestSplitDeterminism(t *testing.T) {
	text := buildLines(300)
	opts := Options{ChunkSize: 100, ChunkOverlap: 20}

	first, err := Split(text, "a.txt", opts)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	second, err := Split(text, "a.txt", opts)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestSplitOrdinalsAndLineRanges(t *testing.T) {
	text := buildLines(400)
	totalLines := strings.Count(text, "\n") + 1

	chunks, err := Split(text, "b.txt", Options{ChunkSize: 80, ChunkOverlap: 16})
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i, chunk := range chunks {
		if chunk.Index != i {
			t.Errorf("chunk %d has ordinal %d", i, chunk.Index)
		}

		if chunk.LineStart < 1 || chunk.LineEnd > totalLines {
			t.Errorf("chunk %d line range %d-%d outside source (1-%d)",
				i, chunk.LineStart, chunk.LineEnd, totalLines)
		}

		if chunk.LineStart > chunk.LineEnd {
			t.Errorf("chunk %d has inverted line range %d-%d", i, chunk.LineStart, chunk.LineEnd)
		}

		if i > 0 {
			prev := chunks[i-1]
			if chunk.LineStart < prev.LineStart {
				t.Errorf("line ranges not non-decreasing at chunk %d", i)
			}
			// overlap: the next chunk starts before the previous one ends
			if chunk.LineStart > prev.LineEnd+1 {
				t.Errorf("gap between chunk %d (ends L%d) and chunk %d (starts L%d)",
					i-1, prev.LineEnd, i, chunk.LineStart)
			}
		}
	}

	// full coverage: first chunk starts at line 1, last chunk reaches the end
	if chunks[0].LineStart != 1 {
		t.Errorf("first chunk starts at line %d", chunks[0].LineStart)
	}

	if chunks[len(chunks)-1].LineEnd != totalLines {
		t.Errorf("last chunk ends at line %d, want %d", chunks[len(chunks)-1].LineEnd, totalLines)
	}
}

func TestSplitOverlapDuplicatesTrailingContent(t *testing.T) {
	text := buildLines(300)

	chunks, err := Split(text, "c.txt", Options{ChunkSize: 100, ChunkOverlap: 25})
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i := 1; i < len(chunks); i++ {
		head := firstLine(chunks[i].Content)
		if head == "" {
			continue
		}

		if !strings.Contains(chunks[i-1].Content, head) {
			t.Errorf("chunk %d head %q not found in previous chunk (no overlap)", i, head)
		}
	}
}

func TestSplitKeepsMultiByteRunesIntact(t *testing.T) {
	// long CJK prose with no newline or ". " inside any half-window,
	// so every boundary falls on raw window edges
	text := strings.Repeat("这是一个很长的中文段落，用来检查切分边界。", 400)

	chunks, err := Split(text, "cjk.md", DefaultOptions())
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for _, chunk := range chunks {
		if !utf8.ValidString(chunk.Content) {
			t.Fatalf("chunk %d contains invalid UTF-8", chunk.Index)
		}
	}
}

func TestSplitAccentedTextBoundaries(t *testing.T) {
	paragraph := "Le modèle crée des réponses très détaillées à chaque requête. "
	text := strings.Repeat(paragraph, 300)

	chunks, err := Split(text, "fr.md", DefaultOptions())
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	for _, chunk := range chunks {
		if !utf8.ValidString(chunk.Content) {
			t.Fatalf("chunk %d contains invalid UTF-8", chunk.Index)
		}

		if strings.Contains(chunk.Content, string(utf8.RuneError)) {
			t.Fatalf("chunk %d contains a replacement character", chunk.Index)
		}
	}
}

func TestEstimateTokens(t *testing.T) {
	if EstimateTokens("") != 0 {
		t.Error("empty text should estimate zero tokens")
	}

	if EstimateTokens("ab") != 1 {
		t.Error("short text should estimate at least one token")
	}

	// monotonic in content length
	prev := 0
	for _, n := range []int{10, 100, 1000, 10000} {
		got := EstimateTokens(strings.Repeat("x", n))
		if got < prev {
			t.Errorf("token estimate not monotonic at length %d", n)
		}
		prev = got
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"crlf", "a\r\nb", "a\nb"},
		{"bare cr", "a\rb", "a\nb"},
		{"control chars", "a\x00b\x07c", "abc"},
		{"keeps tabs", "a\tb", "a\tb"},
		{"collapses blank lines", "a\n\n\n\n\nb", "a\n\nb"},
		{"trims", "  a  ", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func buildLines(n int) string {
	var b strings.Builder

	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "line %d with a bit of filler text to give chunks some body\n", i)
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i != -1 {
		return strings.TrimSpace(s[:i])
	}

	return strings.TrimSpace(s)
}
