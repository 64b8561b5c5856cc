package chunker

// a contiguous, line-addressable slice of a document's text
type Chunk struct {
	Index      int
	Content    string
	TokenCount int
	SourceFile string
	LineStart  int
	LineEnd    int
}

// controls chunk sizing; both values are approximate token counts
type Options struct {
	ChunkSize    int
	ChunkOverlap int
}
