package retriever

const (
	// answers produced without a generator are labeled retrieval mode
	ModeRetrieval = "retrieval"
	ModeRAG       = "rag"

	MaxQuestionLength = 2000
	MaxTopK           = 50
)

type QueryRequest struct {
	Question   string
	Collection string
	TopK       int
}

type Citation struct {
	Source     string  `json:"source"`
	LineStart  int     `json:"line_start"`
	LineEnd    int     `json:"line_end"`
	Similarity float64 `json:"similarity"`
}

type QueryResult struct {
	Answer          string     `json:"answer"`
	Citations       []Citation `json:"citations"`
	Retrieved       int        `json:"retrieved"`
	LatencyMS       float64    `json:"latency_ms"`
	Mode            string     `json:"mode"`
	Confidence      float64    `json:"confidence"`
	ConfidenceLabel string     `json:"confidence_label"`
}
