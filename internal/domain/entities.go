package domain

// Chunk is the unit of indexed text: a bounded slice of one document,
// embedded and stored for nearest-neighbor retrieval.
type Chunk struct {
	ID       string
	Filename string
	Ordinal  int
	Text     string
	Vector   []float32
}

// ScoredChunk pairs a retrieved chunk with its cosine similarity to the query.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// Answer is a grounded response plus the distinct filenames that supplied context.
type Answer struct {
	Text    string   `json:"answer"`
	Sources []string `json:"context_used"`
}

// Summary is the condensed form of a single document.
type Summary struct {
	Text     string `json:"summary"`
	Filename string `json:"filename"`
}

// CorpusSummary is the cross-document synthesis over every indexed file.
type CorpusSummary struct {
	Text    string   `json:"summary"`
	Sources []string `json:"source_documents"`
}
