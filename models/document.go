package models

// Chunk is a bounded segment of a document's text, created during ingestion.
// Chunks are immutable once created; Position is the zero-based index of the
// chunk within its source document.
type Chunk struct {
	ID       string `json:"id"`
	Source   string `json:"fuente"`
	Text     string `json:"texto"`
	Position int    `json:"posicion"`
}

// Match is a single similarity-search hit returned by the vector store.
// Metadata carries at least the "texto", "fuente" and "posicion" keys written
// at upsert time. Score is descending-better (1 = identical under cosine).
type Match struct {
	Metadata map[string]interface{} `json:"metadata"`
	Score    float64                `json:"score"`
}

// AskResult is the pipeline's answer to a validated question.
type AskResult struct {
	Answer         string  `json:"answer"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

// IngestResult reports the outcome of ingesting one document. Ingestion is
// partial-success: chunks that fail to embed or upsert are skipped, and their
// indices are recorded in Failed.
type IngestResult struct {
	Filename string `json:"filename"`
	Total    int    `json:"total"`
	Stored   int    `json:"stored"`
	Failed   []int  `json:"failed,omitempty"`
}
