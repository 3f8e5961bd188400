package docmodel

import "time"

// Document is the registry entry for an ingested source. It is decoupled
// from its chunks - removal matches chunks by Source, not by reference.
type Document struct {
	Name       string    `json:"doc_name"`
	ChunkCount int       `json:"chunk_count"`
	IngestTime time.Time `json:"ingested_at"`
}

// Chunk is one retrievable text segment. Embedding is nil until the
// embedder has processed it; a nil-embedding chunk must never reach the
// vector store.
type Chunk struct {
	Text      string    `json:"content"`
	Source    string    `json:"doc_name"`
	Index     int       `json:"chunk_index"`
	Embedding []float32 `json:"-"`
}

// Embedded reports whether the chunk carries a vector and may be stored.
func (c Chunk) Embedded() bool {
	return c.Embedding != nil
}

// ScoredChunk pairs a stored chunk with its similarity to a query.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}
