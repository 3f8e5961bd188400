package vectorDB

import (
	"context"
	"math"

	"github.com/docuchat/api/internal/domain/docmodel"
)

// DataProcessor is the storage contract for embedded chunks. The memory
// implementation is the default; qdrantDB backs the same contract for
// deployments that outgrow a single process.
type DataProcessor interface {
	// AppendBatch stores every embedded chunk of one document in a single
	// atomic step - a concurrent search never observes a partial batch.
	// Chunks without an embedding are filtered out, never stored.
	AppendBatch(ctx context.Context, chunks []docmodel.Chunk) (stored int, err error)

	// RemoveSource drops every chunk whose Source matches. Removing an
	// absent source is a no-op.
	RemoveSource(ctx context.Context, source string) (removed int, err error)

	// Search ranks stored chunks against the query vector: similarity >=
	// minScore, descending, ties in insertion order, at most topK results.
	Search(ctx context.Context, vector []float32, topK int, minScore float64) ([]docmodel.ScoredChunk, error)

	Count(ctx context.Context) int
}

// CosineSimilarity returns the similarity of two vectors clamped into
// [0,1]. Degenerate input (nil, mismatched length, zero magnitude) scores
// 0 rather than erroring. Negative cosine - vectors pointing away from
// each other - is floored to 0: "opposite" and "unrelated" are treated
// the same for retrieval purposes.
//
// Providers hand us L2-normalized vectors, but this never assumes that -
// both magnitudes are always computed.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}
