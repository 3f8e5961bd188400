package rag_test

import (
	"context"

	"github.com/docuchat/api/internal/domain/docmodel"
	"github.com/docuchat/api/internal/rag/embedding"
)

// MockVectorDB implements vectorDB.DataProcessor
type MockVectorDB struct {
	// Control fields to simulate different behaviors
	OnAppendBatch  func(ctx context.Context, chunks []docmodel.Chunk) (int, error)
	OnRemoveSource func(ctx context.Context, source string) (int, error)
	OnSearch       func(ctx context.Context, vector []float32, topK int, minScore float64) ([]docmodel.ScoredChunk, error)
	OnCount        func(ctx context.Context) int
}

func (m *MockVectorDB) AppendBatch(ctx context.Context, chunks []docmodel.Chunk) (int, error) {
	if m.OnAppendBatch != nil {
		return m.OnAppendBatch(ctx, chunks)
	}
	return len(chunks), nil
}

func (m *MockVectorDB) RemoveSource(ctx context.Context, source string) (int, error) {
	if m.OnRemoveSource != nil {
		return m.OnRemoveSource(ctx, source)
	}
	return 0, nil
}

func (m *MockVectorDB) Search(ctx context.Context, vector []float32, topK int, minScore float64) ([]docmodel.ScoredChunk, error) {
	if m.OnSearch != nil {
		return m.OnSearch(ctx, vector, topK, minScore)
	}
	return []docmodel.ScoredChunk{{Chunk: docmodel.Chunk{Text: "default context", Source: "default.pdf"}, Score: 0.9}}, nil
}

func (m *MockVectorDB) Count(ctx context.Context) int {
	if m.OnCount != nil {
		return m.OnCount(ctx)
	}
	return 1
}

// MockEmbedder implements embedding.Embedder
type MockEmbedder struct {
	OnEmbed   func(ctx context.Context, text string) ([]float32, error)
	IsReady   bool
	LoadState embedding.State
	Calls     int
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.Calls++
	if m.OnEmbed != nil {
		return m.OnEmbed(ctx, text)
	}
	return []float32{0.1, 0.2}, nil
}

func (m *MockEmbedder) Ready() bool { return m.IsReady }

func (m *MockEmbedder) State() embedding.State {
	if m.LoadState != "" {
		return m.LoadState
	}
	if m.IsReady {
		return embedding.StateReady
	}
	return embedding.StateLoading
}
