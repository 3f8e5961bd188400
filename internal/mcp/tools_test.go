package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/docuchat/api/internal/domain/docmodel"
	"github.com/docuchat/api/internal/domain/jobModel"
	"github.com/docuchat/api/internal/rag/embedding"
)

type mockRagService struct {
	matches []docmodel.ScoredChunk
	docs    []docmodel.Document
	err     error
}

func (m *mockRagService) IngestDocument(ctx context.Context, j jobModel.Job) jobModel.Job {
	return j
}

func (m *mockRagService) Search(ctx context.Context, query string) ([]docmodel.ScoredChunk, error) {
	return m.matches, m.err
}

func (m *mockRagService) RemoveDocument(ctx context.Context, name string) bool { return false }

func (m *mockRagService) ListDocuments(ctx context.Context) []docmodel.Document { return m.docs }

func (m *mockRagService) EmbedderState() embedding.State { return embedding.StateReady }

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ranked chunks", func(t *testing.T) {
		mock := &mockRagService{
			matches: []docmodel.ScoredChunk{
				{Chunk: docmodel.Chunk{Text: "chunk text", Source: "handbook.pdf", Index: 3}, Score: 0.95},
			},
		}
		server := NewServer(mock)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "vacation policy"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Count != 1 || len(output.Results) != 1 {
			t.Fatalf("output = %+v", output)
		}
		got := output.Results[0]
		if got.Source != "handbook.pdf" || got.ChunkIndex != 3 || got.Score != 0.95 || got.Content != "chunk text" {
			t.Errorf("result = %+v", got)
		}
	})

	t.Run("propagates search failure", func(t *testing.T) {
		server := NewServer(&mockRagService{err: errors.New("embedding backend down")})

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "anything"})
		if err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestServer_handleListDocuments(t *testing.T) {
	mock := &mockRagService{
		docs: []docmodel.Document{
			{Name: "a.pdf", ChunkCount: 4, IngestTime: time.Now()},
			{Name: "b.pdf", ChunkCount: 7, IngestTime: time.Now()},
		},
	}
	server := NewServer(mock)

	_, output, err := server.handleListDocuments(context.Background(), nil, struct{}{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Count != 2 || output.Documents[0].Name != "a.pdf" || output.Documents[1].ChunkCount != 7 {
		t.Errorf("output = %+v", output)
	}
}
