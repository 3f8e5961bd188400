package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/docuchat/api/internal/domain/docmodel"
	"github.com/docuchat/api/internal/rag/embedding"
	"github.com/docuchat/api/internal/rag/vectorDB/memoryDB"
	"github.com/docuchat/api/internal/status"
)

// --- Mocks ---

type mockEmbedder struct {
	embedFunc func(ctx context.Context, text string) ([]float32, error)
	ready     bool
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if !m.ready {
		return nil, docmodel.ErrEmbedderUnavailable
	}
	return m.embedFunc(ctx, text)
}
func (m *mockEmbedder) Ready() bool { return m.ready }
func (m *mockEmbedder) State() embedding.State {
	if m.ready {
		return embedding.StateReady
	}
	return embedding.StateFailed
}

func writeDoc(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// --- Tests ---

func TestProcessDocumentIngestion_Success(t *testing.T) {
	path := writeDoc(t, "notes.txt", strings.Repeat("all work and no play makes jack a dull boy. ", 60))
	store := memoryDB.NewStore()
	emb := &mockEmbedder{ready: true, embedFunc: func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0, 0}, nil
	}}

	result, err := ProcessDocumentIngestion(context.Background(), "notes.txt", path, emb, store, status.Discard{})
	if err != nil {
		t.Fatalf("ingestion failed: %v", err)
	}

	if result.Document.Name != "notes.txt" {
		t.Errorf("document name = %q", result.Document.Name)
	}
	if result.Document.ChunkCount < 2 {
		t.Errorf("expected multiple chunks, got %d", result.Document.ChunkCount)
	}
	if result.FailedChunks != 0 {
		t.Errorf("failed chunks = %d; want 0", result.FailedChunks)
	}
	if store.Count(context.Background()) != result.Document.ChunkCount {
		t.Errorf("store holds %d chunks, record says %d", store.Count(context.Background()), result.Document.ChunkCount)
	}
	if result.Document.IngestTime.IsZero() {
		t.Error("ingest time not set")
	}
}

func TestProcessDocumentIngestion_PerChunkFailureIsNonFatal(t *testing.T) {
	path := writeDoc(t, "mixed.txt", strings.Repeat("the rain in spain stays mainly in the plain. ", 60))
	store := memoryDB.NewStore()

	calls := 0
	emb := &mockEmbedder{ready: true, embedFunc: func(ctx context.Context, text string) ([]float32, error) {
		calls++
		if calls == 2 {
			return nil, errors.New("transient provider error")
		}
		return []float32{0, 1}, nil
	}}

	rep := &captureReporter{}
	result, err := ProcessDocumentIngestion(context.Background(), "mixed.txt", path, emb, store, rep)
	if err != nil {
		t.Fatalf("ingestion should survive one chunk failure: %v", err)
	}
	if result.FailedChunks != 1 {
		t.Errorf("failed chunks = %d; want 1", result.FailedChunks)
	}
	if result.Document.ChunkCount != calls-1 {
		t.Errorf("chunk count = %d; want %d", result.Document.ChunkCount, calls-1)
	}

	last := rep.last()
	if last.State != status.DocumentIngested || last.FailedChunks != 1 {
		t.Errorf("final event = %+v", last)
	}
}

func TestProcessDocumentIngestion_ExtractionFailure(t *testing.T) {
	store := memoryDB.NewStore()
	emb := &mockEmbedder{ready: true, embedFunc: func(ctx context.Context, text string) ([]float32, error) {
		t.Fatal("embedder must not be called when extraction fails")
		return nil, nil
	}}

	rep := &captureReporter{}
	_, err := ProcessDocumentIngestion(context.Background(), "ghost.pdf", "/nonexistent/ghost.pdf", emb, store, rep)

	var exErr *docmodel.ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("want ExtractionError, got %v", err)
	}
	if store.Count(context.Background()) != 0 {
		t.Error("nothing may be stored for a failed document")
	}
	if rep.last().State != status.DocumentIngestFailed {
		t.Errorf("event = %+v", rep.last())
	}
}

func TestProcessDocumentIngestion_EmbedderUnavailableAbortsDocument(t *testing.T) {
	path := writeDoc(t, "doc.txt", "some perfectly extractable content")
	store := memoryDB.NewStore()
	emb := &mockEmbedder{ready: false}

	_, err := ProcessDocumentIngestion(context.Background(), "doc.txt", path, emb, store, status.Discard{})
	if !errors.Is(err, docmodel.ErrEmbedderUnavailable) {
		t.Fatalf("err = %v; want ErrEmbedderUnavailable", err)
	}
	if store.Count(context.Background()) != 0 {
		t.Error("nothing may be stored when the embedder is unavailable")
	}
}

func TestProcessDocumentIngestion_ChunkOrderPreserved(t *testing.T) {
	path := writeDoc(t, "ordered.txt", strings.Repeat("abcdefghij ", 300))
	store := memoryDB.NewStore()
	emb := &mockEmbedder{ready: true, embedFunc: func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 1}, nil
	}}

	_, err := ProcessDocumentIngestion(context.Background(), "ordered.txt", path, emb, store, status.Discard{})
	if err != nil {
		t.Fatal(err)
	}

	results, _ := store.Search(context.Background(), []float32{1, 1}, 1000, 0.1)
	for i, r := range results {
		// equal scores, so stable search order == stored order == chunk order
		if r.Chunk.Index != i {
			t.Fatalf("position %d holds chunk index %d", i, r.Chunk.Index)
		}
	}
}

type captureReporter struct {
	events []status.Event
}

func (r *captureReporter) Report(e status.Event) {
	r.events = append(r.events, e)
}

func (r *captureReporter) last() status.Event {
	if len(r.events) == 0 {
		return status.Event{}
	}
	return r.events[len(r.events)-1]
}
