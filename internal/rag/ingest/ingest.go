package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/docuchat/api/internal/config"
	"github.com/docuchat/api/internal/domain/docmodel"
	"github.com/docuchat/api/internal/metrics"
	"github.com/docuchat/api/internal/rag/chunker"
	"github.com/docuchat/api/internal/rag/embedding"
	"github.com/docuchat/api/internal/rag/extract"
	"github.com/docuchat/api/internal/rag/vectorDB"
	"github.com/docuchat/api/internal/status"
	"github.com/docuchat/api/pkg/logger_i"
)

// Result is the outcome of one successful document ingestion.
type Result struct {
	Document     docmodel.Document
	FailedChunks int
}

// ProcessDocumentIngestion runs one document through the pipeline:
// extract -> chunk -> embed sequentially in chunk order -> one atomic
// append. Extraction failure or an unavailable embedder aborts the whole
// document and nothing is stored; a single chunk's embedding failure only
// drops that chunk.
func ProcessDocumentIngestion(ctx context.Context, docName string, docPath string,
	embedder embedding.Embedder, vectorDatabase vectorDB.DataProcessor, reporter status.Reporter) (Result, error) {

	logger := logger_i.NewLogger("Document Ingestion").With("traceId", ctx.Value(config.TRACE_ID_KEY), "document", docName)
	logger.Debug("Processing document", "path", docPath)

	start := time.Now()
	text, err := extract.Text(docPath, docName)
	metrics.CaptureExecutionMetrics("text_extraction", time.Since(start))
	if err != nil {
		logger.Error("Error extracting document content", "error", err)
		reporter.Report(status.Event{State: status.DocumentIngestFailed, Document: docName, Err: err})
		return Result{}, err
	}

	chunks := chunker.Split(text, docName, config.ChunkSize, config.ChunkOverlap)
	logger.Debug("Processing document", "chunks", len(chunks))

	embedded, failed, err := embedChunks(ctx, chunks, embedder, logger)
	if err != nil {
		reporter.Report(status.Event{State: status.DocumentIngestFailed, Document: docName, Err: err})
		return Result{}, err
	}

	stored, err := vectorDatabase.AppendBatch(ctx, embedded)
	if err != nil {
		err = fmt.Errorf("storing chunks for %q: %w", docName, err)
		logger.Error("Error storing chunks", "error", err)
		reporter.Report(status.Event{State: status.DocumentIngestFailed, Document: docName, Err: err})
		return Result{}, err
	}
	metrics.AddChunksStored(stored)

	doc := docmodel.Document{
		Name:       docName,
		ChunkCount: stored,
		IngestTime: time.Now(),
	}

	logger.Info("Document ingested", "chunks", stored, "failedChunks", failed)
	reporter.Report(status.Event{
		State:        status.DocumentIngested,
		Document:     docName,
		ChunkCount:   stored,
		FailedChunks: failed,
	})
	return Result{Document: doc, FailedChunks: failed}, nil
}

// embedChunks embeds strictly in chunk order. An unavailable embedder
// fails the whole batch; any other failure drops just that chunk.
func embedChunks(ctx context.Context, chunks []docmodel.Chunk,
	embedder embedding.Embedder, logger *logger_i.Logger) ([]docmodel.Chunk, int, error) {

	survivors := make([]docmodel.Chunk, 0, len(chunks))
	failed := 0

	for _, chunk := range chunks {
		start := time.Now()
		vector, err := embedder.Embed(ctx, chunk.Text)
		metrics.CaptureExecutionMetrics("embedding", time.Since(start))

		if errors.Is(err, docmodel.ErrEmbedderUnavailable) {
			return nil, 0, err
		}
		if err != nil {
			failed++
			logger.Warn("Dropping chunk - embedding failed", "chunkIndex", chunk.Index, "error", err)
			continue
		}

		chunk.Embedding = vector
		survivors = append(survivors, chunk)
	}
	return survivors, failed, nil
}
