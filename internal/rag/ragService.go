package rag

import (
	"context"
	"errors"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/docuchat/api/internal/domain/docmodel"
	"github.com/docuchat/api/internal/domain/jobModel"
	"github.com/docuchat/api/internal/metrics"
	"github.com/docuchat/api/internal/rag/embedding"
	"github.com/docuchat/api/internal/rag/ingest"
	"github.com/docuchat/api/internal/rag/vectorDB"
	"github.com/docuchat/api/internal/status"
	"github.com/docuchat/api/pkg/logger_i"
)

// Service is the public contract. Workers and handlers only see this -
// they never touch the vector store or embedder directly.
type Service interface {
	IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job
	Search(ctx context.Context, query string) ([]docmodel.ScoredChunk, error)
	RemoveDocument(ctx context.Context, name string) bool
	ListDocuments(ctx context.Context) []docmodel.Document
	EmbedderState() embedding.State
}

// service owns one retrieval session: the vector store, the embedder and
// the document registry. Everything is injected - no package globals - so
// independent sessions and test instances stay isolated.
type service struct {
	vectorDB vectorDB.DataProcessor
	embedder embedding.Embedder
	reporter status.Reporter
	logger   *logger_i.Logger

	docMu     sync.RWMutex
	documents map[string]docmodel.Document
}

// NewService constructor
func NewService(vector vectorDB.DataProcessor, em embedding.Embedder, reporter status.Reporter) Service {
	return &service{
		vectorDB:  vector,
		embedder:  em,
		reporter:  reporter,
		documents: make(map[string]docmodel.Document),
		logger:    logger_i.NewLogger("RAG Service :"),
	}
}

func (s *service) IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("Document_ingestion", time.Since(start)) }()

	docName := job.JobPayload.IngestFileName
	docPath := job.JobPayload.IngestURL
	log := s.logger.With("traceId", job.TraceId, "document", docName)

	// re-upload of the same name replaces the previous index entry
	if s.RemoveDocument(ctx, docName) {
		log.Info("Replacing previously ingested document")
	}

	job.CurrentStep = jobModel.IngestExtracting
	result, err := ingest.ProcessDocumentIngestion(ctx, docName, docPath, s.embedder, s.vectorDB, s.reporter)
	if err != nil {
		return s.jobError(job, err, "INGESTION_FAILURE", true)
	}

	s.docMu.Lock()
	s.documents[result.Document.Name] = result.Document
	s.docMu.Unlock()

	if err := os.Remove(docPath); err != nil {
		log.Error("Error removing temp file", "error", err)
	}

	job.JobPayload.ChunkCount = result.Document.ChunkCount
	job.JobPayload.FailedChunks = result.FailedChunks
	job.CurrentStep = jobModel.Complete
	job.Status = jobModel.JobStatusComplete
	return job
}

// Search embeds the query with the exact same call ingestion uses and
// ranks the store against it. An empty store or an unavailable embedder
// is a valid empty result, not an error - retrieval must keep working
// while nothing is indexed yet.
func (s *service) Search(ctx context.Context, query string) ([]docmodel.ScoredChunk, error) {
	if s.vectorDB.Count(ctx) == 0 {
		metrics.CountSearch("empty")
		return nil, nil
	}
	if !s.embedder.Ready() {
		s.logger.Debug("Search skipped", "embedderState", string(s.embedder.State()))
		metrics.CountSearch("empty")
		return nil, nil
	}

	vector, err := s.executeEmbeddingStep(ctx, query)
	if errors.Is(err, docmodel.ErrEmbedderUnavailable) {
		metrics.CountSearch("empty")
		return nil, nil
	}
	if err != nil {
		metrics.CountSearch("error")
		return nil, err
	}

	matches, err := s.executeVectorSearchStep(ctx, vector)
	if err != nil {
		metrics.CountSearch("error")
		return nil, err
	}
	if len(matches) == 0 {
		metrics.CountSearch("empty")
	} else {
		metrics.CountSearch("results")
	}
	return matches, nil
}

func (s *service) RemoveDocument(ctx context.Context, name string) bool {
	s.docMu.Lock()
	_, known := s.documents[name]
	delete(s.documents, name)
	s.docMu.Unlock()

	removed, err := s.vectorDB.RemoveSource(ctx, name)
	if err != nil {
		s.logger.Error("Error removing document chunks", "document", name, "error", err)
	}
	if removed > 0 {
		metrics.RemoveChunksStored(removed)
	}

	if known || removed > 0 {
		s.reporter.Report(status.Event{State: status.DocumentRemoved, Document: name, ChunkCount: removed})
		return true
	}
	return false
}

func (s *service) ListDocuments(ctx context.Context) []docmodel.Document {
	s.docMu.RLock()
	defer s.docMu.RUnlock()

	docs := make([]docmodel.Document, 0, len(s.documents))
	for _, d := range s.documents {
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].IngestTime.Equal(docs[j].IngestTime) {
			return docs[i].Name < docs[j].Name
		}
		return docs[i].IngestTime.Before(docs[j].IngestTime)
	})
	return docs
}

func (s *service) EmbedderState() embedding.State {
	return s.embedder.State()
}
