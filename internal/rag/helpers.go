package rag

import (
	"context"
	"net/http"
	"time"

	"github.com/docuchat/api/internal/config"
	"github.com/docuchat/api/internal/domain/docmodel"
	"github.com/docuchat/api/internal/domain/jobModel"
	"github.com/docuchat/api/internal/metrics"
)

func (s *service) jobError(job jobModel.Job, err error, message string, canRetry bool) jobModel.Job {
	s.logger.Error(message, "error", err)

	job.Error = jobModel.JobError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
		Retry:   canRetry,
	}
	job.Status = jobModel.JobStatusError
	job.CurrentStep = jobModel.Error
	return job
}

func (s *service) executeEmbeddingStep(ctx context.Context, query string) ([]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("query_embedding", time.Since(start)) }()

	return s.embedder.Embed(ctx, query)
}

func (s *service) executeVectorSearchStep(ctx context.Context, vector []float32) ([]docmodel.ScoredChunk, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	return s.vectorDB.Search(ctx, vector, config.TopKChunks, config.MinSimilarityThreshold)
}
