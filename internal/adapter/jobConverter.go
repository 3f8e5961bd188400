package adapter

import (
	"fmt"
	"time"

	"github.com/docuchat/api/internal/api"
	"github.com/docuchat/api/internal/domain/docmodel"
	"github.com/docuchat/api/internal/domain/jobModel"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id), //pass "status/job.Id"
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status: string(job.Status),
		Ingest: ToIngestResult(job),
	}

	return api.JobResponse{
		Id:        job.Id,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

// ToIngestResult is nil until the job has finished chunking.
func ToIngestResult(job jobModel.Job) *api.IngestResult {
	if job.Status != jobModel.JobStatusComplete {
		return nil
	}

	return &api.IngestResult{
		DocumentName: job.JobPayload.IngestFileName,
		ChunkCount:   job.JobPayload.ChunkCount,
		FailedChunks: job.JobPayload.FailedChunks,
	}
}

func ToSearchResponse(query string, matches []docmodel.ScoredChunk) api.SearchResponse {
	results := make([]api.SearchResult, 0, len(matches))
	for _, match := range matches {
		results = append(results, api.SearchResult{
			Text:       match.Chunk.Text,
			Source:     match.Chunk.Source,
			ChunkIndex: match.Chunk.Index,
			Score:      match.Score,
		})
	}
	return api.SearchResponse{
		Query:   query,
		Results: results,
	}
}

func ToDocumentListResponse(docs []docmodel.Document) api.DocumentListResponse {
	infos := make([]api.DocumentInfo, 0, len(docs))
	for _, doc := range docs {
		infos = append(infos, api.DocumentInfo{
			Name:       doc.Name,
			ChunkCount: doc.ChunkCount,
			IngestTime: doc.IngestTime,
		})
	}
	return api.DocumentListResponse{
		Documents: infos,
		Count:     len(infos),
	}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
