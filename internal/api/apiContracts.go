package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type IngestResult struct {
	DocumentName string `json:"document_name" example:"handbook.pdf"`
	ChunkCount   int    `json:"chunk_count" example:"42"`
	FailedChunks int    `json:"failed_chunks,omitempty" example:"0"`
}

type Result struct {
	Status string        `json:"status"`
	Ingest *IngestResult `json:"ingest,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

type SearchResult struct {
	Text       string  `json:"text"`
	Source     string  `json:"source" example:"handbook.pdf"`
	ChunkIndex int     `json:"chunk_index" example:"3"`
	Score      float64 `json:"score" example:"0.82"`
}

type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

type DocumentInfo struct {
	Name       string    `json:"name" example:"handbook.pdf"`
	ChunkCount int       `json:"chunk_count" example:"42"`
	IngestTime time.Time `json:"ingest_time"`
}

type DocumentListResponse struct {
	Documents []DocumentInfo `json:"documents"`
	Count     int            `json:"count" example:"2"`
}

type DeleteDocumentResponse struct {
	Name    string `json:"name" example:"handbook.pdf"`
	Removed bool   `json:"removed" example:"true"`
}

type EmbedderStatusResponse struct {
	State string `json:"state" example:"Ready"`
}

// requests---------------------

type SearchRequest struct {
	Query string `json:"query" validate:"required"`
}

type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}
