package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/docuchat/api/internal/domain/docmodel"
)

const (
	IS_PROD                     = false
	LOG_LEVEL_PROD              = slog.LevelInfo
	FALLBACK_REDIS_TO_MEMORY    = true //if redis init fails, job state falls back to an in-memory store
	TRACE_ID_KEY                = "traceId"
	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5
	NoAuthBypass                = true //flip once an auth token is provisioned

	//chunking
	//step = ChunkSize - ChunkOverlap must stay >= 1, Validate() enforces it at startup
	ChunkSize    = 800
	ChunkOverlap = 150

	//retrieval
	TopKChunks             = 5
	MinSimilarityThreshold = 0.1

	//upload policy - enforced at the HTTP edge, the pipeline itself is format-agnostic
	MaxUploadBytes int64 = 25 << 20 //25mb, pdf only

	EmbeddingOutputDimensionality int32 = 1536
	EmbeddingCollectionName             = "docuchat-chunks"

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 10 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//vector store backend: "memory" (default) or "qdrant"
	VectorStoreBackend = "memory"

	//vectorDB (only used when VectorStoreBackend == "qdrant")
	QdrantConnectionTimeout = 30 * time.Second
	QdrantHost              = ""
	QdrantPort              = 6333 //http
	QdrantGrpcPort          = 6334
	QdrantUseTLS            = false //set for https
	QdrantPoolSize          = 1     //2-5 is preferred for prod according to documentation
	QdrantKeepAliveTimeout  = 30 * time.Second

	//embeddings: "google" (default) or "openai"
	EmbeddingProvider    = "google"
	GoogleEmbeddingModel = "gemini-embedding-001"
	OpenAIEmbeddingModel = "text-embedding-3-small"

	//pooled http client for embedding providers
	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//pdf extraction
	PageExtractTimeout = 10 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisJobStore = 0

	//redis timeouts
	RedisJobStoreTTL = 24 * time.Hour
)

var (
	GoogleEmbeddingAPIKey = os.Getenv("GEMINI_API_KEY")
	OpenAIAPIKey          = os.Getenv("OPENAI_API_KEY")
	AuthToken             = os.Getenv("DOCUCHAT_AUTH_TOKEN")
	RedisPassword         = os.Getenv("REDIS_PASSWORD")
)

// Validate rejects constant combinations that would break the chunker.
// Called once from main - a step of 0 or less means the sliding window never advances.
func Validate() error {
	if step := ChunkSize - ChunkOverlap; step < 1 {
		return &docmodel.ConfigurationError{Reason: "chunk overlap must be smaller than chunk size"}
	}
	if ChunkSize < 1 {
		return &docmodel.ConfigurationError{Reason: "chunk size must be positive"}
	}
	if TopKChunks < 1 {
		return &docmodel.ConfigurationError{Reason: "top-k must be positive"}
	}
	return nil
}
