// @title           DocuChat Retrieval API
// @version         1.0
// @description     This API handles asynchronous document ingestion and similarity search over the indexed chunks.
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/docuchat/api/internal/config"
	"github.com/docuchat/api/internal/data/store"
	"github.com/docuchat/api/internal/domain/docmodel"
	jobmodel "github.com/docuchat/api/internal/domain/jobModel"
	"github.com/docuchat/api/internal/handlers"
	"github.com/docuchat/api/internal/job"
	"github.com/docuchat/api/internal/mcp"
	"github.com/docuchat/api/internal/rag"
	"github.com/docuchat/api/internal/rag/embedding"
	"github.com/docuchat/api/internal/rag/embedding/googleEmbedding"
	"github.com/docuchat/api/internal/rag/embedding/openaiEmbedding"
	"github.com/docuchat/api/internal/rag/vectorDB"
	"github.com/docuchat/api/internal/rag/vectorDB/memoryDB"
	"github.com/docuchat/api/internal/rag/vectorDB/qdrantDB"
	"github.com/docuchat/api/internal/server"
	"github.com/docuchat/api/internal/status"
	"github.com/docuchat/api/internal/worker"
	"github.com/docuchat/api/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	if err := config.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and job store
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          selectJobStore(serviceContext, logger),
	}
	logger.Info("Starting job service")
	service := job.InitJobService(serviceConfig)

	vectorStore := selectVectorStore(serviceContext, logger)
	if vectorStore == nil {
		logger.Error("Vector store failed to initialize. Shutting down.")
		return
	}

	reporter := status.NewFanout(status.NewLogReporter(), status.NewMetricsReporter())

	embedder := embedding.NewManager(newEmbeddingProvider, reporter)
	//the provider loads in the background - uploads queue and searches
	//return empty until it reports ready
	go embedder.Init(serviceContext)

	ragService := rag.NewService(vectorStore, embedder, reporter)

	handlers.InitJobHandler(service, ragService)

	//init worker pool
	worker.InitServices(service, ragService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	mcpServer := mcp.NewServer(ragService)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr, mcpServer)

	<-stopExecution
	logger.Info("Server stopped")
}

func selectJobStore(ctx context.Context, logger *logger_i.Logger) jobmodel.JobStore {
	jobStore := store.GetRedisJobStore(ctx)
	if jobStore != nil {
		return jobStore
	}
	if !config.FALLBACK_REDIS_TO_MEMORY {
		logger.Error("Redis job store is offline and fallback is disabled")
		os.Exit(1)
	}
	logger.Warn("Redis job store is offline - falling back to in-memory job state")
	return store.InitInMemoryJobStore()
}

func selectVectorStore(ctx context.Context, logger *logger_i.Logger) vectorDB.DataProcessor {
	switch config.VectorStoreBackend {
	case "qdrant":
		client := qdrantDB.GetQdrantClient(ctx)
		if client == nil {
			return nil
		}
		return client
	default:
		logger.Info("Using in-memory vector store")
		return memoryDB.NewStore()
	}
}

func newEmbeddingProvider(ctx context.Context) (embedding.Provider, error) {
	switch config.EmbeddingProvider {
	case "openai":
		return openaiEmbedding.New(ctx, config.OpenAIEmbeddingModel, config.OpenAIAPIKey)
	case "google":
		return googleEmbedding.New(ctx, config.GoogleEmbeddingModel, config.GoogleEmbeddingAPIKey)
	default:
		return nil, &docmodel.ConfigurationError{Reason: "unknown embedding provider " + config.EmbeddingProvider}
	}
}
