package status

import (
	"github.com/docuchat/api/internal/metrics"
	"github.com/docuchat/api/pkg/logger_i"
)

// LogReporter writes every event to the structured log.
type LogReporter struct {
	logger *logger_i.Logger
}

func NewLogReporter() *LogReporter {
	return &LogReporter{logger: logger_i.NewLogger("Status")}
}

func (r *LogReporter) Report(event Event) {
	switch event.State {
	case DocumentIngestFailed, EmbedderFailed:
		r.logger.Error("state transition", "state", string(event.State), "document", event.Document, "error", event.Err)
	case DocumentIngested:
		r.logger.Info("state transition", "state", string(event.State), "document", event.Document,
			"chunks", event.ChunkCount, "failedChunks", event.FailedChunks)
	default:
		r.logger.Info("state transition", "state", string(event.State), "document", event.Document)
	}
}

// MetricsReporter translates events into Prometheus counters.
type MetricsReporter struct{}

func NewMetricsReporter() *MetricsReporter {
	return &MetricsReporter{}
}

func (r *MetricsReporter) Report(event Event) {
	metrics.CountStatusEvent(string(event.State))
	if event.State == DocumentIngested && event.FailedChunks > 0 {
		metrics.AddEmbeddingFailures(event.FailedChunks)
	}
}
