package docmodel

import (
	"errors"
	"fmt"
)

// ErrEmbedderUnavailable means the embedder never initialized, is still
// loading, or failed to load. Search treats this as an empty result,
// ingestion treats it as a per-document failure.
var ErrEmbedderUnavailable = errors.New("embedder is not available")

// ExtractionError aborts a single document's ingestion - nothing of that
// document is stored.
type ExtractionError struct {
	Document string
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("no text could be extracted from %q", e.Document)
	}
	return fmt.Sprintf("extracting text from %q: %v", e.Document, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ConfigurationError is fatal at startup.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + e.Reason
}
