package embedding

import (
	"context"
	"math"
	"sync"

	"github.com/docuchat/api/internal/domain/docmodel"
	"github.com/docuchat/api/internal/status"
	"github.com/docuchat/api/pkg/logger_i"
)

// Provider is a concrete embedding backend. Providers only convert text
// to a vector; lifecycle lives in the Manager.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Embedder is what the rest of the service consumes: an embedding
// capability that may not be available yet, or ever.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Ready() bool
	State() State
}

type State string

const (
	StateUninitialized State = "Uninitialized"
	StateLoading       State = "Loading"
	StateReady         State = "Ready"
	StateFailed        State = "Failed"
)

// Manager wraps a lazily-constructed Provider. Init is idempotent - calls
// while loading or after resolution are no-ops - and a failed load is
// permanent: the manager reports Failed and never retries on its own.
type Manager struct {
	mu       sync.Mutex
	state    State
	provider Provider

	newProvider func(ctx context.Context) (Provider, error)
	reporter    status.Reporter
	logger      *logger_i.Logger
}

func NewManager(newProvider func(ctx context.Context) (Provider, error), reporter status.Reporter) *Manager {
	return &Manager{
		state:       StateUninitialized,
		newProvider: newProvider,
		reporter:    reporter,
		logger:      logger_i.NewLogger("Embedding Manager"),
	}
}

// Init constructs the provider exactly once. Safe to call from multiple
// goroutines; late callers return immediately while the first one loads.
func (m *Manager) Init(ctx context.Context) {
	m.mu.Lock()
	if m.state != StateUninitialized {
		m.mu.Unlock()
		return
	}
	m.state = StateLoading
	m.mu.Unlock()

	m.reporter.Report(status.Event{State: status.EmbedderLoading})
	m.logger.Info("Loading embedding provider")

	provider, err := m.newProvider(ctx)

	m.mu.Lock()
	if err != nil || provider == nil {
		m.state = StateFailed
		m.mu.Unlock()
		m.logger.Error("Embedding provider failed to load", "error", err)
		m.reporter.Report(status.Event{State: status.EmbedderFailed, Err: err})
		return
	}
	m.provider = provider
	m.state = StateReady
	m.mu.Unlock()

	m.logger.Info("Embedding provider ready")
	m.reporter.Report(status.Event{State: status.EmbedderReady})
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) Ready() bool {
	return m.State() == StateReady
}

// Embed converts text into an L2-normalized vector. A per-call provider
// failure is returned to the caller and does not change the manager's
// state - only a load failure makes the embedder unavailable.
func (m *Manager) Embed(ctx context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	provider, state := m.provider, m.state
	m.mu.Unlock()

	if state != StateReady {
		return nil, docmodel.ErrEmbedderUnavailable
	}

	vector, err := provider.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	l2Normalize(vector)
	return vector, nil
}

// l2Normalize scales the vector to unit length in place. Zero vectors are
// left untouched - similarity scoring guards against them anyway.
func l2Normalize(vector []float32) {
	var sum float64
	for _, v := range vector {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vector {
		vector[i] = float32(float64(vector[i]) / norm)
	}
}
