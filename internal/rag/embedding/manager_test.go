package embedding

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/docuchat/api/internal/domain/docmodel"
	"github.com/docuchat/api/internal/status"
)

type stubProvider struct {
	embedFunc func(ctx context.Context, text string) ([]float32, error)
}

func (p *stubProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	return p.embedFunc(ctx, text)
}

type recordingReporter struct {
	mu     sync.Mutex
	events []status.Event
}

func (r *recordingReporter) Report(e status.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingReporter) states() []status.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []status.State
	for _, e := range r.events {
		out = append(out, e.State)
	}
	return out
}

func TestInit_Idempotent(t *testing.T) {
	var constructed int32
	m := NewManager(func(ctx context.Context) (Provider, error) {
		atomic.AddInt32(&constructed, 1)
		return &stubProvider{embedFunc: func(ctx context.Context, text string) ([]float32, error) {
			return []float32{1, 0}, nil
		}}, nil
	}, status.Discard{})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Init(context.Background())
		}()
	}
	wg.Wait()
	m.Init(context.Background())

	if got := atomic.LoadInt32(&constructed); got != 1 {
		t.Errorf("provider constructed %d times; want 1", got)
	}
	if m.State() != StateReady {
		t.Errorf("state = %v; want Ready", m.State())
	}
}

func TestInit_FailureIsPermanentAndDistinct(t *testing.T) {
	rep := &recordingReporter{}
	m := NewManager(func(ctx context.Context) (Provider, error) {
		return nil, errors.New("model download failed")
	}, rep)

	if m.State() != StateUninitialized {
		t.Fatalf("state before init = %v", m.State())
	}

	m.Init(context.Background())
	if m.State() != StateFailed {
		t.Fatalf("state = %v; want Failed", m.State())
	}

	// no automatic retry
	m.Init(context.Background())
	if m.State() != StateFailed {
		t.Errorf("second Init changed state to %v", m.State())
	}

	_, err := m.Embed(context.Background(), "anything")
	if !errors.Is(err, docmodel.ErrEmbedderUnavailable) {
		t.Errorf("Embed after failed load: err = %v; want ErrEmbedderUnavailable", err)
	}

	states := rep.states()
	if len(states) != 2 || states[0] != status.EmbedderLoading || states[1] != status.EmbedderFailed {
		t.Errorf("reported states = %v", states)
	}
}

func TestEmbed_BeforeInit(t *testing.T) {
	m := NewManager(func(ctx context.Context) (Provider, error) {
		t.Fatal("provider should not be constructed")
		return nil, nil
	}, status.Discard{})

	_, err := m.Embed(context.Background(), "query")
	if !errors.Is(err, docmodel.ErrEmbedderUnavailable) {
		t.Errorf("err = %v; want ErrEmbedderUnavailable", err)
	}
}

func TestEmbed_NormalizesOutput(t *testing.T) {
	m := NewManager(func(ctx context.Context) (Provider, error) {
		return &stubProvider{embedFunc: func(ctx context.Context, text string) ([]float32, error) {
			return []float32{3, 4}, nil
		}}, nil
	}, status.Discard{})
	m.Init(context.Background())

	vec, err := m.Embed(context.Background(), "text")
	if err != nil {
		t.Fatal(err)
	}

	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if math.Abs(math.Sqrt(sum)-1) > 1e-6 {
		t.Errorf("vector not unit length: %v", vec)
	}
}

func TestEmbed_PerCallFailureKeepsManagerReady(t *testing.T) {
	var calls int32
	m := NewManager(func(ctx context.Context) (Provider, error) {
		return &stubProvider{embedFunc: func(ctx context.Context, text string) ([]float32, error) {
			if atomic.AddInt32(&calls, 1) == 1 {
				return nil, errors.New("rate limited")
			}
			return []float32{0, 1}, nil
		}}, nil
	}, status.Discard{})
	m.Init(context.Background())

	if _, err := m.Embed(context.Background(), "first"); err == nil {
		t.Fatal("expected first call to fail")
	}
	if m.State() != StateReady {
		t.Errorf("per-call failure flipped state to %v", m.State())
	}
	if _, err := m.Embed(context.Background(), "second"); err != nil {
		t.Errorf("second call failed: %v", err)
	}
}
