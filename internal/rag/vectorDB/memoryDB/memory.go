package memoryDB

import (
	"context"
	"sort"
	"sync"

	"github.com/docuchat/api/internal/domain/docmodel"
	"github.com/docuchat/api/internal/rag/vectorDB"
	"github.com/docuchat/api/pkg/logger_i"
)

// Store is the in-memory vector store: an ordered slice of embedded
// chunks, process-lifetime only, rebuilt from scratch by re-ingestion.
// Append and removal are the only mutations and both run under the write
// lock, so a batch is either fully visible or not at all.
type Store struct {
	mu     sync.RWMutex
	chunks []docmodel.Chunk
	logger *logger_i.Logger
}

func NewStore() *Store {
	return &Store{
		logger: logger_i.NewLogger("Memory VectorDB"),
	}
}

func (s *Store) AppendBatch(ctx context.Context, chunks []docmodel.Chunk) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := 0
	for _, c := range chunks {
		if !c.Embedded() {
			s.logger.Warn("refusing un-embedded chunk", "source", c.Source, "chunkIndex", c.Index)
			continue
		}
		s.chunks = append(s.chunks, c)
		stored++
	}
	s.logger.Debug("appended batch", "stored", stored, "total", len(s.chunks))
	return stored, nil
}

func (s *Store) RemoveSource(ctx context.Context, source string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.chunks[:0]
	removed := 0
	for _, c := range s.chunks {
		if c.Source == source {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	s.chunks = kept
	if removed > 0 {
		s.logger.Info("removed document chunks", "source", source, "removed", removed)
	}
	return removed, nil
}

func (s *Store) Search(ctx context.Context, vector []float32, topK int, minScore float64) ([]docmodel.ScoredChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if topK < 1 || len(s.chunks) == 0 {
		return nil, nil
	}

	var results []docmodel.ScoredChunk
	for _, c := range s.chunks {
		score := vectorDB.CosineSimilarity(c.Embedding, vector)
		if score >= minScore {
			results = append(results, docmodel.ScoredChunk{Chunk: c, Score: score})
		}
	}

	// stable: equal scores keep insertion order, so results are deterministic
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

func (s *Store) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}
