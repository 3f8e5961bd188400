package qdrantDB

import (
	"context"
	"errors"
	"os"
	"strconv"
	"sync"

	"github.com/docuchat/api/internal/config"
	"github.com/docuchat/api/internal/domain/docmodel"
	"github.com/docuchat/api/pkg/logger_i"
	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

var logger *logger_i.Logger
var qdrantInstance *qdrant.Client
var once sync.Once
var dimension = uint64(config.EmbeddingOutputDimensionality)
var collectionName = config.EmbeddingCollectionName

// ClientHolder adapts a Qdrant collection to the vectorDB.DataProcessor
// contract. The memory store is the default backend; this one trades the
// in-process determinism guarantees for capacity.
type ClientHolder struct {
	QObj *qdrant.Client
}

func GetQdrantClient(ctx context.Context) *ClientHolder {
	once.Do(func() {
		logger = logger_i.NewLogger("Qdrant")
		res := newClient()
		if res != nil {
			qdrantInstance = res
			go closeQdrant(ctx, qdrantInstance)
		}
	})

	if qdrantInstance == nil {
		return nil
	}
	return &ClientHolder{
		QObj: qdrantInstance,
	}
}

func newClient() *qdrant.Client {
	host := os.Getenv("QDRANT_HOST")
	port, er := strconv.Atoi(os.Getenv("QDRANT_PORT"))

	if host == "" || er != nil {
		host = config.QdrantHost
		port = config.QdrantGrpcPort
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		logger.Error("could not instantiate: ", "error:", err)
		return nil
	}

	err = createCollection(context.Background(), client, collectionName)
	if err != nil {
		logger.Error("could not create collection: ", "collectionName", collectionName, "error:", err)
		return nil
	}

	return client
}

func closeQdrant(ctx context.Context, qi *qdrant.Client) {
	<-ctx.Done()
	logger.Info("Shutting down Qdrant")
	err := qi.Close()
	if err != nil {
		logger.Error("could not close Qdrant: ", "error:", err)
	}
	logger.Info("Closed Qdrant")
}

func (db *ClientHolder) AppendBatch(ctx context.Context, chunks []docmodel.Chunk) (int, error) {
	points := make([]*qdrant.PointStruct, 0, len(chunks))
	for _, chunk := range chunks {
		if !chunk.Embedded() {
			logger.Warn("refusing un-embedded chunk", "source", chunk.Source, "chunkIndex", chunk.Index)
			continue
		}
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(uuid.New().String()),
			Vectors: qdrant.NewVectors(chunk.Embedding...),
			Payload: qdrant.NewValueMap(map[string]any{
				"content":     chunk.Text,
				"doc_name":    chunk.Source,
				"chunk_index": int64(chunk.Index),
			}),
		})
	}
	if len(points) == 0 {
		return 0, nil
	}

	_, err := db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collectionName,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return 0, err
	}
	return len(points), nil
}

func (db *ClientHolder) RemoveSource(ctx context.Context, source string) (int, error) {
	before := db.Count(ctx)

	_, err := db.QObj.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: collectionName,
		Points: qdrant.NewPointsSelectorFilter(&qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("doc_name", source),
			},
		}),
		Wait: qdrant.PtrOf(true),
	})
	if err != nil {
		return 0, err
	}

	removed := before - db.Count(ctx)
	if removed < 0 {
		removed = 0
	}
	return removed, nil
}

func (db *ClientHolder) Search(ctx context.Context, vector []float32, topK int, minScore float64) ([]docmodel.ScoredChunk, error) {
	if topK < 1 {
		return nil, nil
	}

	result, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(topK)),
		ScoreThreshold: qdrant.PtrOf(float32(minScore)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		logger.Error("Error querying Qdrant: ", "error:", err)
		return nil, err
	}

	matches := make([]docmodel.ScoredChunk, 0, len(result))
	for _, hit := range result {
		matches = append(matches, docmodel.ScoredChunk{
			Chunk: docmodel.Chunk{
				Text:   hit.Payload["content"].GetStringValue(),
				Source: hit.Payload["doc_name"].GetStringValue(),
				Index:  int(hit.Payload["chunk_index"].GetIntegerValue()),
			},
			Score: float64(hit.Score),
		})
	}
	return matches, nil
}

func (db *ClientHolder) Count(ctx context.Context) int {
	count, err := db.QObj.Count(ctx, &qdrant.CountPoints{
		CollectionName: collectionName,
		Exact:          qdrant.PtrOf(true),
	})
	if err != nil {
		logger.Error("Error counting points", "error", err)
		return 0
	}
	return int(count)
}

func createCollection(ctx context.Context, client *qdrant.Client, collectionName string) error {
	if collectionName == "" {
		return errors.New("empty collection name")
	}

	exists, err := client.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	return err
}
