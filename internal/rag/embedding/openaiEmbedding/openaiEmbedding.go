package openaiEmbedding

import (
	"context"
	"errors"

	"github.com/docuchat/api/internal/config"
	"github.com/docuchat/api/internal/customHttpClient"
	"github.com/docuchat/api/internal/rag/embedding"
	"github.com/docuchat/api/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type client struct {
	openAi openai.Client
	model  string
	logger *logger_i.Logger
}

// New builds the OpenAI embedding provider, sharing the pooled transport
// so repeated per-chunk calls reuse connections.
func New(ctx context.Context, modelName string, apikey string) (embedding.Provider, error) {
	logger := logger_i.NewLogger("openai_embedding")

	if apikey == "" {
		return nil, errors.New("missing OPENAI_API_KEY")
	}

	c := openai.NewClient(
		option.WithAPIKey(apikey),
		option.WithHTTPClient(customHttpClient.Pooled()),
	)

	logger.Info("OpenAI Embedding client created", "model", modelName)
	return &client{
		openAi: c,
		model:  modelName,
		logger: logger,
	}, nil
}

func (c *client) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := c.openAi.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input:      openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
		Model:      openai.EmbeddingModel(c.model),
		Dimensions: openai.Int(int64(config.EmbeddingOutputDimensionality)),
	})
	if err != nil {
		c.logger.Error("Error getting Embedding from OpenAI", "error", err.Error())
		return nil, err
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, errors.New("empty embedding response")
	}

	vector := make([]float32, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vector[i] = float32(v)
	}
	return vector, nil
}
