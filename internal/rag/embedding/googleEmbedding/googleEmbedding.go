package googleEmbedding

import (
	"context"
	"errors"
	"time"

	"github.com/docuchat/api/internal/config"
	"github.com/docuchat/api/internal/rag/embedding"
	"github.com/docuchat/api/pkg/logger_i"
	"google.golang.org/genai"
)

var dimension int32 = config.EmbeddingOutputDimensionality

const retryBackoff = 2 * time.Second

type client struct {
	genAi  *genai.Client
	model  string
	logger *logger_i.Logger
}

// New builds the Google embedding provider. Constructed lazily through
// embedding.Manager, never directly at startup.
func New(ctx context.Context, modelName string, apikey string) (embedding.Provider, error) {
	logger := logger_i.NewLogger("google_embedding")

	if apikey == "" {
		return nil, errors.New("missing GEMINI_API_KEY")
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Google Embedding client:", "error", err)
		return nil, err
	}

	logger.Info("Google Embedding client created", "model", modelName)
	return &client{
		genAi:  c,
		model:  modelName,
		logger: logger,
	}, nil
}

// Embed uses one task type for documents and queries alike - the two
// sides of a similarity comparison must come from the same embedding call.
// Transient backend errors get one retry after a short backoff.
func (c *client) Embed(ctx context.Context, text string) ([]float32, error) {
	result, err := c.embedOnce(ctx, text)
	if err != nil && doRetry(err, c.logger) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryBackoff):
		}
		result, err = c.embedOnce(ctx, text)
	}
	if err != nil {
		c.logger.Error("Error getting Embedding from Google", "error", err.Error())
		return nil, err
	}
	if len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, errors.New("empty embedding response")
	}
	return result.Embeddings[0].Values, nil
}

func (c *client) embedOnce(ctx context.Context, text string) (*genai.EmbedContentResponse, error) {
	return c.genAi.Models.EmbedContent(ctx, c.model, genai.Text(text),
		&genai.EmbedContentConfig{OutputDimensionality: &dimension, TaskType: "RETRIEVAL_DOCUMENT"})
}
