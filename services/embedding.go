package services

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// EmbeddingModel is the fixed model identifier used for every chunk and
// question embedding. Changing it invalidates previously stored vectors.
const EmbeddingModel = "text-embedding-3-small"

// Embedder converts text into a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// OpenAIEmbedder implements Embedder on top of the OpenAI embeddings API.
type OpenAIEmbedder struct {
	client openai.Client
}

// NewOpenAIEmbedder creates the embedding client. An empty API key is an
// initialization failure, reported to the caller rather than crashing.
func NewOpenAIEmbedder(apiKey string) (*OpenAIEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrEmbeddingUnavailable)
	}
	return &OpenAIEmbedder{client: openai.NewClient(option.WithAPIKey(apiKey))}, nil
}

// Embed returns the embedding vector for the given text, unchanged.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: EmbeddingModel,
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingService, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: empty embedding response", ErrEmbeddingService)
	}

	vector := make([]float32, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vector[i] = float32(v)
	}
	return vector, nil
}

var _ Embedder = (*OpenAIEmbedder)(nil)
