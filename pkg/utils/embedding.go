package utils

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"github.com/pgvector/pgvector-go"
	openai "github.com/sashabaranov/go-openai"
)

// Embeddings rank knowledge-base articles against the user's latest message.
// Dimension matches the text-embedding-3-small output and the vector column.
const EmbeddingDimensions = 1536

type EmbeddingClientInterface interface {
	GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error)
}

type OpenAIEmbeddingClient struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

func NewOpenAIEmbeddingClient(apiKey, model string) *OpenAIEmbeddingClient {
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	return &OpenAIEmbeddingClient{
		client: openai.NewClient(apiKey),
		model:  openai.EmbeddingModel(model),
	}
}

func (c *OpenAIEmbeddingClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: c.model,
	})
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}
	if len(resp.Data) == 0 {
		return pgvector.Vector{}, ErrEmbeddingFailed
	}
	return pgvector.NewVector(resp.Data[0].Embedding), nil
}

// LocalEmbeddingClient is a deterministic, network-free fallback. The hash
// projection is crude but stable, which is all the article ranking needs when
// no API key is configured (and what the tests run against).
type LocalEmbeddingClient struct{}

func NewLocalEmbeddingClient() *LocalEmbeddingClient { return &LocalEmbeddingClient{} }

func (c *LocalEmbeddingClient) GetEmbedding(_ context.Context, text string) (pgvector.Vector, error) {
	return textToVector(text), nil
}

func textToVector(text string) pgvector.Vector {
	text = strings.ToLower(strings.TrimSpace(text))
	words := strings.Fields(text)

	vector := make([]float32, EmbeddingDimensions)
	for _, word := range words {
		hash := hashWord(word)
		for i := 0; i < EmbeddingDimensions; i++ {
			influence := math.Sin(float64(hash+uint32(i))) * 0.1
			vector[i] += float32(influence)
		}
	}

	var magnitude float32
	for _, val := range vector {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))
	if magnitude > 0 {
		for i := range vector {
			vector[i] /= magnitude
		}
	}

	return pgvector.NewVector(vector)
}

func hashWord(word string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(word))
	return h.Sum32()
}

// NewEmbeddingClient selects the embedding provider. "openai" needs a key;
// "local" is the zero-dependency fallback.
func NewEmbeddingClient(provider, apiKey, model string) (EmbeddingClientInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAIEmbeddingClient(apiKey, model), nil
	case "local", "":
		return NewLocalEmbeddingClient(), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s. Use 'openai' or 'local'", provider)
	}
}
