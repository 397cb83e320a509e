package embedding

import (
	"context"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements EmbeddingProvider using text-embedding-3-small.
type OpenAIProvider struct {
	client *goopenai.Client
	model  goopenai.EmbeddingModel
}

func NewOpenAIProvider(apiKey string) EmbeddingProvider {
	return &OpenAIProvider{
		client: goopenai.NewClient(apiKey),
		model:  goopenai.SmallEmbedding3,
	}
}

func (p *OpenAIProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	// TaskType is ignored; OpenAI embeddings are not task-conditioned

	resp, err := p.client.CreateEmbeddings(context.Background(), goopenai.EmbeddingRequest{
		Input: []string{text},
		Model: p.model,
		// Postgres column is vector(768); clamp the model output to match
		Dimensions: 768,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embedding error: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai embedding returned no data")
	}

	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{
			Values: resp.Data[0].Embedding,
		},
	}, nil
}
