package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiEmbeddingModel = "text-embedding-004"

// GeminiEncoder embeds texts with the Gemini embedding API. The API returns
// pooled vectors, so each text comes back as a single-token sequence.
type GeminiEncoder struct {
	client    *genai.Client
	modelName string
}

// NewGeminiEncoder creates an encoder for the Gemini API backend.
func NewGeminiEncoder(ctx context.Context, apiKey, model string) (*GeminiEncoder, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultGeminiEmbeddingModel
	}

	return &GeminiEncoder{client: client, modelName: model}, nil
}

// Encode embeds each text and returns one pooled vector per text.
func (g *GeminiEncoder) Encode(ctx context.Context, texts []string) ([]TokenStates, error) {
	if g == nil || g.client == nil {
		return nil, errors.New("gemini encoder is not initialized")
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, &genai.Content{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: text}},
		})
	}

	resp, err := g.client.Models.EmbedContent(ctx, g.modelName, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}

	states := make([]TokenStates, 0, len(resp.Embeddings))
	for _, emb := range resp.Embeddings {
		if emb == nil {
			states = append(states, TokenStates{})
			continue
		}
		vec := make([]float64, len(emb.Values))
		for i, v := range emb.Values {
			vec[i] = float64(v)
		}
		states = append(states, Pooled(vec))
	}
	return states, nil
}
