package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// EmbedMode selects the retrieval role of an embedding request. The
// mode used at query time must pair with the one used at ingestion
// time, per the embedding API's retrieval contract.
type EmbedMode string

const (
	// EmbedModeDocument embeds text that will be stored and retrieved
	EmbedModeDocument EmbedMode = "document"
	// EmbedModeQuery embeds a question used to search stored documents
	EmbedModeQuery EmbedMode = "query"
)

// Generator produces text from a prompt
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Embedder turns text into a fixed-dimension vector
type Embedder interface {
	EmbedText(ctx context.Context, text string, mode EmbedMode) ([]float32, error)
}

// Client is an abstraction over LLM providers
type Client interface {
	Generator
	Embedder
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return NewGeminiClient(ctx, config, apiKey)
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// GenerateContent generates text content using the configured generation model
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	modelName := c.config.GetModel(RoleGeneration)
	if modelName == "" {
		return "", fmt.Errorf("no generation model configured")
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.1) // Low temperature for grounded answers

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(resp)
}

// EmbedText embeds text using the configured embedding model
func (c *GeminiClient) EmbedText(ctx context.Context, text string, mode EmbedMode) ([]float32, error) {
	modelName := c.config.GetModel(RoleEmbedding)
	if modelName == "" {
		return nil, fmt.Errorf("no embedding model configured")
	}

	model := c.client.EmbeddingModel(modelName)
	switch mode {
	case EmbedModeQuery:
		model.TaskType = genai.TaskTypeRetrievalQuery
	default:
		model.TaskType = genai.TaskTypeRetrievalDocument
	}

	resp, err := model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("empty embedding in response")
	}

	return resp.Embedding.Values, nil
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
