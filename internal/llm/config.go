// Package llm provides centralized model configuration and client
// abstractions for the generative and embedding capabilities.
package llm

// ModelRole identifies what a model is used for
type ModelRole string

const (
	// RoleGeneration is the chat/completion model used to answer questions
	RoleGeneration ModelRole = "generation"
	// RoleEmbedding is the embedding model used for documents and queries
	RoleEmbedding ModelRole = "embedding"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelRole]string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelRole]string{
			RoleGeneration: "gemini-1.5-flash-latest",
			RoleEmbedding:  "embedding-001",
		},
	}
}

// GetModel returns the model name for a given role
func (c *Config) GetModel(role ModelRole) string {
	return c.Models[role]
}

// WithModel returns a new Config with a specific model for a role
func (c *Config) WithModel(role ModelRole, model string) *Config {
	newConfig := &Config{
		Provider: c.Provider,
		Models:   make(map[ModelRole]string),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[role] = model
	return newConfig
}
