// Package config provides configuration loading and validation for the
// service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the service configuration. Values can come from a
// JSON file, environment variables, or CLI flags; missing values use
// defaults.
type Config struct {
	// Paths
	DataDir string `json:"data_dir,omitempty"` // Root for per-playlist artifacts

	// Credentials
	APIKey      string `json:"api_key,omitempty"`      // Google AI API key
	DatabaseURL string `json:"database_url,omitempty"` // Optional PostgreSQL URL for job state

	// Retrieval
	TopK int `json:"top_k,omitempty"` // Chunks retrieved per question

	// Models
	GenerationModel string `json:"generation_model,omitempty"`
	EmbeddingModel  string `json:"embedding_model,omitempty"`

	// External tools
	YTDLPPath    string `json:"ytdlp_path,omitempty"`    // yt-dlp binary
	WhisperPath  string `json:"whisper_path,omitempty"`  // whisper binary
	WhisperModel string `json:"whisper_model,omitempty"` // whisper model size

	// Server
	Port int `json:"port,omitempty"`
}

// Defaults returns the built-in configuration defaults
func Defaults() Config {
	return Config{
		DataDir: "./data",
		TopK:    5,
		Port:    8080,
	}
}

// FromEnv returns a Config populated from environment variables.
// GOOGLE_API_KEY is deliberately allowed to be empty here: its absence
// is surfaced on first use of the LLM capability, not at startup.
func FromEnv() Config {
	cfg := Config{
		DataDir:         os.Getenv("DATA_DIR"),
		APIKey:          os.Getenv("GOOGLE_API_KEY"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		GenerationModel: os.Getenv("GENERATION_MODEL"),
		EmbeddingModel:  os.Getenv("EMBEDDING_MODEL"),
		YTDLPPath:       os.Getenv("YTDLP_PATH"),
		WhisperPath:     os.Getenv("WHISPER_PATH"),
		WhisperModel:    os.Getenv("WHISPER_MODEL"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	if topK, err := strconv.Atoi(os.Getenv("TOP_K")); err == nil {
		cfg.TopK = topK
	}
	return cfg
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if c.TopK < 0 {
		return fmt.Errorf("config error: 'top_k' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid port number")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Used to layer file values under env values, and both under
// the built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.GenerationModel == "" {
		result.GenerationModel = defaults.GenerationModel
	}
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = defaults.EmbeddingModel
	}
	if result.YTDLPPath == "" {
		result.YTDLPPath = defaults.YTDLPPath
	}
	if result.WhisperPath == "" {
		result.WhisperPath = defaults.WhisperPath
	}
	if result.WhisperModel == "" {
		result.WhisperModel = defaults.WhisperModel
	}
	if result.TopK == 0 {
		result.TopK = defaults.TopK
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	return result
}
