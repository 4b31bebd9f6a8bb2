package main

import (
	"context"
	"fmt"

	"github.com/Lalith1612/Youtube-LLM/internal/config"
	"github.com/Lalith1612/Youtube-LLM/internal/jobs"
	"github.com/Lalith1612/Youtube-LLM/internal/llm"
	"github.com/Lalith1612/Youtube-LLM/internal/pipeline"
	"github.com/Lalith1612/Youtube-LLM/internal/pipeline/steps"
	"github.com/Lalith1612/Youtube-LLM/internal/query"
	"github.com/Lalith1612/Youtube-LLM/internal/vectorstore"
)

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
}

// app bundles the wired components shared by the commands
type app struct {
	cfg          config.Config
	client       *llm.LazyClient
	orchestrator *pipeline.Orchestrator
	retriever    *query.Retriever
	answerer     *query.Answerer
}

// loadConfig layers env values over an optional config file over defaults
func loadConfig() (config.Config, error) {
	cfg := config.FromEnv()
	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	cfg = cfg.MergeWithDefaults(config.Defaults())

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newApp wires the components from configuration. The LLM client is
// lazy: a missing GOOGLE_API_KEY surfaces on first use, not here.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	modelCfg := llm.DefaultConfig()
	if cfg.GenerationModel != "" {
		modelCfg = modelCfg.WithModel(llm.RoleGeneration, cfg.GenerationModel)
	}
	if cfg.EmbeddingModel != "" {
		modelCfg = modelCfg.WithModel(llm.RoleEmbedding, cfg.EmbeddingModel)
	}
	client := llm.NewLazyClient(func(ctx context.Context) (llm.Client, error) {
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY environment variable not found")
		}
		return llm.NewClient(ctx, modelCfg, cfg.APIKey)
	})

	var jobStore jobs.Store
	if cfg.DatabaseURL != "" {
		store, err := jobs.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect job store: %w", err)
		}
		jobStore = store
	} else {
		jobStore = jobs.NewMemoryStore()
	}

	vectors := vectorstore.New(cfg.DataDir)
	orchestrator := pipeline.New(pipeline.Options{
		DataDir:     cfg.DataDir,
		Jobs:        jobStore,
		Vectors:     vectors,
		Embedder:    client,
		Downloader:  steps.NewYTDLPDownloader(cfg.YTDLPPath),
		Transcriber: steps.NewWhisperTranscriber(cfg.WhisperPath, cfg.WhisperModel),
	})

	return &app{
		cfg:          cfg,
		client:       client,
		orchestrator: orchestrator,
		retriever:    query.NewRetriever(vectors, client, cfg.TopK),
		answerer:     query.NewAnswerer(client),
	}, nil
}

// Close releases held resources
func (a *app) Close() error {
	return a.client.Close()
}
