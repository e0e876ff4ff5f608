package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ayushk-1801/jobwise/internal/config"
	"github.com/ayushk-1801/jobwise/internal/embedding"
	"github.com/ayushk-1801/jobwise/internal/extraction"
	"github.com/ayushk-1801/jobwise/internal/llm"
	"github.com/ayushk-1801/jobwise/internal/logger"
	"github.com/ayushk-1801/jobwise/internal/matching"
)

// app holds the long-lived components shared by every command.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	llm     llm.Client
	service *matching.Service
}

// loadConfig reads configuration, letting the persistent flags override it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	flags := cmd.Flags()
	if f := flags.Lookup("debug"); f != nil && f.Changed {
		v.Set("log.debug", debugLogs)
	}
	if f := flags.Lookup("json-logs"); f != nil && f.Changed {
		v.Set("log.json", jsonLogs)
	}
	return config.Load(v, configPath)
}

// newApp wires configuration, logging, the LLM client, the embedding engine
// and the matching service.
func newApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("API key is required (set GEMINI_API_KEY or %s_LLM_API_KEY)", config.EnvPrefix)
	}
	client, err := llm.NewClient(ctx, cfg.LLMClientConfig(), cfg.LLM.APIKey, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	encoder, err := embedding.NewEncoder(ctx, cfg.EncoderConfig())
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to create encoder: %w", err)
	}
	engine := embedding.NewEngine(encoder,
		embedding.WithLogger(log),
		embedding.WithMaxTokens(cfg.Embedding.MaxTokens),
	)

	service := matching.New(
		extraction.New(client, extraction.WithLogger(log)),
		engine,
		matching.WithLogger(log),
		matching.WithExtractedMinYears(cfg.Matching.UseExtractedMinYears),
	)

	log.Debug("components initialized",
		zap.String("embedding_backend", cfg.Embedding.Backend),
		zap.String("embedding_model", cfg.Embedding.Model),
		zap.String("llm_model", cfg.LLM.StandardModel),
	)

	return &app{cfg: cfg, log: log, llm: client, service: service}, nil
}

// Close releases the LLM client and flushes logs.
func (a *app) Close() {
	if err := a.llm.Close(); err != nil {
		a.log.Warn("failed to close LLM client", zap.Error(err))
	}
	_ = a.log.Sync()
}
