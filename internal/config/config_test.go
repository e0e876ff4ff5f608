package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayushk-1801/jobwise/internal/embedding"
	"github.com/ayushk-1801/jobwise/internal/llm"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Server.MaxUploadMB)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.StandardModel)
	assert.Equal(t, "tei", cfg.Embedding.Backend)
	assert.Equal(t, embedding.MaxTokens, cfg.Embedding.MaxTokens)
	assert.False(t, cfg.Matching.UseExtractedMinYears)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.False(t, cfg.Log.JSON)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, "jobwise.yaml", `
server:
  port: 9090
  write_timeout: 2m
llm:
  api_key: file-key
  advanced_model: gemini-exp
embedding:
  backend: gemini
  model: text-embedding-004
matching:
  use_extracted_min_years: true
ratelimit:
  whitelist: ["127.0.0.1", "::1"]
log:
  json: true
`)

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2*time.Minute, cfg.Server.WriteTimeout)
	assert.Equal(t, "file-key", cfg.LLM.APIKey)
	assert.Equal(t, "file-key", cfg.Embedding.APIKey, "gemini embeddings reuse the llm key")
	assert.True(t, cfg.Matching.UseExtractedMinYears)
	assert.Equal(t, []string{"127.0.0.1", "::1"}, cfg.RateLimit.Whitelist)
	assert.True(t, cfg.Log.JSON)

	llmCfg := cfg.LLMClientConfig()
	assert.Equal(t, "gemini-exp", llmCfg.GetModel(llm.TierAdvanced))
	assert.Equal(t, "gemini-2.5-flash", llmCfg.GetModel(llm.TierStandard))
	assert.Equal(t, embedding.BackendGemini, cfg.EncoderConfig().Backend)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JOBWISE_SERVER_PORT", "7000")
	t.Setenv("JOBWISE_EMBEDDING_ENDPOINT", "http://tei:8080")
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "http://tei:8080", cfg.EncoderConfig().Endpoint)
	assert.Equal(t, "env-key", cfg.LLM.APIKey)
}

func TestLoad_PrefixedKeyWins(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JOBWISE_LLM_API_KEY", "prefixed")
	t.Setenv("GEMINI_API_KEY", "generic")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "prefixed", cfg.LLM.APIKey)
}

func TestLoad_GeminiEmbeddingDropsTEIModel(t *testing.T) {
	path := writeConfig(t, "jobwise.yaml", "embedding:\n  backend: gemini\n  api_key: emb-key\n")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Embedding.Model)
	assert.Equal(t, "emb-key", cfg.Embedding.APIKey)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "port", content: "server:\n  port: 70000\n"},
		{name: "backend", content: "embedding:\n  backend: onnx\n"},
		{name: "endpoint", content: "embedding:\n  endpoint: not a url\n"},
		{name: "empty tei endpoint", content: "embedding:\n  endpoint: \"\"\n"},
		{name: "whitelist", content: "ratelimit:\n  whitelist: [\"localhost\"]\n"},
		{name: "temperature", content: "llm:\n  temperature: 5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(viper.New(), writeConfig(t, "jobwise.yaml", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config error")
		})
	}
}
