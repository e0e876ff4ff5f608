package embedding

import (
	"context"
	"fmt"
	"time"
)

// Encoder turns a batch of texts into per-token hidden states, one TokenStates
// per input text, in order. Implementations are created once per process and
// must tolerate concurrent calls.
type Encoder interface {
	Encode(ctx context.Context, texts []string) ([]TokenStates, error)
}

// Backend names an Encoder implementation.
type Backend string

// Supported backends.
const (
	// BackendTEI is a text-embeddings-inference server hosting a BERT-style encoder.
	BackendTEI Backend = "tei"
	// BackendGemini is the Gemini embedding API.
	BackendGemini Backend = "gemini"
)

// Config selects and configures an Encoder backend.
type Config struct {
	Backend  Backend
	Endpoint string
	Model    string
	APIKey   string
	Timeout  time.Duration
}

// DefaultConfig returns the default encoder configuration: a local TEI server
// serving bert-base-uncased.
func DefaultConfig() *Config {
	return &Config{
		Backend:  BackendTEI,
		Endpoint: "http://localhost:8080",
		Model:    "bert-base-uncased",
		Timeout:  30 * time.Second,
	}
}

// NewEncoder builds the configured Encoder.
func NewEncoder(ctx context.Context, cfg *Config) (Encoder, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	switch cfg.Backend {
	case BackendTEI, "":
		return NewTEIEncoder(cfg.Endpoint, cfg.APIKey, cfg.Timeout)
	case BackendGemini:
		return NewGeminiEncoder(ctx, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown embedding backend %q", cfg.Backend)
	}
}
