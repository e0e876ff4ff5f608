// Package llm wraps the language model used for structured extraction behind a
// small provider-neutral client.
package llm

import "fmt"

// ModelTier is the capability level a call asks for.
type ModelTier string

const (
	// TierLite serves short classification-style calls.
	TierLite ModelTier = "lite"
	// TierStandard serves structured extraction from résumés and job descriptions.
	TierStandard ModelTier = "standard"
	// TierAdvanced serves open-ended judgment such as match reasoning and review.
	TierAdvanced ModelTier = "advanced"
)

// Provider names an LLM provider.
type Provider string

// ProviderGemini is the Google Gemini provider.
const ProviderGemini Provider = "gemini"

const defaultTemperature float32 = 0.1

// Config holds the model configuration for the application.
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: defaultTemperature,
	}
}

// GetModel returns the model name for a tier, falling back to the standard
// and then the lite model. Empty when nothing is configured.
func (c *Config) GetModel(tier ModelTier) string {
	if c == nil {
		return ""
	}
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if model, ok := c.Models[t]; ok && model != "" {
			return model
		}
	}
	return ""
}

// WithModel returns a copy of c with model assigned to tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	next := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string, len(c.Models)+1),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		next.Models[k] = v
	}
	next.Models[tier] = model
	return next
}

// Validate checks that the configuration can build a client.
func (c *Config) Validate() error {
	if c.Provider != ProviderGemini {
		return fmt.Errorf("unsupported llm provider %q", c.Provider)
	}
	if c.GetModel(TierStandard) == "" {
		return fmt.Errorf("no model configured for tier %s", TierStandard)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature %.2f out of range [0, 2]", c.Temperature)
	}
	return nil
}
