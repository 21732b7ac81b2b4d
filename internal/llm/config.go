// Package llm provides centralized LLM configuration and client abstractions.
// This package enables easy switching between model tiers and transports.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: classification, extraction, basic summarization
	TierLite ModelTier = "lite"
	// TierStandard is for moderate tasks such as drafting short emails
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// Transport selects how requests reach the provider.
type Transport string

const (
	// TransportREST posts the generateContent JSON envelope directly over HTTP
	TransportREST Transport = "rest"
	// TransportSDK goes through the official generative-ai-go SDK
	TransportSDK Transport = "sdk"
)

// DefaultEndpoint is the base URL of the Generative Language API.
const DefaultEndpoint = "https://generativelanguage.googleapis.com"

// DefaultTemperature is the sampling temperature used for drafts.
const DefaultTemperature = 0.7

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Transport   Transport
	Endpoint    string
	Temperature float64
	Models      map[ModelTier]string
}

// DefaultConfig returns the default configuration (currently Gemini over REST)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider:    ProviderGemini,
		Transport:   TransportREST,
		Endpoint:    DefaultEndpoint,
		Temperature: DefaultTemperature,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := *c
	newConfig.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return &newConfig
}
