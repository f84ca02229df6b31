// Package llm provides centralized LLM configuration and client abstractions.
// One extraction adapter interface with provider-specific implementations,
// selected by configuration.
package llm

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI provider (future)
	ProviderOpenAI Provider = "openai"
	// ProviderAnthropic is the Anthropic/Claude provider (future)
	ProviderAnthropic Provider = "anthropic"
)

// Config holds the model configuration for the worker
type Config struct {
	Provider Provider
	// Model is the provider model identifier used for extraction calls.
	Model string
	// Temperature biases sampling toward determinism. Extraction wants
	// factual, repeatable output, so this stays near zero.
	Temperature float32
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider:    ProviderGemini,
		Model:       "gemini-2.5-flash",
		Temperature: 0.1,
	}
}

// WithModel returns a copy of the config using a specific model.
func (c *Config) WithModel(model string) *Config {
	out := *c
	out.Model = model
	return &out
}
