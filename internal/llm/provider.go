// Package llm is the optional hosted-model path for rendering the final
// recommendation. It consumes the already-computed metrics and never feeds
// back into them: a provider failure falls back to the deterministic
// composer.
package llm

import (
	"context"

	"github.com/rlevin/matchpoint/internal/model"
)

// Provider is a hosted-model client able to phrase a recommendation.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Synthesize phrases a recommendation from the computed analysis.
	Synthesize(ctx context.Context, req SynthesizeRequest) (*SynthesizeResponse, error)

	// IsAvailable checks if the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// SynthesizeRequest carries the computed analysis to phrase.
type SynthesizeRequest struct {
	Metrics      model.LeakageMetrics
	Verification model.VerificationResult
	Vesting      *model.VestingAlert
	Policy       model.PolicyAnswer

	// Prompt overrides the default prompt when non-empty.
	Prompt string

	// Model overrides the configured model when non-empty.
	Model string

	MaxTokens int
}

// SynthesizeResponse is the provider's rendering.
type SynthesizeResponse struct {
	Recommendation string
	Model          string
	TokensUsed     int
}

// Config holds provider configuration.
type Config struct {
	// Provider name: "openai" or "" (disabled).
	Provider string

	// Model name (provider-specific).
	Model string

	APIKey  string
	BaseURL string

	// Timeout for API requests, in seconds.
	Timeout int

	MaxTokens int
}

// ConfigFromModel converts model.LLMConfig to llm.Config.
func ConfigFromModel(c model.LLMConfig) Config {
	return Config{
		Provider:  c.Provider,
		Model:     c.Model,
		APIKey:    c.APIKey,
		BaseURL:   c.BaseURL,
		Timeout:   c.Timeout,
		MaxTokens: c.MaxTokens,
	}
}
