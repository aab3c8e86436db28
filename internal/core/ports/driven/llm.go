// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import "context"

// LLMService produces answers from assembled prompts.
//
// Adapters are constructed with a JSON output contract: the raw
// return value is expected to be a single JSON object, but shape
// enforcement happens in the validation step, never here. Adapters
// must not retry or repair output.
//
// Implementations may include:
//   - OpenAI and OpenAI-compatible endpoints (JSON mode)
//   - Ollama (local models, format: json)
type LLMService interface {
	// Generate produces a completion for the given system and user
	// prompts and returns the raw model output.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup to fail fast on misconfiguration.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
