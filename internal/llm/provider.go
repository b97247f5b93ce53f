package llm

import "context"

// Sampling parameters shared by every adapter. They are fixed so that output
// length and variety stay bounded and comparable across providers.
const (
	GenerationTemperature = 0.7
	GenerationMaxTokens   = 4000
)

// Provider is the core abstraction for LLM interaction.
// An adapter sends one prompt to its backing service and returns the raw
// text the model produced. Adapters make exactly one attempt per call.
type Provider interface {
	// Generate sends the request to the LLM and returns its raw output.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system instruction. Adapters place it wherever their
	// API expects it (system message, separate field, or prepended text).
	System string

	// Prompt is the user prompt.
	Prompt string
}

// Response holds the LLM's output.
type Response struct {
	// Text is the raw completion. It may be wrapped in markdown fences or
	// otherwise malformed; callers are responsible for parsing it.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens"
	StopReason string
}

// Truncated reports whether the model stopped because it hit the token budget.
func (r *Response) Truncated() bool {
	return r != nil && r.StopReason == StopMaxTokens
}

const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// resolveModel maps a friendly model name to a provider model ID.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
