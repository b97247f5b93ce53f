package llm

import (
	"fmt"
	"net/http"
	"strings"
)

// ErrAuth indicates the provider rejected (or was never given) a credential.
type ErrAuth struct {
	Provider string
	Err      error
}

func (e *ErrAuth) Error() string {
	return fmt.Sprintf("invalid %s API key: %v", e.Provider, e.Err)
}

func (e *ErrAuth) Unwrap() error { return e.Err }

// ErrQuotaExceeded indicates the provider reported billing or quota exhaustion.
type ErrQuotaExceeded struct {
	Provider string
	Err      error
}

func (e *ErrQuotaExceeded) Error() string {
	return fmt.Sprintf("%s quota exceeded: %v", e.Provider, e.Err)
}

func (e *ErrQuotaExceeded) Unwrap() error { return e.Err }

// ErrModelNotFound indicates the provider does not know the requested model.
type ErrModelNotFound struct {
	Model string
	Err   error
}

func (e *ErrModelNotFound) Error() string {
	return fmt.Sprintf("model %q not found: %v", e.Model, e.Err)
}

func (e *ErrModelNotFound) Unwrap() error { return e.Err }

// ErrRateLimit indicates the provider returned a rate limit error (429)
// that is not a quota problem.
type ErrRateLimit struct {
	Err error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the provider answered but the answer carried
// no usable text.
type ErrInvalidResponse struct {
	Err error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrConfig indicates a provider setting is missing or unusable.
type ErrConfig struct {
	Provider string
	Setting  string
	Err      error
}

func (e *ErrConfig) Error() string {
	return fmt.Sprintf("%s provider misconfigured: %s: %v", e.Provider, e.Setting, e.Err)
}

func (e *ErrConfig) Unwrap() error { return e.Err }

// ErrUnsupportedProvider indicates configuration named a provider that is not
// registered.
type ErrUnsupportedProvider struct {
	Name      string
	Supported []Kind
}

func (e *ErrUnsupportedProvider) Error() string {
	names := make([]string, len(e.Supported))
	for i, k := range e.Supported {
		names[i] = string(k)
	}
	return fmt.Sprintf("unsupported AI provider: %q (supported: %s)", e.Name, strings.Join(names, ", "))
}

// apiFailure is the provider-neutral view of an SDK error that carried an
// HTTP status.
type apiFailure struct {
	provider string
	model    string
	status   int
	code     string
	message  string
	err      error
}

var quotaMarkers = []string{
	"insufficient_quota",
	"quota",
	"billing",
	"credit balance",
}

var authMarkers = []string{
	"invalid_api_key",
	"invalid x-api-key",
	"api key not valid",
	"authentication_error",
	"incorrect api key",
}

// classify maps an API failure onto the typed errors above. Quota wording
// wins over a bare 429 so that billing problems are never reported as
// transient rate limiting.
func classify(f apiFailure) error {
	text := strings.ToLower(f.code + " " + f.message)

	switch {
	case f.status == http.StatusUnauthorized || f.status == http.StatusForbidden:
		return &ErrAuth{Provider: f.provider, Err: f.err}
	case containsAny(text, quotaMarkers):
		return &ErrQuotaExceeded{Provider: f.provider, Err: f.err}
	case containsAny(text, authMarkers):
		return &ErrAuth{Provider: f.provider, Err: f.err}
	case f.status == http.StatusTooManyRequests:
		return &ErrRateLimit{Err: f.err}
	case f.status == http.StatusNotFound || strings.Contains(text, "model_not_found"):
		return &ErrModelNotFound{Model: f.model, Err: f.err}
	default:
		return &ErrProviderUnavailable{Err: f.err}
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
