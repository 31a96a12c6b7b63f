package quizgen

import (
	"net/http"

	"github.com/leeman-woodside/ai-quiz-backend/internal/config"
)

// Known provider names. The set is closed: anything else falls back to the
// mock generator.
const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderGroq       = "groq"
)

// providerSpec describes the per-provider variation of the chat-completion
// call. Dispatch is driven by this data instead of per-provider branches; all
// three providers speak the OpenAI chat-completion wire format.
type providerSpec struct {
	Name string
	// BaseURL is the OpenAI-compatible API root (without /chat/completions).
	BaseURL string
	// JSONMode requests response_format {"type":"json_object"} where the
	// provider supports it.
	JSONMode bool
	// Temperature is applied when non-zero.
	Temperature float64
	// ExtraHeaders are added to every outbound request.
	ExtraHeaders map[string]string
}

// resolveProvider maps the configured provider name to its descriptor and
// credentials. ok is false for names outside the known set.
func resolveProvider(cfg *config.Config) (spec providerSpec, creds config.ProviderConfig, ok bool) {
	switch cfg.LLM.Provider {
	case ProviderOpenRouter:
		return providerSpec{
			Name:     ProviderOpenRouter,
			BaseURL:  "https://openrouter.ai/api/v1",
			JSONMode: true,
			ExtraHeaders: map[string]string{
				// OpenRouter attribution headers; the referer is the
				// frontend origin this backend serves.
				"HTTP-Referer": cfg.CORS.AllowOrigin,
				"X-Title":      "AI Quiz",
			},
		}, cfg.LLM.OpenRouter, true
	case ProviderOpenAI:
		return providerSpec{
			Name:     ProviderOpenAI,
			BaseURL:  "https://api.openai.com/v1",
			JSONMode: true,
		}, cfg.LLM.OpenAI, true
	case ProviderGroq:
		return providerSpec{
			Name:        ProviderGroq,
			BaseURL:     "https://api.groq.com/openai/v1",
			Temperature: 0.2,
		}, cfg.LLM.Groq, true
	default:
		return providerSpec{}, config.ProviderConfig{}, false
	}
}

// headerRoundTripper injects fixed headers into every request. Used for the
// OpenRouter attribution headers, which the client library has no option for.
type headerRoundTripper struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	for k, v := range t.headers {
		clone.Header.Set(k, v)
	}
	return t.base.RoundTrip(clone)
}
