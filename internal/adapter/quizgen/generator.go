package quizgen

import (
	"context"
	"fmt"
	"net/http"

	"github.com/leeman-woodside/ai-quiz-backend/internal/config"
	"github.com/leeman-woodside/ai-quiz-backend/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// completionClient is the slice of the langchaingo LLM surface this generator
// uses. *openai.LLM satisfies it.
type completionClient interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// LLMQuizGenerator dispatches quiz generation to the configured provider and
// repairs its output. Every recoverable upstream failure degrades to the
// deterministic mock quiz; the error return of GenerateQuiz is reserved for
// unexpected conditions.
type LLMQuizGenerator struct {
	// client is nil when the generator is pinned to the mock path (mock mode,
	// unknown provider, or missing credential).
	client     completionClient
	spec       providerSpec
	model      string
	mockReason string
	logger     *zap.Logger
}

// NewLLMQuizGenerator resolves the configured provider and builds the
// outbound client. A missing credential or an unknown provider name is not an
// error: the generator simply serves mock quizzes, per the degradation
// contract.
func NewLLMQuizGenerator(cfg *config.Config, logger *zap.Logger) (*LLMQuizGenerator, error) {
	g := &LLMQuizGenerator{logger: logger}

	if cfg.LLM.UseMock {
		g.mockReason = "mock mode enabled"
		logger.Info("Quiz generator running in mock mode")
		return g, nil
	}

	spec, creds, ok := resolveProvider(cfg)
	if !ok {
		g.mockReason = "unknown provider"
		logger.Warn("Unknown LLM provider, falling back to mock generation",
			zap.String("provider", cfg.LLM.Provider))
		return g, nil
	}
	if creds.APIKey == "" {
		g.mockReason = "missing credential"
		logger.Warn("No API key configured for provider, falling back to mock generation",
			zap.String("provider", spec.Name))
		return g, nil
	}

	httpClient := &http.Client{Timeout: cfg.LLM.RequestTimeout}
	if len(spec.ExtraHeaders) > 0 {
		httpClient.Transport = headerRoundTripper{
			base:    http.DefaultTransport,
			headers: spec.ExtraHeaders,
		}
	}

	client, err := openai.New(
		openai.WithToken(creds.APIKey),
		openai.WithModel(creds.Model),
		openai.WithBaseURL(spec.BaseURL),
		openai.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", spec.Name, err)
	}

	logger.Info("Quiz generator initialized",
		zap.String("provider", spec.Name),
		zap.String("model", creds.Model))

	g.client = client
	g.spec = spec
	g.model = creds.Model
	return g, nil
}

// GenerateQuiz implements domain.QuizGenerator. On the provider path it sends
// the fixed system prompt plus the per-request user prompt, then runs the
// defensive parser over choices[0] with the request topic as fallback. Any
// failure of the outbound call yields the mock quiz with model "mock"; a
// provider reply that cannot be parsed still counts as a success under the
// configured model name, carrying the parser's placeholder.
func (g *LLMQuizGenerator) GenerateQuiz(ctx context.Context, req domain.QuizRequest) (*domain.Quiz, string, error) {
	if g.client == nil {
		g.logger.Debug("Serving mock quiz", zap.String("reason", g.mockReason))
		return MockQuiz(req), domain.ModelMock, nil
	}

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, SystemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, BuildUserPrompt(req)),
	}
	var opts []llms.CallOption
	if g.spec.JSONMode {
		opts = append(opts, llms.WithJSONMode())
	}
	if g.spec.Temperature > 0 {
		opts = append(opts, llms.WithTemperature(g.spec.Temperature))
	}

	resp, err := g.client.GenerateContent(ctx, messages, opts...)
	if err != nil {
		g.logger.Warn("Provider call failed, serving mock quiz",
			zap.String("provider", g.spec.Name),
			zap.Error(err))
		return MockQuiz(req), domain.ModelMock, nil
	}
	if resp == nil || len(resp.Choices) == 0 {
		g.logger.Warn("Provider returned an empty completion, serving mock quiz",
			zap.String("provider", g.spec.Name))
		return MockQuiz(req), domain.ModelMock, nil
	}

	quiz := ParseQuiz(resp.Choices[0].Content, req.Topic)
	return quiz, g.model, nil
}

var _ domain.QuizGenerator = (*LLMQuizGenerator)(nil)
