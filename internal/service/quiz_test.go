package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/leeman-woodside/ai-quiz-backend/internal/config"
	"github.com/leeman-woodside/ai-quiz-backend/internal/domain"
	"github.com/leeman-woodside/ai-quiz-backend/internal/dto"
	"github.com/leeman-woodside/ai-quiz-backend/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestMain initializes the logger for all tests in this package.
func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

// --- Mocks ---

type MockQuizGenerator struct {
	mock.Mock
}

func (m *MockQuizGenerator) GenerateQuiz(ctx context.Context, req domain.QuizRequest) (*domain.Quiz, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*domain.Quiz), args.String(1), args.Error(2)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Helpers ---

func serviceConfig() *config.Config {
	return &config.Config{Cache: config.CacheConfig{TTL: 5 * time.Minute}}
}

func sampleRequest() *dto.GenerateQuizRequest {
	return &dto.GenerateQuizRequest{
		Topic:              "Go",
		NumQuestions:       2,
		OptionsPerQuestion: 4,
	}
}

func sampleQuiz() *domain.Quiz {
	return &domain.Quiz{
		Topic: "Go",
		Questions: []domain.QuizQuestion{
			{ID: "q1", Prompt: "P1", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 0},
			{ID: "q2", Prompt: "P2", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 1},
		},
	}
}

// --- Tests ---

func TestGenerateQuiz_Success(t *testing.T) {
	gen := new(MockQuizGenerator)
	gen.On("GenerateQuiz", mock.Anything, mock.Anything).Return(sampleQuiz(), "gpt-4o-mini", nil).Once()

	svc := NewQuizService(gen, nil, serviceConfig())

	start := time.Now().UTC().Truncate(time.Second)
	resp, err := svc.GenerateQuiz(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", resp.Model)
	assert.Equal(t, "Go", resp.Quiz.Topic)
	assert.Len(t, resp.Quiz.Questions, 2)

	createdAt, err := time.Parse(time.RFC3339, resp.CreatedAt)
	require.NoError(t, err)
	assert.False(t, createdAt.Before(start))

	gen.AssertExpectations(t)
}

func TestGenerateQuiz_MockModelPropagated(t *testing.T) {
	gen := new(MockQuizGenerator)
	gen.On("GenerateQuiz", mock.Anything, mock.Anything).Return(sampleQuiz(), domain.ModelMock, nil).Once()

	svc := NewQuizService(gen, nil, serviceConfig())

	resp, err := svc.GenerateQuiz(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.ModelMock, resp.Model)
}

func TestGenerateQuiz_RetriesOnceThenSucceeds(t *testing.T) {
	gen := new(MockQuizGenerator)
	gen.On("GenerateQuiz", mock.Anything, mock.Anything).
		Return(nil, "", errors.New("boom")).Once()
	gen.On("GenerateQuiz", mock.Anything, mock.Anything).
		Return(sampleQuiz(), "gpt-4o-mini", nil).Once()

	svc := NewQuizService(gen, nil, serviceConfig())

	resp, err := svc.GenerateQuiz(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", resp.Model)
	gen.AssertNumberOfCalls(t, "GenerateQuiz", 2)
}

func TestGenerateQuiz_RetryExhaustedSurfacesUpstreamError(t *testing.T) {
	gen := new(MockQuizGenerator)
	gen.On("GenerateQuiz", mock.Anything, mock.Anything).
		Return(nil, "", errors.New("boom")).Twice()

	svc := NewQuizService(gen, nil, serviceConfig())

	resp, err := svc.GenerateQuiz(context.Background(), sampleRequest())
	assert.Nil(t, resp)
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeLLMUpstream, domainErr.Code)
	assert.Contains(t, domainErr.Message, "boom")

	gen.AssertNumberOfCalls(t, "GenerateQuiz", 2)
}

func TestGenerateQuiz_CacheHitSkipsGenerator(t *testing.T) {
	payload, err := json.Marshal(cachedGeneration{
		Quiz:  dto.QuizFromDomain(sampleQuiz()),
		Model: "gpt-4o-mini",
	})
	require.NoError(t, err)

	cacheMock := new(MockCache)
	cacheMock.On("Get", mock.Anything, mock.Anything).Return(string(payload), nil).Once()

	gen := new(MockQuizGenerator)

	svc := NewQuizService(gen, cacheMock, serviceConfig())

	resp, err := svc.GenerateQuiz(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", resp.Model)
	assert.Equal(t, "Go", resp.Quiz.Topic)
	assert.NotEmpty(t, resp.CreatedAt)

	gen.AssertNotCalled(t, "GenerateQuiz", mock.Anything, mock.Anything)
	cacheMock.AssertExpectations(t)
}

func TestGenerateQuiz_ProviderResultFillsCache(t *testing.T) {
	cacheMock := new(MockCache)
	cacheMock.On("Get", mock.Anything, mock.Anything).Return("", domain.ErrCacheMiss).Once()
	cacheMock.On("Set", mock.Anything, mock.Anything, mock.Anything, 5*time.Minute).Return(nil).Once()

	gen := new(MockQuizGenerator)
	gen.On("GenerateQuiz", mock.Anything, mock.Anything).Return(sampleQuiz(), "gpt-4o-mini", nil).Once()

	svc := NewQuizService(gen, cacheMock, serviceConfig())

	_, err := svc.GenerateQuiz(context.Background(), sampleRequest())
	require.NoError(t, err)
	cacheMock.AssertExpectations(t)
}

func TestGenerateQuiz_MockResultNotCached(t *testing.T) {
	cacheMock := new(MockCache)
	cacheMock.On("Get", mock.Anything, mock.Anything).Return("", domain.ErrCacheMiss).Once()

	gen := new(MockQuizGenerator)
	gen.On("GenerateQuiz", mock.Anything, mock.Anything).Return(sampleQuiz(), domain.ModelMock, nil).Once()

	svc := NewQuizService(gen, cacheMock, serviceConfig())

	_, err := svc.GenerateQuiz(context.Background(), sampleRequest())
	require.NoError(t, err)
	cacheMock.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateQuiz_CacheErrorFallsThroughToGenerator(t *testing.T) {
	cacheMock := new(MockCache)
	cacheMock.On("Get", mock.Anything, mock.Anything).Return("", errors.New("redis down")).Once()

	gen := new(MockQuizGenerator)
	gen.On("GenerateQuiz", mock.Anything, mock.Anything).Return(sampleQuiz(), domain.ModelMock, nil).Once()

	svc := NewQuizService(gen, cacheMock, serviceConfig())

	resp, err := svc.GenerateQuiz(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.ModelMock, resp.Model)
	gen.AssertExpectations(t)
}

func TestGenerateQuiz_UndecodableCacheEntryDiscarded(t *testing.T) {
	cacheMock := new(MockCache)
	cacheMock.On("Get", mock.Anything, mock.Anything).Return("{not json", nil).Once()
	cacheMock.On("Delete", mock.Anything, mock.Anything).Return(nil).Once()

	gen := new(MockQuizGenerator)
	gen.On("GenerateQuiz", mock.Anything, mock.Anything).Return(sampleQuiz(), domain.ModelMock, nil).Once()

	svc := NewQuizService(gen, cacheMock, serviceConfig())

	_, err := svc.GenerateQuiz(context.Background(), sampleRequest())
	require.NoError(t, err)
	cacheMock.AssertExpectations(t)
}
