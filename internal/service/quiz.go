package service

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"time"

	"github.com/leeman-woodside/ai-quiz-backend/internal/cache"
	"github.com/leeman-woodside/ai-quiz-backend/internal/config"
	"github.com/leeman-woodside/ai-quiz-backend/internal/domain"
	"github.com/leeman-woodside/ai-quiz-backend/internal/dto"
	"github.com/leeman-woodside/ai-quiz-backend/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Retry policy for the whole dispatch: 2 total attempts with a short
// randomized backoff before the second one.
const (
	maxGenerateAttempts = 2
	retryBaseDelay      = 500 * time.Millisecond
	retryJitter         = 500 * time.Millisecond
)

// QuizService generates quizzes for inbound requests.
type QuizService interface {
	GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)
}

type quizService struct {
	generator domain.QuizGenerator
	cache     domain.Cache // nil when the response cache is disabled
	cacheTTL  time.Duration
	group     singleflight.Group
}

// NewQuizService creates a QuizService. cacheAdapter may be nil, in which
// case every request goes straight to the generator.
func NewQuizService(generator domain.QuizGenerator, cacheAdapter domain.Cache, cfg *config.Config) QuizService {
	return &quizService{
		generator: generator,
		cache:     cacheAdapter,
		cacheTTL:  cfg.Cache.TTL,
	}
}

// cachedGeneration is the JSON payload stored in the response cache. The
// createdAt timestamp is deliberately not part of it; it is stamped fresh on
// every response.
type cachedGeneration struct {
	Quiz  dto.Quiz `json:"quiz"`
	Model string   `json:"model"`
}

// GenerateQuiz resolves a generation request: response cache first, then a
// single-flighted, retry-wrapped call to the generator. An error is returned
// only when the generator failed unexpectedly on both attempts; it surfaces
// as a 502 upstream error.
func (s *quizService) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	domainReq := req.ToDomain()
	key := cache.QuizGenerationKey(domainReq)

	if cached, ok := s.lookupCache(ctx, key); ok {
		return s.envelope(cached), nil
	}

	// Identical concurrent requests share one provider call.
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		quiz, model, genErr := s.generateWithRetry(ctx, domainReq)
		if genErr != nil {
			return nil, genErr
		}
		result := cachedGeneration{Quiz: dto.QuizFromDomain(quiz), Model: model}
		s.fillCache(ctx, key, result)
		return result, nil
	})
	if err != nil {
		return nil, domain.NewLLMUpstreamError(err)
	}

	result := v.(cachedGeneration)
	return s.envelope(result), nil
}

// generateWithRetry calls the generator up to maxGenerateAttempts times,
// sleeping a jittered backoff between attempts. The generator handles its own
// recoverable failures, so a returned error here is already an unexpected
// condition.
func (s *quizService) generateWithRetry(ctx context.Context, req domain.QuizRequest) (*domain.Quiz, string, error) {
	var lastErr error
	for attempt := 1; attempt <= maxGenerateAttempts; attempt++ {
		quiz, model, err := s.generator.GenerateQuiz(ctx, req)
		if err == nil {
			return quiz, model, nil
		}
		lastErr = err
		logger.Get().Warn("Quiz generation attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", maxGenerateAttempts),
			zap.String("topic", req.Topic),
			zap.Error(err))

		if attempt < maxGenerateAttempts {
			delay := retryBaseDelay + time.Duration(rand.Int63n(int64(retryJitter)))
			select {
			case <-ctx.Done():
				return nil, "", ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return nil, "", lastErr
}

func (s *quizService) lookupCache(ctx context.Context, key string) (cachedGeneration, bool) {
	if s.cache == nil {
		return cachedGeneration{}, false
	}
	payload, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Response cache lookup failed", zap.String("key", key), zap.Error(err))
		}
		return cachedGeneration{}, false
	}
	var cached cachedGeneration
	if err := json.Unmarshal([]byte(payload), &cached); err != nil {
		logger.Get().Warn("Discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		_ = s.cache.Delete(ctx, key)
		return cachedGeneration{}, false
	}
	logger.Get().Debug("Serving quiz from response cache", zap.String("key", key))
	return cached, true
}

// fillCache stores a provider-generated result. Mock results are skipped:
// they are deterministic and cheaper to recompute than to fetch, and caching
// them would mask provider recovery for the TTL.
func (s *quizService) fillCache(ctx context.Context, key string, result cachedGeneration) {
	if s.cache == nil || result.Model == domain.ModelMock {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		logger.Get().Warn("Failed to encode cache payload", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
		logger.Get().Warn("Response cache fill failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *quizService) envelope(result cachedGeneration) *dto.GenerateQuizResponse {
	return &dto.GenerateQuizResponse{
		Quiz:      result.Quiz,
		Model:     result.Model,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}
