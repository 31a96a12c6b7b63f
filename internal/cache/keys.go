package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/leeman-woodside/ai-quiz-backend/internal/domain"
)

const (
	GlobalKeyPrefix = "aiquiz"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// QuizGenerationKey derives the response-cache key for a generation request.
// The topic is free text, so it is normalized and hashed to keep keys short
// and free of separator characters; the remaining parameters are appended
// verbatim so that otherwise-identical requests with different shapes never
// collide.
func QuizGenerationKey(req domain.QuizRequest) string {
	topic := strings.ToLower(strings.TrimSpace(req.Topic))
	sum := sha256.Sum256([]byte(topic))
	topicHash := hex.EncodeToString(sum[:8])

	return GenerateCacheKey("quiz", "generation", topicHash,
		strconv.Itoa(req.NumQuestions),
		strconv.Itoa(req.OptionsPerQuestion),
		strings.ToLower(req.DifficultyOrDefault()),
	)
}
