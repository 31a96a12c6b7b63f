package quizgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/leeman-woodside/ai-quiz-backend/internal/domain"
)

// ParseQuiz converts a free-text LLM reply into a structurally valid quiz.
// It never fails: each recovery step is attempted only if the previous one
// produced nothing usable, and the final step is a placeholder quiz built
// from fallbackTopic.
//
//  1. Trim whitespace and strip a surrounding markdown code fence.
//  2. Parse the whole text as a quiz object.
//  3. Parse the substring between the first '{' and the last '}'.
//  4. Return a fixed one-question placeholder.
func ParseQuiz(raw string, fallbackTopic string) *domain.Quiz {
	content := stripCodeFence(strings.TrimSpace(raw))

	if quiz, ok := decodeQuiz(content, fallbackTopic); ok {
		return quiz
	}

	if start := strings.Index(content, "{"); start != -1 {
		if end := strings.LastIndex(content, "}"); end > start {
			if quiz, ok := decodeQuiz(content[start:end+1], fallbackTopic); ok {
				return quiz
			}
		}
	}

	return placeholderQuiz(fallbackTopic)
}

// stripCodeFence removes a leading ``` or ```json marker and a trailing ```
// when they sit at the very start/end of the text. The language tag is
// matched case-insensitively.
func stripCodeFence(s string) string {
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "```json\n") {
		s = s[len("```json\n"):]
	} else if strings.HasPrefix(lower, "```\n") {
		s = s[len("```\n"):]
	}
	if strings.HasSuffix(s, "\n```") {
		s = s[:len(s)-len("\n```")]
	}
	return s
}

// parsedQuestion mirrors the expected question object. Required fields are
// pointers so that an absent field can be told apart from a zero value and
// rejected, matching a strict schema.
type parsedQuestion struct {
	ID           *string   `json:"id"`
	Prompt       *string   `json:"prompt"`
	Options      *[]string `json:"options"`
	CorrectIndex *int      `json:"correctIndex"`
	Explanation  string    `json:"explanation"`
}

// decodeQuiz attempts to interpret content as a quiz object. A missing topic
// falls back to fallbackTopic; a missing questions field yields an empty
// quiz. Any type mismatch or question missing a required field rejects the
// whole attempt. Note that correctIndex is deliberately not range-checked
// against options: provider output is passed through as-is.
func decodeQuiz(content string, fallbackTopic string) (*domain.Quiz, bool) {
	// A bare null decodes into the zero value without error; treat it as
	// unusable rather than an empty quiz.
	if strings.TrimSpace(content) == "null" {
		return nil, false
	}

	var payload struct {
		Topic     *string          `json:"topic"`
		Questions []parsedQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, false
	}

	questions := make([]domain.QuizQuestion, 0, len(payload.Questions))
	for _, q := range payload.Questions {
		if q.ID == nil || q.Prompt == nil || q.Options == nil || q.CorrectIndex == nil {
			return nil, false
		}
		questions = append(questions, domain.QuizQuestion{
			ID:           *q.ID,
			Prompt:       *q.Prompt,
			Options:      *q.Options,
			CorrectIndex: *q.CorrectIndex,
			Explanation:  q.Explanation,
		})
	}

	topic := fallbackTopic
	if payload.Topic != nil {
		topic = *payload.Topic
	}
	return &domain.Quiz{Topic: topic, Questions: questions}, true
}

// placeholderQuiz is the guaranteed-valid result when nothing could be parsed
// out of the provider reply.
func placeholderQuiz(fallbackTopic string) *domain.Quiz {
	return &domain.Quiz{
		Topic: fallbackTopic,
		Questions: []domain.QuizQuestion{
			{
				ID:     "q1",
				Prompt: fmt.Sprintf("Which statement best relates to %s?", fallbackTopic),
				Options: []string{
					fmt.Sprintf("%s fact 1", fallbackTopic),
					fmt.Sprintf("%s distractor 1.2", fallbackTopic),
					fmt.Sprintf("%s distractor 1.3", fallbackTopic),
					fmt.Sprintf("%s distractor 1.4", fallbackTopic),
				},
				CorrectIndex: 0,
				Explanation:  fmt.Sprintf("The correct option mentions a core %s idea.", fallbackTopic),
			},
		},
	}
}
