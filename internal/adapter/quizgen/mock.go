package quizgen

import (
	"fmt"
	"strings"

	"github.com/leeman-woodside/ai-quiz-backend/internal/domain"
)

// fallbackTopicDefault replaces an empty topic in the mock path.
const fallbackTopicDefault = "General Knowledge"

// MockQuiz deterministically builds a syntactically valid quiz from the
// request alone. It performs no I/O and never fails; it is the universal
// fallback for every recoverable provider failure.
//
// The correct option index rotates as i mod optionsPerQuestion so that not
// every question has answer A.
func MockQuiz(req domain.QuizRequest) *domain.Quiz {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		topic = fallbackTopicDefault
	}

	questions := make([]domain.QuizQuestion, 0, req.NumQuestions)
	for i := 0; i < req.NumQuestions; i++ {
		correctIndex := i % req.OptionsPerQuestion
		options := make([]string, req.OptionsPerQuestion)
		for j := range options {
			if j == correctIndex {
				options[j] = fmt.Sprintf("%s fact %d", topic, i+1)
			} else {
				options[j] = fmt.Sprintf("%s distractor %d.%d", topic, i+1, j+1)
			}
		}
		questions = append(questions, domain.QuizQuestion{
			ID:           fmt.Sprintf("q%d", i+1),
			Prompt:       fmt.Sprintf("Question %d: Which statement best relates to %s?", i+1, topic),
			Options:      options,
			CorrectIndex: correctIndex,
			Explanation:  fmt.Sprintf("The correct option mentions a core %s idea.", topic),
		})
	}

	return &domain.Quiz{Topic: topic, Questions: questions}
}
