package quizgen

import (
	"fmt"
	"testing"

	"github.com/leeman-woodside/ai-quiz-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestMockQuiz_Deterministic(t *testing.T) {
	req := domain.QuizRequest{Topic: "Go", NumQuestions: 3, OptionsPerQuestion: 4}

	first := MockQuiz(req)
	second := MockQuiz(req)

	assert.Equal(t, first, second)
}

func TestMockQuiz_CorrectIndexRotation(t *testing.T) {
	req := domain.QuizRequest{Topic: "X", NumQuestions: 5, OptionsPerQuestion: 4}

	quiz := MockQuiz(req)

	indices := make([]int, len(quiz.Questions))
	for i, q := range quiz.Questions {
		indices[i] = q.CorrectIndex
	}
	assert.Equal(t, []int{0, 1, 2, 3, 0}, indices)
}

func TestMockQuiz_Shape(t *testing.T) {
	req := domain.QuizRequest{Topic: "Space", NumQuestions: 4, OptionsPerQuestion: 3}

	quiz := MockQuiz(req)

	assert.Equal(t, "Space", quiz.Topic)
	assert.Len(t, quiz.Questions, 4)
	for i, q := range quiz.Questions {
		assert.Equal(t, fmt.Sprintf("q%d", i+1), q.ID)
		assert.Len(t, q.Options, 3)
		assert.GreaterOrEqual(t, q.CorrectIndex, 0)
		assert.Less(t, q.CorrectIndex, len(q.Options))
		assert.Equal(t, fmt.Sprintf("Space fact %d", i+1), q.Options[q.CorrectIndex])
		for j, opt := range q.Options {
			if j != q.CorrectIndex {
				assert.Equal(t, fmt.Sprintf("Space distractor %d.%d", i+1, j+1), opt)
			}
		}
		assert.Contains(t, q.Prompt, "Space")
		assert.Contains(t, q.Explanation, "Space")
	}
}

func TestMockQuiz_EmptyTopicDefaults(t *testing.T) {
	req := domain.QuizRequest{Topic: "   ", NumQuestions: 1, OptionsPerQuestion: 2}

	quiz := MockQuiz(req)

	assert.Equal(t, "General Knowledge", quiz.Topic)
	assert.Contains(t, quiz.Questions[0].Prompt, "General Knowledge")
}
