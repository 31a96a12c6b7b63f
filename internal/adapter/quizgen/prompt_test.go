package quizgen

import (
	"testing"

	"github.com/leeman-woodside/ai-quiz-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestBuildUserPrompt(t *testing.T) {
	req := domain.QuizRequest{
		Topic:              "Roman history",
		NumQuestions:       7,
		OptionsPerQuestion: 3,
		Difficulty:         "hard",
	}

	prompt := BuildUserPrompt(req)

	assert.Contains(t, prompt, "Topic: Roman history.")
	assert.Contains(t, prompt, "Questions: 7.")
	assert.Contains(t, prompt, "Options per question: 3.")
	assert.Contains(t, prompt, "Difficulty: hard.")
	assert.Contains(t, prompt, "exactly one correct answer")
}

func TestBuildUserPrompt_DifficultyDefaultsToMedium(t *testing.T) {
	req := domain.QuizRequest{Topic: "Go", NumQuestions: 5, OptionsPerQuestion: 4}

	prompt := BuildUserPrompt(req)

	assert.Contains(t, prompt, "Difficulty: medium.")
}

func TestSystemPrompt_DeclaresSchema(t *testing.T) {
	assert.Contains(t, SystemPrompt, `"correctIndex"`)
	assert.Contains(t, SystemPrompt, "no code fences")
}
