package quizgen

import (
	"fmt"

	"github.com/leeman-woodside/ai-quiz-backend/internal/domain"
)

// SystemPrompt declares the required JSON shape and forbids code fences.
// It accompanies every provider call unchanged.
const SystemPrompt = `You generate multiple-choice quizzes. Return strict JSON matching the schema: ` +
	`{"topic": string, "questions": [{"id": string, "prompt": string, "options": string[], "correctIndex": number, "explanation"?: string}]} ` +
	`Respond with JSON only, no code fences.`

// BuildUserPrompt renders the per-request instruction for the provider.
func BuildUserPrompt(req domain.QuizRequest) string {
	return fmt.Sprintf(
		"Generate a quiz as JSON with fields topic and questions. "+
			"Topic: %s. Questions: %d. Options per question: %d. "+
			"Difficulty: %s. Ensure exactly one correct answer per question and valid JSON.",
		req.Topic, req.NumQuestions, req.OptionsPerQuestion, req.DifficultyOrDefault(),
	)
}
