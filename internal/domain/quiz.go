package domain

import "strings"

// Request bounds and defaults for quiz generation.
const (
	MinQuestions              = 1
	MaxQuestions              = 20
	DefaultNumQuestions       = 5
	MinOptionsPerQuestion     = 2
	MaxOptionsPerQuestion     = 6
	DefaultOptionsPerQuestion = 4

	DefaultDifficulty = "medium"
)

// QuizRequest carries the validated parameters of a single generation call.
// It is created per request and never mutated afterwards.
type QuizRequest struct {
	Topic              string
	NumQuestions       int
	OptionsPerQuestion int
	Difficulty         string
}

// DifficultyOrDefault returns the requested difficulty, or "medium" when the
// request left it empty.
func (r QuizRequest) DifficultyOrDefault() string {
	if strings.TrimSpace(r.Difficulty) == "" {
		return DefaultDifficulty
	}
	return r.Difficulty
}

// QuizQuestion represents a single multiple-choice question.
// CorrectIndex is the zero-based position of the correct option. The mock and
// placeholder paths guarantee it references an existing option; quizzes parsed
// from provider output are passed through as-is.
type QuizQuestion struct {
	ID           string
	Prompt       string
	Options      []string
	CorrectIndex int
	Explanation  string
}

// Quiz represents a generated quiz.
type Quiz struct {
	Topic     string
	Questions []QuizQuestion
}
