package dto

import "github.com/leeman-woodside/ai-quiz-backend/internal/domain"

// GenerateQuizRequest is the request body for POST /api/generate-quiz.
// @Description Parameters for quiz generation
type GenerateQuizRequest struct {
	Topic              string `json:"topic"`
	NumQuestions       int    `json:"numQuestions"`
	OptionsPerQuestion int    `json:"optionsPerQuestion"`
	Difficulty         string `json:"difficulty"`
}

// ApplyDefaults fills in the documented defaults for omitted counts.
// JSON decoding cannot distinguish an absent integer from an explicit zero,
// and a zero-question quiz is meaningless, so zero is treated as absent.
func (r *GenerateQuizRequest) ApplyDefaults() {
	if r.NumQuestions == 0 {
		r.NumQuestions = domain.DefaultNumQuestions
	}
	if r.OptionsPerQuestion == 0 {
		r.OptionsPerQuestion = domain.DefaultOptionsPerQuestion
	}
}

// ToDomain converts the request to its domain value.
func (r GenerateQuizRequest) ToDomain() domain.QuizRequest {
	return domain.QuizRequest{
		Topic:              r.Topic,
		NumQuestions:       r.NumQuestions,
		OptionsPerQuestion: r.OptionsPerQuestion,
		Difficulty:         r.Difficulty,
	}
}

// QuizQuestion represents a question in the API response.
type QuizQuestion struct {
	ID           string   `json:"id"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation,omitempty"`
}

// Quiz represents a quiz in the API response.
type Quiz struct {
	Topic     string         `json:"topic"`
	Questions []QuizQuestion `json:"questions"`
}

// GenerateQuizResponse is the success envelope for POST /api/generate-quiz.
// @Description Generated quiz with its model identifier and creation time
type GenerateQuizResponse struct {
	Quiz      Quiz   `json:"quiz"`
	Model     string `json:"model"`
	CreatedAt string `json:"createdAt"`
}

// QuizFromDomain converts a domain quiz to its wire representation.
func QuizFromDomain(q *domain.Quiz) Quiz {
	questions := make([]QuizQuestion, len(q.Questions))
	for i, dq := range q.Questions {
		questions[i] = QuizQuestion{
			ID:           dq.ID,
			Prompt:       dq.Prompt,
			Options:      dq.Options,
			CorrectIndex: dq.CorrectIndex,
			Explanation:  dq.Explanation,
		}
	}
	return Quiz{Topic: q.Topic, Questions: questions}
}

// ToDomain converts a wire quiz back to its domain value. Used when serving
// cached generations.
func (q Quiz) ToDomain() *domain.Quiz {
	questions := make([]domain.QuizQuestion, len(q.Questions))
	for i, wq := range q.Questions {
		questions[i] = domain.QuizQuestion{
			ID:           wq.ID,
			Prompt:       wq.Prompt,
			Options:      wq.Options,
			CorrectIndex: wq.CorrectIndex,
			Explanation:  wq.Explanation,
		}
	}
	return &domain.Quiz{Topic: q.Topic, Questions: questions}
}
