package validation

import (
	"strings"

	"github.com/leeman-woodside/ai-quiz-backend/internal/domain"
	"github.com/leeman-woodside/ai-quiz-backend/internal/dto"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateQuizRequest checks the generation request against the
// documented bounds. It expects defaults to have been applied already.
func (v *Validator) ValidateGenerateQuizRequest(req *dto.GenerateQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Topic) == "" {
		errors = append(errors, domain.NewMissingFieldError("topic"))
	}

	if req.NumQuestions < domain.MinQuestions || req.NumQuestions > domain.MaxQuestions {
		errors = append(errors, domain.NewOutOfRangeError(
			"numQuestions", req.NumQuestions, domain.MinQuestions, domain.MaxQuestions))
	}

	if req.OptionsPerQuestion < domain.MinOptionsPerQuestion || req.OptionsPerQuestion > domain.MaxOptionsPerQuestion {
		errors = append(errors, domain.NewOutOfRangeError(
			"optionsPerQuestion", req.OptionsPerQuestion, domain.MinOptionsPerQuestion, domain.MaxOptionsPerQuestion))
	}

	return errors
}
