package handler

import (
	"github.com/leeman-woodside/ai-quiz-backend/internal/domain"
	"github.com/leeman-woodside/ai-quiz-backend/internal/dto"
	"github.com/leeman-woodside/ai-quiz-backend/internal/service"
	"github.com/leeman-woodside/ai-quiz-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// GenerateQuiz godoc
// @Summary Generate a multiple-choice quiz
// @Description Generates a quiz on the given topic via the configured LLM provider, falling back to a deterministic mock quiz when the provider is unavailable
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Quiz parameters"
// @Success 200 {object} dto.GenerateQuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /generate-quiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{
			domain.NewInvalidFormatError("body", err.Error()),
		}
	}

	req.ApplyDefaults()
	if errs := h.validator.ValidateGenerateQuizRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.GenerateQuiz(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
